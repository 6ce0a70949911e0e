package discord

import (
	"context"
	"strings"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/rolebot/internal/modules/reaction_roles/application/ports"
	"github.com/sglre6355/rolebot/internal/modules/reaction_roles/application/usecases"
	"github.com/sglre6355/rolebot/internal/modules/reaction_roles/domain"
	"github.com/sglre6355/rolebot/internal/prompt"
)

var (
	testGuildID   = snowflake.ID(100000000000000001)
	testChannelID = snowflake.ID(100000000000000010)
	testMessageID = snowflake.ID(603009228180815882)
	testRoleID    = snowflake.ID(100000000000000020)
	testUserID    = snowflake.ID(100000000000000040)
	testEmojiID   = snowflake.ID(100000000000000030)
)

// mockResolver resolves fixed inputs and reports not found for anything else.
type mockResolver struct {
	err          error // returned by every lookup when set
	channelCalls []snowflake.ID
}

func (m *mockResolver) TextChannel(_ context.Context, guildID snowflake.ID, input string) (ports.Channel, error) {
	if m.err != nil {
		return ports.Channel{}, m.err
	}
	if guildID == testGuildID && (input == "#roles" || input == testChannelID.String()) {
		return ports.Channel{ID: testChannelID, Name: "roles"}, nil
	}
	return ports.Channel{}, ports.ErrChannelNotFound
}

func (m *mockResolver) Message(_ context.Context, channelID snowflake.ID, input string) (ports.Message, error) {
	m.channelCalls = append(m.channelCalls, channelID)
	if m.err != nil {
		return ports.Message{}, m.err
	}
	if channelID == testChannelID && input == testMessageID.String() {
		return ports.Message{ID: testMessageID, ChannelID: channelID}, nil
	}
	return ports.Message{}, ports.ErrMessageNotFound
}

func (m *mockResolver) Emoji(_ context.Context, input string) (domain.Emoji, error) {
	if m.err != nil {
		return domain.Emoji{}, m.err
	}
	switch input {
	case "🍕", ":pizza:":
		return domain.NewUnicodeEmoji("🍕"), nil
	case "<:party:" + testEmojiID.String() + ">":
		return domain.NewCustomEmoji(testEmojiID, "party", false), nil
	}
	return domain.Emoji{}, ports.ErrEmojiNotFound
}

func (m *mockResolver) KnownEmoji(_ context.Context, e domain.Emoji) (domain.Emoji, error) {
	if m.err != nil {
		return domain.Emoji{}, m.err
	}
	if e.Kind() == domain.EmojiKindUnicode || e.ID == testEmojiID {
		return e, nil
	}
	return domain.Emoji{}, ports.ErrEmojiNotFound
}

func (m *mockResolver) Role(_ context.Context, guildID snowflake.ID, input string) (ports.Role, error) {
	if m.err != nil {
		return ports.Role{}, m.err
	}
	if guildID == testGuildID && (input == "Reaction Fans" || input == testRoleID.String()) {
		return ports.Role{ID: testRoleID, Name: "Reaction Fans"}, nil
	}
	return ports.Role{}, ports.ErrRoleNotFound
}

type mockCreator struct {
	err    error
	inputs []usecases.CreateInput
}

func (m *mockCreator) Create(_ context.Context, input usecases.CreateInput) (*usecases.CreateOutput, error) {
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	return &usecases.CreateOutput{
		ReactionRole: domain.ReactionRole{
			ReferenceID: "AbC1",
			GuildID:     input.GuildID,
			ChannelID:   input.ChannelID,
			MessageID:   input.MessageID,
			RoleID:      input.RoleID,
			CreatorID:   input.CreatorID,
			Emoji:       input.Emoji,
			Mode:        input.Mode,
			CreatedAt:   time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC),
		},
	}, nil
}

// inlinePrompter parses inline words with each argument's parser and never
// prompts. A missing word times out and an invalid one exhausts retries.
type inlinePrompter struct {
	err       error
	channelID string
	userID    string
	inline    string
}

func (p *inlinePrompter) Run(
	ctx context.Context,
	channelID, userID string,
	args []prompt.Arg,
	inline string,
) (prompt.Values, error) {
	p.channelID, p.userID, p.inline = channelID, userID, inline
	if p.err != nil {
		return nil, p.err
	}

	words := strings.SplitN(inline, " ", len(args))
	values := prompt.Values{}
	for i, arg := range args {
		if i >= len(words) || words[i] == "" {
			return nil, prompt.ErrTimeout
		}
		v, err := arg.Parse(ctx, values, prompt.Input{Content: words[i]})
		if err != nil {
			return nil, prompt.ErrTooManyRetries
		}
		values[arg.ID] = v
	}
	return values, nil
}
