package usecases

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/rolebot/internal/modules/reaction_roles/domain"
)

type mockRepository struct {
	saved     []domain.ReactionRole
	taken     map[string]bool // reference IDs reported as existing
	races     map[string]bool // reference IDs rejected by Save as duplicates
	saveErr   error
	listErr   error
	existsErr error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		taken: make(map[string]bool),
		races: make(map[string]bool),
	}
}

func (m *mockRepository) Save(_ context.Context, rr domain.ReactionRole) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.races[rr.ReferenceID] {
		return domain.ErrDuplicateReference
	}
	m.saved = append(m.saved, rr)
	return nil
}

func (m *mockRepository) ListByMessage(
	_ context.Context,
	guildID, messageID snowflake.ID,
) ([]domain.ReactionRole, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.ReactionRole
	for _, rr := range m.saved {
		if rr.GuildID == guildID && rr.MessageID == messageID {
			out = append(out, rr)
		}
	}
	return out, nil
}

func (m *mockRepository) ExistsReference(
	_ context.Context,
	_ snowflake.ID,
	referenceID string,
) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.taken[referenceID], nil
}

type mockPermissions struct {
	canReact bool
	err      error
	checked  []snowflake.ID
}

func (m *mockPermissions) CanAddReactions(_ context.Context, channelID snowflake.ID) (bool, error) {
	m.checked = append(m.checked, channelID)
	return m.canReact, m.err
}

type reaction struct {
	channelID snowflake.ID
	messageID snowflake.ID
	emoji     domain.Emoji
}

type mockReactionAdder struct {
	err   error
	added []reaction
}

func (m *mockReactionAdder) AddReaction(
	_ context.Context,
	channelID, messageID snowflake.ID,
	emoji domain.Emoji,
) error {
	if m.err != nil {
		return m.err
	}
	m.added = append(m.added, reaction{channelID: channelID, messageID: messageID, emoji: emoji})
	return nil
}

// sequenceIDs returns a generator-like source of fixed reference IDs.
type sequenceIDs struct {
	ids []string
}

func (s *sequenceIDs) next() string {
	id := s.ids[0]
	s.ids = s.ids[1:]
	return id
}
