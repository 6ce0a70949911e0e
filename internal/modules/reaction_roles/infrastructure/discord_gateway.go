package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/kyokomi/emoji/v2"
	"github.com/sglre6355/rolebot/internal/modules/reaction_roles/application/ports"
	"github.com/sglre6355/rolebot/internal/modules/reaction_roles/domain"
)

// Ensure DiscordGateway implements the Discord-facing ports.
var (
	_ ports.ChannelPermissions = (*DiscordGateway)(nil)
	_ ports.ReactionAdder      = (*DiscordGateway)(nil)
	_ ports.ArgumentResolver   = (*DiscordGateway)(nil)
)

var (
	channelMentionPattern = regexp.MustCompile(`^<#(\d{15,21})>$`)
	roleMentionPattern    = regexp.MustCompile(`^<@&(\d{15,21})>$`)
	customEmojiPattern    = regexp.MustCompile(`^<(a?):(\w{2,32}):(\d{15,21})>$`)
	snowflakePattern      = regexp.MustCompile(`^\d{15,21}$`)
)

const variationSelector = "\ufe0f"

// DiscordAPI is the subset of *discordgo.Session REST calls the gateway uses.
type DiscordAPI interface {
	UserChannelPermissions(
		userID, channelID string,
		fetchOptions ...discordgo.RequestOption,
	) (int64, error)
	MessageReactionAdd(
		channelID, messageID, emojiID string,
		options ...discordgo.RequestOption,
	) error
	ChannelMessage(
		channelID, messageID string,
		options ...discordgo.RequestOption,
	) (*discordgo.Message, error)
	GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error)
	GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error)
}

// DiscordGateway implements the reaction role ports using a Discord session.
// Lookups prefer the state cache and fall back to REST for uncached guilds.
type DiscordGateway struct {
	api   DiscordAPI
	state *discordgo.State
}

// NewDiscordGateway creates a new DiscordGateway backed by the session.
func NewDiscordGateway(session *discordgo.Session) *DiscordGateway {
	return NewDiscordGatewayWithState(session, session.State)
}

// NewDiscordGatewayWithState creates a DiscordGateway from an API client and state cache.
func NewDiscordGatewayWithState(api DiscordAPI, state *discordgo.State) *DiscordGateway {
	return &DiscordGateway{api: api, state: state}
}

func (g *DiscordGateway) botUserID() (string, error) {
	g.state.RLock()
	defer g.state.RUnlock()

	if g.state.User == nil {
		return "", errors.New("bot user is not available before the session is ready")
	}
	return g.state.User.ID, nil
}

// CanAddReactions reports whether the bot may add reactions in the channel.
func (g *DiscordGateway) CanAddReactions(_ context.Context, channelID snowflake.ID) (bool, error) {
	botID, err := g.botUserID()
	if err != nil {
		return false, err
	}

	perms, err := g.api.UserChannelPermissions(botID, channelID.String())
	if err != nil {
		return false, fmt.Errorf("failed to compute channel permissions: %w", err)
	}

	if perms&discordgo.PermissionAdministrator != 0 {
		return true, nil
	}
	return perms&discordgo.PermissionAddReactions != 0, nil
}

// AddReaction reacts to the message with the emoji.
func (g *DiscordGateway) AddReaction(
	ctx context.Context,
	channelID, messageID snowflake.ID,
	e domain.Emoji,
) error {
	return g.api.MessageReactionAdd(
		channelID.String(),
		messageID.String(),
		e.APIName(),
		discordgo.WithContext(ctx),
	)
}

// TextChannel resolves a mention, ID or name to a text or news channel of the guild.
func (g *DiscordGateway) TextChannel(
	ctx context.Context,
	guildID snowflake.ID,
	input string,
) (ports.Channel, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return ports.Channel{}, ports.ErrChannelNotFound
	}

	channels, err := g.guildChannels(ctx, guildID)
	if err != nil {
		return ports.Channel{}, err
	}

	if id, ok := parseMentionOrID(channelMentionPattern, input); ok {
		for _, ch := range channels {
			if ch.ID == id && isTextChannel(ch) {
				return toChannel(ch)
			}
		}
		return ports.Channel{}, ports.ErrChannelNotFound
	}

	name := strings.TrimPrefix(input, "#")
	for _, ch := range channels {
		if isTextChannel(ch) && strings.EqualFold(ch.Name, name) {
			return toChannel(ch)
		}
	}
	return ports.Channel{}, ports.ErrChannelNotFound
}

// Message fetches the message with the given ID from the channel.
func (g *DiscordGateway) Message(
	ctx context.Context,
	channelID snowflake.ID,
	input string,
) (ports.Message, error) {
	input = strings.TrimSpace(input)
	if !snowflakePattern.MatchString(input) {
		return ports.Message{}, ports.ErrMessageNotFound
	}

	msg, err := g.api.ChannelMessage(channelID.String(), input, discordgo.WithContext(ctx))
	if err != nil {
		return ports.Message{}, fmt.Errorf("%w: %w", ports.ErrMessageNotFound, err)
	}

	id, err := snowflake.Parse(msg.ID)
	if err != nil {
		return ports.Message{}, fmt.Errorf("%w: %w", ports.ErrMessageNotFound, err)
	}
	return ports.Message{ID: id, ChannelID: channelID}, nil
}

// Emoji resolves a unicode emoji, a :shortcode: or a custom emoji the bot can see.
func (g *DiscordGateway) Emoji(ctx context.Context, input string) (domain.Emoji, error) {
	input = strings.TrimSpace(input)

	if m := customEmojiPattern.FindStringSubmatch(input); m != nil {
		id, err := snowflake.Parse(m[3])
		if err != nil {
			return domain.Emoji{}, ports.ErrEmojiNotFound
		}
		return g.KnownEmoji(ctx, domain.NewCustomEmoji(id, m[2], m[1] == "a"))
	}

	if snowflakePattern.MatchString(input) {
		id, err := snowflake.Parse(input)
		if err != nil {
			return domain.Emoji{}, ports.ErrEmojiNotFound
		}
		return g.KnownEmoji(ctx, domain.NewCustomEmoji(id, "", false))
	}

	if strings.HasPrefix(input, ":") && strings.HasSuffix(input, ":") && len(input) > 2 {
		if char, ok := emoji.CodeMap()[strings.ToLower(input)]; ok {
			return domain.NewUnicodeEmoji(strings.TrimSpace(char)), nil
		}
		return domain.Emoji{}, ports.ErrEmojiNotFound
	}

	if char, ok := unicodeEmoji(input); ok {
		return domain.NewUnicodeEmoji(char), nil
	}
	return domain.Emoji{}, ports.ErrEmojiNotFound
}

// KnownEmoji checks that the emoji can be used by the bot. Unicode emoji are
// always usable; custom emoji must belong to one of the bot's guilds.
func (g *DiscordGateway) KnownEmoji(_ context.Context, e domain.Emoji) (domain.Emoji, error) {
	if e.Kind() == domain.EmojiKindUnicode {
		if e.Name == "" {
			return domain.Emoji{}, ports.ErrEmojiNotFound
		}
		return e, nil
	}

	g.state.RLock()
	defer g.state.RUnlock()

	for _, guild := range g.state.Guilds {
		for _, ge := range guild.Emojis {
			if ge.ID != e.ID.String() {
				continue
			}
			if !ge.Available {
				return domain.Emoji{}, ports.ErrEmojiNotFound
			}
			return domain.NewCustomEmoji(e.ID, ge.Name, ge.Animated), nil
		}
	}
	return domain.Emoji{}, ports.ErrEmojiNotFound
}

// Role resolves a mention, ID or name to an assignable role of the guild.
func (g *DiscordGateway) Role(
	ctx context.Context,
	guildID snowflake.ID,
	input string,
) (ports.Role, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return ports.Role{}, ports.ErrRoleNotFound
	}

	roles, err := g.guildRoles(ctx, guildID)
	if err != nil {
		return ports.Role{}, err
	}

	var match *discordgo.Role
	if id, ok := parseMentionOrID(roleMentionPattern, input); ok {
		for _, r := range roles {
			if r.ID == id {
				match = r
				break
			}
		}
	} else {
		name := strings.TrimPrefix(input, "@")
		for _, r := range roles {
			if strings.EqualFold(r.Name, name) {
				match = r
				break
			}
		}
	}

	// @everyone shares the guild ID and managed roles belong to integrations
	if match == nil || match.ID == guildID.String() || match.Managed {
		return ports.Role{}, ports.ErrRoleNotFound
	}

	id, err := snowflake.Parse(match.ID)
	if err != nil {
		return ports.Role{}, fmt.Errorf("%w: %w", ports.ErrRoleNotFound, err)
	}
	return ports.Role{ID: id, Name: match.Name}, nil
}

func (g *DiscordGateway) guildChannels(
	ctx context.Context,
	guildID snowflake.ID,
) ([]*discordgo.Channel, error) {
	if guild, err := g.state.Guild(guildID.String()); err == nil {
		g.state.RLock()
		defer g.state.RUnlock()
		return append([]*discordgo.Channel(nil), guild.Channels...), nil
	}

	channels, err := g.api.GuildChannels(guildID.String(), discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guild channels: %w", err)
	}
	return channels, nil
}

func (g *DiscordGateway) guildRoles(
	ctx context.Context,
	guildID snowflake.ID,
) ([]*discordgo.Role, error) {
	if guild, err := g.state.Guild(guildID.String()); err == nil {
		g.state.RLock()
		defer g.state.RUnlock()
		return append([]*discordgo.Role(nil), guild.Roles...), nil
	}

	roles, err := g.api.GuildRoles(guildID.String(), discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guild roles: %w", err)
	}
	return roles, nil
}

// parseMentionOrID returns the ID from a mention matching pattern or a raw ID.
func parseMentionOrID(pattern *regexp.Regexp, input string) (string, bool) {
	if m := pattern.FindStringSubmatch(input); m != nil {
		return m[1], true
	}
	if snowflakePattern.MatchString(input) {
		return input, true
	}
	return "", false
}

func isTextChannel(ch *discordgo.Channel) bool {
	return ch.Type == discordgo.ChannelTypeGuildText || ch.Type == discordgo.ChannelTypeGuildNews
}

func toChannel(ch *discordgo.Channel) (ports.Channel, error) {
	id, err := snowflake.Parse(ch.ID)
	if err != nil {
		return ports.Channel{}, fmt.Errorf("%w: %w", ports.ErrChannelNotFound, err)
	}
	return ports.Channel{ID: id, Name: ch.Name}, nil
}

// unicodeEmoji reports whether input is a single known emoji, with or
// without the emoji presentation selector.
func unicodeEmoji(input string) (string, bool) {
	if input == "" {
		return "", false
	}
	known := emoji.RevCodeMap()
	if _, ok := known[input]; ok {
		return input, true
	}
	if _, ok := known[input+variationSelector]; ok {
		return input, true
	}
	stripped := strings.ReplaceAll(input, variationSelector, "")
	if _, ok := known[stripped]; ok {
		return input, true
	}
	return "", false
}
