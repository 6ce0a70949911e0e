package ports

import (
	"context"
	"errors"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/rolebot/internal/modules/reaction_roles/domain"
)

// Argument resolution errors.
var (
	ErrChannelNotFound = errors.New("channel not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrEmojiNotFound   = errors.New("emoji not found")
	ErrRoleNotFound    = errors.New("role not found")
)

// Channel is a guild text channel reaction roles can be attached in.
type Channel struct {
	ID   snowflake.ID
	Name string
}

// Message is a message reaction roles can be attached to.
type Message struct {
	ID        snowflake.ID
	ChannelID snowflake.ID
}

// Role is an assignable guild role.
type Role struct {
	ID   snowflake.ID
	Name string
}

// ChannelPermissions reports what the bot may do in a channel.
type ChannelPermissions interface {
	CanAddReactions(ctx context.Context, channelID snowflake.ID) (bool, error)
}

// ReactionAdder adds the bot's own reaction to a message.
type ReactionAdder interface {
	AddReaction(ctx context.Context, channelID, messageID snowflake.ID, emoji domain.Emoji) error
}

// ArgumentResolver turns user input into the entities a reaction role refers to.
type ArgumentResolver interface {
	// TextChannel resolves a mention, ID or name to a text channel of the guild.
	TextChannel(ctx context.Context, guildID snowflake.ID, input string) (Channel, error)

	// Message fetches the message with the given ID from the channel.
	Message(ctx context.Context, channelID snowflake.ID, input string) (Message, error)

	// Emoji resolves a unicode emoji, a :shortcode: or a custom emoji the bot can use.
	Emoji(ctx context.Context, input string) (domain.Emoji, error)

	// KnownEmoji checks that an emoji taken from a reaction can be used by the bot.
	KnownEmoji(ctx context.Context, emoji domain.Emoji) (domain.Emoji, error)

	// Role resolves a mention, ID or name to an assignable role of the guild.
	Role(ctx context.Context, guildID snowflake.ID, input string) (Role, error)
}
