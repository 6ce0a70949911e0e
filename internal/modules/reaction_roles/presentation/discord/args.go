package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/rolebot/internal/modules/reaction_roles/application/ports"
	"github.com/sglre6355/rolebot/internal/modules/reaction_roles/domain"
	"github.com/sglre6355/rolebot/internal/prompt"
)

// Argument IDs of the add command.
const (
	argMode    = "type"
	argChannel = "channel"
	argMessage = "message"
	argEmoji   = "emoji"
	argRole    = "role"
)

const (
	modeStart = "What type of reaction role do you wish to create?\n\n" +
		"`[1]` for react to add and remove. *Classic*\n" +
		"`[2]` for react to add only.\n" +
		"`[3]` for react to delete only."
	modeRetry = "Please provide a valid number for which type of reaction role do you wish to create?\n\n" +
		"`[1]` Both react to add and remove. *Classic*\n" +
		"`[2]` Only react to add.\n" +
		"`[3]` Only react to remove role."

	channelStart = "What channel of the message you'd like to add this reaction role to?"
	channelRetry = "Please provide a valid channel."

	messageStart = "What is the ID of the message you want to add that reaction role to?"
	messageRetry = "Please provide a valid message ID."

	emojiStart = "Please **react** to **this** message or respond with the emoji you wish to use? " +
		"If it's a custom emoji, please ensure I'm in the server that it's from!"
	emojiRetry = "Please **react** to **this** message or respond with a valid emoji. " +
		"If it's a custom emoji, please ensure I'm in the server that it's from!"

	roleStart = "What role would you like to apply when they react?"
	roleRetry = "Please provide a valid role."
)

// reactionRoleArgs builds the five arguments of the add command for a guild.
// The message lookup depends on the channel collected before it.
func reactionRoleArgs(resolver ports.ArgumentResolver, guildID snowflake.ID) []prompt.Arg {
	return []prompt.Arg{
		{
			ID:    argMode,
			Start: modeStart,
			Retry: modeRetry,
			Parse: func(_ context.Context, _ prompt.Values, in prompt.Input) (any, error) {
				return domain.ParseMode(in.Content)
			},
		},
		{
			ID:    argChannel,
			Start: channelStart,
			Retry: channelRetry,
			Parse: func(ctx context.Context, _ prompt.Values, in prompt.Input) (any, error) {
				return resolver.TextChannel(ctx, guildID, in.Content)
			},
		},
		{
			ID:    argMessage,
			Start: messageStart,
			Retry: messageRetry,
			Parse: func(ctx context.Context, values prompt.Values, in prompt.Input) (any, error) {
				channel := prompt.Get[ports.Channel](values, argChannel)
				return resolver.Message(ctx, channel.ID, in.Content)
			},
		},
		{
			ID:        argEmoji,
			Start:     emojiStart,
			Retry:     emojiRetry,
			Reactions: true,
			Parse: func(ctx context.Context, _ prompt.Values, in prompt.Input) (any, error) {
				if in.Reaction != nil {
					e, err := emojiFromReaction(in.Reaction)
					if err != nil {
						return nil, err
					}
					return resolver.KnownEmoji(ctx, e)
				}
				return resolver.Emoji(ctx, in.Content)
			},
		},
		{
			ID:    argRole,
			Start: roleStart,
			Retry: roleRetry,
			Rest:  true,
			Parse: func(ctx context.Context, _ prompt.Values, in prompt.Input) (any, error) {
				return resolver.Role(ctx, guildID, in.Content)
			},
		},
	}
}

func emojiFromReaction(e *discordgo.Emoji) (domain.Emoji, error) {
	if e.ID == "" {
		return domain.NewUnicodeEmoji(e.Name), nil
	}
	id, err := snowflake.Parse(e.ID)
	if err != nil {
		return domain.Emoji{}, ports.ErrEmojiNotFound
	}
	return domain.NewCustomEmoji(id, e.Name, e.Animated), nil
}
