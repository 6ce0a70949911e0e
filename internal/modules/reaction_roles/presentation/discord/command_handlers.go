package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/rolebot/internal/bot"
	"github.com/sglre6355/rolebot/internal/modules/reaction_roles/application/ports"
	"github.com/sglre6355/rolebot/internal/modules/reaction_roles/application/usecases"
	"github.com/sglre6355/rolebot/internal/modules/reaction_roles/domain"
)

// CommandHandlers holds the slash command handlers.
type CommandHandlers struct {
	service  ReactionRoleCreator
	resolver ports.ArgumentResolver
	color    int
}

// NewCommandHandlers creates new CommandHandlers.
func NewCommandHandlers(
	service ReactionRoleCreator,
	resolver ports.ArgumentResolver,
	color int,
) *CommandHandlers {
	return &CommandHandlers{
		service:  service,
		resolver: resolver,
		color:    color,
	}
}

// HandleReactionRole handles the /reactionrole command.
func (h *CommandHandlers) HandleReactionRole(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ctx := context.Background()

	if i.Member == nil || i.Member.User == nil {
		return respondError(r, "This command can only be used in a server.")
	}

	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	userID, err := snowflake.Parse(i.Member.User.ID)
	if err != nil {
		return respondError(r, "Invalid user")
	}

	var mode domain.Mode
	var channelInput, messageInput, emojiInput, roleInput string
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case optionMode:
			mode = domain.Mode(opt.IntValue())
		case optionChannel:
			channelInput, _ = opt.Value.(string)
		case optionMessage:
			messageInput = opt.StringValue()
		case optionEmoji:
			emojiInput = opt.StringValue()
		case optionRole:
			roleInput, _ = opt.Value.(string)
		}
	}

	if !mode.Valid() {
		return respondError(r, "Please provide a valid reaction role type.")
	}

	channel, err := h.resolver.TextChannel(ctx, guildID, channelInput)
	if err != nil {
		return respondResolveError(r, err, channelRetry)
	}

	message, err := h.resolver.Message(ctx, channel.ID, messageInput)
	if err != nil {
		return respondResolveError(r, err, messageRetry)
	}

	emoji, err := h.resolver.Emoji(ctx, emojiInput)
	if err != nil {
		return respondResolveError(r, err,
			"Please provide a valid emoji. If it's a custom emoji, please ensure I'm in the server that it's from!")
	}

	role, err := h.resolver.Role(ctx, guildID, roleInput)
	if err != nil {
		return respondResolveError(r, err, roleRetry)
	}

	output, err := h.service.Create(ctx, usecases.CreateInput{
		GuildID:   guildID,
		ChannelID: channel.ID,
		MessageID: message.ID,
		RoleID:    role.ID,
		CreatorID: userID,
		Emoji:     emoji,
		Mode:      mode,
	})
	if err != nil {
		if text, ok := createErrorMessage(err, channel.ID); ok {
			return respondError(r, text)
		}
		return err
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{confirmationEmbed(output.ReactionRole, h.color)},
		},
	})
}

// respondResolveError shows text for invalid input and propagates lookup failures.
func respondResolveError(r bot.Responder, err error, text string) error {
	if isNotFound(err) {
		return respondError(r, text)
	}
	return fmt.Errorf("failed to resolve argument: %w", err)
}

func isNotFound(err error) bool {
	return errors.Is(err, ports.ErrChannelNotFound) ||
		errors.Is(err, ports.ErrMessageNotFound) ||
		errors.Is(err, ports.ErrEmojiNotFound) ||
		errors.Is(err, ports.ErrRoleNotFound)
}

func respondError(r bot.Responder, message string) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       "Error",
					Description: message,
					Color:       colorError,
				},
			},
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
}
