package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/rolebot/internal/bot"
	"github.com/sglre6355/rolebot/internal/modules/reaction_roles/application/ports"
	"github.com/sglre6355/rolebot/internal/modules/reaction_roles/application/usecases"
	"github.com/sglre6355/rolebot/internal/modules/reaction_roles/domain"
	"github.com/sglre6355/rolebot/internal/prompt"
)

// ReactionRoleCreator creates reaction roles.
type ReactionRoleCreator interface {
	Create(ctx context.Context, input usecases.CreateInput) (*usecases.CreateOutput, error)
}

// ArgumentPrompter collects command arguments interactively.
type ArgumentPrompter interface {
	Run(
		ctx context.Context,
		channelID, userID string,
		args []prompt.Arg,
		inline string,
	) (prompt.Values, error)
}

// Ensure the real implementations satisfy the interfaces used here.
var (
	_ ReactionRoleCreator = (*usecases.ReactionRoleService)(nil)
	_ ArgumentPrompter    = (*prompt.Prompter)(nil)
)

// clientPermissions are what the bot needs to set up and later serve a reaction role.
const clientPermissions = discordgo.PermissionAddReactions |
	discordgo.PermissionManageRoles |
	discordgo.PermissionManageMessages

// MessageCommandHandler handles the add prefix command.
type MessageCommandHandler struct {
	service  ReactionRoleCreator
	resolver ports.ArgumentResolver
	prompter ArgumentPrompter
	color    int
}

// NewMessageCommandHandler creates a new MessageCommandHandler.
func NewMessageCommandHandler(
	service ReactionRoleCreator,
	resolver ports.ArgumentResolver,
	prompter ArgumentPrompter,
	color int,
) *MessageCommandHandler {
	return &MessageCommandHandler{
		service:  service,
		resolver: resolver,
		prompter: prompter,
		color:    color,
	}
}

// Command returns the prefix command definition.
func (h *MessageCommandHandler) Command() bot.MessageCommand {
	return bot.MessageCommand{
		Name:        "add",
		Aliases:     []string{"new", "addrole", "reactionrole"},
		Category:    "Reaction Roles",
		Description: "Creates a new reaction role.",
		Usage:       "<type> <channel> <message id> <emoji> <role>",
		Examples: []string{
			"1 #reaction-roles 603009228180815882 🍕 Member",
			"2 welcome 603009471236538389 :blobbouce: Blob",
			"3 roles 602918902141288489 :apple: Apples",
		},
		GuildOnly:         true,
		UserPermissions:   discordgo.PermissionManageRoles,
		ClientPermissions: clientPermissions,
		Handler:           h.Handle,
	}
}

// Handle collects the arguments, creates the reaction role and confirms it.
func (h *MessageCommandHandler) Handle(ctx context.Context, mc *bot.MessageContext) error {
	m := mc.Message

	guildID, err := snowflake.Parse(m.GuildID)
	if err != nil {
		return mc.Responder.Reply("This command can only be used in a server.")
	}

	creatorID, err := snowflake.Parse(m.Author.ID)
	if err != nil {
		return fmt.Errorf("invalid author ID: %w", err)
	}

	values, err := h.prompter.Run(
		ctx,
		m.ChannelID,
		m.Author.ID,
		reactionRoleArgs(h.resolver, guildID),
		mc.Args,
	)
	if err != nil {
		if text, ok := prompt.OutcomeMessage(err); ok {
			slog.Debug("reaction role prompt ended",
				"guild_id", guildID,
				"user_id", creatorID,
				"error", err,
			)
			return mc.Responder.Reply(text)
		}
		return fmt.Errorf("failed to collect arguments: %w", err)
	}

	channel := prompt.Get[ports.Channel](values, argChannel)
	output, err := h.service.Create(ctx, usecases.CreateInput{
		GuildID:   guildID,
		ChannelID: channel.ID,
		MessageID: prompt.Get[ports.Message](values, argMessage).ID,
		RoleID:    prompt.Get[ports.Role](values, argRole).ID,
		CreatorID: creatorID,
		Emoji:     prompt.Get[domain.Emoji](values, argEmoji),
		Mode:      prompt.Get[domain.Mode](values, argMode),
	})
	if err != nil {
		if text, ok := createErrorMessage(err, channel.ID); ok {
			return mc.Responder.Reply(text)
		}
		return err
	}

	return mc.Responder.SendEmbed(confirmationEmbed(output.ReactionRole, h.color))
}
