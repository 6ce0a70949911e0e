package discord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/rolebot/internal/modules/reaction_roles/application/usecases"
	"github.com/sglre6355/rolebot/internal/modules/reaction_roles/domain"
)

// Embed colors.
const (
	DefaultColor = 0x08c404
	colorError   = 0xE74C3C
)

// confirmationEmbed describes a newly created reaction role.
func confirmationEmbed(rr domain.ReactionRole, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "New Reaction Role!",
		Description: "Please make sure my highest role is above the one you're trying to assign!",
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🔢 Reference ID", Value: rr.ReferenceID},
			{Name: "🏠 Channel", Value: fmt.Sprintf("<#%d> `[%d]`", rr.ChannelID, rr.ChannelID)},
			{Name: "💬 Message", Value: fmt.Sprintf("`%d`", rr.MessageID)},
			{Name: "🍕 Emoji", Value: rr.Emoji.Display()},
			{Name: "💼 Role", Value: fmt.Sprintf("<@&%d> `[%d]`", rr.RoleID, rr.RoleID)},
		},
	}
}

// createErrorMessage maps a Create failure to the text shown to the invoker.
// It reports false for errors that have no user-facing text.
func createErrorMessage(err error, channelID snowflake.ID) (string, bool) {
	switch {
	case errors.Is(err, usecases.ErrMissingReactPermission):
		return fmt.Sprintf("I'm missing the permissions to react in <#%d>!", channelID), true
	case errors.Is(err, usecases.ErrReactFailed):
		cause := strings.TrimPrefix(err.Error(), usecases.ErrReactFailed.Error()+": ")
		return fmt.Sprintf("an error occurred when trying to react to that message: `%s`.", cause), true
	case errors.Is(err, usecases.ErrAlreadyExists):
		return "That emoji already gives this role on that message.", true
	case errors.Is(err, usecases.ErrReferenceExhausted):
		return "I couldn't generate a reference ID for this reaction role, please try again.", true
	default:
		return "", false
	}
}
