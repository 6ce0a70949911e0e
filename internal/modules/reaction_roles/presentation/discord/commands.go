package discord

import "github.com/bwmarrin/discordgo"

// Slash command option names.
const (
	optionMode    = "type"
	optionChannel = "channel"
	optionMessage = "message_id"
	optionEmoji   = "emoji"
	optionRole    = "role"
)

var (
	manageRoles  int64 = discordgo.PermissionManageRoles
	dmPermission       = false
)

// Commands returns all slash commands for the reaction roles module.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:                     "reactionrole",
			Description:              "Create a new reaction role",
			DefaultMemberPermissions: &manageRoles,
			DMPermission:             &dmPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        optionMode,
					Description: "What reacting does",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "React to add and remove (classic)", Value: 1},
						{Name: "React to add only", Value: 2},
						{Name: "React to remove only", Value: 3},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        optionChannel,
					Description: "Channel of the message",
					Required:    true,
					ChannelTypes: []discordgo.ChannelType{
						discordgo.ChannelTypeGuildText,
						discordgo.ChannelTypeGuildNews,
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionMessage,
					Description: "ID of the message to attach the reaction role to",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionEmoji,
					Description: "Emoji to react with",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        optionRole,
					Description: "Role to apply when members react",
					Required:    true,
				},
			},
		},
	}
}
