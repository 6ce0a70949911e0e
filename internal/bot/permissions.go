package bot

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// PermissionResolver computes a user's effective permissions in a channel.
// *discordgo.Session satisfies it.
type PermissionResolver interface {
	UserChannelPermissions(
		userID, channelID string,
		fetchOptions ...discordgo.RequestOption,
	) (int64, error)
}

var permissionNames = []struct {
	bit  int64
	name string
}{
	{discordgo.PermissionCreateInstantInvite, "Create Invite"},
	{discordgo.PermissionKickMembers, "Kick Members"},
	{discordgo.PermissionBanMembers, "Ban Members"},
	{discordgo.PermissionAdministrator, "Administrator"},
	{discordgo.PermissionManageChannels, "Manage Channels"},
	{discordgo.PermissionManageGuild, "Manage Server"},
	{discordgo.PermissionAddReactions, "Add Reactions"},
	{discordgo.PermissionViewChannel, "View Channel"},
	{discordgo.PermissionSendMessages, "Send Messages"},
	{discordgo.PermissionManageMessages, "Manage Messages"},
	{discordgo.PermissionEmbedLinks, "Embed Links"},
	{discordgo.PermissionReadMessageHistory, "Read Message History"},
	{discordgo.PermissionUseExternalEmojis, "Use External Emojis"},
	{discordgo.PermissionManageRoles, "Manage Roles"},
}

// MissingPermissions returns the bits of required that are not present in have.
// Administrator grants everything.
func MissingPermissions(have, required int64) int64 {
	if have&discordgo.PermissionAdministrator != 0 {
		return 0
	}
	return required &^ have
}

// PermissionNames renders permission bits as a comma separated list of names.
func PermissionNames(bits int64) string {
	var names []string
	for _, p := range permissionNames {
		if bits&p.bit != 0 {
			names = append(names, p.name)
		}
	}
	return strings.Join(names, ", ")
}
