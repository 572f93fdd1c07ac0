package common

import (
	"sort"

	"github.com/diamondburned/arikawa/v3/discord"
)

// Permission constants that aren't consistently named across Arikawa versions
const (
	PermissionViewServerInsights discord.Permissions = 1 << 19
	PermissionManageEmojis       discord.Permissions = 1 << 30
)

// KeyPermissions are the permissions shown on member and role information.
const KeyPermissions = discord.PermissionAdministrator |
	discord.PermissionManageGuild |
	discord.PermissionManageWebhooks |
	discord.PermissionManageChannels |
	discord.PermissionBanMembers |
	discord.PermissionKickMembers |
	discord.PermissionManageRoles |
	discord.PermissionManageNicknames |
	PermissionManageEmojis |
	discord.PermissionManageMessages |
	discord.PermissionMentionEveryone |
	discord.PermissionViewAuditLog

var permNames = map[discord.Permissions]string{
	discord.PermissionCreateInstantInvite: "Create Invite",
	discord.PermissionKickMembers:         "Kick Members",
	discord.PermissionBanMembers:          "Ban Members",
	discord.PermissionAdministrator:       "Administrator",
	discord.PermissionManageChannels:      "Manage Channels",
	discord.PermissionManageGuild:         "Manage Server",
	discord.PermissionAddReactions:        "Add Reactions",
	discord.PermissionViewAuditLog:        "View Audit Log",
	discord.PermissionViewChannel:         "View Channel",
	discord.PermissionSendMessages:        "Send Messages",
	discord.PermissionManageMessages:      "Manage Messages",
	discord.PermissionEmbedLinks:          "Embed Links",
	discord.PermissionAttachFiles:         "Attach Files",
	discord.PermissionReadMessageHistory:  "Read Message History",
	discord.PermissionMentionEveryone:     "Mention Everyone",
	discord.PermissionUseExternalEmojis:   "Use External Emojis",
	PermissionViewServerInsights:          "View Server Insights",
	discord.PermissionChangeNickname:      "Change Nickname",
	discord.PermissionManageNicknames:     "Manage Nicknames",
	discord.PermissionManageRoles:         "Manage Roles",
	discord.PermissionManageWebhooks:      "Manage Webhooks",
	PermissionManageEmojis:                "Manage Emojis",
}

// PermStrings returns the names of every permission in p, sorted alphabetically.
// Bits without a name are skipped.
func PermStrings(p discord.Permissions) []string {
	out := make([]string, 0, len(permNames))
	for perm, name := range permNames {
		if p&perm == perm {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// KeyPermStrings is PermStrings limited to KeyPermissions.
func KeyPermStrings(p discord.Permissions) []string {
	return PermStrings(p & KeyPermissions)
}
