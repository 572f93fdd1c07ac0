// Package moderation has the ban and kick commands.
package moderation

import (
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/bot"
	"github.com/starshine-sys/sentinel/common"
	"github.com/starshine-sys/sentinel/permissions"
	"github.com/starshine-sys/sentinel/responses"
	"github.com/starshine-sys/sentinel/router"
)

type Bot struct {
	*bot.Bot
}

func Commands(root *bot.Bot) []*router.Command {
	common.Log.Debug("Adding moderation commands")

	bot := &Bot{Bot: root}

	return []*router.Command{
		{
			Name:              "ban",
			Aliases:           []string{"perma-yeet"},
			Category:          "moderation",
			Usage:             "[member] <reason>",
			Description:       "Ban a user.",
			Permissions:       permissions.Dynamic(moderatorOnly(discord.PermissionBanMembers)),
			ClientPermissions: discord.PermissionBanMembers,
			Run:               bot.remove(responses.Ban),
		},
		{
			Name:              "kick",
			Aliases:           []string{"yeet"},
			Category:          "moderation",
			Usage:             "[member] <reason>",
			Description:       "Kick a user.",
			Permissions:       permissions.Dynamic(moderatorOnly(discord.PermissionKickMembers)),
			ClientPermissions: discord.PermissionKickMembers,
			Run:               bot.remove(responses.Kick),
		},
	}
}

// moderatorOnly allows members with perm or a moderator role.
func moderatorOnly(perm discord.Permissions) permissions.Predicate {
	return func(a permissions.Actor) permissions.Outcome {
		if a.Config == nil {
			return permissions.Ignore()
		}
		if a.Has(perm) || a.Config.IsMod(a.RoleIDs()) {
			return permissions.Allow()
		}
		return permissions.Refuse("You need to be a Server Moderator to use this command!")
	}
}
