package permissions

import (
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/common"
)

// GuildPermissions returns a member's guild-level permissions, ignoring channel overwrites.
// The owner and administrators get every permission.
func GuildPermissions(g discord.Guild, m discord.Member) discord.Permissions {
	if g.OwnerID == m.User.ID {
		return discord.PermissionAll
	}

	var perms discord.Permissions
	for _, r := range g.Roles {
		if r.ID == discord.RoleID(g.ID) || common.Contains(m.RoleIDs, r.ID) {
			perms |= r.Permissions
		}
	}

	if perms.Has(discord.PermissionAdministrator) {
		return discord.PermissionAll
	}
	return perms
}

// HighestRole returns the position of the member's highest role.
func HighestRole(g discord.Guild, roleIDs []discord.RoleID) (pos int) {
	for _, r := range g.Roles {
		if common.Contains(roleIDs, r.ID) && r.Position > pos {
			pos = r.Position
		}
	}
	return pos
}

// IsManageableBy returns true if target can be moderated by actor:
// the actor owns the guild, or the target isn't the owner and isn't above the actor.
func IsManageableBy(g discord.Guild, target, actor discord.Member) bool {
	if actor.User.ID == g.OwnerID {
		return true
	}
	if target.User.ID == g.OwnerID {
		return false
	}
	return HighestRole(g, actor.RoleIDs) >= HighestRole(g, target.RoleIDs)
}

// CanBotManage returns true if the bot can ban or kick target.
// The bot's highest role must be strictly above the target's.
func CanBotManage(g discord.Guild, target, bot discord.Member) bool {
	if target.User.ID == g.OwnerID {
		return false
	}
	return HighestRole(g, bot.RoleIDs) > HighestRole(g, target.RoleIDs)
}
