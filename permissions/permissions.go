// Package permissions decides who may run a command.
package permissions

import (
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/common"
	"github.com/starshine-sys/sentinel/guildconfig"
)

// OutcomeKind is the result of a permission check.
type OutcomeKind int

const (
	// Indeterminate means the check couldn't be made, for example because the guild has no config yet.
	// The command is silently not run.
	Indeterminate OutcomeKind = iota
	// Allowed means the command may run.
	Allowed
	// Denied means the actor may not run the command, and gets the generic no permission error.
	Denied
	// Refused means the actor may not run the command, and gets Outcome.Reason as a reply.
	Refused
)

// Outcome is the result of a permission check.
type Outcome struct {
	Kind   OutcomeKind
	Reason string
}

// Allow lets the actor run the command.
func Allow() Outcome { return Outcome{Kind: Allowed} }
// Deny refuses the command with the generic no permission error.
func Deny() Outcome { return Outcome{Kind: Denied} }
// Ignore silently drops the command.
func Ignore() Outcome { return Outcome{Kind: Indeterminate} }
// Refuse refuses the command, replying with reason.
func Refuse(reason string) Outcome { return Outcome{Kind: Refused, Reason: reason} }

// Actor is the user invoking a command, with everything a predicate might need.
type Actor struct {
	User discord.User
	// Member is nil outside of guilds.
	Member  *discord.Member
	GuildID discord.GuildID
	Channel discord.Channel

	// Permissions are the actor's guild-level permissions. Zero outside of guilds.
	Permissions discord.Permissions
	// Config is nil outside of guilds, or if the guild has no config.
	Config *guildconfig.Config
	// Developer is true if the actor is a listed bot developer.
	Developer bool
}

// InGuild returns true if the actor is in a guild.
func (a Actor) InGuild() bool {
	return a.GuildID.IsValid() && a.Member != nil
}

// Has returns true if the actor has all of the given guild permissions.
func (a Actor) Has(p discord.Permissions) bool {
	return a.InGuild() && a.Permissions.Has(p)
}

// RoleIDs returns the actor's roles, or nil outside of guilds.
func (a Actor) RoleIDs() []discord.RoleID {
	if a.Member == nil {
		return nil
	}
	return a.Member.RoleIDs
}

// Predicate is a dynamic permission check.
type Predicate func(Actor) Outcome

// Kind is the kind of a Permission.
type Kind int

const (
	// KindNone permissions allow everyone.
	KindNone Kind = iota
	// KindStatic permissions require a set of guild permissions.
	KindStatic
	// KindDynamic permissions are decided by a Predicate.
	KindDynamic
)

// Permission is a command's actor permission requirement: nothing, a static bitmask, or a predicate.
type Permission struct {
	kind      Kind
	mask      discord.Permissions
	predicate Predicate
}

// None is a Permission that always allows.
func None() Permission { return Permission{} }

// Static requires the actor to have every permission in mask. It is always denied outside of guilds.
func Static(mask discord.Permissions) Permission {
	if mask == 0 {
		return None()
	}
	return Permission{kind: KindStatic, mask: mask}
}

// Dynamic runs the given predicate.
func Dynamic(fn Predicate) Permission {
	if fn == nil {
		return None()
	}
	return Permission{kind: KindDynamic, predicate: fn}
}

// Kind returns the permission's kind.
func (p Permission) Kind() Kind { return p.kind }

// Mask returns the permission's bitmask, for static permissions.
func (p Permission) Mask() discord.Permissions { return p.mask }

// Evaluate checks the permission for the given actor.
func (p Permission) Evaluate(a Actor) Outcome {
	switch p.kind {
	case KindStatic:
		if a.Has(p.mask) {
			return Allow()
		}
		return Deny()
	case KindDynamic:
		return p.predicate(a)
	default:
		return Allow()
	}
}

// GuildWide are the permissions that can't be granted or denied by channel overwrites,
// and so are checked against the bot's guild permissions only.
// Manage Roles can be set on a channel, but is only ever needed for guild roles here.
const GuildWide = discord.PermissionBanMembers |
	discord.PermissionChangeNickname |
	discord.PermissionKickMembers |
	discord.PermissionManageChannels |
	common.PermissionManageEmojis |
	discord.PermissionManageGuild |
	discord.PermissionManageNicknames |
	discord.PermissionManageRoles |
	discord.PermissionViewAuditLog |
	common.PermissionViewServerInsights

// Split splits required into its guild-wide and channel-overridable parts.
func Split(required discord.Permissions) (guild, channel discord.Permissions) {
	return required & GuildWide, required &^ GuildWide
}

// Missing returns the permissions from required that the bot doesn't have.
// Guild-wide permissions are checked against guildPerms, everything else against channelPerms.
// Both halves must pass independently.
func Missing(required, guildPerms, channelPerms discord.Permissions) (missingGuild, missingChannel discord.Permissions) {
	g, c := Split(required)
	if !guildPerms.Has(discord.PermissionAdministrator) {
		missingGuild = g &^ guildPerms
	}
	if !channelPerms.Has(discord.PermissionAdministrator) {
		missingChannel = c &^ channelPerms
	}
	return missingGuild, missingChannel
}
