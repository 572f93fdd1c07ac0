package guildconfig

import "github.com/diamondburned/arikawa/v3/discord"

// Value is an optional edit to a single field.
// A Value that is not Set leaves the field untouched (unless the edit fills unset fields with null);
// a Value that is Set with a zero Value clears the field.
type Value[T any] struct {
	Set   bool
	Value T
}

// Some returns a Value that sets the field to v.
func Some[T any](v T) Value[T] {
	return Value[T]{Set: true, Value: v}
}

// Clear returns a Value that explicitly clears the field.
func Clear[T any]() Value[T] {
	return Value[T]{Set: true}
}

// Edit is a partial update to a guild's config.
type Edit struct {
	Prefix     Value[string]
	ModRoles   Value[[]discord.RoleID]
	AdminRoles Value[[]discord.RoleID]

	MemberJoinsChannel  Value[discord.ChannelID]
	MemberLeavesChannel Value[discord.ChannelID]
	LogsChannel         Value[discord.ChannelID]

	AutoMod Value[bool]
}

// Column is a column in the guilds table.
type Column string

// Columns in the guilds table.
const (
	ColumnPrefix              Column = "prefix"
	ColumnModRoles            Column = "mod_roles"
	ColumnAdminRoles          Column = "admin_roles"
	ColumnMemberJoinsChannel  Column = "member_joins_channel"
	ColumnMemberLeavesChannel Column = "member_leaves_channel"
	ColumnLogsChannel         Column = "logs_channel"
	ColumnAutoMod             Column = "auto_mod"
)

// Columns is a set of column updates. A nil value writes NULL.
// Prefix and role columns hold *string, channel columns hold *int64, and auto_mod holds an int (0 or 1).
type Columns map[Column]any
