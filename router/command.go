package router

import (
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/permissions"
)

// Command is a single text command.
type Command struct {
	Name     string
	Aliases  []string
	Category string

	Usage       string
	Description string

	// DMAllowed is true if the command can be used outside of guilds.
	DMAllowed bool

	// Permissions are the permissions the invoking user needs.
	Permissions permissions.Permission
	// ClientPermissions are the permissions the bot needs in the channel. Send Messages is always required.
	ClientPermissions discord.Permissions

	Run func(*Context) error
}

// BotPermissions returns the permissions the bot needs to run the command.
func (c *Command) BotPermissions() discord.Permissions {
	return c.ClientPermissions | discord.PermissionSendMessages
}

// CategoryName returns the command's category, defaulting to "general".
func (c *Command) CategoryName() string {
	if c.Category == "" {
		return "general"
	}
	return c.Category
}
