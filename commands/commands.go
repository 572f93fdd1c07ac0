// Package commands collects every command module.
package commands

import (
	"github.com/starshine-sys/sentinel/bot"
	"github.com/starshine-sys/sentinel/commands/admin"
	"github.com/starshine-sys/sentinel/commands/meta"
	"github.com/starshine-sys/sentinel/commands/moderation"
	"github.com/starshine-sys/sentinel/commands/utility"
	"github.com/starshine-sys/sentinel/router"
)

// All returns every command, in the order they're listed in help.
func All(root *bot.Bot) []*router.Command {
	var cmds []*router.Command
	cmds = append(cmds, utility.Commands(root)...)
	cmds = append(cmds, admin.Commands(root)...)
	cmds = append(cmds, moderation.Commands(root)...)
	cmds = append(cmds, meta.Commands(root)...)
	return cmds
}

// Setup replaces the router's commands with All.
func Setup(root *bot.Bot) error {
	return root.Router.Registry.Reload(func() ([]*router.Command, error) {
		return All(root), nil
	})
}
