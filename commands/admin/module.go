// Package admin has the server settings command.
package admin

import (
	"github.com/starshine-sys/sentinel/bot"
	"github.com/starshine-sys/sentinel/common"
	"github.com/starshine-sys/sentinel/permissions"
	"github.com/starshine-sys/sentinel/router"
)

type Bot struct {
	*bot.Bot
}

func Commands(root *bot.Bot) []*router.Command {
	common.Log.Debug("Adding admin commands")

	bot := &Bot{Bot: root}

	return []*router.Command{{
		Name:        "settings",
		Category:    "admin",
		Usage:       "[view|setup|edit <setting> <value>]",
		Description: "View or change this server's settings",
		Permissions: permissions.Dynamic(adminOnly),
		Run:         bot.settings,
	}}
}
