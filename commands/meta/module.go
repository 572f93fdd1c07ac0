// Package meta has commands about the bot itself.
package meta

import (
	"context"

	"github.com/starshine-sys/sentinel/bot"
	"github.com/starshine-sys/sentinel/common"
	"github.com/starshine-sys/sentinel/permissions"
	"github.com/starshine-sys/sentinel/router"
)

// Querier runs raw SQL for the eval command.
type Querier interface {
	RawQuery(ctx context.Context, query string) ([]map[string]interface{}, error)
}

type Bot struct {
	*bot.Bot

	// Query is nil if there's no database.
	Query Querier
}

func New(root *bot.Bot) *Bot {
	bot := &Bot{Bot: root}
	if root.DB != nil {
		bot.Query = root.DB
	}
	return bot
}

func Commands(root *bot.Bot) []*router.Command {
	return New(root).Commands()
}

func (bot *Bot) Commands() []*router.Command {
	common.Log.Debug("Adding meta commands")

	return []*router.Command{
		{
			Name:        "help",
			Aliases:     []string{"halp"},
			Description: "List all the Sentinel commands.",
			Usage:       "[page]",
			DMAllowed:   true,
			Run:         bot.help,
		},
		{
			Name:        "invite",
			Description: "Get an invite link for the bot.",
			DMAllowed:   true,
			Run:         bot.invite,
		},
		{
			Name:        "ping",
			Description: "Show the bot's latency and memory usage.",
			DMAllowed:   true,
			Run:         bot.ping,
		},
		{
			Name:        "suggest",
			Usage:       "<suggestion>",
			Description: "Give the Sentinel developers a suggestion!",
			DMAllowed:   true,
			Run:         bot.suggest,
		},
		{
			Name:        "eval",
			Aliases:     []string{"evaluate"},
			Category:    "developer",
			Usage:       "[--timeout 5s] [--silent] <code>",
			Description: "Evaluates code.",
			DMAllowed:   true,
			Permissions: permissions.Dynamic(developerOnly),
			Run:         bot.eval,
		},
	}
}

func developerOnly(a permissions.Actor) permissions.Outcome {
	if a.Developer {
		return permissions.Allow()
	}
	return permissions.Deny()
}
