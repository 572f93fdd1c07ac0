// Package utility has general purpose commands.
package utility

import (
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/bot"
	"github.com/starshine-sys/sentinel/common"
	"github.com/starshine-sys/sentinel/router"
	"golang.org/x/time/rate"
)

// DefaultLookupURL is the geolocation API. The IP address is appended to it.
const DefaultLookupURL = "http://ip-api.com/json/"

type Bot struct {
	*bot.Bot

	LookupURL string
	// lookups is ip-api's free tier limit of 45 requests a minute.
	lookups *rate.Limiter
}

func New(root *bot.Bot) *Bot {
	return &Bot{
		Bot:       root,
		LookupURL: DefaultLookupURL,
		lookups:   rate.NewLimiter(rate.Every(time.Minute/45), 1),
	}
}

func Commands(root *bot.Bot) []*router.Command {
	return New(root).Commands()
}

func (bot *Bot) Commands() []*router.Command {
	common.Log.Debug("Adding utility commands")

	return []*router.Command{
		{
			Name:        "say",
			Aliases:     []string{"repeat"},
			Usage:       "<text>",
			Description: "Make the bot say something.",
			DMAllowed:   true,
			Run:         bot.say,
		},
		{
			Name:              "whois",
			Usage:             "[member]",
			Description:       "Display a user's information.",
			ClientPermissions: discord.PermissionEmbedLinks,
			Run:               bot.whois,
		},
		{
			Name:              "avatar",
			Aliases:           []string{"av"},
			Usage:             "[user]",
			Description:       "Display a user's avatar.",
			DMAllowed:         true,
			ClientPermissions: discord.PermissionEmbedLinks,
			Run:               bot.avatar,
		},
		{
			Name:              "roleinfo",
			Usage:             "<role>",
			Description:       "Get information about a specific role.",
			ClientPermissions: discord.PermissionEmbedLinks,
			Run:               bot.roleinfo,
		},
		{
			Name:              "guildstats",
			Aliases:           []string{"gs", "serverinfo", "guildinfo", "serverstats"},
			Description:       "Displays information about the current server.",
			ClientPermissions: discord.PermissionEmbedLinks,
			Run:               bot.guildstats,
		},
		{
			Name:              "lookup",
			Aliases:           []string{"geo"},
			Usage:             "<ip>",
			Description:       "Look up an IP address.",
			DMAllowed:         true,
			ClientPermissions: discord.PermissionEmbedLinks,
			Run:               bot.lookup,
		},
	}
}
