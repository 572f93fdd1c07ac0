// Package events handles gateway events: command dispatch and the guild logs.
package events

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/bot"
	"github.com/starshine-sys/sentinel/common"
	"github.com/starshine-sys/sentinel/db"
	"github.com/starshine-sys/sentinel/events/handler"
)

// LogPermissions are the permissions needed to post a log.
const LogPermissions = discord.PermissionViewChannel | discord.PermissionSendMessages | discord.PermissionEmbedLinks

// eventTimeout bounds the database and API calls of a single event.
const eventTimeout = time.Minute

type Bot struct {
	*bot.Bot

	Handler *handler.Handler

	// guild names, for the guild remove log
	names   map[discord.GuildID]string
	namesMu sync.Mutex
}

// New creates the event handlers without adding them to the gateway.
func New(root *bot.Bot) *Bot {
	b := &Bot{
		Bot:     root,
		Handler: handler.New(),
		names:   map[discord.GuildID]string{},
	}

	b.Handler.HandleResponse = b.handleResponse
	b.Handler.HandleError = b.handleError

	b.Handler.AddHandler(b.messageCreate)
	b.Handler.AddHandler(b.messageUpdate)
	b.Handler.AddHandler(b.messageDelete)
	b.Handler.AddHandler(b.guildMemberAdd)
	b.Handler.AddHandler(b.guildMemberRemove)
	b.Handler.AddHandler(b.guildCreate)
	b.Handler.AddHandler(b.guildDelete)

	return b
}

// Setup adds all event handlers to the bot.
func Setup(root *bot.Bot) *Bot {
	common.Log.Debug("Adding event handlers")

	b := New(root)
	root.AddHandler(b.Handler.Call)
	return b
}

func (bot *Bot) handleResponse(ev reflect.Value, resp *handler.Response) {
	if !resp.ChannelID.IsValid() {
		return
	}

	_, err := bot.Client.SendMessage(resp.ChannelID, resp.Message.Content, resp.Message.Embeds...)
	if err != nil {
		common.Log.Errorf("Error sending %v for event %v in %v: %v", resp.Message.Name, ev.Elem().Type().Name(), resp.ChannelID, err)
	}
}

func (bot *Bot) handleError(ev reflect.Value, err error) {
	bot.Router.Reporter.Report(db.ErrorContext{
		Event: ev.Elem().Type().Name(),
	}, err)
}

// canLog returns true if the bot can post logs in the channel.
func (bot *Bot) canLog(channelID discord.ChannelID) bool {
	if !channelID.IsValid() {
		return false
	}

	perms, err := bot.Client.Permissions(channelID, bot.Router.Bot)
	if err != nil {
		common.Log.Debugf("Error getting permissions in %v: %v", channelID, err)
		return false
	}
	return perms.Has(LogPermissions) || perms.Has(discord.PermissionAdministrator)
}

func eventContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), eventTimeout)
}
