package db

import (
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/starshine-sys/sentinel/common"
)

// ErrorContext is the context for an error
type ErrorContext struct {
	Event   string
	Command string

	UserID    discord.UserID
	GuildID   discord.GuildID
	ChannelID discord.ChannelID
}

// Report logs an error and sends it to sentry, if enabled.
// The returned ID is the sentry event ID, or a random UUID if sentry is disabled.
func (db *DB) Report(ctx ErrorContext, err error) string {
	where := ctx.Event
	if where == "" {
		where = "command " + ctx.Command
	}
	common.Log.Errorf("Error in %v: %v", where, err)

	var id *sentry.EventID
	if db.Hub != nil {
		id = db.capture(ctx, err)
	}

	if id == nil {
		return uuid.New().String()
	}
	return string(*id)
}

func (db *DB) capture(ctx ErrorContext, err error) *sentry.EventID {
	hub := db.Hub.Clone()

	data := map[string]interface{}{}

	if ctx.Event != "" {
		data["event"] = ctx.Event
	}

	if ctx.Command != "" {
		data["command"] = ctx.Command
	}

	if ctx.GuildID.IsValid() {
		data["guild"] = ctx.GuildID
	}

	if ctx.ChannelID.IsValid() {
		data["channel"] = ctx.ChannelID
	}

	hub.ConfigureScope(func(scope *sentry.Scope) {
		if ctx.UserID.IsValid() {
			scope.SetUser(sentry.User{ID: ctx.UserID.String()})
			data["user"] = ctx.UserID
		}
	})

	hub.AddBreadcrumb(&sentry.Breadcrumb{
		Data:      data,
		Level:     sentry.LevelError,
		Timestamp: time.Now().UTC(),
	}, nil)

	return hub.CaptureException(err)
}
