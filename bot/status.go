package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/starshine-sys/sentinel/common"
	"github.com/starshine-sys/sentinel/db/stats"
)

// statusInterval is how often the bot's status is refreshed.
const statusInterval = 5 * time.Minute

// GuildCount returns the number of guilds in the state cache.
func (bot *Bot) GuildCount() int {
	if bot.State == nil {
		return 0
	}

	guilds, err := bot.State.Guilds()
	if err != nil {
		return 0
	}
	return len(guilds)
}

// CommandCount returns the number of registered commands.
func (bot *Bot) CommandCount() int {
	return len(bot.Router.Registry.Commands())
}

// Totals returns the lifetime command and event counts.
func (bot *Bot) Totals() stats.Totals {
	return bot.Stats.Totals()
}

// StatusLoop sets the bot's status to the help command and guild count until ctx is cancelled.
func (bot *Bot) StatusLoop(ctx context.Context) {
	select {
	case <-time.After(5 * time.Second):
	case <-ctx.Done():
		return
	}

	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

	for {
		bot.updateStatus(ctx)

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

func (bot *Bot) updateStatus(ctx context.Context) {
	status := fmt.Sprintf("%vhelp", bot.Config.DefaultPrefix)
	if n := bot.GuildCount(); n != 0 {
		status += fmt.Sprintf(" | in %v servers", n)
	}

	err := bot.State.Gateway().Send(ctx, &gateway.UpdatePresenceCommand{
		Status: discord.OnlineStatus,
		Activities: []discord.Activity{{
			Name: status,
			Type: discord.GameActivity,
		}},
	})
	if err != nil {
		common.Log.Errorf("Error setting status: %v", err)
	}
}
