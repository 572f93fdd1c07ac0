package events

import (
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/starshine-sys/sentinel/common"
	"github.com/starshine-sys/sentinel/events/handler"
	"github.com/starshine-sys/sentinel/responses"
)

// guilds joined less than this long ago are logged as new
const newGuildThreshold = time.Minute

func (bot *Bot) guildCreate(ev *gateway.GuildCreateEvent) (*handler.Response, error) {
	bot.namesMu.Lock()
	bot.names[ev.ID] = ev.Name
	bot.namesMu.Unlock()

	ctx, cancel := eventContext()
	defer cancel()

	// creates the guild's config if it doesn't exist yet
	_, err := bot.Configs.Fetch(ctx, ev.ID, false)
	if err != nil {
		return nil, errors.Wrap(err, "fetching guild config")
	}

	if time.Since(ev.Joined.Time()) > newGuildThreshold {
		return nil, nil
	}

	common.Log.Infof("Joined guild %v (%v)", ev.Name, ev.ID)

	if !bot.Config.GuildLogsChannel.IsValid() {
		return nil, nil
	}

	return &handler.Response{
		ChannelID: bot.Config.GuildLogsChannel,
		Message:   responses.GuildCreateLog(ev.Guild, uint64(ev.MemberCount)),
	}, nil
}

func (bot *Bot) guildDelete(ev *gateway.GuildDeleteEvent) (*handler.Response, error) {
	// outage, not a removal
	if ev.Unavailable {
		return nil, nil
	}

	bot.namesMu.Lock()
	name := bot.names[ev.ID]
	delete(bot.names, ev.ID)
	bot.namesMu.Unlock()

	bot.Configs.Evict(ev.ID)

	common.Log.Infof("Left guild %v (%v)", name, ev.ID)

	if !bot.Config.GuildLogsChannel.IsValid() {
		return nil, nil
	}

	return &handler.Response{
		ChannelID: bot.Config.GuildLogsChannel,
		Message:   responses.GuildRemoveLog(ev.ID, name),
	}, nil
}
