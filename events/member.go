package events

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/starshine-sys/sentinel/common"
	"github.com/starshine-sys/sentinel/events/handler"
	"github.com/starshine-sys/sentinel/responses"
)

func (bot *Bot) guildMemberAdd(ev *gateway.GuildMemberAddEvent) (*handler.Response, error) {
	ctx, cancel := eventContext()
	defer cancel()

	cfg, err := bot.Configs.Fetch(ctx, ev.GuildID, false)
	if err != nil {
		return nil, errors.Wrap(err, "fetching guild config")
	}
	if !bot.canLog(cfg.MemberJoinsChannel) {
		return nil, nil
	}

	var count uint64
	g, err := bot.Client.GuildWithCount(ev.GuildID)
	if err != nil {
		common.Log.Debugf("Error getting member count for %v: %v", ev.GuildID, err)
	} else {
		count = g.ApproximateMembers
	}

	return &handler.Response{
		GuildID:   ev.GuildID,
		ChannelID: cfg.MemberJoinsChannel,
		Message:   responses.MemberJoined(ev.Member, count),
	}, nil
}

func (bot *Bot) guildMemberRemove(ev *gateway.GuildMemberRemoveEvent) (*handler.Response, error) {
	if ev.User.ID == bot.Router.Bot {
		return nil, nil
	}

	ctx, cancel := eventContext()
	defer cancel()

	cfg, err := bot.Configs.Fetch(ctx, ev.GuildID, false)
	if err != nil {
		return nil, errors.Wrap(err, "fetching guild config")
	}
	if !bot.canLog(cfg.MemberLeavesChannel) {
		return nil, nil
	}

	return &handler.Response{
		GuildID:   ev.GuildID,
		ChannelID: cfg.MemberLeavesChannel,
		Message:   responses.MemberLeft(ev.User),
	}, nil
}
