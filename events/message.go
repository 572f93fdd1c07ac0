package events

import (
	"context"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/starshine-sys/sentinel/common"
	"github.com/starshine-sys/sentinel/events/handler"
	"github.com/starshine-sys/sentinel/responses"
	"github.com/starshine-sys/sentinel/router"
	"github.com/starshine-sys/sentinel/store"
)

func (bot *Bot) messageCreate(ev *gateway.MessageCreateEvent) (*handler.Response, error) {
	ctx, cancel := eventContext()
	defer cancel()

	if ev.GuildID.IsValid() {
		err := bot.Messages.SetMessage(ctx, store.FromMessage(ev.Message))
		if err != nil {
			common.Log.Errorf("Error storing message %v: %v", ev.ID, err)
		}
	}

	// commands bound their own waits, setup can take several minutes
	bot.Router.Dispatch(context.Background(), &router.Message{Message: ev.Message, Member: ev.Member})
	return nil, nil
}

// messageUpdate re-runs commands in edited messages, and logs the edit.
func (bot *Bot) messageUpdate(ev *gateway.MessageUpdateEvent) (*handler.Response, error) {
	// embed-only updates don't have an author
	if !ev.Author.ID.IsValid() {
		return nil, nil
	}

	ctx, cancel := eventContext()
	defer cancel()

	var (
		before store.Message
		cached = true
	)
	if ev.GuildID.IsValid() {
		var err error
		before, err = bot.Messages.Message(ctx, ev.ID)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return nil, errors.Wrap(err, "getting stored message")
			}
			cached = false
		}

		if cached && before.Content == ev.Content {
			return nil, nil
		}

		err = bot.Messages.SetMessage(ctx, store.FromMessage(ev.Message))
		if err != nil {
			common.Log.Errorf("Error storing message %v: %v", ev.ID, err)
		}
	}

	bot.Router.Dispatch(context.Background(), &router.Message{Message: ev.Message, Member: ev.Member, Edited: true})

	if !ev.GuildID.IsValid() || !cached || ev.Author.Bot {
		return nil, nil
	}

	cfg, err := bot.Configs.Fetch(ctx, ev.GuildID, false)
	if err != nil {
		return nil, errors.Wrap(err, "fetching guild config")
	}
	if !bot.canLog(cfg.LogsChannel) {
		return nil, nil
	}

	author := ev.Author
	return &handler.Response{
		GuildID:   ev.GuildID,
		ChannelID: cfg.LogsChannel,
		Message: responses.MessageUpdateLog(responses.LoggedMessage{
			ID:        ev.ID,
			ChannelID: ev.ChannelID,
			GuildID:   ev.GuildID,
			Author:    &author,
			Content:   ev.Content,
		}, before.Content),
	}, nil
}

func (bot *Bot) messageDelete(ev *gateway.MessageDeleteEvent) (*handler.Response, error) {
	if !ev.GuildID.IsValid() {
		return nil, nil
	}

	// deleted by automod
	if bot.Router.Deleted.Take(ev.ID) {
		return nil, nil
	}

	ctx, cancel := eventContext()
	defer cancel()

	logged := responses.LoggedMessage{
		ID:        ev.ID,
		ChannelID: ev.ChannelID,
		GuildID:   ev.GuildID,
	}

	m, err := bot.Messages.Message(ctx, ev.ID)
	if err == nil {
		if m.Bot {
			return nil, nil
		}

		author := m.Author()
		logged.Author = &author
		logged.Content = m.Content

		err = bot.Messages.DeleteMessage(ctx, ev.ID)
		if err != nil {
			common.Log.Errorf("Error deleting stored message %v: %v", ev.ID, err)
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, errors.Wrap(err, "getting stored message")
	}

	cfg, err := bot.Configs.Fetch(ctx, ev.GuildID, false)
	if err != nil {
		return nil, errors.Wrap(err, "fetching guild config")
	}
	if !bot.canLog(cfg.LogsChannel) {
		return nil, nil
	}

	return &handler.Response{
		GuildID:   ev.GuildID,
		ChannelID: cfg.LogsChannel,
		Message:   responses.MessageDeleteLog(logged),
	}, nil
}
