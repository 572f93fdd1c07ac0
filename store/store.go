// Package store defines a store for recently seen messages.
// The gateway doesn't include a message's content in update and delete events, so the logs need a copy of it.
package store

import (
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
)

const ErrNotFound = errors.Sentinel("value not found in store")

// MessageTTL is how long messages are kept.
const MessageTTL = 24 * time.Hour

// Message is a stored message.
type Message struct {
	ID        discord.MessageID `json:"id"`
	ChannelID discord.ChannelID `json:"channel_id"`
	GuildID   discord.GuildID   `json:"guild_id"`

	UserID        discord.UserID `json:"user_id"`
	Username      string         `json:"username"`
	Discriminator string         `json:"discriminator"`
	Avatar        discord.Hash   `json:"avatar"`
	Bot           bool           `json:"bot"`

	Content string `json:"content"`
}

// FromMessage converts a gateway message.
func FromMessage(m discord.Message) Message {
	return Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		GuildID:   m.GuildID,
		UserID:        m.Author.ID,
		Username:      m.Author.Username,
		Discriminator: m.Author.Discriminator,
		Avatar:        m.Author.Avatar,
		Bot:           m.Author.Bot,
		Content:       m.Content,
	}
}

// Author returns the message author.
func (m Message) Author() discord.User {
	return discord.User{
		ID:            m.UserID,
		Username:      m.Username,
		Discriminator: m.Discriminator,
		Avatar:        m.Avatar,
		Bot:           m.Bot,
	}
}

type MessageStore interface {
	// Message returns ErrNotFound if the message isn't stored, or has expired.
	Message(ctx context.Context, id discord.MessageID) (Message, error)
	SetMessage(ctx context.Context, m Message) error
	DeleteMessage(ctx context.Context, id discord.MessageID) error
}
