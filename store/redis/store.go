// Package redis provides a message store backed by Redis.
package redis

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/mediocregopher/radix/v4"
	"github.com/starshine-sys/sentinel/store"
)

var _ store.MessageStore = (*Store)(nil)

type Store struct {
	client radix.Client
	ttl    time.Duration
}

func New(url string, ttl time.Duration) (*Store, error) {
	client, err := (&radix.PoolConfig{}).New(context.Background(), "tcp", url)
	if err != nil {
		return nil, errors.Wrap(err, "creating radix client")
	}

	return &Store{client: client, ttl: ttl}, nil
}

func messageKey(id discord.MessageID) string {
	return "message:" + id.String()
}

func (s *Store) Message(ctx context.Context, id discord.MessageID) (m store.Message, err error) {
	var raw []byte

	err = s.client.Do(ctx, radix.Cmd(&raw, "GET", messageKey(id)))
	if err != nil {
		return m, err
	}

	if raw == nil {
		return m, store.ErrNotFound
	}

	return m, json.Unmarshal(raw, &m)
}

func (s *Store) SetMessage(ctx context.Context, m store.Message) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}

	return s.client.Do(ctx, radix.Cmd(nil, "SET", messageKey(m.ID), string(b), "EX", strconv.Itoa(int(s.ttl.Seconds()))))
}

func (s *Store) DeleteMessage(ctx context.Context, id discord.MessageID) error {
	return s.client.Do(ctx, radix.Cmd(nil, "DEL", messageKey(id)))
}

func (s *Store) Close() error {
	return s.client.Close()
}
