// Package memory provides an in-memory message store.
package memory

import (
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/ReneKroon/ttlcache/v2"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/store"
)

var _ store.MessageStore = (*Store)(nil)

type Store struct {
	messages *ttlcache.Cache
}

func New(ttl time.Duration) *Store {
	c := ttlcache.NewCache()
	c.SetTTL(ttl)
	c.SkipTTLExtensionOnHit(true)

	return &Store{messages: c}
}

func (s *Store) Message(_ context.Context, id discord.MessageID) (store.Message, error) {
	v, err := s.messages.Get(id.String())
	if err != nil {
		if errors.Is(err, ttlcache.ErrNotFound) {
			return store.Message{}, store.ErrNotFound
		}
		return store.Message{}, err
	}

	m, ok := v.(store.Message)
	if !ok {
		return store.Message{}, store.ErrNotFound
	}
	return m, nil
}

func (s *Store) SetMessage(_ context.Context, m store.Message) error {
	return s.messages.Set(m.ID.String(), m)
}

func (s *Store) DeleteMessage(_ context.Context, id discord.MessageID) error {
	err := s.messages.Remove(id.String())
	if errors.Is(err, ttlcache.ErrNotFound) {
		return nil
	}
	return err
}

// Close stops the cache's expiry loop.
func (s *Store) Close() error {
	return s.messages.Close()
}
