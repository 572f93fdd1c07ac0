// Package reply tracks each command's reply, so that re-running a command from an edited message edits the reply in place.
package reply

import (
	"sync"
	"time"

	"github.com/ReneKroon/ttlcache/v2"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/common"
	"github.com/starshine-sys/sentinel/platform"
	"github.com/starshine-sys/sentinel/responses"
)

// DefaultTTL is how long a reply is tracked after it was last sent or edited.
const DefaultTTL = 15 * time.Minute

// LastCommand is the most recent reply to a single triggering message.
type LastCommand struct {
	Command   string
	ChannelID discord.ChannelID
	Response  discord.MessageID
	// Edits is the number of times the reply has been replaced.
	Edits int
}

// Tracker holds at most one LastCommand per triggering message.
type Tracker struct {
	mu    sync.Mutex
	cache *ttlcache.Cache
}

// NewTracker returns a new Tracker. Records expire ttl after they were last set.
func NewTracker(ttl time.Duration) *Tracker {
	cache := ttlcache.NewCache()
	cache.SetTTL(ttl)
	cache.SkipTTLExtensionOnHit(true)

	return &Tracker{cache: cache}
}

// Get returns the record for the given triggering message.
func (t *Tracker) Get(source discord.MessageID) (LastCommand, bool) {
	v, err := t.cache.Get(source.String())
	if err != nil {
		return LastCommand{}, false
	}
	lc, ok := v.(LastCommand)
	return lc, ok
}

// Set records the reply to a triggering message.
// The first call for a message starts at zero edits; later calls replace the reply and increment the count.
func (t *Tracker) Set(source discord.MessageID, command string, response discord.Message) LastCommand {
	t.mu.Lock()
	defer t.mu.Unlock()

	lc, ok := t.Get(source)
	if ok {
		lc.Edits++
	}
	lc.Command = command
	lc.ChannelID = response.ChannelID
	lc.Response = response.ID

	err := t.cache.Set(source.String(), lc)
	if err != nil {
		common.Log.Errorf("Error caching reply to %v: %v", source, err)
	}
	return lc
}

// Close stops the tracker's expiry loop.
func (t *Tracker) Close() error {
	return t.cache.Close()
}

// Sender returns the send function for a command triggered by source.
// If source already has a reply, it's edited; otherwise a new message is sent in channelID.
func (t *Tracker) Sender(c platform.Client, channelID discord.ChannelID, source discord.MessageID, command string) responses.SendFunc {
	return func(m responses.Message) (*discord.Message, error) {
		if lc, ok := t.Get(source); ok {
			msg, err := c.EditMessage(lc.ChannelID, lc.Response, m.Content, m.Embeds...)
			if err == nil {
				t.Set(source, command, *msg)
				return msg, nil
			}
			common.Log.Debugf("Couldn't edit reply %v, sending a new message: %v", lc.Response, err)
		}

		msg, err := c.SendMessage(channelID, m.Content, m.Embeds...)
		if err != nil {
			return nil, err
		}
		t.Set(source, command, *msg)
		return msg, nil
	}
}
