package guildconfig

import (
	"context"
	"sync"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/common"
	"github.com/starshine-sys/sentinel/platform"
)

// Backend is the persistent store behind a Store.
type Backend interface {
	// GuildConfig returns the stored config, or ErrNotFound.
	GuildConfig(ctx context.Context, guildID discord.GuildID) (Config, error)
	// CreateGuildConfig inserts a default row. It is a no-op if a row already exists.
	CreateGuildConfig(ctx context.Context, guildID discord.GuildID) (created bool, err error)
	// UpdateGuildConfig writes the given columns.
	UpdateGuildConfig(ctx context.Context, guildID discord.GuildID, cols Columns) error
}

// TextChannelTypes are the channel types that can be bound to a config channel.
var TextChannelTypes = []discord.ChannelType{discord.GuildText, discord.GuildNews}

// Store is a cached guild config store.
// Fetch and Edit for the same guild are serialised; different guilds never contend.
type Store struct {
	backend       Backend
	guilds        platform.Guilds
	defaultPrefix string

	locks *common.KeyedMutex[discord.GuildID]

	mu    sync.RWMutex
	cache map[discord.GuildID]Config
}

// NewStore returns a new Store. guilds is used to validate role and channel references on edit.
func NewStore(backend Backend, guilds platform.Guilds, defaultPrefix string) *Store {
	return &Store{
		backend:       backend,
		guilds:        guilds,
		defaultPrefix: defaultPrefix,
		locks:         common.NewKeyedMutex[discord.GuildID](),
		cache:         make(map[discord.GuildID]Config),
	}
}

// DefaultPrefix returns the process-wide default prefix.
func (s *Store) DefaultPrefix() string { return s.defaultPrefix }

// Prefix returns the effective prefix for the config.
func (s *Store) Prefix(c Config) string {
	if c.Prefix != "" {
		return c.Prefix
	}
	return s.defaultPrefix
}

// Fetch returns the guild's config, creating a default row if none exists.
// Unless force is set, a cached config is returned without hitting the backend.
func (s *Store) Fetch(ctx context.Context, guildID discord.GuildID, force bool) (Config, error) {
	unlock := s.locks.Lock(guildID)
	defer unlock()

	c, err := s.fetch(ctx, guildID, force)
	if err != nil {
		return c, err
	}
	return c.Clone(), nil
}

// Evict drops the guild's config from the cache.
func (s *Store) Evict(guildID discord.GuildID) {
	s.mu.Lock()
	delete(s.cache, guildID)
	s.mu.Unlock()
}

func (s *Store) fetch(ctx context.Context, guildID discord.GuildID, force bool) (Config, error) {
	if !force {
		s.mu.RLock()
		c, ok := s.cache[guildID]
		s.mu.RUnlock()
		if ok {
			return c, nil
		}
	}

	c, err := s.backend.GuildConfig(ctx, guildID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return c, errors.Wrap(err, "fetching guild config")
		}

		_, err = s.backend.CreateGuildConfig(ctx, guildID)
		if err != nil {
			return c, errors.Wrap(err, "creating guild config")
		}
		c = Config{GuildID: guildID}
	}

	s.mu.Lock()
	s.cache[guildID] = c
	s.mu.Unlock()

	return c, nil
}

// Edit applies the edit to the guild's config and returns the updated config.
// If fillNull is set, every field not set in the edit is cleared.
// Role and channel references are checked against the guild; an unknown reference returns an *InvalidReferenceError and nothing is written.
func (s *Store) Edit(ctx context.Context, guildID discord.GuildID, e Edit, fillNull bool) (Config, error) {
	unlock := s.locks.Lock(guildID)
	defer unlock()

	current, err := s.fetch(ctx, guildID, false)
	if err != nil {
		return current, err
	}

	next := current.Clone()
	cols := Columns{}
	refs := &references{guilds: s.guilds, guildID: guildID}

	if e.Prefix.Set || fillNull {
		prefix := e.Prefix.Value
		if prefix == s.defaultPrefix {
			prefix = ""
		}
		next.Prefix = prefix
		cols[ColumnPrefix] = nullString(prefix)
	}

	for _, f := range []struct {
		v    Value[[]discord.RoleID]
		dst  *[]discord.RoleID
		col  Column
		name string
	}{
		{e.ModRoles, &next.ModRoles, ColumnModRoles, "modRoles"},
		{e.AdminRoles, &next.AdminRoles, ColumnAdminRoles, "adminRoles"},
	} {
		if !f.v.Set && !fillNull {
			continue
		}

		err = refs.checkRoles(f.name, f.v.Value)
		if err != nil {
			return current.Clone(), err
		}

		raw, err := EncodeRoles(f.v.Value)
		if err != nil {
			return current.Clone(), err
		}
		cols[f.col] = raw
		if len(f.v.Value) == 0 {
			*f.dst = nil
		} else {
			*f.dst = append([]discord.RoleID(nil), f.v.Value...)
		}
	}

	for _, f := range []struct {
		v    Value[discord.ChannelID]
		dst  *discord.ChannelID
		col  Column
		name string
	}{
		{e.MemberJoinsChannel, &next.MemberJoinsChannel, ColumnMemberJoinsChannel, "memberJoinsChannel"},
		{e.MemberLeavesChannel, &next.MemberLeavesChannel, ColumnMemberLeavesChannel, "memberLeavesChannel"},
		{e.LogsChannel, &next.LogsChannel, ColumnLogsChannel, "logsChannel"},
	} {
		if !f.v.Set && !fillNull {
			continue
		}

		err = refs.checkChannel(f.name, f.v.Value)
		if err != nil {
			return current.Clone(), err
		}

		*f.dst = f.v.Value
		cols[f.col] = nullChannel(f.v.Value)
	}

	if e.AutoMod.Set || fillNull {
		next.AutoMod = e.AutoMod.Value
		cols[ColumnAutoMod] = boolInt(e.AutoMod.Value)
	}

	if len(cols) == 0 {
		return current.Clone(), nil
	}

	err = s.backend.UpdateGuildConfig(ctx, guildID, cols)
	if err != nil {
		return current.Clone(), errors.Wrap(err, "updating guild config")
	}

	s.mu.Lock()
	s.cache[guildID] = next
	s.mu.Unlock()

	return next.Clone(), nil
}

// references lazily loads a guild's roles and channels for validation.
type references struct {
	guilds  platform.Guilds
	guildID discord.GuildID

	roles    []discord.Role
	channels []discord.Channel
}

func (r *references) checkRoles(field string, ids []discord.RoleID) error {
	if len(ids) == 0 {
		return nil
	}

	if r.roles == nil {
		roles, err := r.guilds.Roles(r.guildID)
		if err != nil {
			return errors.Wrap(err, "fetching guild roles")
		}
		r.roles = roles
	}

outer:
	for _, id := range ids {
		for _, role := range r.roles {
			if role.ID == id {
				continue outer
			}
		}
		return &InvalidReferenceError{Field: field, Expected: "a list of roles in this server"}
	}
	return nil
}

func (r *references) checkChannel(field string, id discord.ChannelID) error {
	if !id.IsValid() {
		return nil
	}

	if r.channels == nil {
		chs, err := r.guilds.Channels(r.guildID)
		if err != nil {
			return errors.Wrap(err, "fetching guild channels")
		}
		r.channels = chs
	}

	for _, ch := range r.channels {
		if ch.ID == id && common.Contains(TextChannelTypes, ch.Type) {
			return nil
		}
	}
	return &InvalidReferenceError{Field: field, Expected: "a text channel in this server"}
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullChannel(id discord.ChannelID) *int64 {
	if !id.IsValid() {
		return nil
	}
	i := int64(id)
	return &i
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
