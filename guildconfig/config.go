// Package guildconfig stores per-guild settings behind a write-through cache.
package guildconfig

import (
	"encoding/json"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/common"
)

// Config is a single guild's settings.
// Zero values mean "not set": an empty Prefix uses the default prefix, and nil role lists or invalid channel IDs are disabled.
type Config struct {
	GuildID discord.GuildID

	Prefix     string
	ModRoles   []discord.RoleID
	AdminRoles []discord.RoleID

	MemberJoinsChannel  discord.ChannelID
	MemberLeavesChannel discord.ChannelID
	LogsChannel         discord.ChannelID

	AutoMod bool
}

// Clone returns a deep copy of the config.
func (c Config) Clone() Config {
	if c.ModRoles != nil {
		c.ModRoles = append([]discord.RoleID(nil), c.ModRoles...)
	}
	if c.AdminRoles != nil {
		c.AdminRoles = append([]discord.RoleID(nil), c.AdminRoles...)
	}
	return c
}

// IsMod returns true if any of the given roles is a moderator role.
func (c *Config) IsMod(roles []discord.RoleID) bool {
	return c != nil && common.ContainsAny(c.ModRoles, roles...)
}

// IsAdmin returns true if any of the given roles is an admin role.
func (c *Config) IsAdmin(roles []discord.RoleID) bool {
	return c != nil && common.ContainsAny(c.AdminRoles, roles...)
}

// EncodeRoles encodes a role list for storage. An empty list is stored as NULL (nil).
func EncodeRoles(roles []discord.RoleID) (*string, error) {
	if len(roles) == 0 {
		return nil, nil
	}

	b, err := json.Marshal(roles)
	if err != nil {
		return nil, errors.Wrap(err, "encoding role list")
	}
	s := string(b)
	return &s, nil
}

// DecodeRoles decodes a stored role list. NULL decodes to a nil slice.
func DecodeRoles(raw *string) ([]discord.RoleID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	var roles []discord.RoleID
	err := json.Unmarshal([]byte(*raw), &roles)
	if err != nil {
		return nil, errors.Wrap(err, "decoding role list")
	}
	return roles, nil
}
