package testutil

import (
	"context"
	"sync"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/guildconfig"
)

var _ guildconfig.Backend = (*Backend)(nil)

// Backend is an in-memory guildconfig.Backend that counts its calls.
type Backend struct {
	mu   sync.Mutex
	Rows map[discord.GuildID]guildconfig.Config

	Reads   int
	Creates int
	Updates []guildconfig.Columns
}

// NewBackend returns an empty Backend.
func NewBackend() *Backend {
	return &Backend{Rows: map[discord.GuildID]guildconfig.Config{}}
}

// Writes returns the number of update calls.
func (b *Backend) Writes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.Updates)
}

func (b *Backend) GuildConfig(_ context.Context, id discord.GuildID) (guildconfig.Config, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.Reads++
	c, ok := b.Rows[id]
	if !ok {
		return guildconfig.Config{}, guildconfig.ErrNotFound
	}
	return c.Clone(), nil
}

func (b *Backend) CreateGuildConfig(_ context.Context, id discord.GuildID) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.Rows[id]; ok {
		return false, nil
	}
	b.Creates++
	b.Rows[id] = guildconfig.Config{GuildID: id}
	return true, nil
}

func (b *Backend) UpdateGuildConfig(_ context.Context, id discord.GuildID, cols guildconfig.Columns) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.Updates = append(b.Updates, cols)

	c := b.Rows[id]
	c.GuildID = id
	for col, v := range cols {
		switch col {
		case guildconfig.ColumnPrefix:
			c.Prefix = ""
			if s, ok := v.(*string); ok && s != nil {
				c.Prefix = *s
			}
		case guildconfig.ColumnModRoles, guildconfig.ColumnAdminRoles:
			s, _ := v.(*string)
			roles, err := guildconfig.DecodeRoles(s)
			if err != nil {
				return err
			}
			if col == guildconfig.ColumnModRoles {
				c.ModRoles = roles
			} else {
				c.AdminRoles = roles
			}
		case guildconfig.ColumnMemberJoinsChannel, guildconfig.ColumnMemberLeavesChannel, guildconfig.ColumnLogsChannel:
			var ch discord.ChannelID
			if i, ok := v.(*int64); ok && i != nil {
				ch = discord.ChannelID(*i)
			}
			switch col {
			case guildconfig.ColumnMemberJoinsChannel:
				c.MemberJoinsChannel = ch
			case guildconfig.ColumnMemberLeavesChannel:
				c.MemberLeavesChannel = ch
			default:
				c.LogsChannel = ch
			}
		case guildconfig.ColumnAutoMod:
			i, _ := v.(int)
			c.AutoMod = i != 0
		}
	}
	b.Rows[id] = c
	return nil
}
