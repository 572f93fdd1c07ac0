package guildconfig_test

import (
	"context"
	"testing"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/guildconfig"
	"github.com/starshine-sys/sentinel/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	guildID   discord.GuildID   = 100
	modRole   discord.RoleID    = 201
	adminRole discord.RoleID    = 202
	textCh    discord.ChannelID = 301
	voiceCh   discord.ChannelID = 302
)

func newStore(t *testing.T) (*guildconfig.Store, *testutil.Backend) {
	t.Helper()

	c := testutil.NewClient(discord.User{ID: 1, Bot: true})
	c.AddGuild(discord.Guild{
		ID: guildID,
		Roles: []discord.Role{
			{ID: discord.RoleID(guildID), Name: "@everyone"},
			{ID: modRole, Name: "Mods"},
			{ID: adminRole, Name: "Admins"},
		},
	},
		discord.Channel{ID: textCh, Type: discord.GuildText, Name: "logs"},
		discord.Channel{ID: voiceCh, Type: discord.GuildVoice, Name: "General"},
	)

	b := testutil.NewBackend()
	return guildconfig.NewStore(b, c, "!"), b
}

func TestFetchCreatesDefaultRow(t *testing.T) {
	s, b := newStore(t)
	ctx := context.Background()

	for _, id := range []discord.GuildID{guildID, 101, 102} {
		c, err := s.Fetch(ctx, id, false)
		require.NoError(t, err)

		assert.Equal(t, guildconfig.Config{GuildID: id}, c)
		assert.Contains(t, b.Rows, id)
	}
	assert.Equal(t, 3, b.Creates)

	_, err := s.Fetch(ctx, guildID, true)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Creates, "an existing row must not be recreated")
}

func TestFetchCache(t *testing.T) {
	s, b := newStore(t)
	ctx := context.Background()

	_, err := s.Fetch(ctx, guildID, false)
	require.NoError(t, err)
	reads := b.Reads

	c, err := s.Edit(ctx, guildID, guildconfig.Edit{
		Prefix:   guildconfig.Some("?"),
		ModRoles: guildconfig.Some([]discord.RoleID{modRole}),
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "?", c.Prefix)

	c, err = s.Fetch(ctx, guildID, false)
	require.NoError(t, err)
	assert.Equal(t, reads, b.Reads, "cached fetch must not read the backend")
	assert.Equal(t, "?", c.Prefix)
	assert.Equal(t, []discord.RoleID{modRole}, c.ModRoles)

	c, err = s.Fetch(ctx, guildID, true)
	require.NoError(t, err)
	assert.Equal(t, reads+1, b.Reads, "forced fetch must read the backend")
	assert.Equal(t, "?", c.Prefix)
	assert.Equal(t, []discord.RoleID{modRole}, c.ModRoles)
}

func TestFetchReturnsCopy(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	_, err := s.Edit(ctx, guildID, guildconfig.Edit{ModRoles: guildconfig.Some([]discord.RoleID{modRole})}, false)
	require.NoError(t, err)

	c, err := s.Fetch(ctx, guildID, false)
	require.NoError(t, err)
	c.ModRoles[0] = 999

	c, err = s.Fetch(ctx, guildID, false)
	require.NoError(t, err)
	assert.Equal(t, []discord.RoleID{modRole}, c.ModRoles)
}

func TestEdit(t *testing.T) {
	ctx := context.Background()

	t.Run("default prefix is stored as null", func(t *testing.T) {
		s, b := newStore(t)

		c, err := s.Edit(ctx, guildID, guildconfig.Edit{Prefix: guildconfig.Some("!")}, false)
		require.NoError(t, err)
		assert.Empty(t, c.Prefix)
		assert.Equal(t, "!", s.Prefix(c))

		require.Len(t, b.Updates, 1)
		assert.Nil(t, b.Updates[0][guildconfig.ColumnPrefix])
	})

	t.Run("only set fields are written", func(t *testing.T) {
		s, b := newStore(t)

		_, err := s.Edit(ctx, guildID, guildconfig.Edit{LogsChannel: guildconfig.Some(textCh)}, false)
		require.NoError(t, err)

		require.Len(t, b.Updates, 1)
		assert.Len(t, b.Updates[0], 1)
		assert.Equal(t, int64(textCh), *b.Updates[0][guildconfig.ColumnLogsChannel].(*int64))
	})

	t.Run("fill null clears untouched fields", func(t *testing.T) {
		s, b := newStore(t)

		_, err := s.Edit(ctx, guildID, guildconfig.Edit{
			Prefix:     guildconfig.Some("?"),
			AdminRoles: guildconfig.Some([]discord.RoleID{adminRole}),
		}, false)
		require.NoError(t, err)

		c, err := s.Edit(ctx, guildID, guildconfig.Edit{AutoMod: guildconfig.Some(true)}, true)
		require.NoError(t, err)
		assert.Equal(t, guildconfig.Config{GuildID: guildID, AutoMod: true}, c)

		require.Len(t, b.Updates, 2)
		assert.Len(t, b.Updates[1], 7)
		assert.Nil(t, b.Updates[1][guildconfig.ColumnPrefix])
		assert.Nil(t, b.Updates[1][guildconfig.ColumnAdminRoles])
		assert.Equal(t, 1, b.Updates[1][guildconfig.ColumnAutoMod])
	})

	t.Run("clearing a field", func(t *testing.T) {
		s, _ := newStore(t)

		_, err := s.Edit(ctx, guildID, guildconfig.Edit{ModRoles: guildconfig.Some([]discord.RoleID{modRole})}, false)
		require.NoError(t, err)

		c, err := s.Edit(ctx, guildID, guildconfig.Edit{ModRoles: guildconfig.Clear[[]discord.RoleID]()}, false)
		require.NoError(t, err)
		assert.Nil(t, c.ModRoles)
	})

	for _, tc := range []struct {
		name  string
		edit  guildconfig.Edit
		field string
	}{
		{"unknown role", guildconfig.Edit{ModRoles: guildconfig.Some([]discord.RoleID{modRole, 999})}, "modRoles"},
		{"unknown channel", guildconfig.Edit{MemberJoinsChannel: guildconfig.Some[discord.ChannelID](999)}, "memberJoinsChannel"},
		{"voice channel", guildconfig.Edit{LogsChannel: guildconfig.Some(voiceCh)}, "logsChannel"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s, b := newStore(t)

			_, err := s.Edit(ctx, guildID, tc.edit, false)
			require.Error(t, err)

			var refErr *guildconfig.InvalidReferenceError
			require.True(t, errors.As(err, &refErr))
			assert.Equal(t, tc.field, refErr.Field)
			assert.Empty(t, b.Updates)

			c, err := s.Fetch(ctx, guildID, false)
			require.NoError(t, err)
			assert.Equal(t, guildconfig.Config{GuildID: guildID}, c)
		})
	}
}

func TestRoleRoundTrip(t *testing.T) {
	for _, roles := range [][]discord.RoleID{
		{modRole},
		{adminRole, modRole, 123456789012345678},
		{987654321098765432, 1},
	} {
		raw, err := guildconfig.EncodeRoles(roles)
		require.NoError(t, err)
		require.NotNil(t, raw)

		out, err := guildconfig.DecodeRoles(raw)
		require.NoError(t, err)
		assert.Equal(t, roles, out)
	}

	raw, err := guildconfig.EncodeRoles(nil)
	require.NoError(t, err)
	assert.Nil(t, raw)

	out, err := guildconfig.DecodeRoles(nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestConfigRoles(t *testing.T) {
	c := &guildconfig.Config{ModRoles: []discord.RoleID{modRole}, AdminRoles: []discord.RoleID{adminRole}}

	assert.True(t, c.IsMod([]discord.RoleID{1, modRole}))
	assert.False(t, c.IsMod([]discord.RoleID{adminRole}))
	assert.True(t, c.IsAdmin([]discord.RoleID{adminRole}))

	var nilConfig *guildconfig.Config
	assert.False(t, nilConfig.IsMod([]discord.RoleID{modRole}))
}
