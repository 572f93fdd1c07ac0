package router_test

import (
	"context"
	"sync"
	"testing"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/db"
	"github.com/starshine-sys/sentinel/guildconfig"
	"github.com/starshine-sys/sentinel/internal/testutil"
	"github.com/starshine-sys/sentinel/permissions"
	"github.com/starshine-sys/sentinel/reply"
	"github.com/starshine-sys/sentinel/responses"
	"github.com/starshine-sys/sentinel/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	botID     discord.UserID    = 1
	authorID  discord.UserID    = 500
	guildID   discord.GuildID   = 100
	channelID discord.ChannelID = 300
	botRole   discord.RoleID    = 10
	modRole   discord.RoleID    = 11
)

type reporter struct {
	mu   sync.Mutex
	errs []error
}

func (r *reporter) Report(_ db.ErrorContext, err error) string {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.mu.Unlock()
	return "test-code"
}

type harness struct {
	r        *router.Router
	client   *testutil.Client
	backend  *testutil.Backend
	reporter *reporter
}

func newHarness(t *testing.T, cmds ...*router.Command) *harness {
	t.Helper()

	c := testutil.NewClient(discord.User{ID: botID, Username: "Sentinel", Bot: true})
	c.AddGuild(discord.Guild{
		ID:      guildID,
		OwnerID: 2,
		Roles: []discord.Role{
			{ID: discord.RoleID(guildID), Name: "@everyone", Permissions: discord.PermissionViewChannel | discord.PermissionSendMessages},
			{ID: botRole, Name: "Sentinel", Position: 5, Permissions: discord.PermissionAdministrator},
			{ID: modRole, Name: "Mods", Position: 3},
		},
	}, discord.Channel{ID: channelID, Type: discord.GuildText, Name: "general"})
	c.AddMember(guildID, discord.Member{User: discord.User{ID: botID, Bot: true}, RoleIDs: []discord.RoleID{botRole}})
	c.AddMember(guildID, discord.Member{User: discord.User{ID: authorID, Username: "someone"}})

	b := testutil.NewBackend()
	reg, err := router.NewRegistry(cmds...)
	require.NoError(t, err)

	replies := reply.NewTracker(reply.DefaultTTL)
	t.Cleanup(func() { _ = replies.Close() })

	rep := &reporter{}
	r := router.New(c, guildconfig.NewStore(b, c, "!"), reg, replies, rep)
	r.Bot = botID

	return &harness{r: r, client: c, backend: b, reporter: rep}
}

func guildMessage(id discord.MessageID, content string) *router.Message {
	return &router.Message{Message: discord.Message{
		ID:        id,
		ChannelID: channelID,
		GuildID:   guildID,
		Author:    discord.User{ID: authorID, Username: "someone"},
		Content:   content,
	}}
}

type counter struct {
	mu sync.Mutex
	n  int
}

func (c *counter) inc() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *counter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func echo(calls *counter, perms permissions.Permission) *router.Command {
	return &router.Command{
		Name:        "say",
		Aliases:     []string{"repeat"},
		Permissions: perms,
		Run: func(ctx *router.Context) error {
			calls.inc()
			return ctx.Reply(responses.Text(ctx.Args.Text()))
		},
	}
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("allowed", func(t *testing.T) {
		calls := &counter{}
		h := newHarness(t, echo(calls, permissions.None()))

		h.r.Dispatch(ctx, guildMessage(700, "!say hello world"))

		assert.Equal(t, 1, calls.count())
		sent := h.client.Messages()
		require.Len(t, sent, 1)
		assert.Equal(t, "hello world", sent[0].Content)
	})

	t.Run("alias", func(t *testing.T) {
		calls := &counter{}
		h := newHarness(t, echo(calls, permissions.None()))

		h.r.Dispatch(ctx, guildMessage(700, "!REPEAT hi"))
		assert.Equal(t, 1, calls.count())
	})

	t.Run("no prefix", func(t *testing.T) {
		calls := &counter{}
		h := newHarness(t, echo(calls, permissions.None()))

		h.r.Dispatch(ctx, guildMessage(700, "say hi"))
		h.r.Dispatch(ctx, guildMessage(701, "!unknown hi"))

		assert.Zero(t, calls.count())
		assert.Empty(t, h.client.Messages())
	})

	t.Run("bots are ignored", func(t *testing.T) {
		calls := &counter{}
		h := newHarness(t, echo(calls, permissions.None()))

		m := guildMessage(700, "!say hi")
		m.Author.Bot = true
		h.r.Dispatch(ctx, m)

		assert.Zero(t, calls.count())
	})

	t.Run("denied", func(t *testing.T) {
		calls := &counter{}
		h := newHarness(t, echo(calls, permissions.Static(discord.PermissionBanMembers)))

		h.r.Dispatch(ctx, guildMessage(700, "!say hi"))

		assert.Zero(t, calls.count())
		sent := h.client.Messages()
		require.Len(t, sent, 1)
		assert.Equal(t, responses.NoPermission().Message, sent[0].Content)
	})

	t.Run("indeterminate", func(t *testing.T) {
		calls := &counter{}
		h := newHarness(t, echo(calls, permissions.Dynamic(func(permissions.Actor) permissions.Outcome {
			return permissions.Ignore()
		})))

		h.r.Dispatch(ctx, guildMessage(700, "!say hi"))

		assert.Zero(t, calls.count())
		assert.Empty(t, h.client.Messages())
	})

	t.Run("refused", func(t *testing.T) {
		calls := &counter{}
		h := newHarness(t, echo(calls, permissions.Dynamic(func(permissions.Actor) permissions.Outcome {
			return permissions.Refuse("Not today.")
		})))

		h.r.Dispatch(ctx, guildMessage(700, "!say hi"))

		assert.Zero(t, calls.count())
		sent := h.client.Messages()
		require.Len(t, sent, 1)
		assert.Equal(t, "Not today.", sent[0].Content)
	})

	t.Run("developer predicate", func(t *testing.T) {
		calls := &counter{}
		h := newHarness(t, echo(calls, permissions.Dynamic(func(a permissions.Actor) permissions.Outcome {
			if a.Developer {
				return permissions.Allow()
			}
			return permissions.Deny()
		})))
		h.r.Devs = []discord.UserID{authorID}

		h.r.Dispatch(ctx, guildMessage(700, "!say hi"))
		assert.Equal(t, 1, calls.count())
	})

	t.Run("direct messages", func(t *testing.T) {
		calls := &counter{}
		dmAllowed := echo(calls, permissions.None())
		dmAllowed.Name, dmAllowed.Aliases, dmAllowed.DMAllowed = "help", nil, true
		h := newHarness(t, echo(calls, permissions.None()), dmAllowed)

		m := guildMessage(700, "!say hi")
		m.GuildID = 0
		h.r.Dispatch(ctx, m)
		assert.Zero(t, calls.count())

		m = guildMessage(701, "!help me")
		m.GuildID = 0
		h.r.Dispatch(ctx, m)
		assert.Equal(t, 1, calls.count())
	})
}

func TestDispatchPrefix(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	h.r.Dispatch(ctx, guildMessage(700, "<@1>"))
	h.r.Dispatch(ctx, guildMessage(701, "<@!1>"))

	edited := guildMessage(702, "<@1>")
	edited.Edited = true
	h.r.Dispatch(ctx, edited)

	sent := h.client.Messages()
	require.Len(t, sent, 2)
	for _, m := range sent {
		assert.Equal(t, responses.Prefix("!").Content, m.Content)
	}

	h.backend.Rows[guildID] = guildconfig.Config{GuildID: guildID, Prefix: "s;"}
	_, err := h.r.Configs.Fetch(ctx, guildID, true)
	require.NoError(t, err)

	h.r.Dispatch(ctx, guildMessage(703, "<@1>"))
	sent = h.client.Messages()
	require.Len(t, sent, 3)
	assert.Equal(t, responses.Prefix("s;").Content, sent[2].Content)
}

func TestDispatchBotPermissions(t *testing.T) {
	ctx := context.Background()
	calls := &counter{}

	cmd := echo(calls, permissions.None())
	cmd.ClientPermissions = discord.PermissionEmbedLinks
	h := newHarness(t, cmd)
	h.client.SetPerms(channelID, botID, discord.PermissionViewChannel|discord.PermissionSendMessages)

	h.r.Dispatch(ctx, guildMessage(700, "!say hi"))

	assert.Zero(t, calls.count())
	sent := h.client.Messages()
	require.Len(t, sent, 1)
	assert.Equal(t, responses.ClientMissingPermissions(discord.PermissionEmbedLinks, 0).Content, sent[0].Content)
}

func TestDispatchEdit(t *testing.T) {
	ctx := context.Background()
	calls := &counter{}
	h := newHarness(t, echo(calls, permissions.None()))

	h.r.Dispatch(ctx, guildMessage(700, "!say one"))

	edited := guildMessage(700, "!say two")
	edited.Edited = true
	h.r.Dispatch(ctx, edited)

	assert.Equal(t, 2, calls.count())
	require.Len(t, h.client.Messages(), 1)
	require.Len(t, h.client.Edited, 1)
	assert.Equal(t, "two", h.client.Edited[0].Content)
	assert.Equal(t, h.client.Messages()[0].MessageID, h.client.Edited[0].MessageID)

	lc, ok := h.r.Replies.Get(700)
	require.True(t, ok)
	assert.Equal(t, 1, lc.Edits)
}

func TestDispatchErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("unexpected", func(t *testing.T) {
		h := newHarness(t, &router.Command{
			Name: "fail",
			Run:  func(*router.Context) error { return errors.New("something broke") },
		})

		h.r.Dispatch(ctx, guildMessage(700, "!fail"))

		require.Len(t, h.reporter.errs, 1)
		sent := h.client.Messages()
		require.Len(t, sent, 1)
		assert.Contains(t, sent[0].Content, "something broke")
		assert.Contains(t, sent[0].Content, "test-code")
	})

	t.Run("command error", func(t *testing.T) {
		h := newHarness(t, &router.Command{
			Name: "say",
			Run:  func(*router.Context) error { return responses.SayNoArgs() },
		})

		h.r.Dispatch(ctx, guildMessage(700, "!say"))

		assert.Empty(t, h.reporter.errs)
		sent := h.client.Messages()
		require.Len(t, sent, 1)
		assert.Equal(t, channelID, sent[0].ChannelID)
		assert.Equal(t, responses.SayNoArgs().Message, sent[0].Content)
	})

	t.Run("dm error", func(t *testing.T) {
		h := newHarness(t, &router.Command{
			Name: "say",
			Run:  func(*router.Context) error { return responses.SayNoArgs().DMError() },
		})

		h.r.Dispatch(ctx, guildMessage(700, "!say"))

		sent := h.client.Messages()
		require.Len(t, sent, 1)
		assert.Equal(t, discord.ChannelID(authorID), sent[0].ChannelID)
	})
}

func TestAutomod(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*harness, *counter) {
		calls := &counter{}
		h := newHarness(t, echo(calls, permissions.None()))
		h.backend.Rows[guildID] = guildconfig.Config{GuildID: guildID, AutoMod: true, ModRoles: []discord.RoleID{modRole}}
		return h, calls
	}

	t.Run("deletes invites", func(t *testing.T) {
		h, calls := setup(t)

		h.r.Dispatch(ctx, guildMessage(700, "!say join discord.gg/abcdef"))

		assert.Zero(t, calls.count())
		assert.Equal(t, []discord.MessageID{700}, h.client.Deleted)
		assert.True(t, h.r.Deleted.Exists(700))

		sent := h.client.Messages()
		require.Len(t, sent, 1)
		assert.Equal(t, responses.InvitesNotAllowed(discord.User{ID: authorID, Username: "someone"}).Content, sent[0].Content)
	})

	t.Run("mods are exempt", func(t *testing.T) {
		h, calls := setup(t)
		h.client.AddMember(guildID, discord.Member{User: discord.User{ID: authorID}, RoleIDs: []discord.RoleID{modRole}})

		h.r.Dispatch(ctx, guildMessage(700, "!say https://discord.gg/abcdef"))

		assert.Empty(t, h.client.Deleted)
		assert.Equal(t, 1, calls.count())
	})

	t.Run("needs manage messages", func(t *testing.T) {
		h, _ := setup(t)
		h.client.SetPerms(channelID, botID, discord.PermissionViewChannel|discord.PermissionSendMessages)

		h.r.Dispatch(ctx, guildMessage(700, "discord.gg/abcdef"))

		assert.Empty(t, h.client.Deleted)
		assert.Empty(t, h.client.Messages())
	})

	t.Run("disabled", func(t *testing.T) {
		h, _ := setup(t)
		h.backend.Rows[guildID] = guildconfig.Config{GuildID: guildID}

		h.r.Dispatch(ctx, guildMessage(700, "discord.gg/abcdef"))
		assert.Empty(t, h.client.Deleted)
	})
}

func TestRegistry(t *testing.T) {
	a := &router.Command{Name: "ban", Aliases: []string{"perma-yeet"}}
	b := &router.Command{Name: "kick", Aliases: []string{"yeet"}}

	r, err := router.NewRegistry(a, b)
	require.NoError(t, err)

	assert.Same(t, a, r.Resolve("ban"))
	assert.Same(t, a, r.Resolve("perma-yeet"))
	assert.Same(t, b, r.Resolve("yeet"))
	assert.Nil(t, r.Resolve("unknown"))

	_, err = router.NewRegistry(b, &router.Command{Name: "yeet"})
	assert.True(t, errors.Is(err, router.ErrDuplicateCommand))

	err = r.Reload(func() ([]*router.Command, error) { return []*router.Command{b}, nil })
	require.NoError(t, err)
	assert.Nil(t, r.Resolve("ban"))
	assert.Same(t, b, r.Resolve("kick"))

	err = r.Reload(func() ([]*router.Command, error) { return nil, errors.New("nope") })
	assert.Error(t, err)
	assert.Same(t, b, r.Resolve("kick"), "a failed reload must leave the registry unchanged")
}
