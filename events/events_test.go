package events_test

import (
	"sync"
	"testing"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/starshine-sys/sentinel/bot"
	"github.com/starshine-sys/sentinel/db"
	"github.com/starshine-sys/sentinel/events"
	"github.com/starshine-sys/sentinel/guildconfig"
	"github.com/starshine-sys/sentinel/internal/testutil"
	"github.com/starshine-sys/sentinel/reply"
	"github.com/starshine-sys/sentinel/responses"
	"github.com/starshine-sys/sentinel/router"
	"github.com/starshine-sys/sentinel/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	botID      discord.UserID    = 1
	authorID   discord.UserID    = 500
	guildID    discord.GuildID   = 100
	channelID  discord.ChannelID = 300
	logsCh     discord.ChannelID = 301
	joinsCh    discord.ChannelID = 302
	guildLogCh discord.ChannelID = 900
)

type reporter struct {
	mu   sync.Mutex
	errs []error
}

func (r *reporter) Report(_ db.ErrorContext, err error) string {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.mu.Unlock()
	return ""
}

type harness struct {
	bot     *events.Bot
	client  *testutil.Client
	backend *testutil.Backend
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	c := testutil.NewClient(discord.User{ID: botID, Bot: true})
	c.AddGuild(discord.Guild{
		ID:    guildID,
		Name:  "Test Server",
		Roles: []discord.Role{{ID: discord.RoleID(guildID), Name: "@everyone", Permissions: discord.PermissionSendMessages}},
	},
		discord.Channel{ID: channelID, Type: discord.GuildText, Name: "general"},
		discord.Channel{ID: logsCh, Type: discord.GuildText, Name: "logs"},
		discord.Channel{ID: joinsCh, Type: discord.GuildText, Name: "joins"},
	)
	c.AddMember(guildID, discord.Member{User: discord.User{ID: botID, Bot: true}})
	c.AddMember(guildID, discord.Member{User: discord.User{ID: authorID, Username: "someone"}})

	b := testutil.NewBackend()
	b.Rows[guildID] = guildconfig.Config{GuildID: guildID, LogsChannel: logsCh, MemberJoinsChannel: joinsCh}

	configs := guildconfig.NewStore(b, c, "!")
	registry, err := router.NewRegistry(&router.Command{
		Name:      "say",
		DMAllowed: true,
		Run: func(ctx *router.Context) error {
			return ctx.Reply(responses.Text(ctx.Args.Text()))
		},
	})
	require.NoError(t, err)

	replies := reply.NewTracker(reply.DefaultTTL)
	messages := memory.New(time.Hour)
	t.Cleanup(func() {
		_ = replies.Close()
		_ = messages.Close()
	})

	r := router.New(c, configs, registry, replies, &reporter{})
	r.Bot = botID

	root := &bot.Bot{
		Config:   bot.Config{GuildLogsChannel: guildLogCh},
		Client:   c,
		Router:   r,
		Configs:  configs,
		Replies:  replies,
		Messages: messages,
	}

	ev := events.New(root)
	ev.Handler.Sync = true

	return &harness{bot: ev, client: c, backend: b}
}

func message(id discord.MessageID, content string) discord.Message {
	return discord.Message{
		ID:        id,
		ChannelID: channelID,
		GuildID:   guildID,
		Author:    discord.User{ID: authorID, Username: "someone", Discriminator: "0001"},
		Content:   content,
	}
}

func titles(msgs []testutil.SentMessage, channelID discord.ChannelID) (out []string) {
	for _, m := range msgs {
		if m.ChannelID != channelID {
			continue
		}
		for _, e := range m.Embeds {
			out = append(out, e.Title)
		}
	}
	return out
}

func TestMessageDelete(t *testing.T) {
	h := newHarness(t)

	h.bot.Handler.Call(&gateway.MessageCreateEvent{Message: message(700, "hello")})
	h.bot.Handler.Call(&gateway.MessageDeleteEvent{ID: 700, ChannelID: channelID, GuildID: guildID})

	sent := h.client.Messages()
	require.Len(t, sent, 1)
	assert.Equal(t, logsCh, sent[0].ChannelID)
	require.Len(t, sent[0].Embeds, 1)
	assert.Equal(t, "Message deleted", sent[0].Embeds[0].Title)
	assert.Equal(t, "hello", sent[0].Embeds[0].Description)
	require.NotNil(t, sent[0].Embeds[0].Author)
	assert.Equal(t, "someone#0001", sent[0].Embeds[0].Author.Name)
}

func TestMessageDeleteSkipsAutomod(t *testing.T) {
	h := newHarness(t)

	h.bot.Handler.Call(&gateway.MessageCreateEvent{Message: message(700, "hello")})
	h.bot.Router.Deleted.Add(700)
	h.bot.Handler.Call(&gateway.MessageDeleteEvent{ID: 700, ChannelID: channelID, GuildID: guildID})

	assert.Empty(t, h.client.Messages())
	assert.False(t, h.bot.Router.Deleted.Exists(700))
}

func TestMessageDeleteNeedsPermissions(t *testing.T) {
	h := newHarness(t)
	h.client.SetPerms(logsCh, botID, discord.PermissionViewChannel)

	h.bot.Handler.Call(&gateway.MessageDeleteEvent{ID: 700, ChannelID: channelID, GuildID: guildID})
	assert.Empty(t, h.client.Messages())
}

func TestMessageUpdate(t *testing.T) {
	h := newHarness(t)

	h.bot.Handler.Call(&gateway.MessageCreateEvent{Message: message(700, "hello")})

	h.bot.Handler.Call(&gateway.MessageUpdateEvent{Message: message(700, "hello")})
	assert.Empty(t, h.client.Messages(), "unchanged content is ignored")

	h.bot.Handler.Call(&gateway.MessageUpdateEvent{Message: message(700, "hello world")})

	sent := h.client.Messages()
	require.Len(t, sent, 1)
	assert.Equal(t, logsCh, sent[0].ChannelID)
	require.Len(t, sent[0].Embeds, 1)
	e := sent[0].Embeds[0]
	assert.Equal(t, "Message edited", e.Title)
	assert.Equal(t, "hello", e.Fields[0].Value)
	assert.Equal(t, "hello world", e.Fields[1].Value)
}

func TestMessageUpdateRedispatches(t *testing.T) {
	h := newHarness(t)

	h.bot.Handler.Call(&gateway.MessageCreateEvent{Message: message(700, "!say one")})
	h.bot.Handler.Call(&gateway.MessageUpdateEvent{Message: message(700, "!say two")})

	var replies []testutil.SentMessage
	for _, m := range h.client.Messages() {
		if m.ChannelID == channelID {
			replies = append(replies, m)
		}
	}
	require.Len(t, replies, 1)
	assert.Equal(t, "one", replies[0].Content)

	require.Len(t, h.client.Edited, 1)
	assert.Equal(t, "two", h.client.Edited[0].Content)
	assert.Equal(t, replies[0].MessageID, h.client.Edited[0].MessageID)

	assert.Equal(t, []string{"Message edited"}, titles(h.client.Messages(), logsCh))
}

func TestGuildMember(t *testing.T) {
	h := newHarness(t)

	h.bot.Handler.Call(&gateway.GuildMemberAddEvent{
		Member:  discord.Member{User: discord.User{ID: 600, Username: "newbie"}},
		GuildID: guildID,
	})
	assert.Equal(t, []string{"Member joined"}, titles(h.client.Messages(), joinsCh))

	// no leaves channel
	h.bot.Handler.Call(&gateway.GuildMemberRemoveEvent{GuildID: guildID, User: discord.User{ID: 600}})
	assert.Len(t, h.client.Messages(), 1)
}

func TestGuildCreate(t *testing.T) {
	h := newHarness(t)

	h.bot.Handler.Call(&gateway.GuildCreateEvent{
		Guild:  discord.Guild{ID: 101, Name: "Old Server"},
		Joined: discord.NewTimestamp(time.Now().Add(-time.Hour)),
	})
	assert.Empty(t, h.client.Messages())
	assert.Contains(t, h.backend.Rows, discord.GuildID(101), "a config row is created for every guild")

	h.bot.Handler.Call(&gateway.GuildCreateEvent{
		Guild:       discord.Guild{ID: 102, Name: "New Server"},
		Joined:      discord.NewTimestamp(time.Now()),
		MemberCount: 20,
	})
	assert.Equal(t, []string{"Joined new server"}, titles(h.client.Messages(), guildLogCh))
}

func TestGuildDelete(t *testing.T) {
	h := newHarness(t)

	h.bot.Handler.Call(&gateway.GuildCreateEvent{
		Guild:  discord.Guild{ID: 101, Name: "Some Server"},
		Joined: discord.NewTimestamp(time.Now().Add(-time.Hour)),
	})

	h.bot.Handler.Call(&gateway.GuildDeleteEvent{ID: 101, Unavailable: true})
	assert.Empty(t, h.client.Messages())

	h.bot.Handler.Call(&gateway.GuildDeleteEvent{ID: 101})
	sent := h.client.Messages()
	require.Len(t, sent, 1)
	assert.Equal(t, guildLogCh, sent[0].ChannelID)
	assert.Equal(t, "Some Server", sent[0].Embeds[0].Fields[0].Value)
}
