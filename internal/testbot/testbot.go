// Package testbot builds a *bot.Bot around in-memory fakes, for command tests.
package testbot

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/bot"
	"github.com/starshine-sys/sentinel/db"
	"github.com/starshine-sys/sentinel/guildconfig"
	"github.com/starshine-sys/sentinel/internal/testutil"
	"github.com/starshine-sys/sentinel/reply"
	"github.com/starshine-sys/sentinel/router"
	"github.com/starshine-sys/sentinel/setup"
	"github.com/starshine-sys/sentinel/store/memory"
	"github.com/stretchr/testify/require"
)

// IDs of the test guild's users, roles and channels.
const (
	BotID   discord.UserID = 1
	OwnerID discord.UserID = 2
	// AuthorID is a member with no roles.
	AuthorID discord.UserID = 500
	// TargetID is a member with MemberRole.
	TargetID discord.UserID = 600
	// HighID is a member with HighRole, above the bot.
	HighID discord.UserID = 700
	// OutsiderID is a user who isn't a member of the guild.
	OutsiderID discord.UserID = 800
	DevID      discord.UserID = 900

	GuildID discord.GuildID = 100

	BotRole    discord.RoleID = 10
	ModRole    discord.RoleID = 11
	AdminRole  discord.RoleID = 12
	MemberRole discord.RoleID = 13
	HighRole   discord.RoleID = 14

	ChannelID      discord.ChannelID = 300
	LogsChannel    discord.ChannelID = 301
	SuggestChannel discord.ChannelID = 302
)

// Reporter records reported errors.
type Reporter struct {
	mu   sync.Mutex
	Errs []error
}

func (r *Reporter) Report(_ db.ErrorContext, err error) string {
	r.mu.Lock()
	r.Errs = append(r.Errs, err)
	r.mu.Unlock()
	return "test-code"
}

// Errors returns a copy of every reported error.
func (r *Reporter) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.Errs...)
}

// Harness is a bot with a single configured guild.
type Harness struct {
	Bot      *bot.Bot
	Client   *testutil.Client
	Backend  *testutil.Backend
	Reporter *Reporter

	nextID discord.MessageID
}

// New returns a harness. The guild's config has ModRole, AdminRole and LogsChannel set.
func New(t *testing.T) *Harness {
	t.Helper()

	c := testutil.NewClient(discord.User{ID: BotID, Username: "Sentinel", Discriminator: "0001", Bot: true})
	c.AddGuild(discord.Guild{
		ID:      GuildID,
		Name:    "Test Server",
		OwnerID: OwnerID,
		Roles: []discord.Role{
			{ID: discord.RoleID(GuildID), Name: "@everyone", Permissions: discord.PermissionViewChannel | discord.PermissionSendMessages},
			{ID: BotRole, Name: "Sentinel", Position: 5, Permissions: discord.PermissionAdministrator},
			{ID: ModRole, Name: "Mods", Position: 3},
			{ID: AdminRole, Name: "Admins", Position: 4},
			{ID: MemberRole, Name: "Members", Position: 1},
			{ID: HighRole, Name: "Owners", Position: 6},
		},
	},
		discord.Channel{ID: ChannelID, Type: discord.GuildText, Name: "general"},
		discord.Channel{ID: LogsChannel, Type: discord.GuildText, Name: "logs"},
		discord.Channel{ID: SuggestChannel, Type: discord.GuildText, Name: "suggestions"},
	)

	c.AddMember(GuildID, discord.Member{User: discord.User{ID: BotID, Username: "Sentinel", Discriminator: "0001", Bot: true}, RoleIDs: []discord.RoleID{BotRole}})
	c.AddMember(GuildID, discord.Member{User: discord.User{ID: OwnerID, Username: "owner", Discriminator: "0002"}})
	c.AddMember(GuildID, discord.Member{User: discord.User{ID: AuthorID, Username: "someone", Discriminator: "0500"}})
	c.AddMember(GuildID, discord.Member{User: discord.User{ID: TargetID, Username: "target", Discriminator: "0600"}, RoleIDs: []discord.RoleID{MemberRole}})
	c.AddMember(GuildID, discord.Member{User: discord.User{ID: HighID, Username: "high", Discriminator: "0700"}, RoleIDs: []discord.RoleID{HighRole}})
	c.UserData[OutsiderID] = discord.User{ID: OutsiderID, Username: "outsider", Discriminator: "0800"}

	b := testutil.NewBackend()
	b.Rows[GuildID] = guildconfig.Config{
		GuildID:     GuildID,
		ModRoles:    []discord.RoleID{ModRole},
		AdminRoles:  []discord.RoleID{AdminRole},
		LogsChannel: LogsChannel,
	}

	configs := guildconfig.NewStore(b, c, "!")

	registry, err := router.NewRegistry()
	require.NoError(t, err)

	replies := reply.NewTracker(reply.DefaultTTL)
	messages := memory.New(time.Hour)
	t.Cleanup(func() {
		_ = replies.Close()
		_ = messages.Close()
	})

	rep := &Reporter{}
	r := router.New(c, configs, registry, replies, rep)
	r.Bot = BotID
	r.Devs = []discord.UserID{DevID}

	s := setup.New(c, configs, BotID)
	s.Timeout = time.Second

	return &Harness{
		Bot: &bot.Bot{
			Config: bot.Config{
				Token:              "test-token",
				DefaultPrefix:      "!",
				Devs:               []discord.UserID{DevID},
				SuggestionsChannel: SuggestChannel,
			},
			Client:   c,
			Router:   r,
			Configs:  configs,
			Setup:    s,
			Replies:  replies,
			Messages: messages,
			HTTP:     &http.Client{Timeout: 5 * time.Second},
			Start:    time.Now().UTC(),
		},
		Client:   c,
		Backend:  b,
		Reporter: rep,
		nextID:   1000,
	}
}

// Register replaces the registry's commands.
func (h *Harness) Register(t *testing.T, cmds ...*router.Command) {
	t.Helper()

	err := h.Bot.Router.Registry.Reload(func() ([]*router.Command, error) {
		return cmds, nil
	})
	require.NoError(t, err)
}

// Run dispatches content as a guild message from the given member.
// The member's user must have been added to the fake client.
func (h *Harness) Run(userID discord.UserID, content string) {
	m := h.Client.MemberData[GuildID][userID]

	h.nextID++
	h.Bot.Router.Dispatch(context.Background(), &router.Message{
		Message: discord.Message{
			ID:        h.nextID,
			ChannelID: ChannelID,
			GuildID:   GuildID,
			Author:    h.Client.UserData[userID],
			Content:   content,
		},
		Member: &m,
	})
}

// RunDM dispatches content as a direct message from the given user.
func (h *Harness) RunDM(userID discord.UserID, content string) {
	h.nextID++
	h.Bot.Router.Dispatch(context.Background(), &router.Message{
		Message: discord.Message{
			ID:        h.nextID,
			ChannelID: discord.ChannelID(userID),
			Author:    h.Client.UserData[userID],
			Content:   content,
		},
	})
}

// Replies returns everything sent to the command channel.
func (h *Harness) Replies() (out []testutil.SentMessage) {
	for _, m := range h.Client.Messages() {
		if m.ChannelID == ChannelID {
			out = append(out, m)
		}
	}
	return out
}

// SentTo returns everything sent to the given channel.
func (h *Harness) SentTo(id discord.ChannelID) (out []testutil.SentMessage) {
	for _, m := range h.Client.Messages() {
		if m.ChannelID == id {
			out = append(out, m)
		}
	}
	return out
}

// Reply returns the only message sent to the command channel.
func (h *Harness) Reply(t *testing.T) testutil.SentMessage {
	t.Helper()

	r := h.Replies()
	require.Len(t, r, 1, "expected exactly one reply")
	return r[0]
}
