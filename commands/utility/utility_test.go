package utility_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/commands/utility"
	"github.com/starshine-sys/sentinel/internal/testbot"
	"github.com/starshine-sys/sentinel/responses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHarness(t *testing.T) *testbot.Harness {
	h := testbot.New(t)
	h.Register(t, utility.Commands(h.Bot)...)
	return h
}

func field(t *testing.T, e discord.Embed, name string) string {
	t.Helper()

	for _, f := range e.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	t.Fatalf("embed has no field %q", name)
	return ""
}

func TestSay(t *testing.T) {
	t.Run("echo", func(t *testing.T) {
		h := newHarness(t)
		h.Run(testbot.AuthorID, "!say Hello <@600>, how ARE you")

		assert.Equal(t, "Hello <@600>, how ARE you", h.Reply(t).Content)
	})

	t.Run("no args", func(t *testing.T) {
		h := newHarness(t)
		h.Run(testbot.AuthorID, "!repeat")

		assert.Equal(t, responses.SayNoArgs().Message, h.Reply(t).Content)
	})
}

func TestWhois(t *testing.T) {
	t.Run("self", func(t *testing.T) {
		h := newHarness(t)
		h.Run(testbot.AuthorID, "!whois")

		e := h.Reply(t).Embeds[0]
		assert.Equal(t, "someone#0500", e.Author.Name)
		assert.Equal(t, "No roles", field(t, e, "Roles (0)"))
	})

	t.Run("mention", func(t *testing.T) {
		h := newHarness(t)
		h.Run(testbot.AuthorID, "!whois <@600>")

		e := h.Reply(t).Embeds[0]
		assert.Equal(t, "target#0600", e.Author.Name)
		assert.Equal(t, testbot.MemberRole.Mention(), field(t, e, "Roles (1)"))
	})

	t.Run("unknown user", func(t *testing.T) {
		h := newHarness(t)
		h.Run(testbot.AuthorID, "!whois <@999>")

		assert.Equal(t, responses.UnknownUser("999").Message, h.Reply(t).Content)
	})

	t.Run("not in dms", func(t *testing.T) {
		h := newHarness(t)
		h.RunDM(testbot.AuthorID, "!whois")

		assert.Empty(t, h.Client.Messages())
	})
}

func TestAvatar(t *testing.T) {
	t.Run("self", func(t *testing.T) {
		h := newHarness(t)
		h.Run(testbot.AuthorID, "!av")

		assert.Equal(t, "someone#0500's avatar", h.Reply(t).Embeds[0].Title)
	})

	t.Run("non member", func(t *testing.T) {
		h := newHarness(t)
		h.Run(testbot.AuthorID, "!avatar <@800>")

		assert.Equal(t, "outsider#0800's avatar", h.Reply(t).Embeds[0].Title)
	})

	t.Run("short number", func(t *testing.T) {
		h := newHarness(t)
		h.Run(testbot.AuthorID, "!avatar 42")

		assert.Equal(t, "someone#0500's avatar", h.Reply(t).Embeds[0].Title)
	})

	t.Run("dm", func(t *testing.T) {
		h := newHarness(t)
		h.RunDM(testbot.AuthorID, "!avatar <@!600>")

		sent := h.SentTo(discord.ChannelID(testbot.AuthorID))
		require.Len(t, sent, 1)
		assert.Equal(t, "target#0600's avatar", sent[0].Embeds[0].Title)
	})
}

func TestRoleinfo(t *testing.T) {
	for input, want := range map[string]string{
		"mods":    "Mods",
		"@Admins": "Admins",
		"13":      "Members",
	} {
		t.Run(input, func(t *testing.T) {
			h := newHarness(t)
			h.Run(testbot.AuthorID, "!roleinfo "+input)

			e := h.Reply(t).Embeds[0]
			assert.Equal(t, "Role information", e.Title)
			assert.Equal(t, want, field(t, e, "Name"))
		})
	}

	for _, input := range []string{"!roleinfo", "!roleinfo nope"} {
		t.Run(input, func(t *testing.T) {
			h := newHarness(t)
			h.Run(testbot.AuthorID, input)

			assert.Equal(t, responses.MentionRole().Message, h.Reply(t).Content)
		})
	}
}

func TestGuildstats(t *testing.T) {
	h := newHarness(t)
	h.Run(testbot.AuthorID, "!serverinfo")

	e := h.Reply(t).Embeds[0]
	assert.Equal(t, "Test Server", e.Title)
	assert.Equal(t, "5", field(t, e, "Members"))
	assert.Equal(t, "3 text\n0 voice\n0 categories", field(t, e, "Channels"))
	assert.Equal(t, "6", field(t, e, "Roles"))
}

func TestLookup(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)

		switch r.URL.Path {
		case "/json/1.1.1.1":
			_, _ = w.Write([]byte(`{"status":"success","query":"1.1.1.1","isp":"Cloudflare, Inc","country":"Australia","city":"South Brisbane","lat":-27.4766,"lon":153.0166}`))
		case "/json/10.0.0.1":
			_, _ = w.Write([]byte(`{"status":"fail","message":"private range","query":"10.0.0.1"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	newLookup := func(t *testing.T) *testbot.Harness {
		h := testbot.New(t)
		bot := utility.New(h.Bot)
		bot.LookupURL = srv.URL + "/json/"
		h.Register(t, bot.Commands()...)
		return h
	}

	t.Run("found", func(t *testing.T) {
		h := newLookup(t)
		h.Run(testbot.AuthorID, "!lookup 1.1.1.1")

		e := h.Reply(t).Embeds[0]
		assert.Equal(t, "Lookup for 1.1.1.1", e.Title)
		assert.Equal(t, "Cloudflare, Inc", field(t, e, "ISP"))
		assert.Equal(t, "None", field(t, e, "Zip"))
	})

	for _, input := range []string{"10.0.0.1", "2.2.2.2"} {
		t.Run(input, func(t *testing.T) {
			h := newLookup(t)
			h.Run(testbot.AuthorID, "!geo "+input)

			assert.Equal(t, responses.ProvideIP().Message, h.Reply(t).Content)
		})
	}

	t.Run("invalid", func(t *testing.T) {
		before := atomic.LoadInt32(&requests)

		h := newLookup(t)
		h.Run(testbot.AuthorID, "!lookup 1.1.1")

		assert.Equal(t, responses.ProvideIP().Message, h.Reply(t).Content)
		assert.Equal(t, before, atomic.LoadInt32(&requests))
	})
}
