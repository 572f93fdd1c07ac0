package meta_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/commands/meta"
	"github.com/starshine-sys/sentinel/commands/moderation"
	"github.com/starshine-sys/sentinel/internal/testbot"
	"github.com/starshine-sys/sentinel/responses"
	"github.com/starshine-sys/sentinel/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type querier struct {
	mu      sync.Mutex
	queries []string
}

func (q *querier) RawQuery(_ context.Context, query string) ([]map[string]interface{}, error) {
	q.mu.Lock()
	q.queries = append(q.queries, query)
	q.mu.Unlock()
	return []map[string]interface{}{{"n": 1}}, nil
}

func newHarness(t *testing.T) (*testbot.Harness, *querier) {
	h := testbot.New(t)

	q := &querier{}
	bot := meta.New(h.Bot)
	bot.Query = q

	h.Register(t, append(bot.Commands(), moderation.Commands(h.Bot)...)...)
	h.Client.AddMember(testbot.GuildID, discord.Member{User: discord.User{ID: testbot.DevID, Username: "dev"}})
	return h, q
}

func TestHelp(t *testing.T) {
	t.Run("only usable commands", func(t *testing.T) {
		h, _ := newHarness(t)
		h.Run(testbot.AuthorID, "!help")

		r := h.Reply(t)
		require.Len(t, r.Embeds, 1)
		assert.Equal(t, "Sentinel commands", r.Embeds[0].Title)
		assert.Nil(t, r.Embeds[0].Footer)

		lines := strings.Split(r.Embeds[0].Description, "\n")
		assert.Equal(t, []string{
			"!help [page] - List all the Sentinel commands.",
			"!invite - Get an invite link for the bot.",
			"!ping - Show the bot's latency and memory usage.",
			"!suggest <suggestion> - Give the Sentinel developers a suggestion!",
		}, lines)
	})

	t.Run("developer", func(t *testing.T) {
		h, _ := newHarness(t)
		h.Run(testbot.DevID, "!halp")

		assert.Contains(t, h.Reply(t).Embeds[0].Description, "!eval [--timeout 5s] [--silent] <code> - Evaluates code.")
	})

	t.Run("pages", func(t *testing.T) {
		h := testbot.New(t)

		var cmds []*router.Command
		for i := 0; i < 14; i++ {
			cmds = append(cmds, &router.Command{Name: fmt.Sprintf("cmd%02d", i), Description: "test"})
		}
		cmds = append(cmds, meta.Commands(h.Bot)...)
		h.Register(t, cmds...)

		h.Run(testbot.AuthorID, "!help 2")
		h.Run(testbot.AuthorID, "!help 9")

		r := h.Replies()
		require.Len(t, r, 2)
		assert.Equal(t, "Page 2/3", r[0].Embeds[0].Footer.Text)
		assert.True(t, strings.HasPrefix(r[0].Embeds[0].Description, "!cmd06 - test\n"))
		assert.Equal(t, "Page 1/3", r[1].Embeds[0].Footer.Text)
	})
}

func TestInvite(t *testing.T) {
	h, _ := newHarness(t)
	h.RunDM(testbot.AuthorID, "!invite")

	sent := h.SentTo(discord.ChannelID(testbot.AuthorID))
	require.Len(t, sent, 1)

	perms := discord.PermissionSendMessages | discord.PermissionBanMembers | discord.PermissionKickMembers
	assert.Equal(t, fmt.Sprintf(
		"Invite me with this link:\n<https://discord.com/api/oauth2/authorize?client_id=1&permissions=%d&scope=bot>", perms,
	), sent[0].Content)
}

func TestSuggest(t *testing.T) {
	t.Run("no suggestion", func(t *testing.T) {
		h, _ := newHarness(t)
		h.Run(testbot.AuthorID, "!suggest")

		assert.Equal(t, responses.ProvideSuggestion().Message, h.Reply(t).Content)
		assert.Empty(t, h.SentTo(testbot.SuggestChannel))
	})

	t.Run("too long", func(t *testing.T) {
		h, _ := newHarness(t)
		h.Run(testbot.AuthorID, "!suggest "+strings.Repeat("a", 1024))

		assert.Equal(t, responses.MaxMessageLength().Message, h.Reply(t).Content)
		assert.Empty(t, h.SentTo(testbot.SuggestChannel))
	})

	t.Run("sent", func(t *testing.T) {
		h, _ := newHarness(t)
		h.Run(testbot.AuthorID, "!suggest Add More Commands")

		assert.Equal(t, responses.SuggestionResponse().Content, h.Reply(t).Content)

		logs := h.SentTo(testbot.SuggestChannel)
		require.Len(t, logs, 1)
		assert.Equal(t, "New suggestion", logs[0].Embeds[0].Title)
		assert.Equal(t, "Add More Commands", logs[0].Embeds[0].Description)
	})
}

func TestPing(t *testing.T) {
	h, _ := newHarness(t)
	h.Run(testbot.AuthorID, "!ping")

	assert.Equal(t, "...", h.Reply(t).Content)
	require.Len(t, h.Client.Edited, 1)
	require.Len(t, h.Client.Edited[0].Embeds, 1)
	assert.Equal(t, "Memory usage", h.Client.Edited[0].Embeds[0].Fields[1].Name)
}

func TestEval(t *testing.T) {
	t.Run("not a developer", func(t *testing.T) {
		h, _ := newHarness(t)
		h.Run(testbot.AuthorID, "!eval 1 + 2")

		assert.Equal(t, responses.NoPermission().Message, h.Reply(t).Content)
	})

	tests := []struct {
		name, code, want string
	}{
		{"expression", "1 + 2", "```js\n3\n```"},
		{"object", "({a: 1})", "```js\n{\n  \"a\": 1\n}\n```"},
		{"code block", "```js\n[1, 2].length```", "```js\n2\n```"},
		{"undefined", "undefined", "```js\nundefined\n```"},
		{"message", "message.content", "```js\n!eval message.content\n```"},
		{"token", `"test-token"`, "```js\n[TOKEN]\n```"},
		{"reversed token", `"nekot-tset"`, "```js\n[TOKEN]\n```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newHarness(t)
			h.Run(testbot.DevID, "!eval "+tt.code)

			assert.Equal(t, tt.want, h.Reply(t).Content)
		})
	}

	t.Run("exception", func(t *testing.T) {
		h, _ := newHarness(t)
		h.Run(testbot.DevID, "!evaluate throw new Error('oops')")

		assert.Contains(t, h.Reply(t).Content, "Error: oops")
		assert.Empty(t, h.Reporter.Errors())
	})

	t.Run("timeout", func(t *testing.T) {
		h, _ := newHarness(t)
		h.Run(testbot.DevID, "!eval --timeout 50ms while (true) {}")

		assert.Contains(t, h.Reply(t).Content, "timed out after 50ms")
	})

	t.Run("silent", func(t *testing.T) {
		h, _ := newHarness(t)
		h.Run(testbot.DevID, "!eval -s 1 + 2")

		assert.Empty(t, h.Replies())
	})

	t.Run("sql", func(t *testing.T) {
		h, q := newHarness(t)
		h.Run(testbot.DevID, "!eval ```sql\nSELECT 1 AS n```")

		assert.Equal(t, []string{"SELECT 1 AS n"}, q.queries)
		assert.Equal(t, "```js\n[\n  {\n    \"n\": 1\n  }\n]\n```", h.Reply(t).Content)
	})
}

func TestEvalUpload(t *testing.T) {
	t.Run("uploaded", func(t *testing.T) {
		var body string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b, _ := io.ReadAll(r.Body)
			body = string(b)
			assert.Equal(t, "/documents", r.URL.Path)
			_, _ = w.Write([]byte(`{"key":"abcdef"}`))
		}))
		defer srv.Close()

		h, _ := newHarness(t)
		h.Bot.Config.HastebinURL = srv.URL
		h.Run(testbot.DevID, "!eval 'a'.repeat(2000)")

		assert.Equal(t, "Output was too long, posted to "+srv.URL+"/abcdef", h.Reply(t).Content)
		assert.Equal(t, strings.Repeat("a", 2000), body)
	})

	t.Run("failed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		h, _ := newHarness(t)
		h.Bot.Config.HastebinURL = srv.URL
		h.Run(testbot.DevID, "!eval 'a'.repeat(2000)")

		assert.Equal(t, "Output was too long for hastebin", h.Reply(t).Content)
	})
}
