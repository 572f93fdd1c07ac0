// Package bot holds the bot's shared state and its connection to Discord.
package bot

import (
	"context"
	"net/http"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/state"
	"github.com/diamondburned/arikawa/v3/utils/ws"
	"github.com/getsentry/sentry-go"
	"github.com/starshine-sys/sentinel/common"
	"github.com/starshine-sys/sentinel/db"
	"github.com/starshine-sys/sentinel/db/stats"
	"github.com/starshine-sys/sentinel/guildconfig"
	"github.com/starshine-sys/sentinel/platform"
	"github.com/starshine-sys/sentinel/reply"
	"github.com/starshine-sys/sentinel/router"
	"github.com/starshine-sys/sentinel/setup"
	"github.com/starshine-sys/sentinel/store"
	"github.com/starshine-sys/sentinel/store/memory"
	"github.com/starshine-sys/sentinel/store/redis"
)

const Intents = gateway.IntentGuilds |
	gateway.IntentGuildMembers |
	gateway.IntentGuildMessages |
	gateway.IntentDirectMessages

type Bot struct {
	Config Config

	// State is nil in tests.
	State  *state.State
	Client platform.Client

	Router   *router.Router
	Configs  *guildconfig.Store
	Setup    *setup.Engine
	Replies  *reply.Tracker
	Messages store.MessageStore

	DB    *db.DB
	Stats *stats.Client

	HTTP  *http.Client
	Start time.Time

	closers []func() error
}

// New connects to the database and message store, and sets up the router.
// Commands are added to the router's registry separately.
func New(c Config) (*Bot, error) {
	ws.WSDebug = common.Log.Named("ws").Debug
	ws.WSError = func(err error) {
		common.Log.Named("ws").Error(err)
	}

	s := state.New("Bot " + c.Token)
	s.AddIntents(Intents)

	bot := &Bot{
		Config: c,
		State:  s,
		Client: &Client{State: s},
		HTTP:   &http.Client{Timeout: 10 * time.Second},
		Start:  time.Now().UTC(),
		Stats:  stats.New(c.Influx.URL, c.Influx.Token, c.Influx.Org, c.Influx.Bucket),
	}

	var hub *sentry.Hub
	if c.SentryURL != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:     c.SentryURL,
			Release: common.Version(),
		})
		if err != nil {
			return nil, errors.Wrap(err, "initialising sentry")
		}
		hub = sentry.CurrentHub()
	}

	if !c.NoAutoMigrate {
		err := db.RunMigrations(c.DatabaseURL)
		if err != nil {
			return nil, errors.Wrap(err, "running migrations")
		}
	}

	var err error
	bot.DB, err = db.New(c.DatabaseURL, hub)
	if err != nil {
		return nil, errors.Wrap(err, "creating database")
	}
	bot.DB.Stats = bot.Stats
	bot.closers = append(bot.closers, func() error {
		bot.DB.Close()
		return nil
	})

	if c.RedisURL != "" {
		rs, err := redis.New(c.RedisURL, store.MessageTTL)
		if err != nil {
			return nil, errors.Wrap(err, "creating redis store")
		}
		bot.Messages = rs
		bot.closers = append(bot.closers, rs.Close)
	} else {
		ms := memory.New(store.MessageTTL)
		bot.Messages = ms
		bot.closers = append(bot.closers, ms.Close)
	}

	bot.Replies = reply.NewTracker(reply.DefaultTTL)
	bot.closers = append(bot.closers, bot.Replies.Close)

	bot.Configs = guildconfig.NewStore(bot.DB, bot.Client, c.DefaultPrefix)

	registry, err := router.NewRegistry()
	if err != nil {
		return nil, err
	}
	bot.Router = router.New(bot.Client, bot.Configs, registry, bot.Replies, bot.DB)
	bot.Router.Stats = bot.Stats
	bot.Router.Devs = c.Devs

	bot.Setup = setup.New(bot.Client, bot.Configs, 0)

	s.AddHandler(bot.ready)
	s.AddHandler(bot.Stats.EventHandler)

	return bot, nil
}

// Open connects to the gateway.
func (bot *Bot) Open(ctx context.Context) error {
	common.Log.Debug("opening gateway connection")

	return bot.State.Open(ctx)
}

// Close disconnects from the gateway and closes every store.
func (bot *Bot) Close() (err error) {
	if bot.State != nil {
		err = errors.Append(err, bot.State.Close())
	}
	for i := len(bot.closers) - 1; i >= 0; i-- {
		err = errors.Append(err, bot.closers[i]())
	}
	return err
}

// AddHandler adds gateway event handlers.
func (bot *Bot) AddHandler(fns ...any) {
	for _, fn := range fns {
		bot.State.AddHandler(fn)
	}
}

// Me returns the bot user.
func (bot *Bot) Me() discord.User {
	u, err := bot.Client.Me()
	if err != nil || u == nil {
		return discord.User{}
	}
	return *u
}

// IsDeveloper returns true if id is a listed bot developer.
func (bot *Bot) IsDeveloper(id discord.UserID) bool {
	return common.Contains(bot.Config.Devs, id)
}

// ready sets the bot user ID everywhere it's needed.
func (bot *Bot) ready(ev *gateway.ReadyEvent) {
	common.Log.Infof("Logged in as %v (%v)", ev.User.Tag(), ev.User.ID)

	bot.Router.Bot = ev.User.ID
	bot.Setup.Bot = ev.User.ID
}
