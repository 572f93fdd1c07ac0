package bot

import (
	"os"
	"reflect"

	"emperror.dev/errors"
	"github.com/caarlos0/env/v11"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/joho/godotenv"
)

// Config is the bot's configuration. It's read once at startup and passed down.
type Config struct {
	Token         string           `env:"TOKEN,required"`
	DefaultPrefix string           `env:"DEFAULT_PREFIX" envDefault:"!"`
	Devs          []discord.UserID `env:"DEVS" envSeparator:","`

	DatabaseURL string `env:"DATABASE_URL,required"`
	// NoAutoMigrate disables running migrations on startup. They can then be run with the migrate command.
	NoAutoMigrate bool `env:"NO_AUTO_MIGRATE"`
	// RedisURL is optional. Without it, messages are stored in memory.
	RedisURL  string `env:"REDIS"`
	SentryURL string `env:"SENTRY_URL"`

	SuggestionsChannel discord.ChannelID `env:"SUGGESTIONS_CHANNEL"`
	GuildLogsChannel   discord.ChannelID `env:"GUILD_LOGS_CHANNEL"`

	HastebinURL string `env:"HASTEBIN_URL" envDefault:"https://paste.nomsy.net"`

	Influx InfluxConfig `envPrefix:"INFLUX_"`

	StatusAddr string `env:"STATUS_ADDR"`

	Debug      bool `env:"DEBUG_LOGGING"`
	Production bool `env:"PRODUCTION"`
}

type InfluxConfig struct {
	URL    string `env:"URL"`
	Token  string `env:"TOKEN"`
	Org    string `env:"ORG"`
	Bucket string `env:"BUCKET"`
}

var snowflakeParsers = map[reflect.Type]env.ParserFunc{
	reflect.TypeOf(discord.UserID(0)): func(v string) (interface{}, error) {
		sf, err := discord.ParseSnowflake(v)
		return discord.UserID(sf), err
	},
	reflect.TypeOf(discord.ChannelID(0)): func(v string) (interface{}, error) {
		sf, err := discord.ParseSnowflake(v)
		return discord.ChannelID(sf), err
	},
}

// ReadConfig reads the configuration from the environment, loading a .env file first if one exists.
func ReadConfig() (c Config, err error) {
	err = godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return c, errors.Wrap(err, "loading .env file")
	}

	return ParseConfig(env.Options{})
}

// ParseConfig parses the configuration with the given options. Snowflake parsers are always added.
func ParseConfig(opts env.Options) (c Config, err error) {
	funcs := make(map[reflect.Type]env.ParserFunc, len(snowflakeParsers)+len(opts.FuncMap))
	for t, fn := range snowflakeParsers {
		funcs[t] = fn
	}
	for t, fn := range opts.FuncMap {
		funcs[t] = fn
	}
	opts.FuncMap = funcs

	err = env.ParseWithOptions(&c, opts)
	if err != nil {
		return c, errors.Wrap(err, "parsing environment")
	}
	return c, nil
}
