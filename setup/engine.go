package setup

import (
	"context"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/starshine-sys/sentinel/common"
	"github.com/starshine-sys/sentinel/guildconfig"
	"github.com/starshine-sys/sentinel/platform"
	"github.com/starshine-sys/sentinel/responses"
)

// DefaultTimeout is how long setup waits for each answer.
const DefaultTimeout = 3 * time.Minute

// Engine runs setup and single-setting edits.
type Engine struct {
	Client  platform.Client
	Configs *guildconfig.Store
	// Bot is the bot's user ID, for channel permission checks.
	Bot discord.UserID

	Timeout time.Duration
	// Items defaults to the package-level Items.
	Items []Item
}

// New returns an Engine with the default timeout and settings.
func New(c platform.Client, configs *guildconfig.Store, bot discord.UserID) *Engine {
	return &Engine{
		Client:  c,
		Configs: configs,
		Bot:     bot,
		Timeout: DefaultTimeout,
		Items:   Items,
	}
}

// Run asks userID for every setting in channelID, then saves them all at once.
// completed is false if the user didn't answer in time, in which case nothing is saved.
func (e *Engine) Run(ctx context.Context, guildID discord.GuildID, channelID discord.ChannelID, userID discord.UserID) (completed bool, err error) {
	var (
		edit     guildconfig.Edit
		messages []discord.MessageID
	)

	send := func(content string) error {
		msg, err := e.Client.SendMessage(channelID, content)
		if err != nil {
			return err
		}
		messages = append(messages, msg.ID)
		return nil
	}

	items := e.items()
	for i := 0; i < len(items); i++ {
		it := items[i]

		err = send(it.Prompt())
		if err != nil {
			return false, errors.Wrap(err, "sending question")
		}

		resp, ok := e.await(ctx, it, channelID, userID)
		if !ok {
			err = platform.BulkDelete(e.Client, channelID, messages, "Setup cancelled")
			if err != nil {
				common.Log.Errorf("Error deleting setup messages in %v: %v", channelID, err)
			}

			_, err = e.Client.SendMessage(channelID, "3 Minute response timeout, cancelling command")
			return false, err
		}
		messages = append(messages, resp.ID)

		if it.Optional && strings.EqualFold(strings.TrimSpace(resp.Content), "n") {
			continue
		}

		v, problem, err := e.resolve(it, guildID, resp.Content, ", please try again")
		if err != nil {
			return false, err
		}
		if problem != "" {
			err = send(problem)
			if err != nil {
				return false, errors.Wrap(err, "sending retry prompt")
			}
			i--
			continue
		}

		it.apply(&edit, v)
	}

	_, err = e.Configs.Edit(ctx, guildID, edit, true)
	if err != nil {
		return false, errors.Wrap(err, "saving config")
	}

	err = platform.BulkDelete(e.Client, channelID, messages, "Setup finished")
	if err != nil {
		common.Log.Errorf("Error deleting setup messages in %v: %v", channelID, err)
	}
	return true, nil
}

// await waits for the user's answer. Boolean settings only accept y or n.
func (e *Engine) await(ctx context.Context, it Item, channelID discord.ChannelID, userID discord.UserID) (*gateway.MessageCreateEvent, bool) {
	timeout := e.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return common.WaitFor(ctx, e.Client, func(ev *gateway.MessageCreateEvent) bool {
		if ev.Author.ID != userID || ev.ChannelID != channelID {
			return false
		}
		if it.Kind == KindBoolean {
			c := strings.ToLower(strings.TrimSpace(ev.Content))
			return c == "y" || c == "n"
		}
		return true
	})
}

// Edit changes a single setting. The value "none" clears an optional setting.
// Unknown settings and invalid values return a *responses.CommandError.
func (e *Engine) Edit(ctx context.Context, guildID discord.GuildID, key, input string) (Item, error) {
	it, ok := e.find(key)
	if !ok {
		return it, responses.InvalidSetting(keys(e.items()))
	}

	var edit guildconfig.Edit
	if it.Optional && strings.EqualFold(strings.TrimSpace(input), "none") {
		it.clear(&edit)
	} else {
		v, problem, err := e.resolve(it, guildID, input, "")
		if err != nil {
			return it, err
		}
		if problem != "" {
			return it, responses.CustomMessage(problem)
		}
		it.apply(&edit, v)
	}

	_, err := e.Configs.Edit(ctx, guildID, edit, false)
	if err != nil {
		var refErr *guildconfig.InvalidReferenceError
		if errors.As(err, &refErr) {
			return it, responses.CustomMessage(refErr.Error())
		}
		return it, errors.Wrap(err, "saving config")
	}
	return it, nil
}

func (e *Engine) items() []Item {
	if e.Items == nil {
		return Items
	}
	return e.Items
}

func (e *Engine) find(key string) (Item, bool) {
	for _, it := range e.items() {
		if strings.EqualFold(it.Key, key) {
			return it, true
		}
	}
	return Item{}, false
}
