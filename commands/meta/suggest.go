package meta

import (
	"unicode/utf8"

	"github.com/starshine-sys/sentinel/common"
	"github.com/starshine-sys/sentinel/responses"
	"github.com/starshine-sys/sentinel/router"
)

// maxSuggestionLength is the length of an embed field.
const maxSuggestionLength = 1024

func (bot *Bot) suggest(ctx *router.Context) error {
	if ctx.Args.Len() == 0 {
		return responses.ProvideSuggestion()
	}

	content := ctx.Args.Text()
	if utf8.RuneCountInString(content) >= maxSuggestionLength {
		return responses.MaxMessageLength()
	}

	err := ctx.Reply(responses.SuggestionResponse())
	if err != nil {
		return err
	}

	if !bot.Config.SuggestionsChannel.IsValid() {
		return nil
	}

	log := responses.SuggestionLog(ctx.Author(), content)
	_, err = bot.Client.SendMessage(bot.Config.SuggestionsChannel, log.Content, log.Embeds...)
	if err != nil {
		common.Log.Errorf("Error sending suggestion from %v: %v", ctx.Author().ID, err)
	}
	return nil
}
