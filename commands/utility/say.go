package utility

import (
	"github.com/starshine-sys/sentinel/responses"
	"github.com/starshine-sys/sentinel/router"
)

func (bot *Bot) say(ctx *router.Context) error {
	if ctx.Args.Len() == 0 {
		return responses.SayNoArgs()
	}

	return ctx.Reply(responses.Text(ctx.Args.Text()))
}
