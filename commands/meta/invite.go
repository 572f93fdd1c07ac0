package meta

import (
	"fmt"

	"github.com/starshine-sys/sentinel/responses"
	"github.com/starshine-sys/sentinel/router"
)

func (bot *Bot) invite(ctx *router.Context) error {
	return ctx.Reply(responses.ClientInvite(bot.inviteURL()))
}

// inviteURL has the permissions every registered command needs.
func (bot *Bot) inviteURL() string {
	return fmt.Sprintf(
		"https://discord.com/api/oauth2/authorize?client_id=%v&permissions=%d&scope=bot",
		bot.Router.Bot, bot.Router.Registry.Permissions(),
	)
}
