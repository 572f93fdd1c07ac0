package moderation

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/arguments"
	"github.com/starshine-sys/sentinel/common"
	"github.com/starshine-sys/sentinel/permissions"
	"github.com/starshine-sys/sentinel/responses"
	"github.com/starshine-sys/sentinel/router"
)

// banDeleteDays is how many days of messages are deleted on ban.
const banDeleteDays = 7

func (bot *Bot) remove(action responses.Action) func(*router.Context) error {
	return func(ctx *router.Context) error {
		if ctx.Args.Len() == 0 {
			return responses.MentionMember(action)
		}

		m, err := arguments.ExtractMentions(bot.Client, ctx.Args.Regular, ctx.Message.GuildID, 1)
		if err != nil {
			return err
		}
		if len(m.Members) == 0 {
			return responses.MentionMember(action)
		}

		target := m.Members[0]
		if target.User.ID == ctx.Author().ID || target.User.ID == bot.Router.Bot {
			return responses.MentionMember(action)
		}

		if !permissions.IsManageableBy(*ctx.Guild, target, *ctx.Member) {
			return responses.NotManageable(action, false)
		}

		self, err := bot.Client.Member(ctx.Message.GuildID, bot.Router.Bot)
		if err != nil {
			return errors.Wrap(err, "fetching bot member")
		}
		if !permissions.CanBotManage(*ctx.Guild, target, *self) {
			return responses.NotManageable(action, true)
		}

		reason := m.Content
		auditReason := reason
		if auditReason == "" {
			auditReason = responses.DefaultReason
		}
		auditReason = ctx.Author().Tag() + ": " + auditReason

		switch action {
		case responses.Ban:
			err = bot.Client.Ban(ctx.Message.GuildID, target.User.ID, banDeleteDays, auditReason)
		default:
			err = bot.Client.Kick(ctx.Message.GuildID, target.User.ID, auditReason)
		}
		if err != nil {
			return errors.Wrapf(err, "%v member", action)
		}

		common.Log.Infof("%v %v %v in %v", ctx.Author().Tag(), action.Past(), target.User.ID, ctx.Message.GuildID)

		users := []discord.User{target.User}
		if ctx.Config != nil && ctx.Config.LogsChannel.IsValid() {
			log := responses.RemovedUserLog(action, ctx.Author(), users, reason)
			_, err = bot.Client.SendMessage(ctx.Config.LogsChannel, log.Content, log.Embeds...)
			if err != nil {
				common.Log.Errorf("Error sending %v log in %v: %v", action, ctx.Config.LogsChannel, err)
			}
		}

		return ctx.Reply(responses.RemovedUser(action, users, reason))
	}
}
