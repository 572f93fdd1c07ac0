package utility

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/arguments"
	"github.com/starshine-sys/sentinel/common"
	"github.com/starshine-sys/sentinel/permissions"
	"github.com/starshine-sys/sentinel/responses"
	"github.com/starshine-sys/sentinel/router"
)

func (bot *Bot) whois(ctx *router.Context) error {
	m, err := arguments.ExtractMentions(bot.Client, ctx.Args.Regular, ctx.Message.GuildID, 1)
	if err != nil {
		return err
	}

	member := *ctx.Member
	if len(m.Members) > 0 {
		member = m.Members[0]
	}

	var roles []discord.Role
	for _, r := range ctx.Guild.Roles {
		if common.Contains(member.RoleIDs, r.ID) {
			roles = append(roles, r)
		}
	}

	return ctx.Reply(responses.Whois(member, roles, permissions.GuildPermissions(*ctx.Guild, member)))
}

func (bot *Bot) avatar(ctx *router.Context) error {
	if ctx.Args.Len() == 0 {
		return ctx.Reply(responses.UserAvatar(ctx.Author()))
	}

	m, err := arguments.ExtractMentions(bot.Client, ctx.Args.Regular, ctx.Message.GuildID, 1)
	if err != nil {
		return err
	}

	u := ctx.Author()
	if len(m.Users) > 0 {
		u = m.Users[0]
	}
	return ctx.Reply(responses.UserAvatar(u))
}

func (bot *Bot) roleinfo(ctx *router.Context) error {
	if ctx.Args.Len() == 0 {
		return responses.MentionRole()
	}

	r, ok := arguments.ResolveRole(ctx.Guild.Roles, ctx.Args.Text())
	if !ok {
		return responses.MentionRole()
	}

	return ctx.Reply(responses.RoleInfo(r))
}

func (bot *Bot) guildstats(ctx *router.Context) error {
	channels, err := bot.Client.Channels(ctx.Message.GuildID)
	if err != nil {
		return errors.Wrap(err, "fetching channels")
	}

	var members uint64
	g, err := bot.Client.GuildWithCount(ctx.Message.GuildID)
	if err != nil {
		common.Log.Debugf("Error getting member count for %v: %v", ctx.Message.GuildID, err)
	} else {
		members = g.ApproximateMembers
	}

	return ctx.Reply(responses.GuildStats(*ctx.Guild, channels, members))
}
