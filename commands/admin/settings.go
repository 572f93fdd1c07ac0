package admin

import (
	"strings"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/common"
	"github.com/starshine-sys/sentinel/permissions"
	"github.com/starshine-sys/sentinel/responses"
	"github.com/starshine-sys/sentinel/router"
)

var settingsModes = []string{"view", "setup", "edit"}

func adminOnly(a permissions.Actor) permissions.Outcome {
	if a.Has(discord.PermissionAdministrator) {
		return permissions.Allow()
	}
	if a.Config == nil {
		return permissions.Ignore()
	}
	if a.Developer || a.Config.IsAdmin(a.RoleIDs()) {
		return permissions.Allow()
	}
	return permissions.Refuse("You need to be a Server Admin to use this command!")
}

func (bot *Bot) settings(ctx *router.Context) error {
	switch mode := ctx.Args.Get(0); mode {
	case "", "view":
		return bot.viewSettings(ctx)
	case "setup":
		return bot.setupSettings(ctx)
	case "edit":
		return bot.editSetting(ctx)
	default:
		return responses.InvalidMode(settingsModes, mode)
	}
}

func (bot *Bot) viewSettings(ctx *router.Context) error {
	cfg, err := bot.Configs.Fetch(ctx.Ctx, ctx.Message.GuildID, true)
	if err != nil {
		return errors.Wrap(err, "fetching config")
	}

	embeds := true
	perms, err := bot.Client.Permissions(ctx.Message.ChannelID, bot.Router.Bot)
	if err != nil {
		common.Log.Debugf("Error getting permissions in %v: %v", ctx.Message.ChannelID, err)
		embeds = false
	} else if !perms.Has(discord.PermissionEmbedLinks) && !perms.Has(discord.PermissionAdministrator) {
		embeds = false
	}

	return ctx.Reply(responses.ViewConfig(cfg, bot.Configs.Prefix(cfg), embeds))
}

func (bot *Bot) setupSettings(ctx *router.Context) error {
	completed, err := bot.Setup.Run(ctx.Ctx, ctx.Message.GuildID, ctx.Message.ChannelID, ctx.Author().ID)
	if err != nil {
		return errors.Wrap(err, "running setup")
	}
	if !completed {
		return nil
	}

	return ctx.Reply(responses.AddedConfig())
}

func (bot *Bot) editSetting(ctx *router.Context) error {
	it, err := bot.Setup.Edit(ctx.Ctx, ctx.Message.GuildID, ctx.Args.Get(1), ctx.Args.Slice(2).Text())
	if err != nil {
		return err
	}

	return ctx.Reply(responses.UpdatedConfig(strings.ToLower(it.Name)))
}
