// Package router resolves text commands and runs them.
package router

import (
	"context"
	"strings"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/arguments"
	"github.com/starshine-sys/sentinel/common"
	"github.com/starshine-sys/sentinel/db"
	"github.com/starshine-sys/sentinel/db/stats"
	"github.com/starshine-sys/sentinel/guildconfig"
	"github.com/starshine-sys/sentinel/permissions"
	"github.com/starshine-sys/sentinel/platform"
	"github.com/starshine-sys/sentinel/reply"
	"github.com/starshine-sys/sentinel/responses"
)

// Reporter is where unexpected errors go. It returns an error code to show the user.
type Reporter interface {
	Report(db.ErrorContext, error) string
}

// Router dispatches messages to commands.
type Router struct {
	Client   platform.Client
	Configs  *guildconfig.Store
	Registry *Registry
	Replies  *reply.Tracker
	Reporter Reporter
	// Stats may be nil.
	Stats *stats.Client

	// Bot is the bot's own user ID.
	Bot  discord.UserID
	Devs []discord.UserID

	// Deleted holds messages deleted by automod, so the delete log can skip them.
	Deleted *common.Set[discord.MessageID]
}

// New returns a new Router.
func New(c platform.Client, configs *guildconfig.Store, registry *Registry, replies *reply.Tracker, reporter Reporter) *Router {
	return &Router{
		Client:   c,
		Configs:  configs,
		Registry: registry,
		Replies:  replies,
		Reporter: reporter,
		Deleted:  common.NewSet[discord.MessageID](),
	}
}

// IsDeveloper returns true if id is a listed bot developer.
func (r *Router) IsDeveloper(id discord.UserID) bool {
	return common.Contains(r.Devs, id)
}

// Dispatch runs the command in m, if any. Errors are handled and never returned.
func (r *Router) Dispatch(ctx context.Context, m *Message) {
	if m.Author.Bot || m.Content == "" {
		return
	}

	err := r.dispatch(ctx, m)
	if err != nil {
		r.report(m, "", err)
	}
}

// dispatch returns errors that happen before a command is resolved.
func (r *Router) dispatch(ctx context.Context, m *Message) error {
	prefix := r.Configs.DefaultPrefix()

	var (
		cfg    *guildconfig.Config
		guild  *discord.Guild
		member *discord.Member
		perms  discord.Permissions
	)

	if m.InGuild() {
		c, err := r.Configs.Fetch(ctx, m.GuildID, false)
		if err != nil {
			return errors.Wrap(err, "fetching guild config")
		}
		cfg = &c
		prefix = r.Configs.Prefix(c)

		guild, err = r.Client.Guild(m.GuildID)
		if err != nil {
			return errors.Wrap(err, "fetching guild")
		}

		member = m.Member
		if member == nil {
			member, err = r.Client.Member(m.GuildID, m.Author.ID)
			if err != nil {
				return errors.Wrap(err, "fetching member")
			}
		}
		member.User = m.Author

		perms = permissions.GuildPermissions(*guild, *member)

		if cfg.AutoMod && !perms.Has(discord.PermissionAdministrator) &&
			!cfg.IsMod(member.RoleIDs) && !cfg.IsAdmin(member.RoleIDs) {
			deleted, err := r.automod(m)
			if err != nil {
				return errors.Wrap(err, "running automod")
			}
			if deleted {
				return nil
			}
		}
	}

	if !m.Edited && r.isBotMention(m.Content) {
		_, err := r.Client.SendMessage(m.ChannelID, responses.Prefix(prefix).Content)
		return err
	}

	if !strings.HasPrefix(m.Content, prefix) {
		return nil
	}

	name, rest, _ := strings.Cut(m.Content[len(prefix):], " ")
	name = strings.ToLower(name)

	cmd := r.Registry.Resolve(name)
	if cmd == nil || (!m.InGuild() && !cmd.DMAllowed) {
		return nil
	}

	src := arguments.Source{Users: m.Mentions}
	if guild != nil {
		src.Roles = guild.Roles
		if strings.Contains(rest, "<#") {
			chs, err := r.Client.Channels(m.GuildID)
			if err != nil {
				return errors.Wrap(err, "fetching channels")
			}
			src.Channels = chs
		}
	}

	cctx := &Context{
		Ctx:     ctx,
		Router:  r,
		Client:  r.Client,
		Command: cmd,
		Message: m,
		Args:    arguments.Parse(rest, src),
		Prefix:  prefix,
		Guild:   guild,
		Member:  member,
		Config:  cfg,
		Actor: permissions.Actor{
			User:        m.Author,
			Member:      member,
			GuildID:     m.GuildID,
			Permissions: perms,
			Config:      cfg,
			Developer:   r.IsDeveloper(m.Author.ID),
		},
		Send: r.Replies.Sender(r.Client, m.ChannelID, m.ID, cmd.Name),
	}

	r.run(cctx)
	return nil
}

func (r *Router) run(ctx *Context) {
	m, cmd := ctx.Message, ctx.Command

	if ctx.Guild != nil {
		ch, err := r.Client.Channel(m.ChannelID)
		if err != nil {
			r.report(m, cmd.Name, errors.Wrap(err, "fetching channel"))
			return
		}
		ctx.Actor.Channel = *ch

		missingGuild, missingChannel, err := r.botMissing(m.GuildID, m.ChannelID, cmd.BotPermissions())
		if err != nil {
			r.report(m, cmd.Name, err)
			return
		}
		if missingGuild != 0 || missingChannel != 0 {
			_, err = ctx.Send(responses.ClientMissingPermissions(missingChannel, missingGuild))
			if err != nil {
				common.Log.Errorf("Error sending missing permissions message: %v", err)
			}
			return
		}
	}

	outcome := cmd.Permissions.Evaluate(ctx.Actor)
	switch outcome.Kind {
	case permissions.Allowed:
	case permissions.Denied:
		r.handleError(ctx, responses.NoPermission().WithSend(ctx.Send))
		return
	case permissions.Refused:
		_, err := ctx.Send(responses.Text(outcome.Reason))
		if err != nil {
			common.Log.Errorf("Error sending permission refusal: %v", err)
		}
		return
	default:
		return
	}

	r.Stats.IncCommand(cmd.Name)

	err := cmd.Run(ctx)
	if err != nil {
		r.handleError(ctx, err)
	}
}

// botMissing returns the permissions the bot is missing for a command.
func (r *Router) botMissing(guildID discord.GuildID, channelID discord.ChannelID, required discord.Permissions) (guild, channel discord.Permissions, err error) {
	g, err := r.Client.Guild(guildID)
	if err != nil {
		return 0, 0, errors.Wrap(err, "fetching guild")
	}
	botMember, err := r.Client.Member(guildID, r.Bot)
	if err != nil {
		return 0, 0, errors.Wrap(err, "fetching bot member")
	}
	botMember.User.ID = r.Bot

	channelPerms, err := r.Client.Permissions(channelID, r.Bot)
	if err != nil {
		return 0, 0, errors.Wrap(err, "fetching channel permissions")
	}

	guild, channel = permissions.Missing(required, permissions.GuildPermissions(*g, *botMember), channelPerms)
	return guild, channel, nil
}

func (r *Router) handleError(ctx *Context, err error) {
	var cmdErr *responses.CommandError
	if !errors.As(err, &cmdErr) {
		r.report(ctx.Message, ctx.Command.Name, err)
		return
	}

	switch {
	case cmdErr.Send != nil:
		_, err = cmdErr.Send(cmdErr.Response())
	case cmdErr.DM:
		_, err = platform.SendDM(r.Client, ctx.Message.Author.ID, cmdErr.Message)
	default:
		_, err = r.Client.SendMessage(ctx.Message.ChannelID, cmdErr.Message)
	}
	if err != nil {
		common.Log.Errorf("Error sending command error: %v", err)
	}
}

// report reports an unexpected error and tells the user something went wrong.
func (r *Router) report(m *Message, command string, err error) {
	code := r.Reporter.Report(db.ErrorContext{
		Command:   command,
		UserID:    m.Author.ID,
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
	}, err)

	_, sendErr := r.Client.SendMessage(m.ChannelID, responses.UnexpectedError(err, code).Content)
	if sendErr != nil {
		common.Log.Errorf("Error sending error message: %v", sendErr)
	}
}

func (r *Router) isBotMention(content string) bool {
	if !r.Bot.IsValid() {
		return false
	}
	id := r.Bot.String()
	return content == "<@"+id+">" || content == "<@!"+id+">"
}
