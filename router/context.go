package router

import (
	"context"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/arguments"
	"github.com/starshine-sys/sentinel/guildconfig"
	"github.com/starshine-sys/sentinel/permissions"
	"github.com/starshine-sys/sentinel/platform"
	"github.com/starshine-sys/sentinel/responses"
)

// Context is a single command invocation.
type Context struct {
	Ctx    context.Context
	Router *Router
	Client platform.Client

	Command *Command
	Message *Message
	Args    arguments.Arguments
	Prefix  string

	// Guild, Member and Config are nil outside of guilds.
	Guild  *discord.Guild
	Member *discord.Member
	Config *guildconfig.Config

	Actor permissions.Actor

	// Send sends or edits the command's reply.
	Send responses.SendFunc
}

// Reply sends the command's reply.
func (ctx *Context) Reply(m responses.Message) error {
	_, err := ctx.Send(m)
	return err
}

// Author returns the invoking user.
func (ctx *Context) Author() discord.User {
	return ctx.Message.Author
}

// InGuild returns true if the command was run in a guild.
func (ctx *Context) InGuild() bool {
	return ctx.Guild != nil
}
