package bot

import (
	"context"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/state"
	"github.com/diamondburned/arikawa/v3/utils/httputil"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
	"github.com/starshine-sys/sentinel/platform"
)

// Discord API error codes.
const (
	codeUnknownMember = 10007
	codeUnknownUser   = 10013
)

var _ platform.Client = (*Client)(nil)

// Client implements platform.Client on top of an arikawa state.
// Messages are sent without pinging anyone.
type Client struct {
	State *state.State
}

var noMentions = &api.AllowedMentions{
	Parse: []api.AllowedMentionType{},
}

func mapError(err error) error {
	var httpErr *httputil.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.Code {
		case codeUnknownUser:
			return errors.WithStack(platform.ErrUnknownUser)
		case codeUnknownMember:
			return errors.WithStack(platform.ErrUnknownMember)
		}
	}
	return err
}

func (c *Client) Guild(id discord.GuildID) (*discord.Guild, error) {
	return c.State.Guild(id)
}

func (c *Client) Roles(id discord.GuildID) ([]discord.Role, error) {
	return c.State.Roles(id)
}

func (c *Client) Channels(id discord.GuildID) ([]discord.Channel, error) {
	return c.State.Channels(id)
}

func (c *Client) Me() (*discord.User, error) {
	return c.State.Me()
}

func (c *Client) User(id discord.UserID) (*discord.User, error) {
	u, err := c.State.User(id)
	return u, mapError(err)
}

func (c *Client) Member(guildID discord.GuildID, userID discord.UserID) (*discord.Member, error) {
	m, err := c.State.Member(guildID, userID)
	return m, mapError(err)
}

func (c *Client) Channel(id discord.ChannelID) (*discord.Channel, error) {
	return c.State.Channel(id)
}

func (c *Client) GuildWithCount(id discord.GuildID) (*discord.Guild, error) {
	return c.State.GuildWithCount(id)
}

func (c *Client) Permissions(channelID discord.ChannelID, userID discord.UserID) (discord.Permissions, error) {
	return c.State.Permissions(channelID, userID)
}

func (c *Client) SendMessage(channelID discord.ChannelID, content string, embeds ...discord.Embed) (*discord.Message, error) {
	return c.State.SendMessageComplex(channelID, api.SendMessageData{
		Content:         content,
		Embeds:          embeds,
		AllowedMentions: noMentions,
	})
}

func (c *Client) EditMessage(channelID discord.ChannelID, id discord.MessageID, content string, embeds ...discord.Embed) (*discord.Message, error) {
	return c.State.EditMessage(channelID, id, content, embeds...)
}

func (c *Client) DeleteMessage(channelID discord.ChannelID, id discord.MessageID, reason string) error {
	return c.State.DeleteMessage(channelID, id, api.AuditLogReason(reason))
}

func (c *Client) DeleteMessages(channelID discord.ChannelID, ids []discord.MessageID, reason string) error {
	return c.State.DeleteMessages(channelID, ids, api.AuditLogReason(reason))
}

func (c *Client) CreatePrivateChannel(userID discord.UserID) (*discord.Channel, error) {
	return c.State.CreatePrivateChannel(userID)
}

func (c *Client) Ban(guildID discord.GuildID, userID discord.UserID, deleteDays uint, reason string) error {
	return c.State.Ban(guildID, userID, api.BanData{
		DeleteDays:     option.NewUint(deleteDays),
		AuditLogReason: api.AuditLogReason(reason),
	})
}

func (c *Client) Kick(guildID discord.GuildID, userID discord.UserID, reason string) error {
	return c.State.Kick(guildID, userID, api.AuditLogReason(reason))
}

func (c *Client) WaitFor(ctx context.Context, filter func(any) bool) any {
	return c.State.WaitFor(ctx, filter)
}
