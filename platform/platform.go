// Package platform defines the subset of the chat platform that the bot core depends on.
// The production implementation wraps an Arikawa state (see package bot); tests use in-memory fakes.
package platform

import (
	"context"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
)

const (
	// ErrUnknownUser is returned when a user ID doesn't belong to any user.
	ErrUnknownUser = errors.Sentinel("unknown user")
	// ErrUnknownMember is returned when a user is not a member of the guild.
	ErrUnknownMember = errors.Sentinel("unknown member")
)

// MaxBulkDelete is the maximum number of messages a single bulk delete call accepts.
const MaxBulkDelete = 100

// Guilds is read access to guild state.
type Guilds interface {
	Guild(discord.GuildID) (*discord.Guild, error)
	Roles(discord.GuildID) ([]discord.Role, error)
	Channels(discord.GuildID) ([]discord.Channel, error)
}

// Client is everything the core needs from the chat platform.
type Client interface {
	Guilds

	Me() (*discord.User, error)
	User(discord.UserID) (*discord.User, error)
	Member(discord.GuildID, discord.UserID) (*discord.Member, error)
	Channel(discord.ChannelID) (*discord.Channel, error)
	// GuildWithCount returns the guild with approximate member counts filled in.
	GuildWithCount(discord.GuildID) (*discord.Guild, error)
	// Permissions returns the user's effective permissions in the channel, including overwrites.
	Permissions(discord.ChannelID, discord.UserID) (discord.Permissions, error)

	SendMessage(discord.ChannelID, string, ...discord.Embed) (*discord.Message, error)
	EditMessage(discord.ChannelID, discord.MessageID, string, ...discord.Embed) (*discord.Message, error)
	DeleteMessage(discord.ChannelID, discord.MessageID, string) error
	// DeleteMessages deletes between 2 and MaxBulkDelete messages in one call.
	DeleteMessages(discord.ChannelID, []discord.MessageID, string) error
	CreatePrivateChannel(discord.UserID) (*discord.Channel, error)

	Ban(guildID discord.GuildID, userID discord.UserID, deleteDays uint, reason string) error
	Kick(guildID discord.GuildID, userID discord.UserID, reason string) error

	// WaitFor blocks until an event matching filter is received or ctx is done, returning nil in the latter case.
	WaitFor(ctx context.Context, filter func(any) bool) any
}

// SendDM sends a direct message to the given user.
func SendDM(c Client, userID discord.UserID, content string, embeds ...discord.Embed) (*discord.Message, error) {
	ch, err := c.CreatePrivateChannel(userID)
	if err != nil {
		return nil, errors.Wrap(err, "creating dm channel")
	}

	msg, err := c.SendMessage(ch.ID, content, embeds...)
	if err != nil {
		return nil, errors.Wrap(err, "sending dm")
	}
	return msg, nil
}
