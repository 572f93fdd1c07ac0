// Package testutil has in-memory fakes of the platform and the config backend.
package testutil

import (
	"context"
	"sync"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/platform"
)

// ErrNotFound is returned for unknown guilds and channels.
const ErrNotFound = errors.Sentinel("not found")

// SentMessage is a message sent or edited through a fake Client.
type SentMessage struct {
	ChannelID discord.ChannelID
	MessageID discord.MessageID
	Content   string
	Embeds    []discord.Embed
}

// Removal is a recorded ban or kick.
type Removal struct {
	GuildID    discord.GuildID
	UserID     discord.UserID
	DeleteDays uint
	Reason     string
}

var _ platform.Client = (*Client)(nil)

// Client is a fake platform.Client.
// Unknown users return platform.ErrUnknownUser, unknown members platform.ErrUnknownMember.
type Client struct {
	Bot discord.User

	GuildData   map[discord.GuildID]discord.Guild
	ChannelData map[discord.ChannelID]discord.Channel
	UserData    map[discord.UserID]discord.User
	MemberData  map[discord.GuildID]map[discord.UserID]discord.Member

	// Perms overrides the permissions returned for a user in a channel. DefaultPerms is used otherwise.
	Perms        map[discord.ChannelID]map[discord.UserID]discord.Permissions
	DefaultPerms discord.Permissions

	// Events is read by WaitFor.
	Events chan any

	mu          sync.Mutex
	nextID      discord.MessageID
	Sent        []SentMessage
	Edited      []SentMessage
	Deleted     []discord.MessageID
	BulkDeletes [][]discord.MessageID
	Bans        []Removal
	Kicks       []Removal
}

// NewClient returns a fake client with the given bot user and every permission granted by default.
func NewClient(bot discord.User) *Client {
	return &Client{
		Bot:          bot,
		GuildData:    map[discord.GuildID]discord.Guild{},
		ChannelData:  map[discord.ChannelID]discord.Channel{},
		UserData:     map[discord.UserID]discord.User{bot.ID: bot},
		MemberData:   map[discord.GuildID]map[discord.UserID]discord.Member{},
		Perms:        map[discord.ChannelID]map[discord.UserID]discord.Permissions{},
		DefaultPerms: discord.PermissionAll,
		Events:       make(chan any, 32),
		nextID:       900000000000000000,
	}
}

// AddGuild adds a guild along with its channels.
func (c *Client) AddGuild(g discord.Guild, channels ...discord.Channel) {
	c.GuildData[g.ID] = g
	for _, ch := range channels {
		ch.GuildID = g.ID
		c.ChannelData[ch.ID] = ch
	}
}

// AddMember adds a member, and its user, to a guild.
func (c *Client) AddMember(guildID discord.GuildID, m discord.Member) {
	if c.MemberData[guildID] == nil {
		c.MemberData[guildID] = map[discord.UserID]discord.Member{}
	}
	c.MemberData[guildID][m.User.ID] = m
	c.UserData[m.User.ID] = m.User
}

// SetPerms sets a user's permissions in a channel.
func (c *Client) SetPerms(channelID discord.ChannelID, userID discord.UserID, p discord.Permissions) {
	if c.Perms[channelID] == nil {
		c.Perms[channelID] = map[discord.UserID]discord.Permissions{}
	}
	c.Perms[channelID][userID] = p
}

// Messages returns a copy of all sent messages.
func (c *Client) Messages() []SentMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]SentMessage(nil), c.Sent...)
}

// AllDeleted returns every deleted message ID, from single and bulk deletes.
func (c *Client) AllDeleted() []discord.MessageID {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := append([]discord.MessageID(nil), c.Deleted...)
	for _, b := range c.BulkDeletes {
		out = append(out, b...)
	}
	return out
}

func (c *Client) Guild(id discord.GuildID) (*discord.Guild, error) {
	g, ok := c.GuildData[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &g, nil
}

func (c *Client) GuildWithCount(id discord.GuildID) (*discord.Guild, error) {
	g, err := c.Guild(id)
	if err != nil {
		return nil, err
	}
	g.ApproximateMembers = uint64(len(c.MemberData[id]))
	return g, nil
}

func (c *Client) Roles(id discord.GuildID) ([]discord.Role, error) {
	g, err := c.Guild(id)
	if err != nil {
		return nil, err
	}
	return g.Roles, nil
}

func (c *Client) Channels(id discord.GuildID) ([]discord.Channel, error) {
	var chs []discord.Channel
	for _, ch := range c.ChannelData {
		if ch.GuildID == id {
			chs = append(chs, ch)
		}
	}
	return chs, nil
}

func (c *Client) Channel(id discord.ChannelID) (*discord.Channel, error) {
	ch, ok := c.ChannelData[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &ch, nil
}

func (c *Client) Me() (*discord.User, error) {
	u := c.Bot
	return &u, nil
}

func (c *Client) User(id discord.UserID) (*discord.User, error) {
	u, ok := c.UserData[id]
	if !ok {
		return nil, platform.ErrUnknownUser
	}
	return &u, nil
}

func (c *Client) Member(guildID discord.GuildID, userID discord.UserID) (*discord.Member, error) {
	m, ok := c.MemberData[guildID][userID]
	if !ok {
		if _, ok := c.UserData[userID]; !ok {
			return nil, platform.ErrUnknownUser
		}
		return nil, platform.ErrUnknownMember
	}
	return &m, nil
}

func (c *Client) Permissions(channelID discord.ChannelID, userID discord.UserID) (discord.Permissions, error) {
	if p, ok := c.Perms[channelID][userID]; ok {
		return p, nil
	}
	return c.DefaultPerms, nil
}

func (c *Client) SendMessage(channelID discord.ChannelID, content string, embeds ...discord.Embed) (*discord.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	c.Sent = append(c.Sent, SentMessage{ChannelID: channelID, MessageID: c.nextID, Content: content, Embeds: embeds})
	return &discord.Message{
		ID:        c.nextID,
		ChannelID: channelID,
		Author:    c.Bot,
		Content:   content,
		Embeds:    embeds,
	}, nil
}

func (c *Client) EditMessage(channelID discord.ChannelID, id discord.MessageID, content string, embeds ...discord.Embed) (*discord.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Edited = append(c.Edited, SentMessage{ChannelID: channelID, MessageID: id, Content: content, Embeds: embeds})
	return &discord.Message{
		ID:        id,
		ChannelID: channelID,
		Author:    c.Bot,
		Content:   content,
		Embeds:    embeds,
	}, nil
}

func (c *Client) DeleteMessage(_ discord.ChannelID, id discord.MessageID, _ string) error {
	c.mu.Lock()
	c.Deleted = append(c.Deleted, id)
	c.mu.Unlock()
	return nil
}

func (c *Client) DeleteMessages(_ discord.ChannelID, ids []discord.MessageID, _ string) error {
	c.mu.Lock()
	c.BulkDeletes = append(c.BulkDeletes, append([]discord.MessageID(nil), ids...))
	c.mu.Unlock()
	return nil
}

func (c *Client) CreatePrivateChannel(userID discord.UserID) (*discord.Channel, error) {
	return &discord.Channel{ID: discord.ChannelID(userID), Type: discord.DirectMessage}, nil
}

func (c *Client) Ban(guildID discord.GuildID, userID discord.UserID, deleteDays uint, reason string) error {
	c.mu.Lock()
	c.Bans = append(c.Bans, Removal{guildID, userID, deleteDays, reason})
	c.mu.Unlock()
	return nil
}

func (c *Client) Kick(guildID discord.GuildID, userID discord.UserID, reason string) error {
	c.mu.Lock()
	c.Kicks = append(c.Kicks, Removal{guildID, userID, 0, reason})
	c.mu.Unlock()
	return nil
}

// WaitFor reads Events until one matches filter. Non-matching events are dropped.
func (c *Client) WaitFor(ctx context.Context, filter func(any) bool) any {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-c.Events:
			if filter(ev) {
				return ev
			}
		}
	}
}
