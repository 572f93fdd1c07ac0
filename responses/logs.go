package responses

import (
	"fmt"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/dustin/go-humanize"
	"github.com/starshine-sys/sentinel/common"
)

// MemberJoined is posted to a guild's join channel. memberCount is omitted if zero.
func MemberJoined(m discord.Member, memberCount uint64) Message {
	e := discord.Embed{
		Title:       "Member joined",
		Thumbnail:   &discord.EmbedThumbnail{URL: m.User.AvatarURL()},
		Color:       common.ColourGreen,
		Description: fmt.Sprintf("%v\n%v", m.User.Mention(), m.User.Tag()),
		Fields: []discord.EmbedField{{
			Name:   "Account age",
			Value:  humanize.Time(m.User.ID.Time()),
			Inline: true,
		}},
		Footer:    &discord.EmbedFooter{Text: "ID: " + m.User.ID.String()},
		Timestamp: discord.NowTimestamp(),
	}

	if memberCount != 0 {
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:   "Current member count",
			Value:  humanize.Comma(int64(memberCount)),
			Inline: true,
		})
	}

	return Message{Name: "MEMBER_JOINED", Embeds: []discord.Embed{e}}
}

func MemberLeft(u discord.User) Message {
	return Message{Name: "MEMBER_LEFT", Embeds: []discord.Embed{{
		Title:       "Member left",
		Thumbnail:   &discord.EmbedThumbnail{URL: u.AvatarURL()},
		Color:       common.ColourRed,
		Description: fmt.Sprintf("%v\n%v", u.Mention(), u.Tag()),
		Footer:      &discord.EmbedFooter{Text: "ID: " + u.ID.String()},
		Timestamp:   discord.NowTimestamp(),
	}}}
}

// LoggedMessage is a message as seen by the message logs.
// Author is nil and Content empty if the message wasn't cached.
type LoggedMessage struct {
	ID        discord.MessageID
	ChannelID discord.ChannelID
	GuildID   discord.GuildID
	Author    *discord.User
	Content   string
}

func (m LoggedMessage) link() string {
	return fmt.Sprintf("https://discord.com/channels/%v/%v/%v", m.GuildID, m.ChannelID, m.ID)
}

// MessageDeleteLog is posted to a guild's logs channel when a message is deleted.
func MessageDeleteLog(m LoggedMessage) Message {
	e := discord.Embed{
		Title:     "Message deleted",
		Color:     common.ColourRed,
		Footer:    &discord.EmbedFooter{Text: "ID: " + m.ID.String()},
		Timestamp: discord.NowTimestamp(),
	}

	if m.Content != "" {
		e.Description = truncate(m.Content, 4000)
	} else {
		e.Description = "*Message content unknown*"
	}

	e.Fields = append(e.Fields, discord.EmbedField{Name: "Channel", Value: m.ChannelID.Mention(), Inline: true})
	if m.Author != nil {
		e.Author = &discord.EmbedAuthor{Name: m.Author.Tag(), Icon: m.Author.AvatarURL()}
		e.Fields = append(e.Fields, discord.EmbedField{Name: "Author", Value: m.Author.Mention(), Inline: true})
	}

	return Message{Name: "MESSAGE_DELETE_LOG", Embeds: []discord.Embed{e}}
}

// MessageUpdateLog is posted to a guild's logs channel when a message is edited.
// before may be empty if the message wasn't cached.
func MessageUpdateLog(m LoggedMessage, before string) Message {
	if before == "" {
		before = "*Message content unknown*"
	}
	after := m.Content
	if after == "" {
		after = "*Empty*"
	}

	e := discord.Embed{
		Title: "Message edited",
		Color: common.ColourOrange,
		URL:   m.link(),
		Fields: []discord.EmbedField{
			{Name: "Before", Value: truncate(before, 1024)},
			{Name: "After", Value: truncate(after, 1024)},
			{Name: "Channel", Value: m.ChannelID.Mention(), Inline: true},
		},
		Footer:    &discord.EmbedFooter{Text: "ID: " + m.ID.String()},
		Timestamp: discord.NowTimestamp(),
	}

	if m.Author != nil {
		e.Author = &discord.EmbedAuthor{Name: m.Author.Tag(), Icon: m.Author.AvatarURL()}
		e.Fields = append(e.Fields, discord.EmbedField{Name: "Author", Value: m.Author.Mention(), Inline: true})
	}

	return Message{Name: "MESSAGE_UPDATE_LOG", Embeds: []discord.Embed{e}}
}

// GuildCreateLog is posted to the bot's guild log channel when it joins a guild.
func GuildCreateLog(g discord.Guild, memberCount uint64) Message {
	return Message{Name: "GUILD_CREATE_LOG", Embeds: []discord.Embed{{
		Title:     "Joined new server",
		Thumbnail: &discord.EmbedThumbnail{URL: g.IconURL()},
		Color:     common.ColourGreen,
		Fields: []discord.EmbedField{
			{Name: "Name", Value: g.Name, Inline: true},
			{Name: "Owner", Value: g.OwnerID.Mention(), Inline: true},
			{Name: "Members", Value: humanize.Comma(int64(memberCount)), Inline: true},
		},
		Footer:    &discord.EmbedFooter{Text: "ID: " + g.ID.String()},
		Timestamp: discord.NowTimestamp(),
	}}}
}

// GuildRemoveLog is posted to the bot's guild log channel when it leaves a guild. name may be empty if the guild wasn't cached.
func GuildRemoveLog(id discord.GuildID, name string) Message {
	if name == "" {
		name = "*Unknown*"
	}
	return Message{Name: "GUILD_REMOVE_LOG", Embeds: []discord.Embed{{
		Title:     "Left server",
		Color:     common.ColourRed,
		Fields:    []discord.EmbedField{{Name: "Name", Value: name}},
		Footer:    &discord.EmbedFooter{Text: "ID: " + id.String()},
		Timestamp: discord.NowTimestamp(),
	}}}
}
