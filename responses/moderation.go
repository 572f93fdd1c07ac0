package responses

import (
	"fmt"
	"strings"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/common"
)

// RemovedUser is the reply to a successful ban or kick.
func RemovedUser(action Action, users []discord.User, reason string) Message {
	s := fmt.Sprintf("Successfully %v %v", action.Past(), userList(users))
	if reason != "" {
		s += " for `" + reason + "`"
	}
	return Message{Name: "REMOVED_USER", Content: s}
}

// RemovedUserLog is posted to a guild's logs channel after a ban or kick.
func RemovedUserLog(action Action, moderator discord.User, users []discord.User, reason string) Message {
	if reason == "" {
		reason = DefaultReason
	}

	return Message{Name: "REMOVED_USER_LOG", Embeds: []discord.Embed{{
		Author: &discord.EmbedAuthor{
			Name: moderator.Tag(),
			Icon: moderator.AvatarURL(),
		},
		Title: "Member " + action.Past(),
		Color: common.ColourRed,
		Fields: []discord.EmbedField{
			{Name: "Members", Value: userList(users)},
			{Name: "Moderator", Value: moderator.Mention(), Inline: true},
			{Name: "Reason", Value: truncate(reason, 1024), Inline: true},
		},
		Footer:    &discord.EmbedFooter{Text: "Moderator ID: " + moderator.ID.String()},
		Timestamp: discord.NowTimestamp(),
	}}}
}

func userList(users []discord.User) string {
	s := make([]string, len(users))
	for i, u := range users {
		s[i] = fmt.Sprintf("%v (%v)", u.Tag(), u.Mention())
	}
	return strings.Join(s, ", ")
}
