package router

import (
	"regexp"

	"github.com/diamondburned/arikawa/v3/discord"
)

var inviteRegex = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?(?:discord\.(?:gg|io|me|li)|discord(?:app)?\.com/invite)/([\w-]+)`)

// Message is an incoming message, along with the state the router needs.
type Message struct {
	discord.Message

	// Member is the author's member, if sent in a guild and included in the event.
	Member *discord.Member
	// Edited is true if this message is being re-dispatched after an edit.
	Edited bool
}

// Invites returns the codes of any invite links in the message.
func (m *Message) Invites() []string {
	matches := inviteRegex.FindAllStringSubmatch(m.Content, -1)
	if len(matches) == 0 {
		return nil
	}

	codes := make([]string, 0, len(matches))
	for _, match := range matches {
		codes = append(codes, match[1])
	}
	return codes
}

// InGuild returns true if the message was sent in a guild.
func (m *Message) InGuild() bool {
	return m.GuildID.IsValid()
}
