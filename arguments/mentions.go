package arguments

import (
	"regexp"
	"strings"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/platform"
	"github.com/starshine-sys/sentinel/responses"
)

var userMentionRegex = regexp.MustCompile(`^(?:<@!?(\d+)>|(\d{15,20}))$`)

// Mentions are users extracted from the start of a command's arguments.
type Mentions struct {
	// Content is the text remaining after the mentions.
	Content string
	// Users in the order they were mentioned.
	Users []discord.User
	// Members are the guild members for Users, if in a guild. Users that aren't members are skipped.
	Members []discord.Member
}

// UserIDs returns the IDs of all extracted users.
func (m Mentions) UserIDs() []discord.UserID {
	ids := make([]discord.UserID, 0, len(m.Users))
	for _, u := range m.Users {
		ids = append(ids, u.ID)
	}
	return ids
}

// ExtractMentions takes up to limit leading user mentions (or raw snowflake IDs) from words.
// Extraction stops at the first word that isn't a mention, and the rest is returned as Content.
// A limit <= 0 means no limit.
//
// An unknown user returns an UNKNOWN_USER *responses.CommandError carrying the raw ID.
// A user that isn't a member of guildID is kept in Users but left out of Members.
func ExtractMentions(c platform.Client, words []string, guildID discord.GuildID, limit int) (m Mentions, err error) {
	i := 0
	for ; i < len(words) && (limit <= 0 || i < limit); i++ {
		match := userMentionRegex.FindStringSubmatch(words[i])
		if match == nil {
			break
		}

		raw := match[1] + match[2]
		sf, err := discord.ParseSnowflake(raw)
		if err != nil {
			break
		}
		id := discord.UserID(sf)

		u, err := c.User(id)
		if err != nil {
			if errors.Is(err, platform.ErrUnknownUser) {
				return m, responses.UnknownUser(raw)
			}
			return m, errors.Wrap(err, "fetching user")
		}
		m.Users = append(m.Users, *u)

		if !guildID.IsValid() {
			continue
		}

		member, err := c.Member(guildID, id)
		if err != nil {
			if errors.Is(err, platform.ErrUnknownMember) {
				continue
			}
			return m, errors.Wrap(err, "fetching member")
		}
		m.Members = append(m.Members, *member)
	}

	m.Content = strings.Join(words[i:], " ")
	return m, nil
}
