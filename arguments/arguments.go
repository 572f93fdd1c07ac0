// Package arguments parses command arguments and resolves mentions.
package arguments

import (
	"regexp"
	"strings"

	"github.com/diamondburned/arikawa/v3/discord"
)

var mentionRegex = regexp.MustCompile(`<(@!?|@&|#)(\d{17,19})>`)

// Source is what mentions in a message are resolved against.
type Source struct {
	// Users is the message's mentioned users, with their members in guilds.
	Users    []discord.GuildUser
	Roles    []discord.Role
	Channels []discord.Channel
}

// Arguments are a command's arguments.
type Arguments struct {
	// Args is the lowercased argument list, with known mentions replaced by @name or #name.
	// Names keep their original case.
	Args []string
	// Regular is the raw argument list, for when the exact text is needed.
	Regular []string
}

// Parse parses everything after the command name.
func Parse(content string, src Source) Arguments {
	if content == "" {
		return Arguments{}
	}

	regular := strings.Split(content, " ")
	lower := strings.Split(strings.ToLower(content), " ")

	args := make([]string, 0, len(lower))
	for _, arg := range lower {
		matches := mentionRegex.FindAllStringSubmatch(arg, -1)
		if len(matches) == 0 {
			args = append(args, arg)
			continue
		}

		var b strings.Builder
		for _, m := range matches {
			b.WriteString(src.clean(m[0], m[1], m[2]))
		}
		args = append(args, b.String())
	}

	return Arguments{Args: args, Regular: regular}
}

func (src Source) clean(raw, kind, id string) string {
	sf, err := discord.ParseSnowflake(id)
	if err != nil {
		return raw
	}

	switch kind {
	case "@", "@!":
		for _, u := range src.Users {
			if u.ID != discord.UserID(sf) {
				continue
			}
			if kind == "@!" && u.Member != nil && u.Member.Nick != "" {
				return "@" + u.Member.Nick
			}
			return "@" + u.Username
		}
	case "@&":
		for _, r := range src.Roles {
			if r.ID == discord.RoleID(sf) {
				return "@" + r.Name
			}
		}
	case "#":
		for _, ch := range src.Channels {
			if ch.ID == discord.ChannelID(sf) {
				return "#" + ch.Name
			}
		}
	}
	return raw
}

// Len returns the number of arguments.
func (a Arguments) Len() int { return len(a.Args) }

// Get returns the argument at index i, or an empty string if there isn't one.
func (a Arguments) Get(i int) string {
	if i < 0 || i >= len(a.Args) {
		return ""
	}
	return a.Args[i]
}

// Raw returns the raw argument at index i, or an empty string if there isn't one.
func (a Arguments) Raw(i int) string {
	if i < 0 || i >= len(a.Regular) {
		return ""
	}
	return a.Regular[i]
}

// Slice returns the arguments from start onwards.
func (a Arguments) Slice(start int) Arguments {
	return Arguments{Args: tail(a.Args, start), Regular: tail(a.Regular, start)}
}

// Text returns the raw arguments joined by spaces.
func (a Arguments) Text() string {
	return strings.Join(a.Regular, " ")
}

func tail(s []string, start int) []string {
	if start >= len(s) {
		return nil
	}
	return s[start:]
}
