package arguments

import (
	"regexp"
	"strings"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/common"
)

var (
	roleMentionRegex    = regexp.MustCompile(`^<@&(\d{15,20})>$`)
	channelMentionRegex = regexp.MustCompile(`^<#(\d{15,20})>$`)
)

// ResolveRole finds a role by mention, then by ID, then by case-insensitive name.
// ok is false if no role matches.
func ResolveRole(roles []discord.Role, input string) (r discord.Role, ok bool) {
	input = strings.TrimSpace(input)

	if id, ok := parseID(roleMentionRegex, input); ok {
		for _, r := range roles {
			if r.ID == discord.RoleID(id) {
				return r, true
			}
		}
		return r, false
	}

	if id, err := discord.ParseSnowflake(input); err == nil {
		for _, r := range roles {
			if r.ID == discord.RoleID(id) {
				return r, true
			}
		}
	}

	name := strings.TrimPrefix(input, "@")
	for _, r := range roles {
		if strings.EqualFold(r.Name, input) || strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return r, false
}

// ResolveChannel finds a channel by mention, then by ID, then by case-insensitive name.
// If types is not empty, only channels of those types match;
// a mention or ID of a channel with another type matches nothing, rather than falling through to a name match.
func ResolveChannel(channels []discord.Channel, input string, types ...discord.ChannelType) (ch discord.Channel, ok bool) {
	input = strings.TrimSpace(input)
	allowed := func(ch discord.Channel) bool {
		return len(types) == 0 || common.Contains(types, ch.Type)
	}

	id, isMention := parseID(channelMentionRegex, input)
	if !isMention {
		if sf, err := discord.ParseSnowflake(input); err == nil {
			id = sf
		}
	}

	if id.IsValid() {
		for _, c := range channels {
			if c.ID == discord.ChannelID(id) {
				if !allowed(c) {
					return ch, false
				}
				return c, true
			}
		}
		if isMention {
			return ch, false
		}
	}

	input = strings.TrimPrefix(input, "#")
	for _, c := range channels {
		if allowed(c) && strings.EqualFold(c.Name, input) {
			return c, true
		}
	}
	return ch, false
}

func parseID(re *regexp.Regexp, s string) (discord.Snowflake, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	sf, err := discord.ParseSnowflake(m[1])
	if err != nil {
		return 0, false
	}
	return sf, true
}
