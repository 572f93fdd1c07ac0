package responses

import (
	"fmt"
	"sort"
	"strings"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/dustin/go-humanize"
	"github.com/starshine-sys/sentinel/common"
)

// Whois shows a member's information. roles are the member's roles; perms are their guild permissions.
func Whois(m discord.Member, roles []discord.Role, perms discord.Permissions) Message {
	sort.Slice(roles, func(i, j int) bool {
		return roles[i].Position > roles[j].Position
	})

	colour := common.ColourBlue
	for _, r := range roles {
		if r.Color != 0 {
			colour = r.Color
			break
		}
	}

	name := m.User.Username
	if m.Nick != "" {
		name = m.Nick
	}

	roleMentions := make([]string, len(roles))
	for i, r := range roles {
		roleMentions[i] = r.ID.Mention()
	}
	roleField := strings.Join(roleMentions, ", ")
	if roleField == "" {
		roleField = "No roles"
	}

	e := discord.Embed{
		Author: &discord.EmbedAuthor{
			Name: m.User.Tag(),
			Icon: m.User.AvatarURL(),
		},
		Thumbnail:   &discord.EmbedThumbnail{URL: m.User.AvatarURL()},
		Description: m.User.Mention(),
		Color:       colour,
		Fields: []discord.EmbedField{
			{Name: "Display name", Value: name, Inline: true},
			{Name: "Bot", Value: yesNo(m.User.Bot), Inline: true},
			{Name: "Created", Value: relative(m.User.ID.Time())},
			{Name: "Joined", Value: relative(m.Joined.Time())},
			{Name: fmt.Sprintf("Roles (%d)", len(roles)), Value: truncate(roleField, 1024)},
		},
		Footer:    &discord.EmbedFooter{Text: "ID: " + m.User.ID.String()},
		Timestamp: discord.NowTimestamp(),
	}

	if p := common.KeyPermStrings(perms); len(p) > 0 {
		e.Fields = append(e.Fields, discord.EmbedField{Name: "Key permissions", Value: strings.Join(p, ", ")})
	}

	return Message{Name: "WHOIS", Embeds: []discord.Embed{e}}
}

// RoleInfo shows a role's information.
func RoleInfo(r discord.Role) Message {
	e := discord.Embed{
		Title:       "Role information",
		Description: r.ID.Mention(),
		Color:       r.Color,
		Fields: []discord.EmbedField{
			{Name: "Name", Value: r.Name, Inline: true},
			{Name: "Colour", Value: fmt.Sprintf("#%06x", uint32(r.Color)), Inline: true},
			{Name: "Position", Value: fmt.Sprint(r.Position), Inline: true},
			{Name: "Hoisted", Value: yesNo(r.Hoist), Inline: true},
			{Name: "Mentionable", Value: yesNo(r.Mentionable), Inline: true},
			{Name: "Managed", Value: yesNo(r.Managed), Inline: true},
			{Name: "Created", Value: relative(r.ID.Time())},
		},
		Footer:    &discord.EmbedFooter{Text: "ID: " + r.ID.String()},
		Timestamp: discord.NowTimestamp(),
	}

	if p := common.PermStrings(r.Permissions & (common.KeyPermissions | common.PermissionViewServerInsights | discord.PermissionCreateInstantInvite)); len(p) > 0 {
		e.Fields = append(e.Fields, discord.EmbedField{Name: "Notable permissions", Value: strings.Join(p, ", ")})
	}

	return Message{Name: "ROLE_INFO", Embeds: []discord.Embed{e}}
}

// GuildStats shows a guild's information.
func GuildStats(g discord.Guild, channels []discord.Channel, members uint64) Message {
	var text, voice, categories, other int
	for _, ch := range channels {
		switch ch.Type {
		case discord.GuildText, discord.GuildNews:
			text++
		case discord.GuildVoice:
			voice++
		case discord.GuildCategory:
			categories++
		default:
			other++
		}
	}

	channelField := fmt.Sprintf("%d text\n%d voice\n%d categories", text, voice, categories)
	if other > 0 {
		channelField += fmt.Sprintf("\n%d other", other)
	}

	e := discord.Embed{
		Title:     g.Name,
		Thumbnail: &discord.EmbedThumbnail{URL: g.IconURL()},
		Color:     common.ColourBlue,
		Fields: []discord.EmbedField{
			{Name: "Owner", Value: g.OwnerID.Mention(), Inline: true},
			{Name: "Members", Value: humanize.Comma(int64(members)), Inline: true},
			{Name: "Roles", Value: fmt.Sprint(len(g.Roles)), Inline: true},
			{Name: "Channels", Value: channelField, Inline: true},
			{Name: "Created", Value: relative(g.ID.Time()), Inline: true},
		},
		Footer:    &discord.EmbedFooter{Text: "ID: " + g.ID.String()},
		Timestamp: discord.NowTimestamp(),
	}
	return Message{Name: "GUILD_STATS", Embeds: []discord.Embed{e}}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
