package responses

import (
	"fmt"
	"strings"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/common"
	"github.com/starshine-sys/sentinel/guildconfig"
)

func AddedConfig() Message {
	return Message{Name: "ADDED_CONFIG", Content: "Setup the configuration for your server!"}
}

// UpdatedConfig is sent after a single setting is edited. name is the setting's display name.
func UpdatedConfig(name string) Message {
	return Message{Name: "UPDATED_CONFIG", Content: fmt.Sprintf("Updated the %v for your server!", name)}
}

// ViewConfig shows a guild's settings. If embeds is false, the bot can't embed links in the channel and a plain text version is sent.
func ViewConfig(c guildconfig.Config, prefix string, embeds bool) Message {
	fields := []discord.EmbedField{
		{Name: "Prefix", Value: "`" + prefix + "`", Inline: true},
		{Name: "Auto Moderation", Value: enabled(c.AutoMod), Inline: true},
		{Name: "Moderator Roles", Value: roleList(c.ModRoles)},
		{Name: "Admin Roles", Value: roleList(c.AdminRoles)},
		{Name: "Join Messages Channel", Value: channel(c.MemberJoinsChannel), Inline: true},
		{Name: "Leave Messages Channel", Value: channel(c.MemberLeavesChannel), Inline: true},
		{Name: "Logs Channel", Value: channel(c.LogsChannel), Inline: true},
	}

	if !embeds {
		var b strings.Builder
		b.WriteString("**Server settings**\n")
		for _, f := range fields {
			fmt.Fprintf(&b, "%v: %v\n", f.Name, f.Value)
		}
		return Message{Name: "VIEW_CONFIG", Content: strings.TrimSpace(b.String())}
	}

	return Message{Name: "VIEW_CONFIG", Embeds: []discord.Embed{{
		Title:  "Server settings",
		Color:  common.ColourPurple,
		Fields: fields,
		Footer: &discord.EmbedFooter{Text: "Guild ID: " + c.GuildID.String()},
	}}}
}

func enabled(b bool) string {
	if b {
		return "Enabled"
	}
	return "Disabled"
}

func roleList(roles []discord.RoleID) string {
	if len(roles) == 0 {
		return "None"
	}
	s := make([]string, len(roles))
	for i := range roles {
		s[i] = roles[i].Mention()
	}
	return strings.Join(s, ", ")
}

func channel(id discord.ChannelID) string {
	if !id.IsValid() {
		return "None"
	}
	return id.Mention()
}
