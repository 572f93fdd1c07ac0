// Package setup implements the interactive config setup and single-setting edits.
package setup

import (
	"strconv"
	"strings"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/guildconfig"
)

// Kind is the type of a setting.
type Kind int

const (
	KindBoolean Kind = iota
	KindRole
	KindRoles
	KindString
	KindChannel
)

// Item is a single configurable setting.
type Item struct {
	Key         string
	Name        string
	Description string
	Optional    bool

	Kind Kind
	// Max is the maximum string length or number of roles. -1 is unlimited.
	Max int
	// ChannelTypes are the allowed channel types for channel settings.
	ChannelTypes []discord.ChannelType
}

var textChannel = []discord.ChannelType{discord.GuildText}

// Items are all settings, in the order setup asks for them.
var Items = []Item{
	{
		Key:         "prefix",
		Name:        "Prefix",
		Description: "The prefix for the bot.",
		Optional:    true,
		Kind:        KindString,
		Max:         4,
	},
	{
		Key:         "modRoles",
		Name:        "Moderator Roles",
		Description: "The moderator roles for this server.",
		Optional:    true,
		Kind:        KindRoles,
		Max:         -1,
	},
	{
		Key:         "adminRoles",
		Name:        "Admin Roles",
		Description: "The admin roles for this server.",
		Optional:    true,
		Kind:        KindRoles,
		Max:         -1,
	},
	{
		Key:          "memberJoinsChannel",
		Name:         "Join Messages Channel",
		Description:  "The channel where new member messages are sent.",
		Optional:     true,
		Kind:         KindChannel,
		ChannelTypes: textChannel,
	},
	{
		Key:          "memberLeavesChannel",
		Name:         "Leave Messages Channel",
		Description:  "The channel where member leave messages are sent.",
		Optional:     true,
		Kind:         KindChannel,
		ChannelTypes: textChannel,
	},
	{
		Key:          "logsChannel",
		Name:         "Logs Channel",
		Description:  "The channel where logs are sent.",
		Optional:     true,
		Kind:         KindChannel,
		ChannelTypes: textChannel,
	},
	{
		Key:         "autoMod",
		Name:        "Auto Moderation",
		Description: "Deletes invite links posted by anyone who isn't a moderator or admin.",
		Kind:        KindBoolean,
	},
}

func keys(items []Item) []string {
	keys := make([]string, 0, len(items))
	for _, it := range items {
		keys = append(keys, it.Key)
	}
	return keys
}

// Prompt returns the question asked for this setting during setup.
func (it Item) Prompt() string {
	var lines []string
	if it.Kind == KindBoolean {
		lines = append(lines, "Would you like "+it.Name+" enabled? (y/n)")
	} else {
		lines = append(lines, "What would you like the "+it.Name+" to be? ("+it.typeHint()+")")
	}
	lines = append(lines, it.Description)

	if it.Optional {
		if it.Key == "prefix" {
			lines = append(lines, "Type `n` if you don't want a custom prefix")
		} else {
			lines = append(lines, "Type `n` if you do not want to set this up.")
		}
	}
	return strings.Join(lines, "\n")
}

func (it Item) typeHint() string {
	switch it.Kind {
	case KindRole:
		return "a role (name/mention/id)"
	case KindRoles:
		n := "multiple"
		if it.Max != -1 {
			n = strconv.Itoa(it.Max)
		}
		return n + " roles (name/mention/id) separated by a comma"
	case KindString:
		if it.Max != -1 {
			return "a string of characters, max length " + strconv.Itoa(it.Max)
		}
		return "a string of characters"
	case KindChannel:
		names := make([]string, 0, len(it.ChannelTypes))
		for _, t := range it.ChannelTypes {
			names = append(names, channelTypeName(t))
		}
		if len(names) <= 1 {
			return "a channel (name/mention/id) with the type " + strings.Join(names, "")
		}
		return "a channel (name/mention/id) with the type " + strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
	default:
		return "y/n"
	}
}

func channelTypeName(t discord.ChannelType) string {
	switch t {
	case discord.GuildText:
		return "text"
	case discord.GuildNews:
		return "news"
	case discord.GuildVoice:
		return "voice"
	case discord.GuildCategory:
		return "category"
	default:
		return "unknown"
	}
}

// value is a resolved setting value.
type value struct {
	str     string
	roles   []discord.RoleID
	channel discord.ChannelID
	enabled bool
}

// apply sets the item's field in e to v.
func (it Item) apply(e *guildconfig.Edit, v value) {
	switch it.Key {
	case "prefix":
		e.Prefix = guildconfig.Some(v.str)
	case "modRoles":
		e.ModRoles = guildconfig.Some(v.roles)
	case "adminRoles":
		e.AdminRoles = guildconfig.Some(v.roles)
	case "memberJoinsChannel":
		e.MemberJoinsChannel = guildconfig.Some(v.channel)
	case "memberLeavesChannel":
		e.MemberLeavesChannel = guildconfig.Some(v.channel)
	case "logsChannel":
		e.LogsChannel = guildconfig.Some(v.channel)
	case "autoMod":
		e.AutoMod = guildconfig.Some(v.enabled)
	}
}

func (it Item) clear(e *guildconfig.Edit) {
	switch it.Key {
	case "prefix":
		e.Prefix = guildconfig.Clear[string]()
	case "modRoles":
		e.ModRoles = guildconfig.Clear[[]discord.RoleID]()
	case "adminRoles":
		e.AdminRoles = guildconfig.Clear[[]discord.RoleID]()
	case "memberJoinsChannel":
		e.MemberJoinsChannel = guildconfig.Clear[discord.ChannelID]()
	case "memberLeavesChannel":
		e.MemberLeavesChannel = guildconfig.Clear[discord.ChannelID]()
	case "logsChannel":
		e.LogsChannel = guildconfig.Clear[discord.ChannelID]()
	case "autoMod":
		e.AutoMod = guildconfig.Clear[bool]()
	}
}
