// Package responses has every message the bot sends, keyed by response name.
package responses

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/starshine-sys/sentinel/common"
)

// Message is a rendered response.
type Message struct {
	// Name is the response name, for logs and tests.
	Name    string
	Content string
	Embeds  []discord.Embed
}

// Text returns a plain text response with no name.
func Text(s string) Message {
	return Message{Content: s}
}

// Action is a moderation action.
type Action string

const (
	Ban  Action = "ban"
	Kick Action = "kick"
)

// Past returns the past tense of the action.
func (a Action) Past() string {
	switch a {
	case Ban:
		return "banned"
	case Kick:
		return "kicked"
	}
	return string(a) + "ed"
}

// DefaultReason is the audit log reason used if none is given.
const DefaultReason = "No reason provided"

// Prefix is the reply to a bare mention of the bot.
func Prefix(prefix string) Message {
	return Message{Name: "PREFIX", Content: fmt.Sprintf("My prefix is `%v`", prefix)}
}

// UnexpectedError is sent when a command fails with an unexpected error.
// Only the error's type and message are shown, along with an error code to match the reported error.
func UnexpectedError(err error, code string) Message {
	s := "An unexpected error has occurred\n" + errorName(err) + ": " + err.Error()
	if code != "" {
		s += "\nError code: `" + code + "`"
	}
	return Message{Name: "UNEXPECTED_ERROR", Content: s}
}

func errorName(err error) string {
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return "Error"
	}
	return t.Name()
}

// ClientMissingPermissions is sent when the bot lacks the permissions a command needs.
func ClientMissingPermissions(channel, guild discord.Permissions) Message {
	var lines []string
	if guild != 0 {
		lines = append(lines, "I'm missing the following server permissions: "+english.OxfordWordSeries(common.PermStrings(guild), "and"))
	}
	if channel != 0 {
		lines = append(lines, "I'm missing the following channel permissions: "+english.OxfordWordSeries(common.PermStrings(channel), "and"))
	}
	if len(lines) == 0 {
		lines = append(lines, "I'm missing permissions to run this command.")
	}
	return Message{Name: "CLIENT_MISSING_PERMISSIONS", Content: strings.Join(lines, "\n")}
}

func InvitesNotAllowed(u discord.User) Message {
	return Message{Name: "INVITES_NOT_ALLOWED", Content: fmt.Sprintf("%v, invites aren't allowed in this server!", u.Mention())}
}

func SuggestionResponse() Message {
	return Message{Name: "SUGGESTION_RESPONSE", Content: "Thanks for the suggestion! It's been sent to the developers."}
}

func SuggestionLog(u discord.User, content string) Message {
	return Message{Name: "SUGGESTION_LOG", Embeds: []discord.Embed{{
		Author: &discord.EmbedAuthor{
			Name: u.Tag(),
			Icon: u.AvatarURL(),
		},
		Title:       "New suggestion",
		Description: content,
		Color:       common.ColourPurple,
		Footer:      &discord.EmbedFooter{Text: "User ID: " + u.ID.String()},
		Timestamp:   discord.NowTimestamp(),
	}}}
}

// HelpPage is a single page of the command list.
func HelpPage(lines []string, page, total int) Message {
	e := discord.Embed{
		Title:       "Sentinel commands",
		Description: strings.Join(lines, "\n"),
		Color:       common.ColourBlue,
	}
	if total > 1 {
		e.Footer = &discord.EmbedFooter{Text: fmt.Sprintf("Page %d/%d", page, total)}
	}
	return Message{Name: "HELP_PAGE", Embeds: []discord.Embed{e}}
}

func ClientInvite(url string) Message {
	return Message{Name: "CLIENT_INVITE", Content: fmt.Sprintf("Invite me with this link:\n<%v>", url)}
}

func UserAvatar(u discord.User) Message {
	return Message{Name: "USER_AVATAR", Embeds: []discord.Embed{{
		Title: u.Tag() + "'s avatar",
		Image: &discord.EmbedImage{URL: u.AvatarURLWithType(discord.PNGImage) + "?size=1024"},
		Color: common.ColourBlue,
	}}}
}

// IPInfo is a geolocation lookup result.
type IPInfo struct {
	Status     string  `json:"status"`
	Message    string  `json:"message"`
	Query      string  `json:"query"`
	ISP        string  `json:"isp"`
	Country    string  `json:"country"`
	RegionName string  `json:"regionName"`
	City       string  `json:"city"`
	Timezone   string  `json:"timezone"`
	Zip        string  `json:"zip"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Org        string  `json:"org"`
}

func Lookup(info IPInfo) Message {
	return Message{Name: "LOOKUP", Embeds: []discord.Embed{{
		Title: "Lookup for " + info.Query,
		Color: common.ColourBlue,
		Fields: []discord.EmbedField{
			{Name: "ISP", Value: orNone(info.ISP), Inline: true},
			{Name: "Organisation", Value: orNone(info.Org), Inline: true},
			{Name: "Country", Value: orNone(info.Country), Inline: true},
			{Name: "Region", Value: orNone(info.RegionName), Inline: true},
			{Name: "City", Value: orNone(info.City), Inline: true},
			{Name: "Zip", Value: orNone(info.Zip), Inline: true},
			{Name: "Timezone", Value: orNone(info.Timezone), Inline: true},
			{Name: "Coordinates", Value: fmt.Sprintf("%v, %v", info.Lat, info.Lon), Inline: true},
		},
	}}}
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

// relative formats a time as an absolute date followed by a relative time.
func relative(t time.Time) string {
	return fmt.Sprintf("%v\n(%v)", t.UTC().Format("Jan 02 2006, 15:04 MST"), humanize.Time(t))
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
