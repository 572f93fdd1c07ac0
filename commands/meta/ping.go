package meta

import (
	"fmt"
	"runtime"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/dustin/go-humanize"
	"github.com/starshine-sys/sentinel/common"
	"github.com/starshine-sys/sentinel/responses"
	"github.com/starshine-sys/sentinel/router"
)

func (bot *Bot) ping(ctx *router.Context) (err error) {
	stats := runtime.MemStats{}
	runtime.ReadMemStats(&stats)

	t := time.Now()

	_, err = ctx.Send(responses.Text("..."))
	if err != nil {
		return err
	}

	latency := time.Since(t).Round(time.Millisecond)

	e := discord.Embed{
		Color: common.ColourPurple,
		Fields: []discord.EmbedField{
			{
				Name:   "Ping",
				Value:  fmt.Sprintf("Message: %v", latency),
				Inline: true,
			},
			{
				Name:   "Memory usage",
				Value:  fmt.Sprintf("%v / %v", humanize.Bytes(stats.Alloc), humanize.Bytes(stats.Sys)),
				Inline: true,
			},
			{
				Name:   "Goroutines",
				Value:  fmt.Sprint(runtime.NumGoroutine()),
				Inline: true,
			},
			{
				Name: "Uptime",
				Value: fmt.Sprintf(
					"%v\n(Since %v)",
					time.Since(bot.Start).Round(time.Second),
					bot.Start.Format("Jan _2 2006, 15:04:05 MST"),
				),
				Inline: true,
			},
		},
	}

	return ctx.Reply(responses.Message{Name: "PING", Embeds: []discord.Embed{e}})
}
