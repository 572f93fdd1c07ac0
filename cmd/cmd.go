// Package cmd is the sentinel command line.
package cmd

import (
	"os"

	"github.com/starshine-sys/sentinel/cmd/bot"
	"github.com/starshine-sys/sentinel/cmd/migrate"
	"github.com/starshine-sys/sentinel/common"
	"github.com/urfave/cli/v2"
)

var app = &cli.App{
	Name:    "Sentinel",
	Usage:   "Discord moderation bot",
	Version: common.Version(),

	Commands: []*cli.Command{
		bot.Command,
		migrate.Command,
	},
}

func Run() error {
	return app.Run(os.Args)
}
