package migrate

import (
	"github.com/starshine-sys/sentinel/bot"
	"github.com/starshine-sys/sentinel/common"
	"github.com/starshine-sys/sentinel/db"
	"github.com/urfave/cli/v2"
)

var Command = &cli.Command{
	Name:   "migrate",
	Usage:  "Run migrations manually",
	Action: run,
	Flags: []cli.Flag{&cli.BoolFlag{
		Name:    "force",
		Aliases: []string{"f"},
		Usage:   "Run migrations whether or not NO_AUTO_MIGRATE is set.",
		Value:   false,
	}},
}

func run(c *cli.Context) error {
	conf, err := bot.ReadConfig()
	if err != nil {
		return cli.Exit("Reading configuration: "+err.Error(), 1)
	}
	common.InitLog(conf.Debug, conf.Production)

	if !conf.NoAutoMigrate && !c.Bool("force") {
		return cli.Exit("Migrations are run automatically, and the --force flag is not set.", 1)
	}

	err = db.RunMigrations(conf.DatabaseURL)
	if err != nil {
		return cli.Exit("Running migrations: "+err.Error(), 1)
	}

	common.Log.Info("Successfully ran migrations!")
	return nil
}
