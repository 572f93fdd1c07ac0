package bot

import (
	"os"
	"os/signal"
	"syscall"

	"emperror.dev/errors"
	"github.com/starshine-sys/sentinel/bot"
	"github.com/starshine-sys/sentinel/commands"
	"github.com/starshine-sys/sentinel/common"
	"github.com/starshine-sys/sentinel/events"
	"github.com/starshine-sys/sentinel/web/status"
	"github.com/urfave/cli/v2"
)

var Command = &cli.Command{
	Name:   "bot",
	Usage:  "Run the bot",
	Action: run,
}

func run(c *cli.Context) (err error) {
	conf, err := bot.ReadConfig()
	if err != nil {
		return errors.Wrap(err, "reading config")
	}
	common.InitLog(conf.Debug, conf.Production)

	log := common.Log.Named("init")

	b, err := bot.New(conf)
	if err != nil {
		return errors.Wrap(err, "creating bot")
	}
	defer func() {
		cerr := b.Close()
		if cerr != nil {
			log.Errorf("closing bot: %v", cerr)
		}
		log.Info("Disconnected from Discord.")
	}()
	log.Info("Opened database connection.")

	events.Setup(b)
	err = commands.Setup(b)
	if err != nil {
		return errors.Wrap(err, "adding commands")
	}

	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go b.Stats.Run(ctx)

	if conf.StatusAddr != "" {
		go func() {
			err := status.New(b, b.Start).Listen(ctx, conf.StatusAddr)
			if err != nil {
				log.Errorf("running status server: %v", err)
			}
		}()
	}

	err = b.Open(ctx)
	if err != nil {
		return errors.Wrap(err, "opening gateway connection")
	}

	go b.StatusLoop(ctx)

	log.Info("Connected to Discord. Press Ctrl-C or send an interrupt signal to stop.")

	<-ctx.Done()
	log.Info("Interrupt signal received. Shutting down...")
	return nil
}
