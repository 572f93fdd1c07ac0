package meta

import (
	"strconv"

	"github.com/starshine-sys/sentinel/permissions"
	"github.com/starshine-sys/sentinel/responses"
	"github.com/starshine-sys/sentinel/router"
)

// helpPageSize is the number of commands per help page.
const helpPageSize = 6

func (bot *Bot) help(ctx *router.Context) error {
	pages := bot.helpPages(ctx)

	page := 1
	if n, err := strconv.Atoi(ctx.Args.Get(0)); err == nil && n >= 1 && n <= len(pages) {
		page = n
	}

	return ctx.Reply(responses.HelpPage(pages[page-1], page, len(pages)))
}

// helpPages lists the commands the actor can use, grouped by category.
func (bot *Bot) helpPages(ctx *router.Context) [][]string {
	var (
		categories []string
		byCategory = map[string][]*router.Command{}
	)
	for _, cmd := range bot.Router.Registry.Commands() {
		c := cmd.CategoryName()
		if _, ok := byCategory[c]; !ok {
			categories = append(categories, c)
		}
		byCategory[c] = append(byCategory[c], cmd)
	}

	pages := [][]string{nil}
	for _, c := range categories {
		for _, cmd := range byCategory[c] {
			if !ctx.InGuild() && !cmd.DMAllowed {
				continue
			}
			if cmd.Permissions.Evaluate(ctx.Actor).Kind != permissions.Allowed {
				continue
			}

			if len(pages[len(pages)-1]) == helpPageSize {
				pages = append(pages, nil)
			}
			pages[len(pages)-1] = append(pages[len(pages)-1], helpLine(ctx.Prefix, cmd))
		}
	}
	return pages
}

func helpLine(prefix string, cmd *router.Command) string {
	s := prefix + cmd.Name + " "
	if cmd.Usage != "" {
		s += cmd.Usage + " "
	}
	return s + "- " + cmd.Description
}
