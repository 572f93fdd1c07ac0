package utility

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"emperror.dev/errors"
	"github.com/starshine-sys/sentinel/responses"
	"github.com/starshine-sys/sentinel/router"
)

const lookupTimeout = 10 * time.Second

func (bot *Bot) lookup(ctx *router.Context) error {
	ip := net.ParseIP(ctx.Args.Get(0))
	if ip == nil {
		return responses.ProvideIP()
	}

	c, cancel := context.WithTimeout(ctx.Ctx, lookupTimeout)
	defer cancel()

	err := bot.lookups.Wait(c)
	if err != nil {
		return responses.CustomMessage("Too many lookups right now, please try again later.")
	}

	req, err := http.NewRequestWithContext(c, http.MethodGet, bot.LookupURL+ip.String(), nil)
	if err != nil {
		return errors.Wrap(err, "creating request")
	}

	resp, err := bot.HTTP.Do(req)
	if err != nil {
		return errors.Wrap(err, "looking up ip")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return responses.ProvideIP()
	}
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %v", resp.Status)
	}

	var info responses.IPInfo
	err = json.NewDecoder(resp.Body).Decode(&info)
	if err != nil {
		return errors.Wrap(err, "decoding response")
	}

	if info.Status == "fail" {
		return responses.ProvideIP()
	}
	if info.Query == "" {
		info.Query = ip.String()
	}

	return ctx.Reply(responses.Lookup(info))
}
