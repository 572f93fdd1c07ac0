package meta

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/dop251/goja"
	"github.com/spf13/pflag"
	"github.com/starshine-sys/sentinel/common"
	"github.com/starshine-sys/sentinel/responses"
	"github.com/starshine-sys/sentinel/router"
)

const (
	// maxEvalOutput is the longest output sent as a message, anything longer is uploaded.
	maxEvalOutput = 1250

	defaultEvalTimeout = 5 * time.Second
)

var codeBlockRegex = regexp.MustCompile("(?s)```(?:(\\S+)\\n)?\\s?(.+?)\\s?```")

func (bot *Bot) eval(ctx *router.Context) (err error) {
	fs := pflag.NewFlagSet("eval", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(io.Discard)

	timeout := fs.DurationP("timeout", "t", defaultEvalTimeout, "Maximum time the code can run for")
	silent := fs.BoolP("silent", "s", false, "Don't send the output")

	err = fs.Parse(ctx.Args.Regular)
	if err != nil {
		return responses.CustomMessage("Invalid flags: " + err.Error())
	}

	code := strings.Join(fs.Args(), " ")
	lang := ""
	if m := codeBlockRegex.FindStringSubmatch(code); m != nil {
		lang, code = strings.ToLower(m[1]), m[2]
	}

	var out string
	if lang == "sql" {
		out = bot.evalSQL(ctx.Ctx, code, *timeout)
	} else {
		out = bot.evalJS(ctx, code, *timeout)
	}

	if *silent {
		return nil
	}

	out = bot.redact(out)
	if len(out) > maxEvalOutput {
		url, err := bot.upload(ctx.Ctx, out)
		if err != nil {
			common.Log.Errorf("Error uploading eval output: %v", err)
			return ctx.Reply(responses.Text("Output was too long for hastebin"))
		}
		return ctx.Reply(responses.Text("Output was too long, posted to " + url))
	}

	return ctx.Reply(responses.Text("```js\n" + out + "\n```"))
}

func (bot *Bot) evalSQL(ctx context.Context, query string, timeout time.Duration) string {
	if bot.Query == nil {
		return "Error: no database connection"
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	rows, err := bot.Query.RawQuery(ctx, query)
	if err != nil {
		return "Error: " + err.Error()
	}

	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "Error: " + err.Error()
	}
	return string(b)
}

// evalJS runs code in a new VM. message, args and guild are available as globals.
func (bot *Bot) evalJS(ctx *router.Context, code string, timeout time.Duration) string {
	vm := goja.New()
	vm.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))

	for k, v := range map[string]interface{}{
		"message": ctx.Message.Message,
		"args":    ctx.Args.Regular,
		"guild":   ctx.Guild,
	} {
		err := vm.Set(k, v)
		if err != nil {
			return "Error: " + err.Error()
		}
	}

	timer := time.AfterFunc(timeout, func() {
		vm.Interrupt(fmt.Sprintf("timed out after %v", timeout))
	})
	defer timer.Stop()

	v, err := vm.RunString(code)
	if err != nil {
		return "Error: " + err.Error()
	}
	return inspect(v)
}

func inspect(v goja.Value) string {
	if v == nil {
		return "undefined"
	}
	if goja.IsUndefined(v) || goja.IsNull(v) {
		return v.String()
	}

	switch e := v.Export().(type) {
	case string:
		return e
	case map[string]interface{}, []interface{}:
		b, err := json.MarshalIndent(e, "", "  ")
		if err == nil {
			return string(b)
		}
	}
	return v.String()
}

// redact removes the token, forwards and reversed, from eval output.
func (bot *Bot) redact(s string) string {
	token := bot.Config.Token
	if token == "" {
		return s
	}

	r := []rune(token)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}

	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(token) + "|" + regexp.QuoteMeta(string(r)))
	return re.ReplaceAllString(s, "[TOKEN]")
}

// upload posts s to the paste service and returns its URL.
func (bot *Bot) upload(ctx context.Context, s string) (string, error) {
	base := strings.TrimSuffix(bot.Config.HastebinURL, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/documents", bytes.NewBufferString(s))
	if err != nil {
		return "", errors.Wrap(err, "creating request")
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := bot.HTTP.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "posting document")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("unexpected status %v", resp.Status)
	}

	var doc struct {
		Key string `json:"key"`
	}
	err = json.NewDecoder(resp.Body).Decode(&doc)
	if err != nil {
		return "", errors.Wrap(err, "decoding response")
	}
	if doc.Key == "" {
		return "", errors.New("no key in response")
	}

	return base + "/" + doc.Key, nil
}
