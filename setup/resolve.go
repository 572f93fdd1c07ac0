package setup

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/dustin/go-humanize/english"
	"github.com/starshine-sys/sentinel/arguments"
	"github.com/starshine-sys/sentinel/common"
)

// SendPermissions are the permissions the bot needs in a log channel.
const SendPermissions = discord.PermissionViewChannel | discord.PermissionSendMessages | discord.PermissionEmbedLinks

var trueValues = []string{"y", "yes", "enable", "enabled"}

// resolve resolves and validates input for the item.
// problem is non-empty if the input is invalid; err is only set if fetching guild state failed.
func (e *Engine) resolve(it Item, guildID discord.GuildID, input, suffix string) (v value, problem string, err error) {
	input = strings.TrimSpace(input)

	switch it.Kind {
	case KindBoolean:
		v.enabled = common.Contains(trueValues, strings.ToLower(input))
		return v, "", nil

	case KindString:
		if it.Max != -1 && utf8.RuneCountInString(input) > it.Max {
			return v, "That string is too long" + suffix + ".", nil
		}
		v.str = input
		return v, "", nil

	case KindRole, KindRoles:
		roles, err := e.Client.Roles(guildID)
		if err != nil {
			return v, "", errors.Wrap(err, "fetching roles")
		}

		if it.Kind == KindRole {
			r, ok := arguments.ResolveRole(roles, input)
			if !ok {
				return v, "That is not a valid role" + suffix + ".", nil
			}
			v.roles = []discord.RoleID{r.ID}
			return v, "", nil
		}

		problem := "You provided an invalid role"
		if it.Max != -1 {
			problem += ", or too many roles (max: " + strconv.Itoa(it.Max) + ")"
		}
		problem += suffix + "."

		for _, s := range strings.Split(input, ",") {
			r, ok := arguments.ResolveRole(roles, s)
			if !ok {
				return value{}, problem, nil
			}
			if !common.Contains(v.roles, r.ID) {
				v.roles = append(v.roles, r.ID)
			}
		}
		if it.Max != -1 && len(v.roles) > it.Max {
			return value{}, problem, nil
		}
		return v, "", nil

	case KindChannel:
		channels, err := e.Client.Channels(guildID)
		if err != nil {
			return v, "", errors.Wrap(err, "fetching channels")
		}

		ch, ok := arguments.ResolveChannel(channels, input, it.ChannelTypes...)
		if !ok {
			return v, "That is not a valid channel" + suffix + ".", nil
		}

		perms, err := e.Client.Permissions(ch.ID, e.Bot)
		if err != nil {
			return v, "", errors.Wrap(err, "fetching channel permissions")
		}
		if !perms.Has(SendPermissions) && !perms.Has(discord.PermissionAdministrator) {
			return v, "I need the " + english.OxfordWordSeries(common.PermStrings(SendPermissions), "and") + " permissions for that channel", nil
		}

		v.channel = ch.ID
		return v, "", nil
	}

	return v, "", errors.Errorf("unknown setting kind %d", it.Kind)
}
