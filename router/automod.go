package router

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/responses"
)

// automod deletes messages with invite links. It does nothing if the bot can't manage messages in the channel.
func (r *Router) automod(m *Message) (deleted bool, err error) {
	if len(m.Invites()) == 0 {
		return false, nil
	}

	perms, err := r.Client.Permissions(m.ChannelID, r.Bot)
	if err != nil {
		return false, errors.Wrap(err, "fetching permissions")
	}
	if !perms.Has(discord.PermissionManageMessages) {
		return false, nil
	}

	r.Deleted.Add(m.ID)
	err = r.Client.DeleteMessage(m.ChannelID, m.ID, "Automod: invite link")
	if err != nil {
		r.Deleted.Take(m.ID)
		return false, errors.Wrap(err, "deleting message")
	}

	_, err = r.Client.SendMessage(m.ChannelID, responses.InvitesNotAllowed(m.Author).Content)
	if err != nil {
		return true, errors.Wrap(err, "sending message")
	}
	return true, nil
}
