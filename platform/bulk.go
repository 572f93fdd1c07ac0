package platform

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/common"
)

// BulkDelete deletes all the given messages, in batches of at most MaxBulkDelete.
// A batch with a single message falls back to a normal delete, as bulk deletes need at least two.
func BulkDelete(c Client, channelID discord.ChannelID, ids []discord.MessageID, reason string) error {
	for _, batch := range common.Chunk(ids, MaxBulkDelete) {
		var err error
		switch len(batch) {
		case 0:
			continue
		case 1:
			err = c.DeleteMessage(channelID, batch[0], reason)
		default:
			err = c.DeleteMessages(channelID, batch, reason)
		}
		if err != nil {
			return errors.Wrap(err, "deleting messages")
		}
	}
	return nil
}
