package responses

import (
	"testing"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
)

func TestInvalidMode(t *testing.T) {
	modes := []string{"view", "setup", "edit"}

	assert.Equal(t, "Please provide a mode for this command, try one of `view`, `setup`, `edit`.", InvalidMode(modes, "").Message)
	assert.Equal(t, "Mode `nope` is not a valid mode for this command, try one of `view`, `setup`, `edit`.", InvalidMode(modes, "nope").Message)
}

type customError struct{}

func (customError) Error() string { return "something broke" }

func TestUnexpectedError(t *testing.T) {
	m := UnexpectedError(&customError{}, "")
	assert.Equal(t, "An unexpected error has occurred\ncustomError: something broke", m.Content)

	m = UnexpectedError(errors.New("oh no"), "abc")
	assert.Contains(t, m.Content, "oh no")
	assert.Contains(t, m.Content, "`abc`")
}

func TestCommandError(t *testing.T) {
	err := UnknownUser("999")
	assert.Equal(t, "UNKNOWN_USER", err.Name)
	assert.Contains(t, err.Error(), "999")
	assert.False(t, err.DM)

	var target *CommandError
	assert.True(t, errors.As(errors.WithStack(err.DMError()), &target))
	assert.True(t, target.DM)
}

func TestClientMissingPermissions(t *testing.T) {
	m := ClientMissingPermissions(discord.PermissionSendMessages|discord.PermissionEmbedLinks, discord.PermissionBanMembers)
	assert.Equal(t, "I'm missing the following server permissions: Ban Members\n"+
		"I'm missing the following channel permissions: Embed Links and Send Messages", m.Content)
}

func TestRemovedUser(t *testing.T) {
	users := []discord.User{{ID: 1, Username: "a", Discriminator: "0001"}}

	assert.Equal(t, "Successfully banned a#0001 (<@1>) for `spam`", RemovedUser(Ban, users, "spam").Content)
	assert.Equal(t, "Successfully kicked a#0001 (<@1>)", RemovedUser(Kick, users, "").Content)
}
