package guildconfig

import (
	"fmt"

	"emperror.dev/errors"
)

// ErrNotFound is returned by a Backend when a guild has no stored config.
const ErrNotFound = errors.Sentinel("guild config not found")

// InvalidReferenceError is returned by Store.Edit when a role or channel doesn't exist in the guild,
// or a channel isn't a text channel.
type InvalidReferenceError struct {
	Field    string
	Expected string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("supplied %s is not %s", e.Field, e.Expected)
}
