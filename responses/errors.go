package responses

import (
	"fmt"
	"strings"

	"github.com/diamondburned/arikawa/v3/discord"
)

// SendFunc sends a response for a command, editing the command's previous response if it has one.
type SendFunc func(Message) (*discord.Message, error)

// CommandError is an expected, user-facing command failure.
// Its message is sent as-is, never reported.
type CommandError struct {
	Name    string
	Message string

	// DM sends the error to the invoking user in a direct message, rather than the channel.
	DM bool
	// Send, if set, is used to send the error instead of the default destination.
	Send SendFunc
}

func (e *CommandError) Error() string {
	return e.Message
}

// DMError marks the error to be sent in a direct message.
func (e *CommandError) DMError() *CommandError {
	e.DM = true
	return e
}

// WithSend binds a send function to the error.
func (e *CommandError) WithSend(send SendFunc) *CommandError {
	e.Send = send
	return e
}

// Response returns the error as a response message.
func (e *CommandError) Response() Message {
	return Message{Name: e.Name, Content: e.Message}
}

func newError(name, format string, args ...interface{}) *CommandError {
	return &CommandError{Name: name, Message: fmt.Sprintf(format, args...)}
}

// NoPermission is returned when the actor may not use a command.
func NoPermission() *CommandError {
	return newError("NO_PERMISSION", "You don't have permissions to use this command!")
}

func SayNoArgs() *CommandError {
	return newError("SAY_NO_ARGS", "Please provide something to say!")
}

// InvalidMode is returned for an unknown command mode. provided may be empty.
func InvalidMode(modes []string, provided string) *CommandError {
	if provided == "" {
		return newError("INVALID_MODE", "Please provide a mode for this command, try one of %v.", codeList(modes))
	}
	return newError("INVALID_MODE", "Mode `%v` is not a valid mode for this command, try one of %v.", provided, codeList(modes))
}

func InvalidSetting(settings []string) *CommandError {
	return newError("INVALID_SETTING", "Please provide a valid setting, try one of %v.", codeList(settings))
}

// CustomMessage wraps an arbitrary message.
func CustomMessage(s string) *CommandError {
	return &CommandError{Name: "CUSTOM_MESSAGE", Message: s}
}

// UnknownUser is returned when a mentioned user doesn't exist. id is the raw ID as supplied.
func UnknownUser(id string) *CommandError {
	return newError("UNKNOWN_USER", "I couldn't find a user with the ID `%v`.", id)
}

func MentionMember(action Action) *CommandError {
	return newError("MENTION_MEMBER", "Please mention a member of this server to %v.", action)
}

// NotManageable is returned when the target of a moderation action is above the actor, or the bot if byBot is set.
func NotManageable(action Action, byBot bool) *CommandError {
	if byBot {
		return newError("NOT_MANAGEABLE", "I can't %v that member, their highest role is above mine.", action)
	}
	return newError("NOT_MANAGEABLE", "You can't %v that member, their highest role is above yours.", action)
}

func MentionRole() *CommandError {
	return newError("MENTION_ROLE", "Please provide a role (name, mention or ID).")
}

func ProvideIP() *CommandError {
	return newError("PROVIDE_IP", "Please provide a valid IP address.")
}

func ProvideSuggestion() *CommandError {
	return newError("PROVIDE_SUGGESTION", "Please provide a suggestion!")
}

func MaxMessageLength() *CommandError {
	return newError("MAX_MESSAGE_LENGTH", "Your message is too long, it must be under 1024 characters.")
}

func codeList(s []string) string {
	quoted := make([]string, len(s))
	for i := range s {
		quoted[i] = "`" + s[i] + "`"
	}
	return strings.Join(quoted, ", ")
}
