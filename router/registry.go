package router

import (
	"strings"
	"sync"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
)

// ErrDuplicateCommand is returned when two commands share a name or alias.
const ErrDuplicateCommand = errors.Sentinel("duplicate command name or alias")

// Registry holds all commands. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]*Command
	// order is registration order, used for the alias scan and help.
	order []*Command
}

// NewRegistry returns a registry holding the given commands.
func NewRegistry(cmds ...*Command) (*Registry, error) {
	r := &Registry{}
	err := r.Reload(func() ([]*Command, error) { return cmds, nil })
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Reload drops every command, re-runs discover, and swaps in the result.
// If discover fails or returns conflicting commands, the registry is left unchanged.
func (r *Registry) Reload(discover func() ([]*Command, error)) error {
	cmds, err := discover()
	if err != nil {
		return errors.Wrap(err, "discovering commands")
	}

	commands, order, err := build(cmds)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.commands, r.order = commands, order
	r.mu.Unlock()
	return nil
}

func build(cmds []*Command) (map[string]*Command, []*Command, error) {
	commands := make(map[string]*Command, len(cmds))
	names := make(map[string]struct{}, len(cmds))
	order := make([]*Command, 0, len(cmds))

	for _, cmd := range cmds {
		name := strings.ToLower(cmd.Name)
		if name == "" {
			return nil, nil, errors.New("command has no name")
		}

		for _, n := range append([]string{name}, cmd.Aliases...) {
			n = strings.ToLower(n)
			if _, ok := names[n]; ok {
				return nil, nil, errors.WithDetails(ErrDuplicateCommand, "name", n)
			}
			names[n] = struct{}{}
		}

		commands[name] = cmd
		order = append(order, cmd)
	}
	return commands, order, nil
}

// Resolve finds a command by name, then by alias. name must be lowercase.
func (r *Registry) Resolve(name string) *Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if cmd, ok := r.commands[name]; ok {
		return cmd
	}

	for _, cmd := range r.order {
		for _, alias := range cmd.Aliases {
			if strings.EqualFold(alias, name) {
				return cmd
			}
		}
	}
	return nil
}

// Commands returns all commands in registration order.
func (r *Registry) Commands() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Command(nil), r.order...)
}

// Permissions returns the union of every command's bot permissions.
func (r *Registry) Permissions() (p discord.Permissions) {
	for _, cmd := range r.Commands() {
		p |= cmd.BotPermissions()
	}
	return p
}
