package command

import (
	"aquabot/internal/core/domain"
	"aquabot/internal/core/port"
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
)

type Registry struct {
	commands map[string]port.Command
	mutex    sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]port.Command)}
}

func (r *Registry) Register(command string, handler port.Command) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.commands == nil {
		r.commands = make(map[string]port.Command)
	}

	if _, exists := r.commands[command]; exists {
		log.Warn().Str("handler", command).Msg("replacing existing command handler")
	} else {
		log.Info().Str("handler", command).Msg("adding command handler to registry")
	}

	r.commands[command] = handler
}

func (r *Registry) Get(command string) (port.Command, error) {
	log.Debug().Str("command", command).Msg("fetching command handler from registry")

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if r.commands == nil {
		return nil, errors.New("can't fetch command, registry not initialized")
	}

	handler, ok := r.commands[command]
	if !ok {
		return nil, domain.ErrDispatchMiss
	}

	return handler, nil
}

// Dispatch runs the handler registered for cmd.Command. A handler error is logged and
// still counts as a match.
func (r *Registry) Dispatch(ctx context.Context, bot port.Messenger, cmd domain.BotCommand) bool {
	if cmd.Command == "" {
		return false
	}

	handler, err := r.Get(cmd.Command)
	if err != nil {
		return false
	}

	if err := handler.Respond(ctx, bot, cmd); err != nil {
		log.Err(err).
			Str("command", cmd.Command).
			Str("parameter", cmd.Parameter).
			Msg("failed to respond to command")
	}

	return true
}

func (r *Registry) ListCommands() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	keys := make([]string, 0, len(r.commands))
	for k := range r.commands {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
