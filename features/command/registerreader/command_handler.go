package registerreader

import (
	"context"
	"errors"
	"strings"

	"github.com/AntonStoeckl/library-circulation-go/core"
)

// Registry defines the interface needed by the CommandHandler.
type Registry interface {
	RegisterUser(user *core.User)
}

// CommandHandler registers new readers.
type CommandHandler struct {
	registry Registry
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(registry Registry) CommandHandler {
	return CommandHandler{registry: registry}
}

// Handle registers a reader with a freshly generated identifier and returns it.
func (h CommandHandler) Handle(ctx context.Context, command Command) (*core.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(command.LastName) == "" {
		return nil, errors.Join(core.ErrInvalidArgument, errors.New("last name must not be empty"))
	}

	user := core.NewUser(command.FirstName, command.LastName)
	h.registry.RegisterUser(user)

	return user, nil
}
