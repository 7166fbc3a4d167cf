package lenditem

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/features"
)

// Library defines the interface needed by the CommandHandler to resolve identifiers.
type Library interface {
	Item(id core.ItemIDString) (core.Item, bool)
	Reader(id core.PersonIDString) (*core.User, bool)
	Librarian(id core.PersonIDString) (*core.Librarian, bool)
}

// CommandHandler lends items to readers.
type CommandHandler struct {
	library Library
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(library Library) CommandHandler {
	return CommandHandler{library: library}
}

// Handle lends the item to the reader, processed by the given librarian.
func (h CommandHandler) Handle(ctx context.Context, command Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	reader, ok := h.library.Reader(command.ReaderID)
	if !ok {
		return errors.Join(features.ErrReaderNotFound, errors.New(command.ReaderID))
	}

	librarian, ok := h.library.Librarian(command.LibrarianID)
	if !ok {
		return errors.Join(features.ErrLibrarianNotFound, errors.New(command.LibrarianID))
	}

	item, _ := h.library.Item(command.ItemID)

	return librarian.ProcessItemLoan(reader, item)
}
