package additem

import (
	"context"
	"errors"
	"strings"

	"github.com/AntonStoeckl/library-circulation-go/core"
)

// Catalog defines the interface needed by the CommandHandler.
type Catalog interface {
	AddItem(item core.Item)
	AddToCategory(categoryName string, item core.Item)
}

// CommandHandler creates items and adds them to the catalog.
type CommandHandler struct {
	catalog Catalog
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(catalog Catalog) CommandHandler {
	return CommandHandler{catalog: catalog}
}

// Handle creates the item described by the command and returns it.
func (h CommandHandler) Handle(ctx context.Context, command Command) (core.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(command.Title) == "" {
		return nil, errors.Join(core.ErrInvalidArgument, errors.New("title must not be empty"))
	}

	var item core.Item
	categories := command.Categories

	switch command.Kind {
	case core.KindBook:
		item = core.NewBook(command.Title, command.Author, command.Genre, command.YearOfPublication)
		if command.Genre != "" {
			categories = append([]string{command.Genre}, categories...)
		}

	case core.KindMagazine:
		item = core.NewMagazine(command.Title, command.YearOfPublication, command.IssueNumber, command.Publisher)

	default:
		return nil, errors.Join(core.ErrInvalidArgument, errors.New("unknown item kind: "+string(command.Kind)))
	}

	h.catalog.AddItem(item)

	for _, category := range categories {
		if category != "" {
			h.catalog.AddToCategory(category, item)
		}
	}

	return item, nil
}
