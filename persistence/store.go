package persistence

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/core"
)

var (
	// ErrPersistenceFailure is wrapped into every I/O or database failure of a Store.
	ErrPersistenceFailure = errors.New("persistence failure")

	// ErrNothingStored is wrapped into a load failure when nothing was ever saved, like on a first run.
	ErrNothingStored = errors.New("nothing stored yet")

	// ErrTransientFailure marks a persistence failure that may succeed when retried,
	// like a locked SQLite database or a serialization failure in Postgres.
	ErrTransientFailure = errors.New("transient persistence failure")

	// ErrUnknownItemType is returned when a stored record carries an unknown type tag.
	ErrUnknownItemType = errors.New("unknown item type")

	// ErrUnknownItemID is returned when a stored reader or category references an item that is not in the catalog.
	ErrUnknownItemID = errors.New("unknown item id")

	// ErrUnsupportedSchemaVersion is returned when stored data was written with an unknown schema version.
	ErrUnsupportedSchemaVersion = errors.New("unsupported schema version")
)

const (
	// SchemaVersion is the version of the record schema written by all engines.
	// Version 2 added loan dates to the item data file and the categories file.
	SchemaVersion = 2

	// SchemaVersionV1 is the first schema version, it is still readable.
	// Its item data file holds only the availability flag of a loan.
	SchemaVersionV1 = 1
)

// ItemResolver finds catalog items by identifier, *core.Catalog implements it.
type ItemResolver interface {
	Item(id core.ItemIDString) (core.Item, bool)
}

// CategoryLister lists categories and their items, *core.Catalog implements it.
type CategoryLister interface {
	Categories() []string
	ItemsByCategory(categoryName string) core.Items
}

// Category is a catalog category together with its items.
type Category struct {
	Name  string
	Items core.Items
}

// Store is the persistence collaborator of the library.
type Store interface {
	SaveItems(ctx context.Context, items core.Items) error
	LoadItems(ctx context.Context) (core.Items, error)
	SaveCategories(ctx context.Context, categories []Category) error
	LoadCategories(ctx context.Context, items ItemResolver) ([]Category, error)
	SaveUsers(ctx context.Context, users []*core.User) error
	LoadUsers(ctx context.Context, items ItemResolver) ([]*core.User, error)
}

// CategoriesFrom collects all categories of the lister, ordered by name.
func CategoriesFrom(lister CategoryLister) []Category {
	names := lister.Categories()
	categories := make([]Category, 0, len(names))

	for _, name := range names {
		categories = append(categories, Category{Name: name, Items: lister.ItemsByCategory(name)})
	}

	return categories
}
