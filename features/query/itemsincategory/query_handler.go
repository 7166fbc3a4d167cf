package itemsincategory

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/features/query/searchitems"
)

// Catalog defines the interface needed by the QueryHandler.
type Catalog interface {
	ItemsByCategory(categoryName string) core.Items
}

// QueryHandler lists the items of a category.
type QueryHandler struct {
	catalog Catalog
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(catalog Catalog) QueryHandler {
	return QueryHandler{catalog: catalog}
}

// Handle returns the items filed under the category, ordered by id.
func (h QueryHandler) Handle(ctx context.Context, query Query) (QueryResult, error) {
	if err := ctx.Err(); err != nil {
		return QueryResult{}, err
	}

	infos := searchitems.ItemInfosFrom(h.catalog.ItemsByCategory(query.Category))

	return QueryResult{
		Category: query.Category,
		Items:    infos,
		Count:    len(infos),
	}, nil
}
