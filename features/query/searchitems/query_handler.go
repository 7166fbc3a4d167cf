package searchitems

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/core"
)

// Catalog defines the interface needed by the QueryHandler.
type Catalog interface {
	SearchItems(query string) core.Items
}

// QueryHandler searches the catalog.
type QueryHandler struct {
	catalog Catalog
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(catalog Catalog) QueryHandler {
	return QueryHandler{catalog: catalog}
}

// Handle returns the items whose title contains the search text, ignoring case.
func (h QueryHandler) Handle(ctx context.Context, query Query) (QueryResult, error) {
	if err := ctx.Err(); err != nil {
		return QueryResult{}, err
	}

	infos := ItemInfosFrom(h.catalog.SearchItems(query.Text))

	return QueryResult{
		Items: infos,
		Count: len(infos),
	}, nil
}
