package itemsincategory

import (
	"github.com/AntonStoeckl/library-circulation-go/features/query/searchitems"
)

// QueryResult represents the items filed under a category.
type QueryResult struct {
	Category string
	Items    []searchitems.ItemInfo
	Count    int
}
