package searchitems

import (
	"github.com/AntonStoeckl/library-circulation-go/core"
)

// ItemInfo represents one catalog item in a query result.
type ItemInfo struct {
	ItemID            core.ItemIDString
	Kind              core.ItemKind
	Title             string
	YearOfPublication int
	Available         bool
}

// QueryResult represents the items matching a search.
type QueryResult struct {
	Items []ItemInfo
	Count int
}

// ItemInfosFrom converts catalog items to their query result representation.
func ItemInfosFrom(items core.Items) []ItemInfo {
	infos := make([]ItemInfo, 0, len(items))

	for _, item := range items {
		infos = append(infos, ItemInfo{
			ItemID:            item.ID(),
			Kind:              item.Kind(),
			Title:             item.Title(),
			YearOfPublication: item.YearOfPublication(),
			Available:         item.IsAvailable(),
		})
	}

	return infos
}
