package itemsincategory

const (
	queryType = "ItemsInCategory"
)

// Query represents the intent to list the items of a category.
type Query struct {
	Category string
}

// BuildQuery creates a new Query with the provided category name.
func BuildQuery(category string) Query {
	return Query{Category: category}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
