package searchitems

const (
	queryType = "SearchItems"
)

// Query represents the intent to search the catalog by title.
type Query struct {
	Text string
}

// BuildQuery creates a new Query with the provided search text.
func BuildQuery(text string) Query {
	return Query{Text: text}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
