package loanreport

const (
	queryType = "LoanReport"
)

// Query represents the intent to build the loan report.
type Query struct{}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
