package loanreport

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/core"
)

// Registry defines the interface needed by the QueryHandler.
type Registry interface {
	Users() []*core.User
}

// QueryHandler builds the loan report.
type QueryHandler struct {
	registry Registry
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(registry Registry) QueryHandler {
	return QueryHandler{registry: registry}
}

// Handle projects the loan report from the current registry state.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (QueryResult, error) {
	if err := ctx.Err(); err != nil {
		return QueryResult{}, err
	}

	return Project(h.registry.Users()), nil
}
