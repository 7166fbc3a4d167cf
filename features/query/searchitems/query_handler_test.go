package searchitems_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/features/query/searchitems"
	"github.com/AntonStoeckl/library-circulation-go/shell"
	"github.com/AntonStoeckl/library-circulation-go/testutil/fixtures"
	"github.com/AntonStoeckl/library-circulation-go/testutil/testdoubles"
)

func Test_QueryHandler_Handle_MatchesTitleIgnoringCase(t *testing.T) {
	// arrange
	library := shell.NewLibrary(testdoubles.NewStoreStub())
	dune := fixtures.GivenBook(t)
	library.AddItem(dune)
	library.AddItem(fixtures.GivenBookTitled(t, "Solaris"))
	library.AddItem(fixtures.GivenMagazine(t))

	// act
	result, err := searchitems.NewQueryHandler(library).Handle(context.Background(), searchitems.BuildQuery("DUN"))

	// assert
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, searchitems.ItemInfo{
		ItemID:            dune.ID(),
		Kind:              core.KindBook,
		Title:             "Dune",
		YearOfPublication: 1965,
		Available:         true,
	}, result.Items[0])
}

func Test_QueryHandler_Handle_NoMatch(t *testing.T) {
	library := shell.NewLibrary(testdoubles.NewStoreStub())
	library.AddItem(fixtures.GivenBook(t))

	result, err := searchitems.NewQueryHandler(library).Handle(context.Background(), searchitems.BuildQuery("Foundation"))

	require.NoError(t, err)
	assert.Zero(t, result.Count)
	assert.Empty(t, result.Items)
}
