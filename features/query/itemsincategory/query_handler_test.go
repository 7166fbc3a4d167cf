package itemsincategory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/features/query/itemsincategory"
	"github.com/AntonStoeckl/library-circulation-go/shell"
	"github.com/AntonStoeckl/library-circulation-go/testutil/fixtures"
	"github.com/AntonStoeckl/library-circulation-go/testutil/testdoubles"
)

func Test_QueryHandler_Handle(t *testing.T) {
	library := shell.NewLibrary(testdoubles.NewStoreStub())
	dune := fixtures.GivenBook(t)
	magazine := fixtures.GivenMagazine(t)
	library.AddItem(dune)
	library.AddItem(magazine)
	library.AddToCategory("Science", dune)
	library.AddToCategory("Science", magazine)
	library.AddToCategory("Science", dune)

	result, err := itemsincategory.NewQueryHandler(library).Handle(context.Background(), itemsincategory.BuildQuery("Science"))

	require.NoError(t, err)
	assert.Equal(t, 2, result.Count, "adding an item twice to a category keeps it once")
	assert.Equal(t, "Science", result.Category)
}

func Test_QueryHandler_Handle_UnknownCategory(t *testing.T) {
	library := shell.NewLibrary(testdoubles.NewStoreStub())

	result, err := itemsincategory.NewQueryHandler(library).Handle(context.Background(), itemsincategory.BuildQuery("Poetry"))

	require.NoError(t, err)
	assert.Zero(t, result.Count)
	assert.NotNil(t, result.Items)
}
