package lenditem_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/features"
	"github.com/AntonStoeckl/library-circulation-go/features/command/lenditem"
	"github.com/AntonStoeckl/library-circulation-go/shell"
	"github.com/AntonStoeckl/library-circulation-go/testutil/fixtures"
	"github.com/AntonStoeckl/library-circulation-go/testutil/testdoubles"
)

type testEnvironment struct {
	library   *shell.Library
	clock     *fixtures.FakeClock
	librarian *core.Librarian
	reader    *core.User
	book      *core.Book
	handler   lenditem.CommandHandler
}

func setupTestEnvironment(t *testing.T) testEnvironment {
	t.Helper()

	env := testEnvironment{
		library: shell.NewLibrary(testdoubles.NewStoreStub()),
		clock:   fixtures.NewFakeClock(fixtures.FixedNow()),
		reader:  fixtures.GivenUser(t),
		book:    fixtures.GivenBook(t),
	}
	env.librarian = fixtures.GivenLibrarian(t, env.clock)
	env.library.HireLibrarian(env.librarian)
	env.library.RegisterUser(env.reader)
	env.library.AddItem(env.book)
	env.handler = lenditem.NewCommandHandler(env.library)

	return env
}

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	env := setupTestEnvironment(t)

	// act
	err := env.handler.Handle(context.Background(),
		lenditem.BuildCommand(env.book.ID(), env.reader.ID(), env.librarian.ID()))

	// assert
	require.NoError(t, err)
	assert.False(t, env.book.IsAvailable())
	assert.True(t, env.reader.HasBorrowed(env.book.ID()))
	assert.Equal(t, 30, env.book.DaysToReturn(env.clock.Now()))
}

func Test_CommandHandler_Handle_Error_UnknownItem(t *testing.T) {
	env := setupTestEnvironment(t)

	err := env.handler.Handle(context.Background(),
		lenditem.BuildCommand("no-such-item", env.reader.ID(), env.librarian.ID()))

	assert.ErrorIs(t, err, core.ErrItemNotFound)
	assert.Zero(t, env.reader.BorrowedCount())
}

func Test_CommandHandler_Handle_Error_UnknownReader(t *testing.T) {
	env := setupTestEnvironment(t)

	err := env.handler.Handle(context.Background(),
		lenditem.BuildCommand(env.book.ID(), "Nob-unknown", env.librarian.ID()))

	assert.ErrorIs(t, err, features.ErrReaderNotFound)
	assert.True(t, env.book.IsAvailable())
}

func Test_CommandHandler_Handle_Error_UnknownLibrarian(t *testing.T) {
	env := setupTestEnvironment(t)

	err := env.handler.Handle(context.Background(),
		lenditem.BuildCommand(env.book.ID(), env.reader.ID(), "Nob-unknown"))

	assert.ErrorIs(t, err, features.ErrLibrarianNotFound)
}

func Test_CommandHandler_Handle_Error_ItemUnavailable(t *testing.T) {
	// arrange
	env := setupTestEnvironment(t)
	other := core.NewUser("Bob", "Brown")
	env.library.RegisterUser(other)
	require.NoError(t, env.handler.Handle(context.Background(),
		lenditem.BuildCommand(env.book.ID(), other.ID(), env.librarian.ID())), "error in arranging test data")

	// act
	err := env.handler.Handle(context.Background(),
		lenditem.BuildCommand(env.book.ID(), env.reader.ID(), env.librarian.ID()))

	// assert
	assert.ErrorIs(t, err, core.ErrItemUnavailable)
	assert.False(t, env.reader.HasBorrowed(env.book.ID()))
}
