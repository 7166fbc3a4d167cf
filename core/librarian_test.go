package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/testutil/fixtures"
	"github.com/AntonStoeckl/library-circulation-go/testutil/testdoubles"
)

func Test_ProcessItemLoan_Success(t *testing.T) {
	// arrange
	clock := fixtures.NewFakeClock(fixtures.FixedNow())
	logger := testdoubles.NewLoggerSpy()
	librarian := fixtures.GivenLibrarian(t, clock, core.WithLogger(logger))
	alice := fixtures.GivenUser(t)
	dune := fixtures.GivenBook(t)

	// act
	err := librarian.ProcessItemLoan(alice, dune)

	// assert
	assert.NoError(t, err)
	assert.False(t, dune.IsAvailable())
	assert.Equal(t, core.Items{dune}, alice.BorrowedItems())
	assert.Equal(t, core.Items{dune}, alice.BorrowingHistory())

	transactions := librarian.Transactions()
	assert.Len(t, transactions, 1)
	assert.Contains(t, transactions[0], "Dune")
	assert.Contains(t, transactions[0], "Alice Smith")
	assert.Contains(t, transactions[0], "2026-03-01 10:30:00")
	assert.True(t, logger.HasLog("info", "loan processed"))
}

func Test_ProcessItemLoan_Error_ItemNotFound(t *testing.T) {
	clock := fixtures.NewFakeClock(fixtures.FixedNow())
	librarian := fixtures.GivenLibrarian(t, clock)
	alice := fixtures.GivenUser(t)

	err := librarian.ProcessItemLoan(alice, nil)

	assert.ErrorIs(t, err, core.ErrItemNotFound)
	assert.Empty(t, librarian.Transactions())
}

func Test_ProcessItemLoan_Error_LoanLimitExceeded(t *testing.T) {
	// arrange
	clock := fixtures.NewFakeClock(fixtures.FixedNow())
	librarian := fixtures.GivenLibrarian(t, clock)
	user, _ := fixtures.GivenUserWithLoans(t, librarian, core.MaxLoansPerUser)
	sixth := fixtures.GivenBookTitled(t, "The Sixth Book")

	// act
	err := librarian.ProcessItemLoan(user, sixth)

	// assert
	assert.ErrorIs(t, err, core.ErrLoanLimitExceeded)
	assert.Equal(t, core.MaxLoansPerUser, user.BorrowedCount())
	assert.True(t, sixth.IsAvailable())
	assert.Len(t, librarian.Transactions(), core.MaxLoansPerUser)
}

func Test_ProcessItemLoan_Error_LimitIsCheckedBeforeAvailability(t *testing.T) {
	// arrange
	clock := fixtures.NewFakeClock(fixtures.FixedNow())
	librarian := fixtures.GivenLibrarian(t, clock)
	fullUser, _ := fixtures.GivenUserWithLoans(t, librarian, core.MaxLoansPerUser)
	unavailable := fixtures.GivenBorrowedBook(t, clock.Now())

	// act
	err := librarian.ProcessItemLoan(fullUser, unavailable)

	// assert
	assert.ErrorIs(t, err, core.ErrLoanLimitExceeded)
	assert.NotErrorIs(t, err, core.ErrItemUnavailable)
}

func Test_ProcessItemLoan_Error_NilIsCheckedBeforeLimit(t *testing.T) {
	clock := fixtures.NewFakeClock(fixtures.FixedNow())
	librarian := fixtures.GivenLibrarian(t, clock)
	fullUser, _ := fixtures.GivenUserWithLoans(t, librarian, core.MaxLoansPerUser)

	err := librarian.ProcessItemLoan(fullUser, nil)

	assert.ErrorIs(t, err, core.ErrItemNotFound)
}

func Test_ProcessItemLoan_Error_ItemUnavailable(t *testing.T) {
	// arrange
	clock := fixtures.NewFakeClock(fixtures.FixedNow())
	logger := testdoubles.NewLoggerSpy()
	librarian := fixtures.GivenLibrarian(t, clock, core.WithLogger(logger))
	alice := fixtures.GivenUser(t)
	bob := core.NewUser("Bob", "Brown")
	dune := fixtures.GivenBook(t)
	assert.NoError(t, librarian.ProcessItemLoan(bob, dune), "error in arranging test data")

	// act
	err := librarian.ProcessItemLoan(alice, dune)

	// assert
	assert.ErrorIs(t, err, core.ErrItemUnavailable)
	assert.Zero(t, alice.BorrowedCount())
	assert.Empty(t, alice.BorrowingHistory())
	assert.Len(t, librarian.Transactions(), 1)
	assert.True(t, logger.HasLog("warn", "loan rejected"))
}

func Test_ProcessItemReturn_Success(t *testing.T) {
	// arrange
	clock := fixtures.NewFakeClock(fixtures.FixedNow())
	librarian := fixtures.GivenLibrarian(t, clock)
	alice := fixtures.GivenUser(t)
	dune := fixtures.GivenBook(t)
	assert.NoError(t, librarian.ProcessItemLoan(alice, dune), "error in arranging test data")
	clock.AdvanceDays(10)

	// act
	err := librarian.ProcessItemReturn(alice, dune)

	// assert
	assert.NoError(t, err)
	assert.True(t, dune.IsAvailable())
	assert.Empty(t, alice.BorrowedItems())
	assert.Equal(t, core.Items{dune}, alice.BorrowingHistory(), "history is append-only")

	transactions := librarian.Transactions()
	assert.Len(t, transactions, 2)
	assert.Contains(t, transactions[1], "Return: Dune <- Alice Smith")
}

func Test_ProcessItemReturn_Error_ItemNotFound(t *testing.T) {
	clock := fixtures.NewFakeClock(fixtures.FixedNow())
	librarian := fixtures.GivenLibrarian(t, clock)

	err := librarian.ProcessItemReturn(fixtures.GivenUser(t), nil)

	assert.ErrorIs(t, err, core.ErrItemNotFound)
}

func Test_ProcessItemReturn_Error_NotBorrowedByUser(t *testing.T) {
	// arrange
	clock := fixtures.NewFakeClock(fixtures.FixedNow())
	librarian := fixtures.GivenLibrarian(t, clock)
	alice := fixtures.GivenUser(t)
	bob := core.NewUser("Bob", "Brown")
	dune := fixtures.GivenBook(t)
	assert.NoError(t, librarian.ProcessItemLoan(bob, dune), "error in arranging test data")

	// act
	err := librarian.ProcessItemReturn(alice, dune)

	// assert
	assert.ErrorIs(t, err, core.ErrNotBorrowedByUser)
	assert.False(t, dune.IsAvailable())
	assert.True(t, bob.HasBorrowed(dune.ID()))
}

func Test_ProcessItemReturn_Error_OverdueKeepsItemBorrowed(t *testing.T) {
	// arrange
	clock := fixtures.NewFakeClock(fixtures.FixedNow())
	librarian := fixtures.GivenLibrarian(t, clock)
	alice := fixtures.GivenUser(t)
	dune := fixtures.GivenBook(t)
	assert.NoError(t, librarian.ProcessItemLoan(alice, dune), "error in arranging test data")
	clock.AdvanceDays(33)

	// act
	err := librarian.ProcessItemReturn(alice, dune)

	// assert
	assert.ErrorIs(t, err, core.ErrOverdue)
	assert.EqualError(t, err, "item is overdue by 3 days")
	assert.True(t, alice.HasBorrowed(dune.ID()))
	assert.False(t, dune.IsAvailable())
	assert.Len(t, librarian.Transactions(), 1)
}

func Test_ProcessLoanExtension_ResolvesOverdue(t *testing.T) {
	// arrange
	clock := fixtures.NewFakeClock(fixtures.FixedNow())
	librarian := fixtures.GivenLibrarian(t, clock)
	alice := fixtures.GivenUser(t)
	dune := fixtures.GivenBook(t)
	assert.NoError(t, librarian.ProcessItemLoan(alice, dune), "error in arranging test data")
	clock.AdvanceDays(33)

	// act
	err := librarian.ProcessLoanExtension(alice, dune, 3)

	// assert
	assert.NoError(t, err)
	assert.False(t, dune.IsOverdue(clock.Now()))
	assert.NoError(t, librarian.ProcessItemReturn(alice, dune))
	assert.Len(t, librarian.Transactions(), 3)
	assert.Contains(t, librarian.Transactions()[1], "Extension: Dune +3d for Alice Smith")
}

func Test_ProcessLoanExtension_Errors(t *testing.T) {
	clock := fixtures.NewFakeClock(fixtures.FixedNow())
	librarian := fixtures.GivenLibrarian(t, clock)
	alice := fixtures.GivenUser(t)
	dune := fixtures.GivenBook(t)

	assert.ErrorIs(t, librarian.ProcessLoanExtension(alice, nil, 1), core.ErrItemNotFound)
	assert.ErrorIs(t, librarian.ProcessLoanExtension(alice, dune, 1), core.ErrNotBorrowedByUser)

	assert.NoError(t, librarian.ProcessItemLoan(alice, dune), "error in arranging test data")
	assert.ErrorIs(t, librarian.ProcessLoanExtension(alice, dune, -1), core.ErrInvalidArgument)
	assert.Len(t, librarian.Transactions(), 1)
}

func Test_ProcessAll_Error_NilUser(t *testing.T) {
	// arrange
	clock := fixtures.NewFakeClock(fixtures.FixedNow())
	logger := testdoubles.NewLoggerSpy()
	librarian := fixtures.GivenLibrarian(t, clock, core.WithLogger(logger))
	dune := fixtures.GivenBook(t)

	// act
	loanErr := librarian.ProcessItemLoan(nil, dune)
	returnErr := librarian.ProcessItemReturn(nil, dune)
	extensionErr := librarian.ProcessLoanExtension(nil, nil, 1)

	// assert
	assert.ErrorIs(t, loanErr, core.ErrInvalidArgument)
	assert.ErrorIs(t, returnErr, core.ErrInvalidArgument)
	assert.ErrorIs(t, extensionErr, core.ErrInvalidArgument)
	assert.True(t, dune.IsAvailable())
	assert.Empty(t, librarian.Transactions())
	assert.True(t, logger.HasLog("warn", "loan rejected"))
	assert.True(t, logger.HasLog("warn", "return rejected"))
}

func Test_BorrowingHistory_KeepsDuplicatesInOrder(t *testing.T) {
	clock := fixtures.NewFakeClock(fixtures.FixedNow())
	librarian := fixtures.GivenLibrarian(t, clock)
	alice := fixtures.GivenUser(t)
	dune := fixtures.GivenBook(t)
	magazine := fixtures.GivenMagazine(t)

	assert.NoError(t, librarian.ProcessItemLoan(alice, dune))
	assert.NoError(t, librarian.ProcessItemReturn(alice, dune))
	assert.NoError(t, librarian.ProcessItemLoan(alice, magazine))
	assert.NoError(t, librarian.ProcessItemLoan(alice, dune))

	assert.Equal(t, core.Items{dune, magazine, dune}, alice.BorrowingHistory())
	assert.Equal(t, core.Items{magazine, dune}, alice.BorrowedItems())
}
