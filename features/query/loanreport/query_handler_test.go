package loanreport_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/features/query/loanreport"
	"github.com/AntonStoeckl/library-circulation-go/shell"
	"github.com/AntonStoeckl/library-circulation-go/testutil/fixtures"
	"github.com/AntonStoeckl/library-circulation-go/testutil/testdoubles"
)

func Test_QueryHandler_Handle(t *testing.T) {
	// arrange
	clock := fixtures.NewFakeClock(time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC))
	librarian := fixtures.GivenLibrarian(t, clock)
	library := shell.NewLibrary(testdoubles.NewStoreStub())

	alice := fixtures.GivenUser(t)
	bob := core.NewUser("Bob", "Brown")
	carol := core.NewUser("Carol", "White")
	dune := fixtures.GivenBook(t)
	solaris := fixtures.GivenBookTitled(t, "Solaris")
	magazine := fixtures.GivenMagazine(t)

	for _, user := range []*core.User{alice, bob, carol} {
		library.RegisterUser(user)
	}

	require.NoError(t, librarian.ProcessItemLoan(alice, dune), "error in arranging test data")
	clock.AdvanceDays(1)
	require.NoError(t, librarian.ProcessItemLoan(alice, magazine), "error in arranging test data")
	require.NoError(t, librarian.ProcessItemLoan(carol, solaris), "error in arranging test data")

	// act
	result, err := loanreport.NewQueryHandler(library).Handle(context.Background(), loanreport.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count, "readers without loans are left out")
	assert.Equal(t,
		"=== Loan Report ===\n\n"+
			"Reader: Alice Smith\n"+
			"- Dune (due: 2026-11-14)\n"+
			"- National Geographic (due: 2026-11-15)\n"+
			"\n"+
			"Reader: Carol White\n"+
			"- Solaris (due: 2026-11-15)\n"+
			"\n",
		result.Text())
}

func Test_Project_NoLoans(t *testing.T) {
	result := loanreport.Project([]*core.User{fixtures.GivenUser(t)})

	assert.Zero(t, result.Count)
	assert.Equal(t, "=== Loan Report ===\n\n", result.Text())
}

func Test_Project_IsAPureRead(t *testing.T) {
	clock := fixtures.NewFakeClock(fixtures.FixedNow())
	alice := fixtures.GivenUser(t)
	dune := fixtures.GivenBook(t)
	require.NoError(t, fixtures.GivenLibrarian(t, clock).ProcessItemLoan(alice, dune), "error in arranging test data")
	before := dune.LoanSnapshot()

	result := loanreport.Project([]*core.User{alice})

	assert.Equal(t, dune.ID(), result.Readers[0].Loans[0].ItemID)
	assert.Equal(t, before, dune.LoanSnapshot())
	assert.Equal(t, core.Items{dune}, alice.BorrowedItems())
}
