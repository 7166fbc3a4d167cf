package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/persistence/fileengine"
	"github.com/AntonStoeckl/library-circulation-go/shell"
	"github.com/AntonStoeckl/library-circulation-go/shell/config"
	"github.com/AntonStoeckl/library-circulation-go/testutil/fixtures"
)

type cli struct {
	t       *testing.T
	dataDir string
	backend string
	clock   *fixtures.FakeClock
}

func newCLI(t *testing.T, backend string) *cli {
	return &cli{
		t:       t,
		dataDir: t.TempDir(),
		backend: backend,
		clock:   fixtures.NewFakeClock(time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)),
	}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()

	var stdout, stderr bytes.Buffer
	allArgs := append([]string{"-backend", c.backend, "-data-dir", c.dataDir, "-librarian", "Maria Kowalska"}, args...)
	err := run(context.Background(), allArgs, &stdout, &stderr, c.clock.Now)

	return stdout.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()

	out, err := c.run(args...)
	require.NoError(c.t, err, "command %v failed", args)

	return out
}

func lastField(t *testing.T, out string) string {
	t.Helper()

	fields := strings.Fields(out)
	require.NotEmpty(t, fields)

	return fields[len(fields)-1]
}

func Test_Run_LoanLifecycle(t *testing.T) {
	// arrange
	c := newCLI(t, config.BackendSQLite)
	bookID := lastField(t, c.mustRun("add-book", "Dune", "Frank Herbert", "Science Fiction", "1965"))
	readerID := lastField(t, c.mustRun("register", "Alice", "Smith"))

	// act
	lent := c.mustRun("lend", bookID, readerID)
	report := c.mustRun("report")

	// assert
	assert.Contains(t, lent, "Loan: Dune -> Alice Smith")
	assert.Equal(t, "=== Loan Report ===\n\nReader: Alice Smith\n- Dune (due: 2026-11-14)\n\n", report)
	assert.Contains(t, c.mustRun("category", "Science Fiction"), bookID)
	assert.Contains(t, c.mustRun("books"), "[due 2026-11-14]")

	// overdue blocks the return until the loan is extended
	c.clock.AdvanceDays(31)

	_, err := c.run("return", bookID, readerID)
	assert.ErrorIs(t, err, core.ErrOverdue)
	assert.Contains(t, c.mustRun("books"), "[overdue since 2026-11-14]")

	assert.Contains(t, c.mustRun("extend", bookID, readerID, "5"), "Extension: Dune +5d for Alice Smith")
	assert.Contains(t, c.mustRun("return", bookID, readerID), "Return: Dune <- Alice Smith")
	assert.Equal(t, "=== Loan Report ===\n\n", c.mustRun("report"))
	assert.Contains(t, c.mustRun("readers"), "Alice Smith, 0 borrowed")
}

func Test_Run_FileBackend_KeepsLoanDatesAcrossRuns(t *testing.T) {
	// arrange
	c := newCLI(t, config.BackendFile)
	bookID := lastField(t, c.mustRun("add-book", "Dune", "Frank Herbert", "Science Fiction", "1965"))
	readerID := lastField(t, c.mustRun("register", "Alice", "Smith"))
	c.mustRun("lend", bookID, readerID)

	// act
	c.clock.AdvanceDays(3)
	c.mustRun("extend", bookID, readerID, "10")
	c.clock.AdvanceDays(28)
	report := c.mustRun("report")

	// assert
	assert.Equal(t, "=== Loan Report ===\n\nReader: Alice Smith\n- Dune (due: 2026-11-24)\n\n", report)
	assert.Contains(t, c.mustRun("books"), "[due 2026-11-24]")

	c.clock.AdvanceDays(10)
	_, err := c.run("return", bookID, readerID)
	assert.ErrorIs(t, err, core.ErrOverdue)
}

func Test_Run_Error_CorruptUsersFileIsNotOverwritten(t *testing.T) {
	// arrange
	c := newCLI(t, config.BackendFile)
	c.mustRun("register", "Alice", "Smith")

	usersPath := filepath.Join(c.dataDir, fileengine.DefaultUsersFile)
	data, err := os.ReadFile(usersPath)
	require.NoError(t, err, "error in arranging test data")
	corrupt := data[:len(data)/2]
	require.NoError(t, os.WriteFile(usersPath, corrupt, 0o600), "error in arranging test data")

	// act
	_, err = c.run("add-book", "Dune", "Frank Herbert", "Science Fiction", "1965")

	// assert
	assert.ErrorIs(t, err, shell.ErrLoadFailed)

	after, readErr := os.ReadFile(usersPath)
	require.NoError(t, readErr)
	assert.Equal(t, corrupt, after)

	_, err = c.run("books")
	assert.ErrorIs(t, err, shell.ErrLoadFailed)
}

func Test_Run_LogsCommandAndQueryTypes(t *testing.T) {
	c := newCLI(t, config.BackendFile)

	var stdout, stderr bytes.Buffer
	err := run(context.Background(),
		[]string{"-backend", c.backend, "-data-dir", c.dataDir, "-log-level", "debug", "register", "Alice", "Smith"},
		&stdout, &stderr, c.clock.Now)
	require.NoError(t, err)

	assert.Contains(t, stderr.String(), "command handled")
	assert.Contains(t, stderr.String(), "command_type=RegisterReader")

	stderr.Reset()
	err = run(context.Background(),
		[]string{"-backend", c.backend, "-data-dir", c.dataDir, "-log-level", "debug", "report"},
		&stdout, &stderr, c.clock.Now)
	require.NoError(t, err)

	assert.Contains(t, stderr.String(), "query handled")
	assert.Contains(t, stderr.String(), "query_type=LoanReport")
}

func Test_Run_SearchAndMagazines(t *testing.T) {
	c := newCLI(t, config.BackendFile)
	magazineID := lastField(t, c.mustRun("add-magazine", "Wired", "2025", "12", "Condé Nast", "Technology"))
	bookID := lastField(t, c.mustRun("add-book", "Solaris", "Stanisław Lem", "Science Fiction", "1961", "Classics", "Polish"))

	found := c.mustRun("search", "wIrEd")

	assert.Contains(t, found, magazineID)
	assert.NotContains(t, found, "Solaris")
	assert.Contains(t, c.mustRun("magazines"), "Wired #12, Condé Nast (2025) [available]")
	assert.Contains(t, c.mustRun("category", "Technology"), magazineID)
	assert.Contains(t, c.mustRun("category", "Classics"), bookID)
	assert.Contains(t, c.mustRun("category", "Polish"), bookID)
	assert.Contains(t, c.mustRun("category", "Science Fiction"), bookID)
	assert.Empty(t, c.mustRun("category", "Poetry"))
}

func Test_Run_LoanLimit(t *testing.T) {
	c := newCLI(t, config.BackendFile)
	readerID := lastField(t, c.mustRun("register", "Alice", "Smith"))

	for i := 0; i < core.MaxLoansPerUser; i++ {
		bookID := lastField(t, c.mustRun("add-book", "Book", "Some Author", "Fiction", "2001"))
		c.mustRun("lend", bookID, readerID)
	}

	sixth := lastField(t, c.mustRun("add-book", "Sixth", "Some Author", "Fiction", "2001"))
	_, err := c.run("lend", sixth, readerID)

	assert.ErrorIs(t, err, core.ErrLoanLimitExceeded)
	assert.Contains(t, c.mustRun("search", "Sixth"), "[available]")
}

func Test_Run_Errors(t *testing.T) {
	c := newCLI(t, config.BackendFile)

	_, err := c.run()
	assert.ErrorIs(t, err, errMissingCommand)

	_, err = c.run("dance")
	assert.ErrorIs(t, err, errUnknownCommand)

	_, err = c.run("lend", "only-one-arg")
	assert.ErrorIs(t, err, errUsage)

	_, err = c.run("add-book", "Dune", "Frank Herbert", "Science Fiction", "nineteen")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = c.run("lend", "no-such-item", "Nob-unknown")
	assert.Error(t, err)
}
