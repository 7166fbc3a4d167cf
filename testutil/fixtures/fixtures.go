// Package fixtures provides test data builders and a controllable clock for the library tests.
package fixtures

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/core"
)

// FixedNow returns the "current time" used throughout the tests: 2026-03-01 10:30 UTC.
func FixedNow() time.Time {
	return time.Date(2026, time.March, 1, 10, 30, 0, 0, time.UTC)
}

// FakeClock is a settable time source for the Librarian.
type FakeClock struct {
	now time.Time
}

// NewFakeClock creates a FakeClock starting at the given time.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	return c.now
}

// AdvanceDays moves the fake time forward by the given number of days.
func (c *FakeClock) AdvanceDays(days int) {
	c.now = c.now.AddDate(0, 0, days)
}

// Set moves the fake time to the given instant.
func (c *FakeClock) Set(now time.Time) {
	c.now = now
}

// GivenBook builds an available book titled "Dune".
func GivenBook(t testing.TB) *core.Book {
	t.Helper()

	return core.NewBook("Dune", "Frank Herbert", "Science Fiction", 1965)
}

// GivenBookTitled builds an available book with the given title.
func GivenBookTitled(t testing.TB, title string) *core.Book {
	t.Helper()

	return core.NewBook(title, "Some Author", "Fiction", 2001)
}

// GivenMagazine builds an available magazine.
func GivenMagazine(t testing.TB) *core.Magazine {
	t.Helper()

	return core.NewMagazine("National Geographic", 2024, 7, "National Geographic Society")
}

// GivenBorrowedBook builds a book that was borrowed on the given day.
func GivenBorrowedBook(t testing.TB, borrowedAt time.Time) *core.Book {
	t.Helper()

	book := GivenBook(t)
	err := book.Borrow(borrowedAt)
	assert.NoError(t, err, "error in arranging test data")

	return book
}

// GivenUser builds the reader "Alice Smith".
func GivenUser(t testing.TB) *core.User {
	t.Helper()

	return core.NewUser("Alice", "Smith")
}

// GivenLibrarian builds a librarian that reads the time from the given clock.
func GivenLibrarian(t testing.TB, clock *FakeClock, opts ...core.LibrarianOption) *core.Librarian {
	t.Helper()

	opts = append([]core.LibrarianOption{core.WithClock(clock.Now)}, opts...)

	return core.NewLibrarian("Maria", "Kowalska", 4200, "Senior Librarian", opts...)
}

// GivenUserWithLoans builds a reader who already holds the given number of freshly borrowed books.
func GivenUserWithLoans(t testing.TB, librarian *core.Librarian, loans int) (*core.User, core.Items) {
	t.Helper()

	user := GivenUser(t)
	items := make(core.Items, 0, loans)

	for i := 0; i < loans; i++ {
		book := GivenBookTitled(t, "Borrowed Book")
		err := librarian.ProcessItemLoan(user, book)
		assert.NoError(t, err, "error in arranging test data")
		items = append(items, book)
	}

	return user, items
}
