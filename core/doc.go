// Package core contains the domain model of a small library:
// catalog items (books and magazines), readers, librarians, and the loan lifecycle.
//
// Every item implements the Loanable capability, which owns the availability flag and the
// borrow and due dates. The Librarian is the loan coordinator: it enforces the borrowing
// policy (loan limit, availability) and keeps a transaction log.
//
// Operations that depend on "today" receive the current time from their caller,
// so tests control the clock by passing fixed times or by configuring the Librarian with WithClock.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
