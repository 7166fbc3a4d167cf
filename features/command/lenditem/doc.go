// Package lenditem implements the Lend Item use case.
//
// The handler resolves the reader, the item, and the processing librarian, then delegates
// the business rules (loan limit, availability) to core.Librarian.ProcessItemLoan.
// An unknown item is handed over as nil so the librarian rejects it with core.ErrItemNotFound.
package lenditem
