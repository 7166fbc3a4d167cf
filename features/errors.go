// Package features contains the use cases of the library, one package per command or query.
//
// Command packages live under command/, query packages under query/. Each one exposes a
// Command or Query built with BuildCommand or BuildQuery and a handler that resolves
// identifiers through a narrow interface which shell.Library satisfies.
package features

import (
	"errors"
)

var (
	// ErrReaderNotFound is returned when a command names a reader who is not registered.
	ErrReaderNotFound = errors.New("reader is not registered")

	// ErrLibrarianNotFound is returned when a command names a librarian who is not on the staff.
	ErrLibrarianNotFound = errors.New("librarian is not on the staff")
)
