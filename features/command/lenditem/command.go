package lenditem

import (
	"github.com/AntonStoeckl/library-circulation-go/core"
)

const (
	commandType = "LendItem"
)

// Command represents the intent to lend an item to a reader.
type Command struct {
	ItemID      core.ItemIDString
	ReaderID    core.PersonIDString
	LibrarianID core.PersonIDString
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(itemID core.ItemIDString, readerID core.PersonIDString, librarianID core.PersonIDString) Command {
	return Command{
		ItemID:      itemID,
		ReaderID:    readerID,
		LibrarianID: librarianID,
	}
}
