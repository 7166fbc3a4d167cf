package returnitem

import (
	"github.com/AntonStoeckl/library-circulation-go/core"
)

const (
	commandType = "ReturnItem"
)

// Command represents the intent to return an item a reader has borrowed.
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
