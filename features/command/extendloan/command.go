package extendloan

import (
	"github.com/AntonStoeckl/library-circulation-go/core"
)

const (
	commandType = "ExtendLoan"
)

// Command represents the intent to extend the loan of an item a reader has borrowed.
type Command struct {
	ItemID      core.ItemIDString
	ReaderID    core.PersonIDString
	LibrarianID core.PersonIDString
	Days        int
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(itemID core.ItemIDString, readerID core.PersonIDString, librarianID core.PersonIDString, days int) Command {
	return Command{
		ItemID:      itemID,
		ReaderID:    readerID,
		LibrarianID: librarianID,
		Days:        days,
	}
}
