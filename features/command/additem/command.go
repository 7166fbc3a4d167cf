package additem

import (
	"github.com/AntonStoeckl/library-circulation-go/core"
)

const (
	commandType = "AddItem"
)

// Command represents the intent to add an item to the catalog.
type Command struct {
	Kind              core.ItemKind
	Title             string
	YearOfPublication int
	Author            string
	Genre             string
	IssueNumber       int
	Publisher         string
	Categories        []string
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildBookCommand creates a Command which adds a book.
func BuildBookCommand(title string, author string, genre string, yearOfPublication int, categories ...string) Command {
	return Command{
		Kind:              core.KindBook,
		Title:             title,
		YearOfPublication: yearOfPublication,
		Author:            author,
		Genre:             genre,
		Categories:        categories,
	}
}

// BuildMagazineCommand creates a Command which adds a magazine.
func BuildMagazineCommand(title string, yearOfPublication int, issueNumber int, publisher string, categories ...string) Command {
	return Command{
		Kind:              core.KindMagazine,
		Title:             title,
		YearOfPublication: yearOfPublication,
		IssueNumber:       issueNumber,
		Publisher:         publisher,
		Categories:        categories,
	}
}
