package core

import (
	"errors"

	"github.com/google/uuid"
)

// ItemKind is the type tag of an item variant.
type ItemKind string

// The closed set of item variants.
const (
	KindBook     ItemKind = "BOOK"
	KindMagazine ItemKind = "MAGAZINE"
)

// Items is a slice of Item instances.
type Items = []Item

// Item is a catalog entry. All variants are Loanable.
type Item interface {
	Loanable

	ID() ItemIDString
	Title() string
	YearOfPublication() int
	Kind() ItemKind
}

// itemBase holds the fields shared by all item variants.
type itemBase struct {
	id                ItemIDString
	title             string
	yearOfPublication int
}

func (b itemBase) ID() ItemIDString {
	return b.id
}

func (b itemBase) Title() string {
	return b.title
}

func (b itemBase) YearOfPublication() int {
	return b.yearOfPublication
}

// NewItemID generates a fresh, unique item identifier.
func NewItemID() ItemIDString {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}

func restoreItemBase(id ItemIDString, title string, yearOfPublication int) (itemBase, error) {
	if id == "" {
		return itemBase{}, errors.Join(ErrInvalidArgument, errors.New("item id must not be empty"))
	}

	return itemBase{id: id, title: title, yearOfPublication: yearOfPublication}, nil
}

// Book is a loanable item with an author and a genre.
type Book struct {
	itemBase
	loanState

	author string
	genre  string
}

// NewBook creates an available Book with a freshly generated identifier.
func NewBook(title string, author string, genre string, yearOfPublication int) *Book {
	return &Book{
		itemBase:  itemBase{id: NewItemID(), title: title, yearOfPublication: yearOfPublication},
		loanState: newLoanState(),
		author:    author,
		genre:     genre,
	}
}

// RestoreBook recreates a persisted Book with its identifier and loan state.
func RestoreBook(
	id ItemIDString,
	title string,
	author string,
	genre string,
	yearOfPublication int,
	loan LoanSnapshot,
) (*Book, error) {

	base, err := restoreItemBase(id, title, yearOfPublication)
	if err != nil {
		return nil, err
	}

	state, err := restoreLoanState(loan)
	if err != nil {
		return nil, err
	}

	return &Book{itemBase: base, loanState: state, author: author, genre: genre}, nil
}

// Kind returns KindBook.
func (b *Book) Kind() ItemKind {
	return KindBook
}

// Author returns the author.
func (b *Book) Author() string {
	return b.author
}

// Genre returns the genre.
func (b *Book) Genre() string {
	return b.genre
}

// Magazine is a loanable item identified by issue number and publisher.
type Magazine struct {
	itemBase
	loanState

	issueNumber int
	publisher   string
}

// NewMagazine creates an available Magazine with a freshly generated identifier.
func NewMagazine(title string, yearOfPublication int, issueNumber int, publisher string) *Magazine {
	return &Magazine{
		itemBase:    itemBase{id: NewItemID(), title: title, yearOfPublication: yearOfPublication},
		loanState:   newLoanState(),
		issueNumber: issueNumber,
		publisher:   publisher,
	}
}

// RestoreMagazine recreates a persisted Magazine with its identifier and loan state.
func RestoreMagazine(
	id ItemIDString,
	title string,
	yearOfPublication int,
	issueNumber int,
	publisher string,
	loan LoanSnapshot,
) (*Magazine, error) {

	base, err := restoreItemBase(id, title, yearOfPublication)
	if err != nil {
		return nil, err
	}

	state, err := restoreLoanState(loan)
	if err != nil {
		return nil, err
	}

	return &Magazine{itemBase: base, loanState: state, issueNumber: issueNumber, publisher: publisher}, nil
}

// Kind returns KindMagazine.
func (m *Magazine) Kind() ItemKind {
	return KindMagazine
}

// IssueNumber returns the issue number.
func (m *Magazine) IssueNumber() int {
	return m.issueNumber
}

// Publisher returns the publisher.
func (m *Magazine) Publisher() string {
	return m.publisher
}
