package core

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const personIDPrefixLength = 3

// Person holds the identity shared by readers and librarians.
type Person struct {
	id        PersonIDString
	firstName string
	lastName  string
}

func newPerson(firstName string, lastName string) Person {
	return Person{
		id:        NewPersonID(lastName),
		firstName: firstName,
		lastName:  lastName,
	}
}

// NewPersonID derives an identifier from the last name prefix and a unique token.
func NewPersonID(lastName string) PersonIDString {
	prefix := []rune(lastName)
	if len(prefix) > personIDPrefixLength {
		prefix = prefix[:personIDPrefixLength]
	}

	token, err := uuid.NewV7()
	if err != nil {
		token = uuid.New()
	}

	return fmt.Sprintf("%s-%s", string(prefix), token.String())
}

// ID returns the immutable identifier.
func (p Person) ID() PersonIDString {
	return p.id
}

// FirstName returns the first name.
func (p Person) FirstName() string {
	return p.firstName
}

// LastName returns the last name.
func (p Person) LastName() string {
	return p.lastName
}

// FullName returns "first last".
func (p Person) FullName() string {
	return p.firstName + " " + p.lastName
}

// User is a reader who borrows items.
//
// The borrowed items and the borrowing history are only changed by a Librarian.
type User struct {
	Person

	borrowedItems    Items
	borrowingHistory Items
}

// NewUser creates a reader without any loans.
func NewUser(firstName string, lastName string) *User {
	return &User{
		Person:           newPerson(firstName, lastName),
		borrowedItems:    make(Items, 0),
		borrowingHistory: make(Items, 0),
	}
}

// RestoreUser recreates a persisted reader.
func RestoreUser(
	id PersonIDString,
	firstName string,
	lastName string,
	borrowedItems Items,
	borrowingHistory Items,
) (*User, error) {

	if id == "" {
		return nil, errors.Join(ErrInvalidArgument, errors.New("reader id must not be empty"))
	}

	u := &User{
		Person:           Person{id: id, firstName: firstName, lastName: lastName},
		borrowedItems:    make(Items, 0, len(borrowedItems)),
		borrowingHistory: append(make(Items, 0, len(borrowingHistory)), borrowingHistory...),
	}

	for _, item := range borrowedItems {
		if item == nil {
			return nil, errors.Join(ErrInvalidArgument, errors.New("borrowed item must not be nil"))
		}

		if u.HasBorrowed(item.ID()) {
			continue
		}

		u.borrowedItems = append(u.borrowedItems, item)
	}

	return u, nil
}

// BorrowedItems returns a copy of the items the reader currently holds.
func (u *User) BorrowedItems() Items {
	return append(make(Items, 0, len(u.borrowedItems)), u.borrowedItems...)
}

// BorrowingHistory returns a copy of every item the reader ever borrowed, oldest first.
func (u *User) BorrowingHistory() Items {
	return append(make(Items, 0, len(u.borrowingHistory)), u.borrowingHistory...)
}

// BorrowedCount returns the number of items the reader currently holds.
func (u *User) BorrowedCount() int {
	return len(u.borrowedItems)
}

// HasBorrowed reports whether the item with the given id is in the borrowed set.
func (u *User) HasBorrowed(itemID ItemIDString) bool {
	return u.borrowedIndex(itemID) >= 0
}

func (u *User) borrowedIndex(itemID ItemIDString) int {
	for i, item := range u.borrowedItems {
		if item.ID() == itemID {
			return i
		}
	}

	return -1
}

func (u *User) addBorrowed(item Item) {
	u.borrowedItems = append(u.borrowedItems, item)
	u.borrowingHistory = append(u.borrowingHistory, item)
}

func (u *User) removeBorrowed(itemID ItemIDString) {
	if i := u.borrowedIndex(itemID); i >= 0 {
		u.borrowedItems = append(u.borrowedItems[:i], u.borrowedItems[i+1:]...)
	}
}
