package core

import (
	"errors"
	"fmt"
	"time"
)

// MaxLoansPerUser is the number of items a reader may hold at the same time.
const MaxLoansPerUser = 5

var errNilUser = errors.Join(ErrInvalidArgument, errors.New("user must not be nil"))

const (
	logMsgLoanProcessed      = "loan processed"
	logMsgReturnProcessed    = "return processed"
	logMsgExtensionProcessed = "loan extension processed"
	logMsgLoanRejected       = "loan rejected"
	logMsgReturnRejected     = "return rejected"
	logMsgExtensionRejected  = "loan extension rejected"
	logAttrError             = "error"
	logAttrItemID            = "item_id"
	logAttrReaderID          = "reader_id"
	logAttrLibrarianID       = "librarian_id"
	logAttrTransaction       = "transaction"
	transactionTimeLayout    = "2006-01-02 15:04:05"
)

// Logger interface for transaction logging, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Librarian is the loan coordinator: it enforces the borrowing policy and records every transaction.
type Librarian struct {
	Person

	salary       float64
	position     string
	transactions []string
	now          func() time.Time
	logger       Logger
}

// LibrarianOption configures a Librarian.
type LibrarianOption func(*Librarian)

// WithClock sets the source of the current time, time.Now by default.
func WithClock(now func() time.Time) LibrarianOption {
	return func(l *Librarian) {
		if now != nil {
			l.now = now
		}
	}
}

// WithLogger sets the logger which receives every processed transaction.
func WithLogger(logger Logger) LibrarianOption {
	return func(l *Librarian) {
		l.logger = logger
	}
}

// NewLibrarian creates a Librarian with an empty transaction log.
func NewLibrarian(firstName string, lastName string, salary float64, position string, opts ...LibrarianOption) *Librarian {
	l := &Librarian{
		Person:       newPerson(firstName, lastName),
		salary:       salary,
		position:     position,
		transactions: make([]string, 0),
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Salary returns the salary.
func (l *Librarian) Salary() float64 {
	return l.salary
}

// SetSalary changes the salary.
func (l *Librarian) SetSalary(salary float64) {
	l.salary = salary
}

// Position returns the position.
func (l *Librarian) Position() string {
	return l.position
}

// SetPosition changes the position.
func (l *Librarian) SetPosition(position string) {
	l.position = position
}

// Transactions returns a copy of the transaction log, oldest first.
func (l *Librarian) Transactions() []string {
	return append(make([]string, 0, len(l.transactions)), l.transactions...)
}

// ProcessItemLoan lends the item to the reader.
//
// Business Rules (checked in this order):
//
//	ERROR: ErrInvalidArgument if the user is nil
//	ERROR: ErrItemNotFound if the item is nil
//	ERROR: ErrLoanLimitExceeded if the reader already holds MaxLoansPerUser items
//	ERROR: ErrItemUnavailable if the item is currently lent
//	SUCCESS: the item is borrowed, added to the reader's borrowed set and history, and logged
func (l *Librarian) ProcessItemLoan(user *User, item Item) error {
	if user == nil {
		return l.reject(logMsgLoanRejected, nil, itemIDOf(item), errNilUser)
	}

	if item == nil {
		return l.reject(logMsgLoanRejected, user, "", ErrItemNotFound)
	}

	if user.BorrowedCount() >= MaxLoansPerUser {
		return l.reject(logMsgLoanRejected, user, item.ID(), ErrLoanLimitExceeded)
	}

	if !item.IsAvailable() {
		return l.reject(logMsgLoanRejected, user, item.ID(), ErrItemUnavailable)
	}

	now := l.now()
	if err := item.Borrow(now); err != nil {
		return l.reject(logMsgLoanRejected, user, item.ID(), err)
	}

	user.addBorrowed(item)

	l.record(logMsgLoanProcessed, user, item,
		fmt.Sprintf("Loan: %s -> %s (at %s)", item.Title(), user.FullName(), now.Format(transactionTimeLayout)))

	return nil
}

// ProcessItemReturn takes the item back from the reader.
//
// Business Rules (checked in this order):
//
//	ERROR: ErrInvalidArgument if the user is nil
//	ERROR: ErrItemNotFound if the item is nil
//	ERROR: ErrNotBorrowedByUser if the item is not in the reader's borrowed set
//	ERROR: *OverdueError if the item is overdue, the item stays borrowed
//	SUCCESS: the item is available again, removed from the borrowed set, and logged
func (l *Librarian) ProcessItemReturn(user *User, item Item) error {
	if user == nil {
		return l.reject(logMsgReturnRejected, nil, itemIDOf(item), errNilUser)
	}

	if item == nil {
		return l.reject(logMsgReturnRejected, user, "", ErrItemNotFound)
	}

	if !user.HasBorrowed(item.ID()) {
		return l.reject(logMsgReturnRejected, user, item.ID(), ErrNotBorrowedByUser)
	}

	now := l.now()
	if err := item.ReturnItem(now); err != nil {
		return l.reject(logMsgReturnRejected, user, item.ID(), err)
	}

	user.removeBorrowed(item.ID())

	l.record(logMsgReturnProcessed, user, item,
		fmt.Sprintf("Return: %s <- %s (at %s)", item.Title(), user.FullName(), now.Format(transactionTimeLayout)))

	return nil
}

// ProcessLoanExtension moves the due date of an item the reader holds.
// Extending is the way to resolve an overdue loan before the item can be returned.
//
// Business Rules (checked in this order):
//
//	ERROR: ErrInvalidArgument if the user is nil
//	ERROR: ErrItemNotFound if the item is nil
//	ERROR: ErrNotBorrowedByUser if the item is not in the reader's borrowed set
//	ERROR: ErrInvalidArgument if days is negative
//	SUCCESS: the due date moves by days, and the extension is logged
func (l *Librarian) ProcessLoanExtension(user *User, item Item, days int) error {
	if user == nil {
		return l.reject(logMsgExtensionRejected, nil, itemIDOf(item), errNilUser)
	}

	if item == nil {
		return l.reject(logMsgExtensionRejected, user, "", ErrItemNotFound)
	}

	if !user.HasBorrowed(item.ID()) {
		return l.reject(logMsgExtensionRejected, user, item.ID(), ErrNotBorrowedByUser)
	}

	if err := item.Extend(days); err != nil {
		return l.reject(logMsgExtensionRejected, user, item.ID(), err)
	}

	l.record(logMsgExtensionProcessed, user, item,
		fmt.Sprintf("Extension: %s +%dd for %s (at %s)", item.Title(), days, user.FullName(), l.now().Format(transactionTimeLayout)))

	return nil
}

func (l *Librarian) record(msg string, user *User, item Item, transaction string) {
	l.transactions = append(l.transactions, transaction)

	if l.logger != nil {
		l.logger.Info(msg,
			logAttrTransaction, transaction,
			logAttrItemID, item.ID(),
			logAttrReaderID, user.ID(),
			logAttrLibrarianID, l.ID())
	}
}

func (l *Librarian) reject(msg string, user *User, itemID ItemIDString, err error) error {
	if l.logger != nil {
		var readerID PersonIDString
		if user != nil {
			readerID = user.ID()
		}

		l.logger.Warn(msg,
			logAttrError, err.Error(),
			logAttrItemID, itemID,
			logAttrReaderID, readerID,
			logAttrLibrarianID, l.ID())
	}

	return err
}

func itemIDOf(item Item) ItemIDString {
	if item == nil {
		return ""
	}

	return item.ID()
}
