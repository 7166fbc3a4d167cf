package testdoubles

import (
	"context"
	"errors"
	"sync"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/persistence"
)

// StoreStub is an in-memory persistence.Store whose operations can be made to fail.
//
// Readers are kept as records and resolved on load, the same way the real engines do it.
type StoreStub struct {
	mu            sync.Mutex
	items         core.Items
	readers       []persistence.ReaderRecord
	categories    []persistence.CategoryRecord
	itemsSaved    bool
	saveItemsErr  error
	loadItemsErr  error
	saveUsersErr  error
	loadUsersErr  error
	saveItemCalls int
	saveUserCalls int

	// saveItemsFailures limits saveItemsErr to the first n calls, 0 means every call.
	saveItemsFailures int
}

// NewStoreStub creates an empty StoreStub.
func NewStoreStub() *StoreStub {
	return &StoreStub{}
}

// FailSaveItems makes SaveItems return the given error wrapped into persistence.ErrPersistenceFailure.
func (s *StoreStub) FailSaveItems(err error) *StoreStub {
	s.saveItemsErr = err
	return s
}

// FailSaveItemsTimes makes the first n calls of SaveItems return the given error
// wrapped into persistence.ErrPersistenceFailure, later calls succeed.
func (s *StoreStub) FailSaveItemsTimes(n int, err error) *StoreStub {
	s.saveItemsErr = err
	s.saveItemsFailures = n
	return s
}

// FailLoadItems makes LoadItems return the given error wrapped into persistence.ErrPersistenceFailure.
func (s *StoreStub) FailLoadItems(err error) *StoreStub {
	s.loadItemsErr = err
	return s
}

// FailSaveUsers makes SaveUsers return the given error wrapped into persistence.ErrPersistenceFailure.
func (s *StoreStub) FailSaveUsers(err error) *StoreStub {
	s.saveUsersErr = err
	return s
}

// FailLoadUsers makes LoadUsers return the given error wrapped into persistence.ErrPersistenceFailure.
func (s *StoreStub) FailLoadUsers(err error) *StoreStub {
	s.loadUsersErr = err
	return s
}

// SaveItems implements persistence.Store.
func (s *StoreStub) SaveItems(_ context.Context, items core.Items) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saveItemCalls++

	if s.saveItemsErr != nil && (s.saveItemsFailures == 0 || s.saveItemCalls <= s.saveItemsFailures) {
		return errors.Join(persistence.ErrPersistenceFailure, s.saveItemsErr)
	}

	s.items = append(core.Items{}, items...)
	s.itemsSaved = true

	return nil
}

// LoadItems implements persistence.Store.
func (s *StoreStub) LoadItems(_ context.Context) (core.Items, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadItemsErr != nil {
		return nil, errors.Join(persistence.ErrPersistenceFailure, s.loadItemsErr)
	}

	if !s.itemsSaved {
		return nil, errors.Join(persistence.ErrPersistenceFailure, persistence.ErrNothingStored)
	}

	return append(core.Items{}, s.items...), nil
}

// SaveCategories implements persistence.Store.
func (s *StoreStub) SaveCategories(_ context.Context, categories []persistence.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories = persistence.CategoryRecordsFrom(categories)

	return nil
}

// LoadCategories implements persistence.Store.
func (s *StoreStub) LoadCategories(_ context.Context, items persistence.ItemResolver) ([]persistence.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := persistence.CategoriesFromRecords(s.categories, items)
	if err != nil {
		return nil, errors.Join(persistence.ErrPersistenceFailure, err)
	}

	return categories, nil
}

// SaveUsers implements persistence.Store.
func (s *StoreStub) SaveUsers(_ context.Context, users []*core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saveUserCalls++

	if s.saveUsersErr != nil {
		return errors.Join(persistence.ErrPersistenceFailure, s.saveUsersErr)
	}

	s.readers = persistence.ReaderRecordsFrom(users)

	return nil
}

// LoadUsers implements persistence.Store.
func (s *StoreStub) LoadUsers(_ context.Context, items persistence.ItemResolver) ([]*core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadUsersErr != nil {
		return nil, errors.Join(persistence.ErrPersistenceFailure, s.loadUsersErr)
	}

	users, err := persistence.UsersFrom(s.readers, items)
	if err != nil {
		return nil, errors.Join(persistence.ErrPersistenceFailure, err)
	}

	return users, nil
}

// SaveItemsCalls returns how often SaveItems was called.
func (s *StoreStub) SaveItemsCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveItemCalls
}

// SaveUsersCalls returns how often SaveUsers was called.
func (s *StoreStub) SaveUsersCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveUserCalls
}

// Compile-time check to ensure StoreStub implements the persistence.Store interface.
var _ persistence.Store = (*StoreStub)(nil)
