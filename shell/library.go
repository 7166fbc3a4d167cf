package shell

import (
	"context"
	"errors"
	"sync"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/persistence"
)

const (
	logMsgSaveItemsFailed = "saving items failed"
	logMsgLoadItemsFailed = "loading items failed"
	logMsgSaveUsersFailed = "saving users failed"
	logMsgLoadUsersFailed = "loading users failed"
	logMsgStateLoaded     = "library state loaded"
	logAttrError          = "error"
	logAttrItems          = "items"
	logAttrUsers          = "users"

	logMsgSaveCategoriesFailed = "saving categories failed"
	logMsgLoadCategoriesFailed = "loading categories failed"
	logMsgNothingStored        = "nothing stored yet, starting empty"
	logMsgSaveRefused          = "refusing to save over stored state which failed to load"
	logAttrCategories          = "categories"
)

// ErrLoadFailed is joined into the error of Load when stored state exists but could not be read.
var ErrLoadFailed = errors.New("stored library state could not be loaded")

// Logger interface for operational logging, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Library owns the catalog and the registry of one library.
type Library struct {
	mu       sync.Mutex
	catalog  *core.Catalog
	registry *core.Registry
	store    persistence.Store
	logger   Logger
	retry    []RetryOption

	// loadFailed blocks Save until a Load succeeds, so partial state never replaces stored state.
	loadFailed bool
}

// Option defines a functional option for configuring Library.
type Option func(*Library)

// WithLogger sets the logger for the Library.
func WithLogger(logger Logger) Option {
	return func(l *Library) {
		l.logger = logger
	}
}

// WithRetry sets the retry behavior for store calls that fail transiently.
func WithRetry(options ...RetryOption) Option {
	return func(l *Library) {
		l.retry = options
	}
}

// NewLibrary creates an empty Library which persists through the given store.
func NewLibrary(store persistence.Store, opts ...Option) *Library {
	l := &Library{
		catalog:  core.NewCatalog(),
		registry: core.NewRegistry(),
		store:    store,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// AddItem adds an item to the catalog, replacing an item with the same id.
func (l *Library) AddItem(item core.Item) {
	l.catalog.AddItem(item)
}

// AddToCategory files the item under the category.
func (l *Library) AddToCategory(categoryName string, item core.Item) {
	l.catalog.AddToCategory(categoryName, item)
}

// Item finds a catalog item by id.
func (l *Library) Item(id core.ItemIDString) (core.Item, bool) {
	return l.catalog.Item(id)
}

// Items returns all catalog items ordered by id.
func (l *Library) Items() core.Items {
	return l.catalog.Items()
}

// Books returns all books of the catalog.
func (l *Library) Books() []*core.Book {
	return l.catalog.Books()
}

// Magazines returns all magazines of the catalog.
func (l *Library) Magazines() []*core.Magazine {
	return l.catalog.Magazines()
}

// SearchItems returns the items whose title contains the query, ignoring case.
func (l *Library) SearchItems(query string) core.Items {
	return l.catalog.SearchItems(query)
}

// ItemsByCategory returns the items of a category, empty for an unknown category.
func (l *Library) ItemsByCategory(categoryName string) core.Items {
	return l.catalog.ItemsByCategory(categoryName)
}

// Categories returns the sorted category names.
func (l *Library) Categories() []string {
	return l.catalog.Categories()
}

// RegisterUser registers a reader.
func (l *Library) RegisterUser(user *core.User) {
	l.registry.RegisterUser(user)
}

// Reader finds a registered reader by id.
func (l *Library) Reader(id core.PersonIDString) (*core.User, bool) {
	return l.registry.User(id)
}

// Users returns all readers in registration order.
func (l *Library) Users() []*core.User {
	return l.registry.Users()
}

// HireLibrarian adds a librarian to the staff.
func (l *Library) HireLibrarian(librarian *core.Librarian) {
	l.registry.HireLibrarian(librarian)
}

// Librarian finds a librarian by id.
func (l *Library) Librarian(id core.PersonIDString) (*core.Librarian, bool) {
	return l.registry.Librarian(id)
}

// Librarians returns the staff in hiring order.
func (l *Library) Librarians() []*core.Librarian {
	return l.registry.Librarians()
}

// SaveItems persists the catalog and reports whether it succeeded.
func (l *Library) SaveItems(ctx context.Context) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := l.catalog.Items()

	err := l.withRetry(ctx, func(ctx context.Context) error {
		return l.store.SaveItems(ctx, items)
	})
	if err != nil {
		l.logFailure(logMsgSaveItemsFailed, err)
		return false
	}

	return true
}

// LoadItems replaces the catalog with the stored items and reports whether it succeeded.
// Books are filed under their genre again, the same way adding them does.
// On failure the catalog is left unchanged.
func (l *Library) LoadItems(ctx context.Context) bool {
	return l.loadItems(ctx) == nil
}

func (l *Library) loadItems(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var items core.Items

	err := l.withRetry(ctx, func(ctx context.Context) error {
		var err error
		items, err = l.store.LoadItems(ctx)

		return err
	})
	if err != nil {
		l.logFailure(logMsgLoadItemsFailed, err)
		return err
	}

	l.catalog.ReplaceItems(items)

	for _, book := range l.catalog.Books() {
		if book.Genre() != "" {
			l.catalog.AddToCategory(book.Genre(), book)
		}
	}

	return nil
}

// SaveCategories persists the category memberships and reports whether it succeeded.
func (l *Library) SaveCategories(ctx context.Context) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	categories := persistence.CategoriesFrom(l.catalog)

	err := l.withRetry(ctx, func(ctx context.Context) error {
		return l.store.SaveCategories(ctx, categories)
	})
	if err != nil {
		l.logFailure(logMsgSaveCategoriesFailed, err)
		return false
	}

	return true
}

// LoadCategories files the loaded items under their stored categories and reports whether it succeeded.
// Load the items first. On failure the categories are left unchanged.
func (l *Library) LoadCategories(ctx context.Context) bool {
	return l.loadCategories(ctx) == nil
}

func (l *Library) loadCategories(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var categories []persistence.Category

	err := l.withRetry(ctx, func(ctx context.Context) error {
		var err error
		categories, err = l.store.LoadCategories(ctx, l.catalog)

		return err
	})
	if err != nil {
		l.logFailure(logMsgLoadCategoriesFailed, err)
		return err
	}

	for _, category := range categories {
		for _, item := range category.Items {
			l.catalog.AddToCategory(category.Name, item)
		}
	}

	return nil
}

// SaveUsers persists the readers and reports whether it succeeded.
func (l *Library) SaveUsers(ctx context.Context) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	users := l.registry.Users()

	err := l.withRetry(ctx, func(ctx context.Context) error {
		return l.store.SaveUsers(ctx, users)
	})
	if err != nil {
		l.logFailure(logMsgSaveUsersFailed, err)
		return false
	}

	return true
}

// LoadUsers replaces the readers with the stored ones, resolving their items against the catalog.
// Load the items first. On failure the readers are left unchanged.
func (l *Library) LoadUsers(ctx context.Context) bool {
	return l.loadUsers(ctx) == nil
}

func (l *Library) loadUsers(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var users []*core.User

	err := l.withRetry(ctx, func(ctx context.Context) error {
		var err error
		users, err = l.store.LoadUsers(ctx, l.catalog)

		return err
	})
	if err != nil {
		l.logFailure(logMsgLoadUsersFailed, err)
		return err
	}

	l.registry.ReplaceUsers(users)

	return nil
}

// Load loads the items, their categories, and the readers, it stops at the first failure.
// Parts that were never saved count as empty, so a first run starts with an empty library.
// Any other failure is returned joined with ErrLoadFailed and blocks Save until a Load succeeds.
func (l *Library) Load(ctx context.Context) error {
	steps := []func(context.Context) error{l.loadItems, l.loadCategories, l.loadUsers}

	for _, step := range steps {
		if err := step(ctx); err != nil && !errors.Is(err, persistence.ErrNothingStored) {
			l.setLoadFailed(true)
			return errors.Join(ErrLoadFailed, err)
		}
	}

	l.setLoadFailed(false)

	if l.logger != nil {
		l.logger.Info(logMsgStateLoaded,
			logAttrItems, l.catalog.Len(),
			logAttrCategories, len(l.catalog.Categories()),
			logAttrUsers, len(l.registry.Users()))
	}

	return nil
}

// Save saves the items, the categories, and the readers.
// It attempts all three and reports whether all succeeded. After a failed Load it saves nothing.
func (l *Library) Save(ctx context.Context) bool {
	if l.hasLoadFailed() {
		if l.logger != nil {
			l.logger.Error(logMsgSaveRefused)
		}

		return false
	}

	itemsSaved := l.SaveItems(ctx)
	categoriesSaved := l.SaveCategories(ctx)
	usersSaved := l.SaveUsers(ctx)

	return itemsSaved && categoriesSaved && usersSaved
}

func (l *Library) setLoadFailed(failed bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.loadFailed = failed
}

func (l *Library) hasLoadFailed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.loadFailed
}

func (l *Library) withRetry(ctx context.Context, fn RetryableFunc) error {
	return RetryWithExponentialBackoff(ctx, fn, l.retry...)
}

// logFailure logs store failures, a missing first save is expected and only noted at info level.
func (l *Library) logFailure(msg string, err error) {
	if l.logger == nil {
		return
	}

	if errors.Is(err, persistence.ErrNothingStored) {
		l.logger.Info(logMsgNothingStored, logAttrError, err.Error())
		return
	}

	l.logger.Error(msg, logAttrError, err.Error())
}
