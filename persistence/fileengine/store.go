package fileengine

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/persistence"
)

const (
	// DefaultItemsFile is the conventional name of the item data file.
	DefaultItemsFile = "items_data.dat"

	// DefaultUsersFile is the conventional name of the users file.
	DefaultUsersFile = "users_data.json"

	// DefaultCategoriesFile is the conventional name of the categories file.
	DefaultCategoriesFile = "categories_data.json"

	logMsgSaveItemsFailed      = "failed to save items"
	logMsgLoadItemsFailed      = "failed to load items"
	logMsgSaveUsersFailed      = "failed to save users"
	logMsgLoadUsersFailed      = "failed to load users"
	logMsgSaveCategoriesFailed = "failed to save categories"
	logMsgLoadCategoriesFailed = "failed to load categories"
	logMsgNothingStored        = "no data file yet"
	logMsgItemsSaved           = "items saved"
	logMsgItemsLoaded          = "items loaded"
	logMsgUsersSaved           = "users saved"
	logMsgUsersLoaded          = "users loaded"
	logMsgCategoriesSaved      = "categories saved"
	logMsgCategoriesLoaded     = "categories loaded"
	logAttrError               = "error"
	logAttrPath                = "path"
	logAttrCount               = "count"
)

var (
	// ErrEmptyPath is returned when a file path option is empty.
	ErrEmptyPath = errors.New("empty file path supplied")
)

// Logger interface for operational logging, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// usersFile is the JSON document stored in the users file.
type usersFile struct {
	Version int                        `json:"version"`
	Readers []persistence.ReaderRecord `json:"readers"`
}

// categoriesFile is the JSON document stored in the categories file.
type categoriesFile struct {
	Version    int                          `json:"version"`
	Categories []persistence.CategoryRecord `json:"categories"`
}

// Store persists items to a binary data file, readers and categories to JSON files.
type Store struct {
	itemsPath      string
	usersPath      string
	categoriesPath string
	logger         Logger
	now            func() time.Time
}

// Option defines a functional option for configuring Store.
type Option func(*Store) error

// WithItemsPath sets the path of the item data file.
func WithItemsPath(path string) Option {
	return func(s *Store) error {
		if path == "" {
			return ErrEmptyPath
		}

		s.itemsPath = path

		return nil
	}
}

// WithUsersPath sets the path of the users file.
func WithUsersPath(path string) Option {
	return func(s *Store) error {
		if path == "" {
			return ErrEmptyPath
		}

		s.usersPath = path

		return nil
	}
}

// WithCategoriesPath sets the path of the categories file.
func WithCategoriesPath(path string) Option {
	return func(s *Store) error {
		if path == "" {
			return ErrEmptyPath
		}

		s.categoriesPath = path

		return nil
	}
}

// WithLogger sets the logger for the Store.
func WithLogger(logger Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithClock sets the source of the load date for items stored as unavailable.
func WithClock(now func() time.Time) Option {
	return func(s *Store) error {
		if now != nil {
			s.now = now
		}

		return nil
	}
}

// NewStore creates a Store which keeps its files in dir unless the paths are overridden.
func NewStore(dir string, options ...Option) (*Store, error) {
	s := &Store{
		itemsPath:      filepath.Join(dir, DefaultItemsFile),
		usersPath:      filepath.Join(dir, DefaultUsersFile),
		categoriesPath: filepath.Join(dir, DefaultCategoriesFile),
		now:            time.Now,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// SaveItems writes all items to the item data file, replacing its previous content.
func (s *Store) SaveItems(ctx context.Context, items core.Items) error {
	if err := ctx.Err(); err != nil {
		return s.fail(logMsgSaveItemsFailed, s.itemsPath, err)
	}

	records, err := persistence.ItemRecordsFrom(items)
	if err != nil {
		return s.fail(logMsgSaveItemsFailed, s.itemsPath, err)
	}

	var buf bytes.Buffer
	if err = encodeItems(&buf, records); err != nil {
		return s.fail(logMsgSaveItemsFailed, s.itemsPath, err)
	}

	if err = writeFileAtomically(s.itemsPath, buf.Bytes()); err != nil {
		return s.fail(logMsgSaveItemsFailed, s.itemsPath, err)
	}

	s.logInfo(logMsgItemsSaved, logAttrPath, s.itemsPath, logAttrCount, len(records))

	return nil
}

// LoadItems reads all items from the item data file.
// An unknown type tag aborts the whole load.
func (s *Store) LoadItems(ctx context.Context) (core.Items, error) {
	if err := ctx.Err(); err != nil {
		return nil, s.fail(logMsgLoadItemsFailed, s.itemsPath, err)
	}

	f, err := os.Open(s.itemsPath)
	if err != nil {
		return nil, s.fail(logMsgLoadItemsFailed, s.itemsPath, err)
	}
	defer s.closeFile(f)

	records, err := decodeItems(bufio.NewReader(f))
	if err != nil {
		return nil, s.fail(logMsgLoadItemsFailed, s.itemsPath, err)
	}

	items, err := persistence.ItemsFrom(records, s.now())
	if err != nil {
		return nil, s.fail(logMsgLoadItemsFailed, s.itemsPath, err)
	}

	s.logInfo(logMsgItemsLoaded, logAttrPath, s.itemsPath, logAttrCount, len(items))

	return items, nil
}

// SaveUsers writes all readers to the users file, replacing its previous content.
func (s *Store) SaveUsers(ctx context.Context, users []*core.User) error {
	if err := ctx.Err(); err != nil {
		return s.fail(logMsgSaveUsersFailed, s.usersPath, err)
	}

	document := usersFile{
		Version: persistence.SchemaVersion,
		Readers: persistence.ReaderRecordsFrom(users),
	}

	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(document, "", "  ")
	if err != nil {
		return s.fail(logMsgSaveUsersFailed, s.usersPath, err)
	}

	if err = writeFileAtomically(s.usersPath, data); err != nil {
		return s.fail(logMsgSaveUsersFailed, s.usersPath, err)
	}

	s.logInfo(logMsgUsersSaved, logAttrPath, s.usersPath, logAttrCount, len(users))

	return nil
}

// LoadUsers reads all readers from the users file and resolves their items against the catalog.
func (s *Store) LoadUsers(ctx context.Context, items persistence.ItemResolver) ([]*core.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, s.fail(logMsgLoadUsersFailed, s.usersPath, err)
	}

	data, err := os.ReadFile(s.usersPath)
	if err != nil {
		return nil, s.fail(logMsgLoadUsersFailed, s.usersPath, err)
	}

	document := new(usersFile)
	if err = jsoniter.ConfigFastest.Unmarshal(data, document); err != nil {
		return nil, s.fail(logMsgLoadUsersFailed, s.usersPath, err)
	}

	if !isReadableVersion(document.Version) {
		return nil, s.fail(logMsgLoadUsersFailed, s.usersPath,
			errors.Join(persistence.ErrUnsupportedSchemaVersion, fmt.Errorf("users schema version %d", document.Version)))
	}

	users, err := persistence.UsersFrom(document.Readers, items)
	if err != nil {
		return nil, s.fail(logMsgLoadUsersFailed, s.usersPath, err)
	}

	s.logInfo(logMsgUsersLoaded, logAttrPath, s.usersPath, logAttrCount, len(users))

	return users, nil
}

// SaveCategories writes all categories to the categories file, replacing its previous content.
func (s *Store) SaveCategories(ctx context.Context, categories []persistence.Category) error {
	if err := ctx.Err(); err != nil {
		return s.fail(logMsgSaveCategoriesFailed, s.categoriesPath, err)
	}

	document := categoriesFile{
		Version:    persistence.SchemaVersion,
		Categories: persistence.CategoryRecordsFrom(categories),
	}

	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(document, "", "  ")
	if err != nil {
		return s.fail(logMsgSaveCategoriesFailed, s.categoriesPath, err)
	}

	if err = writeFileAtomically(s.categoriesPath, data); err != nil {
		return s.fail(logMsgSaveCategoriesFailed, s.categoriesPath, err)
	}

	s.logInfo(logMsgCategoriesSaved, logAttrPath, s.categoriesPath, logAttrCount, len(categories))

	return nil
}

// LoadCategories reads all categories from the categories file and resolves their items against the catalog.
func (s *Store) LoadCategories(ctx context.Context, items persistence.ItemResolver) ([]persistence.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, s.fail(logMsgLoadCategoriesFailed, s.categoriesPath, err)
	}

	data, err := os.ReadFile(s.categoriesPath)
	if err != nil {
		return nil, s.fail(logMsgLoadCategoriesFailed, s.categoriesPath, err)
	}

	document := new(categoriesFile)
	if err = jsoniter.ConfigFastest.Unmarshal(data, document); err != nil {
		return nil, s.fail(logMsgLoadCategoriesFailed, s.categoriesPath, err)
	}

	if document.Version != persistence.SchemaVersion {
		return nil, s.fail(logMsgLoadCategoriesFailed, s.categoriesPath,
			errors.Join(persistence.ErrUnsupportedSchemaVersion, fmt.Errorf("categories schema version %d", document.Version)))
	}

	categories, err := persistence.CategoriesFromRecords(document.Categories, items)
	if err != nil {
		return nil, s.fail(logMsgLoadCategoriesFailed, s.categoriesPath, err)
	}

	s.logInfo(logMsgCategoriesLoaded, logAttrPath, s.categoriesPath, logAttrCount, len(categories))

	return categories, nil
}

// fail logs the error and wraps it into persistence.ErrPersistenceFailure.
// A missing data file is not an error condition of its own, it wraps persistence.ErrNothingStored.
func (s *Store) fail(msg string, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		if s.logger != nil {
			s.logger.Info(logMsgNothingStored, logAttrPath, path)
		}

		return errors.Join(persistence.ErrPersistenceFailure, persistence.ErrNothingStored, err)
	}

	if s.logger != nil {
		s.logger.Error(msg, logAttrError, err.Error(), logAttrPath, path)
	}

	return errors.Join(persistence.ErrPersistenceFailure, err)
}

func isReadableVersion(version int) bool {
	return version == persistence.SchemaVersion || version == persistence.SchemaVersionV1
}

func (s *Store) logInfo(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Store) closeFile(f io.Closer) {
	if closeErr := f.Close(); closeErr != nil {
		if s.logger != nil {
			s.logger.Warn("failed to close file", logAttrError, closeErr.Error())
		}
	}
}

// writeFileAtomically writes to a temporary file in the target directory and renames it into place,
// so a failed save never leaves a truncated data file behind.
func writeFileAtomically(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)

		return err
	}

	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpName)

		return err
	}

	if err = os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)

		return err
	}

	return nil
}

// Compile-time check to ensure Store implements the persistence.Store interface.
var _ persistence.Store = (*Store)(nil)
