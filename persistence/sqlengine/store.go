package sqlengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/persistence"
	"github.com/AntonStoeckl/library-circulation-go/persistence/sqlengine/internal/adapters"
)

const (
	// DialectPostgres builds queries for PostgreSQL.
	DialectPostgres = "postgres"

	// DialectSQLite builds queries for SQLite.
	DialectSQLite = "sqlite3"

	defaultItemsTable       = "items"
	defaultReadersTable     = "readers"
	defaultReaderItemsTable = "reader_items"
	defaultCategoriesTable  = "item_categories"

	logMsgSchemaEnsured      = "schema ensured"
	logMsgEnsureSchemaFailed = "failed to ensure schema"
	logMsgSaveItemsFailed    = "failed to save items"
	logMsgLoadItemsFailed    = "failed to load items"
	logMsgSaveUsersFailed    = "failed to save users"
	logMsgLoadUsersFailed    = "failed to load users"
	logMsgSaveCategoriesFail = "failed to save categories"
	logMsgLoadCategoriesFail = "failed to load categories"
	logMsgRollbackFailed     = "failed to roll back transaction"
	logMsgCategoriesSaved    = "categories saved"
	logMsgCategoriesLoaded   = "categories loaded"
	logMsgItemsSaved         = "items saved"
	logMsgItemsLoaded        = "items loaded"
	logMsgUsersSaved         = "users saved"
	logMsgUsersLoaded        = "users loaded"
	logMsgCloseRowsFailed    = "failed to close database rows"
	logMsgSQLExecuted        = "executed sql"
	logAttrError             = "error"
	logAttrQuery             = "query"
	logAttrTable             = "table"
	logAttrCount             = "count"
	logAttrDurationMS        = "duration_ms"

	colID          = "id"
	colTitle       = "title"
	colYear        = "year"
	colKind        = "kind"
	colAuthor      = "author"
	colGenre       = "genre"
	colIssueNumber = "issue_number"
	colPublisher   = "publisher"
	colAvailable   = "available"
	colBorrowDate  = "borrow_date"
	colDueDate     = "due_date"
	colPosition    = "position"
	colFirstName   = "first_name"
	colLastName    = "last_name"
	colReaderID    = "reader_id"
	colItemID      = "item_id"
	colList        = "list"
	colCategory    = "category"

	listBorrowed = "borrowed"
	listHistory  = "history"

	dateLayout = "2006-01-02"
)

var (
	// ErrNilDatabaseConnection is returned when a constructor receives a nil connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyTableName is returned when a table name option is empty.
	ErrEmptyTableName = errors.New("table name must not be empty")

	// ErrUnsupportedDialect is returned for dialects other than postgres and sqlite3.
	ErrUnsupportedDialect = errors.New("unsupported sql dialect")

	// ErrInvalidDate is returned when a stored loan date cannot be parsed.
	ErrInvalidDate = errors.New("invalid stored date")
)

// Store persists items and readers in SQL tables.
type Store struct {
	db               adapters.DBAdapter
	dialect          string
	itemsTable       string
	readersTable     string
	readerItemsTable string
	categoriesTable  string
	logger           Logger
	now              func() time.Time
}

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*Store, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options...)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (*Store, error) {
	s := &Store{
		db:               db,
		dialect:          DialectPostgres,
		itemsTable:       defaultItemsTable,
		readersTable:     defaultReadersTable,
		readerItemsTable: defaultReaderItemsTable,
		categoriesTable:  defaultCategoriesTable,
		now:              time.Now,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// EnsureSchema creates the tables if they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, statement := range s.schemaStatements() {
		if err := s.exec(ctx, statement); err != nil {
			return s.fail(logMsgEnsureSchemaFailed, s.itemsTable, err)
		}
	}

	s.logInfo(logMsgSchemaEnsured)

	return nil
}

func (s *Store) schemaStatements() []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	%s TEXT PRIMARY KEY,
	%s TEXT NOT NULL,
	%s INTEGER NOT NULL,
	%s TEXT NOT NULL,
	%s TEXT NOT NULL DEFAULT '',
	%s TEXT NOT NULL DEFAULT '',
	%s INTEGER NOT NULL DEFAULT 0,
	%s TEXT NOT NULL DEFAULT '',
	%s BOOLEAN NOT NULL,
	%s TEXT NULL,
	%s TEXT NULL,
	%s INTEGER NOT NULL
)`,
			s.itemsTable, colID, colTitle, colYear, colKind, colAuthor, colGenre,
			colIssueNumber, colPublisher, colAvailable, colBorrowDate, colDueDate, colPosition),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	%s TEXT PRIMARY KEY,
	%s TEXT NOT NULL,
	%s TEXT NOT NULL,
	%s INTEGER NOT NULL
)`,
			s.readersTable, colID, colFirstName, colLastName, colPosition),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	%s TEXT NOT NULL,
	%s TEXT NOT NULL,
	%s INTEGER NOT NULL,
	%s TEXT NOT NULL,
	PRIMARY KEY (%s, %s, %s)
)`,
			s.readerItemsTable, colReaderID, colList, colPosition, colItemID, colReaderID, colList, colPosition),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	%s TEXT NOT NULL,
	%s TEXT NOT NULL,
	PRIMARY KEY (%s, %s)
)`,
			s.categoriesTable, colCategory, colItemID, colCategory, colItemID),
	}
}

// SaveItems replaces the content of the items table with the given items.
func (s *Store) SaveItems(ctx context.Context, items core.Items) error {
	records, err := persistence.ItemRecordsFrom(items)
	if err != nil {
		return s.fail(logMsgSaveItemsFailed, s.itemsTable, err)
	}

	statements, err := s.buildReplaceItemsStatements(records)
	if err != nil {
		return s.fail(logMsgSaveItemsFailed, s.itemsTable, err)
	}

	if err = s.execInTx(ctx, statements); err != nil {
		return s.fail(logMsgSaveItemsFailed, s.itemsTable, err)
	}

	s.logInfo(logMsgItemsSaved, logAttrTable, s.itemsTable, logAttrCount, len(records))

	return nil
}

// LoadItems reads all items in the order they were saved.
func (s *Store) LoadItems(ctx context.Context) (core.Items, error) {
	query, _, err := s.builder().
		From(s.itemsTable).
		Select(colID, colTitle, colYear, colKind, colAuthor, colGenre,
			colIssueNumber, colPublisher, colAvailable, colBorrowDate, colDueDate).
		Order(goqu.I(colPosition).Asc()).
		ToSQL()
	if err != nil {
		return nil, s.fail(logMsgLoadItemsFailed, s.itemsTable, err)
	}

	records, err := s.queryItemRecords(ctx, query)
	if err != nil {
		return nil, s.fail(logMsgLoadItemsFailed, s.itemsTable, err)
	}

	items, err := persistence.ItemsFrom(records, s.now())
	if err != nil {
		return nil, s.fail(logMsgLoadItemsFailed, s.itemsTable, err)
	}

	s.logInfo(logMsgItemsLoaded, logAttrTable, s.itemsTable, logAttrCount, len(items))

	return items, nil
}

// SaveUsers replaces the content of the readers and reader items tables with the given readers.
func (s *Store) SaveUsers(ctx context.Context, users []*core.User) error {
	records := persistence.ReaderRecordsFrom(users)

	statements, err := s.buildReplaceReadersStatements(records)
	if err != nil {
		return s.fail(logMsgSaveUsersFailed, s.readersTable, err)
	}

	if err = s.execInTx(ctx, statements); err != nil {
		return s.fail(logMsgSaveUsersFailed, s.readersTable, err)
	}

	s.logInfo(logMsgUsersSaved, logAttrTable, s.readersTable, logAttrCount, len(records))

	return nil
}

// LoadUsers reads all readers and resolves their borrowed items and history against the catalog.
func (s *Store) LoadUsers(ctx context.Context, items persistence.ItemResolver) ([]*core.User, error) {
	records, err := s.queryReaderRecords(ctx)
	if err != nil {
		return nil, s.fail(logMsgLoadUsersFailed, s.readersTable, err)
	}

	if err = s.attachReaderItems(ctx, records); err != nil {
		return nil, s.fail(logMsgLoadUsersFailed, s.readerItemsTable, err)
	}

	users, err := persistence.UsersFrom(records, items)
	if err != nil {
		return nil, s.fail(logMsgLoadUsersFailed, s.readersTable, err)
	}

	s.logInfo(logMsgUsersLoaded, logAttrTable, s.readersTable, logAttrCount, len(users))

	return users, nil
}

// SaveCategories replaces the content of the categories table with the given categories.
func (s *Store) SaveCategories(ctx context.Context, categories []persistence.Category) error {
	statements, err := s.buildReplaceCategoriesStatements(persistence.CategoryRecordsFrom(categories))
	if err != nil {
		return s.fail(logMsgSaveCategoriesFail, s.categoriesTable, err)
	}

	if err = s.execInTx(ctx, statements); err != nil {
		return s.fail(logMsgSaveCategoriesFail, s.categoriesTable, err)
	}

	s.logInfo(logMsgCategoriesSaved, logAttrTable, s.categoriesTable, logAttrCount, len(categories))

	return nil
}

// LoadCategories reads all categories and resolves their items against the catalog.
func (s *Store) LoadCategories(ctx context.Context, items persistence.ItemResolver) ([]persistence.Category, error) {
	records, err := s.queryCategoryRecords(ctx)
	if err != nil {
		return nil, s.fail(logMsgLoadCategoriesFail, s.categoriesTable, err)
	}

	categories, err := persistence.CategoriesFromRecords(records, items)
	if err != nil {
		return nil, s.fail(logMsgLoadCategoriesFail, s.categoriesTable, err)
	}

	s.logInfo(logMsgCategoriesLoaded, logAttrTable, s.categoriesTable, logAttrCount, len(categories))

	return categories, nil
}

func (s *Store) builder() goqu.DialectWrapper {
	return goqu.Dialect(s.dialect)
}

func (s *Store) buildReplaceItemsStatements(records []persistence.ItemRecord) ([]string, error) {
	deleteStmt, _, err := s.builder().Delete(s.itemsTable).ToSQL()
	if err != nil {
		return nil, err
	}

	statements := []string{deleteStmt}

	if len(records) == 0 {
		return statements, nil
	}

	rows := make([]any, 0, len(records))
	for i, record := range records {
		rows = append(rows, goqu.Record{
			colID:          record.ID,
			colTitle:       record.Title,
			colYear:        record.YearOfPublication,
			colKind:        record.Type,
			colAuthor:      record.Author,
			colGenre:       record.Genre,
			colIssueNumber: record.IssueNumber,
			colPublisher:   record.Publisher,
			colAvailable:   record.Available,
			colBorrowDate:  nullableDate(record.BorrowDate),
			colDueDate:     nullableDate(record.DueDate),
			colPosition:    i,
		})
	}

	insertStmt, _, err := s.builder().Insert(s.itemsTable).Rows(rows...).ToSQL()
	if err != nil {
		return nil, err
	}

	return append(statements, insertStmt), nil
}

func (s *Store) buildReplaceReadersStatements(records []persistence.ReaderRecord) ([]string, error) {
	deleteLinksStmt, _, err := s.builder().Delete(s.readerItemsTable).ToSQL()
	if err != nil {
		return nil, err
	}

	deleteReadersStmt, _, err := s.builder().Delete(s.readersTable).ToSQL()
	if err != nil {
		return nil, err
	}

	statements := []string{deleteLinksStmt, deleteReadersStmt}

	readerRows := make([]any, 0, len(records))
	linkRows := make([]any, 0)

	for i, record := range records {
		readerRows = append(readerRows, goqu.Record{
			colID:        record.ID,
			colFirstName: record.FirstName,
			colLastName:  record.LastName,
			colPosition:  i,
		})

		linkRows = appendLinkRows(linkRows, record.ID, listBorrowed, record.Borrowed)
		linkRows = appendLinkRows(linkRows, record.ID, listHistory, record.History)
	}

	if len(readerRows) > 0 {
		insertStmt, _, insertErr := s.builder().Insert(s.readersTable).Rows(readerRows...).ToSQL()
		if insertErr != nil {
			return nil, insertErr
		}

		statements = append(statements, insertStmt)
	}

	if len(linkRows) > 0 {
		insertStmt, _, insertErr := s.builder().Insert(s.readerItemsTable).Rows(linkRows...).ToSQL()
		if insertErr != nil {
			return nil, insertErr
		}

		statements = append(statements, insertStmt)
	}

	return statements, nil
}

func (s *Store) buildReplaceCategoriesStatements(records []persistence.CategoryRecord) ([]string, error) {
	deleteStmt, _, err := s.builder().Delete(s.categoriesTable).ToSQL()
	if err != nil {
		return nil, err
	}

	statements := []string{deleteStmt}
	rows := make([]any, 0)

	for _, record := range records {
		for _, itemID := range record.ItemIDs {
			rows = append(rows, goqu.Record{colCategory: record.Name, colItemID: itemID})
		}
	}

	if len(rows) == 0 {
		return statements, nil
	}

	insertStmt, _, err := s.builder().Insert(s.categoriesTable).Rows(rows...).ToSQL()
	if err != nil {
		return nil, err
	}

	return append(statements, insertStmt), nil
}

func appendLinkRows(rows []any, readerID string, list string, itemIDs []string) []any {
	for position, itemID := range itemIDs {
		rows = append(rows, goqu.Record{
			colReaderID: readerID,
			colList:     list,
			colPosition: position,
			colItemID:   itemID,
		})
	}

	return rows
}

func (s *Store) queryItemRecords(ctx context.Context, query string) ([]persistence.ItemRecord, error) {
	rows, err := s.query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer s.closeRows(rows)

	records := make([]persistence.ItemRecord, 0)

	for rows.Next() {
		var record persistence.ItemRecord
		var borrowDate, dueDate sql.NullString

		if err = rows.Scan(
			&record.ID, &record.Title, &record.YearOfPublication, &record.Type, &record.Author, &record.Genre,
			&record.IssueNumber, &record.Publisher, &record.Available, &borrowDate, &dueDate,
		); err != nil {
			return nil, err
		}

		if record.BorrowDate, err = parseNullableDate(borrowDate); err != nil {
			return nil, err
		}

		if record.DueDate, err = parseNullableDate(dueDate); err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (s *Store) queryReaderRecords(ctx context.Context) ([]persistence.ReaderRecord, error) {
	query, _, err := s.builder().
		From(s.readersTable).
		Select(colID, colFirstName, colLastName).
		Order(goqu.I(colPosition).Asc()).
		ToSQL()
	if err != nil {
		return nil, err
	}

	rows, err := s.query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer s.closeRows(rows)

	records := make([]persistence.ReaderRecord, 0)

	for rows.Next() {
		record := persistence.ReaderRecord{Borrowed: []string{}, History: []string{}}

		if err = rows.Scan(&record.ID, &record.FirstName, &record.LastName); err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// attachReaderItems fills the borrowed and history lists of the given records in stored order.
func (s *Store) attachReaderItems(ctx context.Context, records []persistence.ReaderRecord) error {
	query, _, err := s.builder().
		From(s.readerItemsTable).
		Select(colReaderID, colList, colItemID).
		Order(goqu.I(colReaderID).Asc(), goqu.I(colList).Asc(), goqu.I(colPosition).Asc()).
		ToSQL()
	if err != nil {
		return err
	}

	rows, err := s.query(ctx, query)
	if err != nil {
		return err
	}
	defer s.closeRows(rows)

	byID := make(map[string]*persistence.ReaderRecord, len(records))
	for i := range records {
		byID[records[i].ID] = &records[i]
	}

	for rows.Next() {
		var readerID, list, itemID string

		if err = rows.Scan(&readerID, &list, &itemID); err != nil {
			return err
		}

		record, ok := byID[readerID]
		if !ok {
			continue
		}

		switch list {
		case listBorrowed:
			record.Borrowed = append(record.Borrowed, itemID)
		case listHistory:
			record.History = append(record.History, itemID)
		}
	}

	return rows.Err()
}

// queryCategoryRecords groups the category rows by name, ordered by name and item id.
func (s *Store) queryCategoryRecords(ctx context.Context) ([]persistence.CategoryRecord, error) {
	query, _, err := s.builder().
		From(s.categoriesTable).
		Select(colCategory, colItemID).
		Order(goqu.I(colCategory).Asc(), goqu.I(colItemID).Asc()).
		ToSQL()
	if err != nil {
		return nil, err
	}

	rows, err := s.query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer s.closeRows(rows)

	records := make([]persistence.CategoryRecord, 0)

	for rows.Next() {
		var name, itemID string

		if err = rows.Scan(&name, &itemID); err != nil {
			return nil, err
		}

		if len(records) == 0 || records[len(records)-1].Name != name {
			records = append(records, persistence.CategoryRecord{Name: name})
		}

		last := &records[len(records)-1]
		last.ItemIDs = append(last.ItemIDs, itemID)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// execInTx runs the statements in one transaction, any failure rolls back all of them.
func (s *Store) execInTx(ctx context.Context, statements []string) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}

	for _, statement := range statements {
		start := time.Now()
		err = tx.Exec(ctx, statement)
		s.logQueryWithDuration(statement, time.Since(start))

		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && s.logger != nil {
				s.logger.Warn(logMsgRollbackFailed, logAttrError, rollbackErr.Error())
			}

			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) exec(ctx context.Context, statement string) error {
	start := time.Now()
	err := s.db.Exec(ctx, statement)
	s.logQueryWithDuration(statement, time.Since(start))

	return err
}

func (s *Store) query(ctx context.Context, query string) (adapters.DBRows, error) {
	start := time.Now()
	rows, err := s.db.Query(ctx, query)
	s.logQueryWithDuration(query, time.Since(start))

	return rows, err
}

// closeRows safely closes database rows and logs any errors.
func (s *Store) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if s.logger != nil {
			s.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

// fail logs the error and wraps it into persistence.ErrPersistenceFailure.
func (s *Store) fail(msg string, table string, err error) error {
	if s.logger != nil {
		s.logger.Error(msg, logAttrError, err.Error(), logAttrTable, table)
	}

	return errors.Join(persistence.ErrPersistenceFailure, classify(err))
}

func (s *Store) logInfo(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

// logQueryWithDuration logs SQL statements with execution timing at debug level.
func (s *Store) logQueryWithDuration(query string, duration time.Duration) {
	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted, logAttrQuery, query, logAttrDurationMS, float64(duration.Nanoseconds())/1e6)
	}
}

func nullableDate(date core.CalendarDate) any {
	if date.IsZero() {
		return nil
	}

	return date.Format(dateLayout)
}

func parseNullableDate(value sql.NullString) (core.CalendarDate, error) {
	if !value.Valid || value.String == "" {
		return core.CalendarDate{}, nil
	}

	date, err := time.Parse(dateLayout, value.String)
	if err != nil {
		return core.CalendarDate{}, errors.Join(ErrInvalidDate, err)
	}

	return date, nil
}

// Compile-time check to ensure Store implements the persistence.Store interface.
var _ persistence.Store = (*Store)(nil)
