package persistence

import (
	"errors"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/core"
)

// ItemRecord is the storage DTO for a catalog item.
//
// It is built on scalars so that engines stay agnostic of the domain types.
// BorrowDate and DueDate are zero for data written before schema version 2, which kept only
// the availability flag. ItemFrom then treats an unavailable item as borrowed on the load date.
type ItemRecord struct {
	ID                string
	Title             string
	YearOfPublication int
	Type              string
	Author            string
	Genre             string
	IssueNumber       int
	Publisher         string
	Available         bool
	BorrowDate        time.Time
	DueDate           time.Time
}

// ReaderRecord is the storage DTO for a reader.
type ReaderRecord struct {
	ID        string   `json:"id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Borrowed  []string `json:"borrowed"`
	History   []string `json:"history"`
}

// CategoryRecord is the storage DTO for a category, items are referenced by identifier.
type CategoryRecord struct {
	Name    string   `json:"name"`
	ItemIDs []string `json:"items"`
}

// ItemRecordFrom converts a catalog item to its storage DTO.
func ItemRecordFrom(item core.Item) (ItemRecord, error) {
	loan := item.LoanSnapshot()

	record := ItemRecord{
		ID:                item.ID(),
		Title:             item.Title(),
		YearOfPublication: item.YearOfPublication(),
		Type:              string(item.Kind()),
		Available:         loan.Available,
		BorrowDate:        loan.BorrowDate,
		DueDate:           loan.DueDate,
	}

	switch i := item.(type) {
	case *core.Book:
		record.Author = i.Author()
		record.Genre = i.Genre()

	case *core.Magazine:
		record.IssueNumber = i.IssueNumber()
		record.Publisher = i.Publisher()

	default:
		return ItemRecord{}, errors.Join(ErrUnknownItemType, errors.New(string(item.Kind())))
	}

	return record, nil
}

// ItemRecordsFrom converts multiple catalog items to storage DTOs.
func ItemRecordsFrom(items core.Items) ([]ItemRecord, error) {
	records := make([]ItemRecord, 0, len(items))

	for _, item := range items {
		record, err := ItemRecordFrom(item)
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, nil
}

// ItemFrom converts a storage DTO back to a catalog item.
func ItemFrom(record ItemRecord, loadedAt time.Time) (core.Item, error) {
	loan := core.AvailableSnapshot()

	if !record.Available {
		loan = core.LoanSnapshot{Available: false, BorrowDate: record.BorrowDate, DueDate: record.DueDate}

		if record.BorrowDate.IsZero() && record.DueDate.IsZero() {
			loan = core.BorrowedSnapshot(loadedAt)
		}
	}

	switch core.ItemKind(record.Type) {
	case core.KindBook:
		return core.RestoreBook(record.ID, record.Title, record.Author, record.Genre, record.YearOfPublication, loan)

	case core.KindMagazine:
		return core.RestoreMagazine(record.ID, record.Title, record.YearOfPublication, record.IssueNumber, record.Publisher, loan)

	default:
		return nil, errors.Join(ErrUnknownItemType, errors.New(record.Type))
	}
}

// ItemsFrom converts multiple storage DTOs to catalog items, the first failure aborts the conversion.
func ItemsFrom(records []ItemRecord, loadedAt time.Time) (core.Items, error) {
	items := make(core.Items, 0, len(records))

	for _, record := range records {
		item, err := ItemFrom(record, loadedAt)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}

// ReaderRecordFrom converts a reader to its storage DTO.
func ReaderRecordFrom(user *core.User) ReaderRecord {
	return ReaderRecord{
		ID:        user.ID(),
		FirstName: user.FirstName(),
		LastName:  user.LastName(),
		Borrowed:  itemIDs(user.BorrowedItems()),
		History:   itemIDs(user.BorrowingHistory()),
	}
}

// ReaderRecordsFrom converts multiple readers to storage DTOs.
func ReaderRecordsFrom(users []*core.User) []ReaderRecord {
	records := make([]ReaderRecord, 0, len(users))

	for _, user := range users {
		records = append(records, ReaderRecordFrom(user))
	}

	return records
}

// UserFrom converts a storage DTO back to a reader, resolving item ids against the catalog.
func UserFrom(record ReaderRecord, items ItemResolver) (*core.User, error) {
	borrowed, err := resolveItems(record.Borrowed, items)
	if err != nil {
		return nil, err
	}

	history, err := resolveItems(record.History, items)
	if err != nil {
		return nil, err
	}

	return core.RestoreUser(record.ID, record.FirstName, record.LastName, borrowed, history)
}

// UsersFrom converts multiple storage DTOs to readers, the first failure aborts the conversion.
func UsersFrom(records []ReaderRecord, items ItemResolver) ([]*core.User, error) {
	users := make([]*core.User, 0, len(records))

	for _, record := range records {
		user, err := UserFrom(record, items)
		if err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	return users, nil
}

// CategoryRecordsFrom converts categories to storage DTOs.
func CategoryRecordsFrom(categories []Category) []CategoryRecord {
	records := make([]CategoryRecord, 0, len(categories))

	for _, category := range categories {
		records = append(records, CategoryRecord{Name: category.Name, ItemIDs: itemIDs(category.Items)})
	}

	return records
}

// CategoriesFromRecords converts storage DTOs back to categories, resolving item ids against the catalog.
// The first unknown item id aborts the conversion.
func CategoriesFromRecords(records []CategoryRecord, items ItemResolver) ([]Category, error) {
	categories := make([]Category, 0, len(records))

	for _, record := range records {
		resolved, err := resolveItems(record.ItemIDs, items)
		if err != nil {
			return nil, err
		}

		categories = append(categories, Category{Name: record.Name, Items: resolved})
	}

	return categories, nil
}

func itemIDs(items core.Items) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID())
	}

	return ids
}

func resolveItems(ids []string, items ItemResolver) (core.Items, error) {
	resolved := make(core.Items, 0, len(ids))

	for _, id := range ids {
		item, ok := items.Item(id)
		if !ok {
			return nil, errors.Join(ErrUnknownItemID, errors.New(id))
		}

		resolved = append(resolved, item)
	}

	return resolved, nil
}
