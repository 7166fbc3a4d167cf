package fileengine

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/persistence"
)

// Item data file layout, all integers big-endian:
//
//	int32 schema version
//	int32 record count
//	per record:
//	  string id, string title, int32 year, string type tag
//	  BOOK:     string author, string genre
//	  MAGAZINE: int32 issue number, string publisher
//	  bool available
//	  string borrow date, string due date (since version 2)
//
// A string is a uint16 byte length followed by that many UTF-8 bytes.
// Dates are written as YYYY-MM-DD, an empty string stands for no date.

const dateLayout = "2006-01-02"

var (
	// ErrStringTooLong is returned when a string field does not fit the uint16 length prefix.
	ErrStringTooLong = errors.New("string field exceeds 65535 bytes")

	// ErrCorruptItemData is returned when the item data file cannot be decoded.
	ErrCorruptItemData = errors.New("corrupt item data")
)

var byteOrder = binary.BigEndian

func encodeItems(w io.Writer, records []persistence.ItemRecord) error {
	if err := writeInt32(w, persistence.SchemaVersion); err != nil {
		return err
	}

	if err := writeInt32(w, len(records)); err != nil {
		return err
	}

	for _, record := range records {
		if err := encodeItem(w, record); err != nil {
			return err
		}
	}

	return nil
}

func encodeItem(w io.Writer, record persistence.ItemRecord) error {
	if err := writeStrings(w, record.ID, record.Title); err != nil {
		return err
	}

	if err := writeInt32(w, record.YearOfPublication); err != nil {
		return err
	}

	if err := writeString(w, record.Type); err != nil {
		return err
	}

	switch core.ItemKind(record.Type) {
	case core.KindBook:
		if err := writeStrings(w, record.Author, record.Genre); err != nil {
			return err
		}

	case core.KindMagazine:
		if err := writeInt32(w, record.IssueNumber); err != nil {
			return err
		}

		if err := writeString(w, record.Publisher); err != nil {
			return err
		}

	default:
		return errors.Join(persistence.ErrUnknownItemType, errors.New(record.Type))
	}

	if err := binary.Write(w, byteOrder, record.Available); err != nil {
		return err
	}

	return writeStrings(w, formatDate(record.BorrowDate), formatDate(record.DueDate))
}

func decodeItems(r io.Reader) ([]persistence.ItemRecord, error) {
	version, err := readInt32(r)
	if err != nil {
		return nil, err
	}

	if version != persistence.SchemaVersion && version != persistence.SchemaVersionV1 {
		return nil, errors.Join(persistence.ErrUnsupportedSchemaVersion, fmt.Errorf("items schema version %d", version))
	}

	count, err := readInt32(r)
	if err != nil {
		return nil, err
	}

	if count < 0 {
		return nil, errors.Join(ErrCorruptItemData, fmt.Errorf("negative record count %d", count))
	}

	records := make([]persistence.ItemRecord, 0, min(count, 1024))

	for i := 0; i < count; i++ {
		record, decodeErr := decodeItem(r, version)
		if decodeErr != nil {
			return nil, decodeErr
		}

		records = append(records, record)
	}

	return records, nil
}

func decodeItem(r io.Reader, version int) (persistence.ItemRecord, error) {
	var record persistence.ItemRecord
	var err error

	if record.ID, err = readString(r); err != nil {
		return record, err
	}

	if record.Title, err = readString(r); err != nil {
		return record, err
	}

	if record.YearOfPublication, err = readInt32(r); err != nil {
		return record, err
	}

	if record.Type, err = readString(r); err != nil {
		return record, err
	}

	switch core.ItemKind(record.Type) {
	case core.KindBook:
		if record.Author, err = readString(r); err != nil {
			return record, err
		}

		if record.Genre, err = readString(r); err != nil {
			return record, err
		}

	case core.KindMagazine:
		if record.IssueNumber, err = readInt32(r); err != nil {
			return record, err
		}

		if record.Publisher, err = readString(r); err != nil {
			return record, err
		}

	default:
		return record, errors.Join(persistence.ErrUnknownItemType, errors.New(record.Type))
	}

	if err = binary.Read(r, byteOrder, &record.Available); err != nil {
		return record, errors.Join(ErrCorruptItemData, err)
	}

	if version == persistence.SchemaVersionV1 {
		return record, nil
	}

	if record.BorrowDate, err = readDate(r); err != nil {
		return record, err
	}

	if record.DueDate, err = readDate(r); err != nil {
		return record, err
	}

	return record, nil
}

func formatDate(date time.Time) string {
	if date.IsZero() {
		return ""
	}

	return date.Format(dateLayout)
}

func readDate(r io.Reader) (time.Time, error) {
	v, err := readString(r)
	if err != nil || v == "" {
		return time.Time{}, err
	}

	date, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, errors.Join(ErrCorruptItemData, err)
	}

	return date, nil
}

func writeInt32(w io.Writer, v int) error {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return fmt.Errorf("value %d does not fit into int32", v)
	}

	return binary.Write(w, byteOrder, int32(v))
}

func readInt32(r io.Reader) (int, error) {
	var v int32
	if err := binary.Read(r, byteOrder, &v); err != nil {
		return 0, errors.Join(ErrCorruptItemData, err)
	}

	return int(v), nil
}

func writeStrings(w io.Writer, values ...string) error {
	for _, v := range values {
		if err := writeString(w, v); err != nil {
			return err
		}
	}

	return nil
}

func writeString(w io.Writer, v string) error {
	if len(v) > math.MaxUint16 {
		return ErrStringTooLong
	}

	if err := binary.Write(w, byteOrder, uint16(len(v))); err != nil {
		return err
	}

	_, err := io.WriteString(w, v)

	return err
}

func readString(r io.Reader) (string, error) {
	var length uint16
	if err := binary.Read(r, byteOrder, &length); err != nil {
		return "", errors.Join(ErrCorruptItemData, err)
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", errors.Join(ErrCorruptItemData, err)
	}

	return string(buf), nil
}
