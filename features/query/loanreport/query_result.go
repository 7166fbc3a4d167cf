package loanreport

import (
	"strings"

	"github.com/AntonStoeckl/library-circulation-go/core"
)

const (
	reportHeader   = "=== Loan Report ==="
	dueDateLayout  = "2006-01-02"
	readerLinePref = "Reader: "
)

// LoanInfo represents one item a reader currently holds.
type LoanInfo struct {
	ItemID  core.ItemIDString
	Title   string
	DueDate core.CalendarDate
}

// ReaderLoans represents a reader together with the items the reader currently holds.
type ReaderLoans struct {
	ReaderID core.PersonIDString
	Name     string
	Loans    []LoanInfo
}

// QueryResult represents the loan report.
type QueryResult struct {
	Readers []ReaderLoans
	Count   int
}

// Text renders the report as plain text, one block per reader.
func (r QueryResult) Text() string {
	var b strings.Builder

	b.WriteString(reportHeader)
	b.WriteString("\n\n")

	for _, reader := range r.Readers {
		b.WriteString(readerLinePref)
		b.WriteString(reader.Name)
		b.WriteString("\n")

		for _, loan := range reader.Loans {
			b.WriteString("- ")
			b.WriteString(loan.Title)
			b.WriteString(" (due: ")
			b.WriteString(loan.DueDate.Format(dueDateLayout))
			b.WriteString(")\n")
		}

		b.WriteString("\n")
	}

	return b.String()
}
