// Package loanreport implements the Loan Report query use case.
//
// The report lists every reader who currently holds items, with the title and due date of each
// item. It is a pure read of the registry, nothing is mutated.
package loanreport
