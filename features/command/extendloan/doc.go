// Package extendloan implements the Extend Loan use case.
//
// Extending moves the due date of a borrowed item by a number of days. It is the way to settle
// an overdue loan: once the due date is in the future again, the item can be returned.
package extendloan
