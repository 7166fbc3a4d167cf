// Package shell holds the in-memory state of one library and connects it to a persistence.Store.
//
// Library is the single owner of the catalog and the person registry. The use-case handlers in
// features/ reach it through narrow interfaces. Its persistence methods never return errors:
// failures are logged and surfaced as false, so a failed save leaves the in-memory state intact.
package shell
