// Package additem implements the Add Item use case.
//
// A book or a magazine is created with a fresh identifier and added to the catalog.
// Books are filed under their genre, further categories can be given explicitly.
package additem
