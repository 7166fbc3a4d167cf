// Package searchitems implements the Search Items query use case: a case-insensitive title search.
package searchitems
