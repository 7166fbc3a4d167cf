// Package itemsincategory implements the Items In Category query use case.
//
// An unknown category yields an empty result, never an error.
package itemsincategory
