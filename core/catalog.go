package core

import (
	"sort"
	"strings"
)

// Catalog owns all items keyed by identifier and tags them with categories.
type Catalog struct {
	items      map[ItemIDString]Item
	categories map[string]map[ItemIDString]Item
}

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		items:      make(map[ItemIDString]Item),
		categories: make(map[string]map[ItemIDString]Item),
	}
}

// AddItem inserts the item, an item with the same identifier is overwritten.
func (c *Catalog) AddItem(item Item) {
	if item == nil {
		return
	}

	c.items[item.ID()] = item
}

// ReplaceItems drops all items and categories and inserts the given items.
func (c *Catalog) ReplaceItems(items Items) {
	c.items = make(map[ItemIDString]Item, len(items))
	c.categories = make(map[string]map[ItemIDString]Item)

	for _, item := range items {
		c.AddItem(item)
	}
}

// Item returns the item with the given identifier.
func (c *Catalog) Item(id ItemIDString) (Item, bool) {
	item, ok := c.items[id]

	return item, ok
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Items returns all items ordered by identifier.
func (c *Catalog) Items() Items {
	return sortedByID(c.items)
}

// Books returns all books ordered by identifier.
func (c *Catalog) Books() []*Book {
	books := make([]*Book, 0)

	for _, item := range c.Items() {
		if book, ok := item.(*Book); ok {
			books = append(books, book)
		}
	}

	return books
}

// Magazines returns all magazines ordered by identifier.
func (c *Catalog) Magazines() []*Magazine {
	magazines := make([]*Magazine, 0)

	for _, item := range c.Items() {
		if magazine, ok := item.(*Magazine); ok {
			magazines = append(magazines, magazine)
		}
	}

	return magazines
}

// SearchItems returns all items whose title contains the query, ignoring case.
// The result order carries no meaning.
func (c *Catalog) SearchItems(query string) Items {
	needle := strings.ToLower(query)
	found := make(Items, 0)

	for _, item := range c.items {
		if strings.Contains(strings.ToLower(item.Title()), needle) {
			found = append(found, item)
		}
	}

	return found
}

// AddToCategory tags the item with the category, tagging twice has no effect.
func (c *Catalog) AddToCategory(categoryName string, item Item) {
	if item == nil {
		return
	}

	category, ok := c.categories[categoryName]
	if !ok {
		category = make(map[ItemIDString]Item)
		c.categories[categoryName] = category
	}

	category[item.ID()] = item
}

// ItemsByCategory returns the items tagged with the category, empty for an unknown category.
func (c *Catalog) ItemsByCategory(categoryName string) Items {
	return sortedByID(c.categories[categoryName])
}

// Categories returns all category names in ascending order.
func (c *Catalog) Categories() []string {
	names := make([]string, 0, len(c.categories))
	for name := range c.categories {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func sortedByID(items map[ItemIDString]Item) Items {
	result := make(Items, 0, len(items))
	for _, item := range items {
		result = append(result, item)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID() < result[j].ID()
	})

	return result
}
