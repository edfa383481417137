package model

import "strings"

// Category is the colour tag of a task
type Category string

const (
	CategoryRed    Category = "red"
	CategoryGreen  Category = "green"
	CategoryBlue   Category = "blue"
	CategoryYellow Category = "yellow"
	CategoryPurple Category = "purple"
)

// DefaultCategory is preselected in new-task forms
const DefaultCategory = CategoryBlue

var categories = []Category{CategoryRed, CategoryGreen, CategoryBlue, CategoryYellow, CategoryPurple}

// Categories returns all categories in display order
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	for _, k := range categories {
		if k == c {
			return true
		}
	}
	return false
}

// Next cycles to the following category
func (c Category) Next() Category {
	for i, k := range categories {
		if k == c {
			return categories[(i+1)%len(categories)]
		}
	}
	return DefaultCategory
}

// ParseCategory parses a category name, ignoring case
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}
