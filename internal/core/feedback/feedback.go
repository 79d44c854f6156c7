// Package feedback defines feedback items, the subject that comments are
// attached to.
package feedback

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hay-kot/criterio"
)

// Category classifies a feedback item.
type Category string

const (
	CategoryBug         Category = "bug"
	CategoryFeature     Category = "feature"
	CategoryImprovement Category = "improvement"
	CategoryOther       Category = "other"
)

// Categories lists the selectable categories in display order.
func Categories() []Category {
	return []Category{CategoryBug, CategoryFeature, CategoryImprovement, CategoryOther}
}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	switch c {
	case CategoryBug, CategoryFeature, CategoryImprovement, CategoryOther:
		return true
	default:
		return false
	}
}

// ParseCategory converts s (case-insensitive) into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Feedback is a single piece of submitted product feedback.
type Feedback struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	AuthorID    string    `json:"user_id"`
	AuthorName  string    `json:"author_name,omitempty"`
	Comments    int       `json:"comments_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Draft is the user input for a new feedback item.
type Draft struct {
	Title       string
	Description string
	Category    Category
}

const (
	TitleMin       = 3
	TitleMax       = 100
	DescriptionMin = 10
	DescriptionMax = 1000
)

// Validate checks the draft and returns criterio field errors keyed by
// title, description and category. Values are trimmed before checking.
func (d Draft) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("title", d.Title, ValidateTitle),
		criterio.Run("description", d.Description, ValidateDescription),
		criterio.Run("category", string(d.Category), func(c string) error {
			if c == "" {
				return fmt.Errorf("Please select a category")
			}
			if !Category(c).IsValid() {
				return fmt.Errorf("unknown category %q", c)
			}
			return nil
		}),
	)
}

// ValidateTitle checks a single title value.
func ValidateTitle(s string) error {
	return lengthBetween("Title", TitleMin, TitleMax)(strings.TrimSpace(s))
}

// ValidateDescription checks a single description value.
func ValidateDescription(s string) error {
	return lengthBetween("Description", DescriptionMin, DescriptionMax)(strings.TrimSpace(s))
}

// Normalized returns the draft with surrounding whitespace removed.
func (d Draft) Normalized() Draft {
	return Draft{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Category:    d.Category,
	}
}

func lengthBetween(label string, lo, hi int) func(string) error {
	return func(s string) error {
		n := utf8.RuneCountInString(s)
		switch {
		case n == 0:
			return fmt.Errorf("%s is required", label)
		case n < lo:
			return fmt.Errorf("%s must be at least %d characters", label, lo)
		case n > hi:
			return fmt.Errorf("%s must not exceed %d characters", label, hi)
		}
		return nil
	}
}

// Filter narrows a feedback listing.
type Filter struct {
	Category Category
	Search   string
	Page     int
	PerPage  int
}

// DefaultPerPage is the page size used when Filter.PerPage is unset.
const DefaultPerPage = 10

// Normalize fills zero values with defaults.
func (f Filter) Normalize() Filter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = DefaultPerPage
	}
	f.Search = strings.TrimSpace(f.Search)
	return f
}

// Offset returns the row offset of the filter's page.
func (f Filter) Offset() int {
	f = f.Normalize()
	return (f.Page - 1) * f.PerPage
}

// Page is one page of a feedback listing.
type Page struct {
	Items       []Feedback `json:"data"`
	CurrentPage int        `json:"current_page"`
	LastPage    int        `json:"last_page"`
	PerPage     int        `json:"per_page"`
	Total       int        `json:"total"`
}

// NewPage builds a page from items and the total row count.
func NewPage(items []Feedback, f Filter, total int) Page {
	f = f.Normalize()
	last := (total + f.PerPage - 1) / f.PerPage
	if last < 1 {
		last = 1
	}
	if items == nil {
		items = []Feedback{}
	}
	return Page{
		Items:       items,
		CurrentPage: f.Page,
		LastPage:    last,
		PerPage:     f.PerPage,
		Total:       total,
	}
}

// ErrNotFound is returned when a feedback item does not exist.
var ErrNotFound = errors.New("feedback not found")
