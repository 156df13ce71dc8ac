package feeds

import (
	"fmt"
	"strings"
)

// Category selects which feed of the status page is shown.
type Category string

const (
	CategorySummary     Category = "summary"
	CategoryIncidents   Category = "incidents"
	CategoryMaintenance Category = "maintenance"
)

// DefaultCategory is active when a board starts.
const DefaultCategory = CategorySummary

// Categories lists every category in display order.
var Categories = []Category{CategorySummary, CategoryIncidents, CategoryMaintenance}

// ParseCategory accepts a category name, case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CategorySummary, CategoryIncidents, CategoryMaintenance:
		return c, nil
	}

	return "", fmt.Errorf("unknown category %q", s)
}

// Title is the label used in forms and logs.
func (c Category) Title() string {
	switch c {
	case CategoryIncidents:
		return "Incidents"
	case CategoryMaintenance:
		return "Scheduled Maintenance"
	default:
		return "Summary"
	}
}
