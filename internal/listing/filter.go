// Package listing holds the state and filtering of the lost-and-found
// listing, independent of how it is rendered.
package listing

import (
	"strings"
	"time"

	"github.com/erazemk/fundbuero/internal/model"
)

// Filters are the listing's criteria. Empty fields match everything.
type Filters struct {
	Query      string // substring of title or description, any case
	CategoryID string
	LocationID string
	Date       string // calendar day, YYYY-MM-DD, in the display time zone
	Type       string // model.ItemTypeLost or model.ItemTypeFound
}

// IsZero reports whether no criterion is set.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// Match reports whether item satisfies every criterion. Checks run from the
// cheapest to the most specific and stop at the first miss.
func Match(item *model.Item, f Filters, loc *time.Location) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(item.Title), q) &&
			!strings.Contains(strings.ToLower(item.Description), q) {
			return false
		}
	}
	if f.CategoryID != "" && item.CategoryID != f.CategoryID {
		return false
	}
	if f.LocationID != "" && item.LocationID != f.LocationID {
		return false
	}
	if f.Date != "" {
		if item.Date == nil || Day(*item.Date, loc) != f.Date {
			return false
		}
	}
	if f.Type != "" && item.Type != f.Type {
		return false
	}
	return true
}

// Apply returns the items matching f, keeping their order.
func Apply(items []model.Item, f Filters, loc *time.Location) []model.Item {
	out := make([]model.Item, 0, len(items))
	for i := range items {
		if Match(&items[i], f, loc) {
			out = append(out, items[i])
		}
	}
	return out
}

// Day formats epoch seconds as the YYYY-MM-DD calendar day in loc.
func Day(epoch int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(epoch, 0).In(loc).Format(time.DateOnly)
}
