package listing

import (
	"time"

	"github.com/erazemk/fundbuero/internal/model"
)

// LoginPath is where viewers without a session are sent to see contacts.
const LoginPath = "/login/"

// Mode is the listing's display mode.
type Mode int

// Modes.
const (
	Loading Mode = iota
	Ready
	DetailOpen
)

func (m Mode) String() string {
	switch m {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case DetailOpen:
		return "detail"
	default:
		return "unknown"
	}
}

// State is everything the listing shows. It is a value: Reduce returns a
// new State and never mutates the slices it was given.
type State struct {
	Mode Mode

	Items   []model.Item // as loaded, newest first
	Visible []model.Item // Items filtered by Filters

	Categories    []model.Term
	Locations     []model.Term
	CategoryNames map[string]string
	LocationNames map[string]string

	Filters Filters

	Selected *model.Item
	Contact  *model.Contact
	// ContactErr is set when the detail is open but the reporter's contact
	// could not be loaded.
	ContactErr error

	// Redirect is set when the viewer has to log in first.
	Redirect string
	Err      error

	// Recomputes counts how often Visible was derived.
	Recomputes int

	TZ *time.Location
}

// NewState returns the initial, loading state displaying dates in tz.
func NewState(tz *time.Location) State {
	if tz == nil {
		tz = time.Local
	}
	return State{Mode: Loading, TZ: tz}
}

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

// Loaded carries the joined result of the initial loads.
type Loaded struct {
	Items      []model.Item
	Categories []model.Term
	Locations  []model.Term
}

// LoadFailed reports that one of the initial loads failed.
type LoadFailed struct{ Err error }

// SearchChanged sets the free-text query.
type SearchChanged struct{ Query string }

// CategoryChanged sets the category criterion ("" for all).
type CategoryChanged struct{ ID string }

// LocationChanged sets the location criterion ("" for all).
type LocationChanged struct{ ID string }

// DateChanged sets the day criterion, YYYY-MM-DD ("" for all).
type DateChanged struct{ Date string }

// TypeChanged sets the lost/found criterion ("" for both).
type TypeChanged struct{ Type string }

// FiltersCleared resets every criterion.
type FiltersCleared struct{}

// LoginRequired asks the viewer to log in.
type LoginRequired struct{}

// DetailOpened shows an item with its reporter's contact. Contact is nil
// and Err set when the contact could not be loaded.
type DetailOpened struct {
	Item    model.Item
	Contact *model.Contact
	Err     error
}

// DetailClosed returns to the listing.
type DetailClosed struct{}

func (Loaded) isEvent()          {}
func (LoadFailed) isEvent()      {}
func (SearchChanged) isEvent()   {}
func (CategoryChanged) isEvent() {}
func (LocationChanged) isEvent() {}
func (DateChanged) isEvent()     {}
func (TypeChanged) isEvent()     {}
func (FiltersCleared) isEvent()  {}
func (LoginRequired) isEvent()   {}
func (DetailOpened) isEvent()    {}
func (DetailClosed) isEvent()    {}

// Reduce applies e to s. Every criterion change recomputes Visible exactly
// once.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case Loaded:
		s.Items = e.Items
		s.Categories = e.Categories
		s.Locations = e.Locations
		s.CategoryNames = model.Lookup(e.Categories)
		s.LocationNames = model.Lookup(e.Locations)
		s.Err = nil
		s.Mode = Ready
		return recompute(s)
	case LoadFailed:
		s.Err = e.Err
		s.Mode = Ready
		return s
	case SearchChanged:
		s.Filters.Query = e.Query
		return recompute(s)
	case CategoryChanged:
		s.Filters.CategoryID = e.ID
		return recompute(s)
	case LocationChanged:
		s.Filters.LocationID = e.ID
		return recompute(s)
	case DateChanged:
		s.Filters.Date = e.Date
		return recompute(s)
	case TypeChanged:
		s.Filters.Type = model.NormalizeItemType(e.Type)
		return recompute(s)
	case FiltersCleared:
		s.Filters = Filters{}
		return recompute(s)
	case LoginRequired:
		s.Redirect = LoginPath
		return s
	case DetailOpened:
		if s.Mode != Ready {
			return s
		}
		item := e.Item
		s.Selected = &item
		s.Contact = nil
		if e.Contact != nil {
			contact := *e.Contact
			s.Contact = &contact
		}
		s.ContactErr = e.Err
		s.Redirect = ""
		s.Mode = DetailOpen
		return s
	case DetailClosed:
		if s.Mode == DetailOpen {
			s.Mode = Ready
		}
		s.Selected = nil
		s.Contact = nil
		s.ContactErr = nil
		s.Redirect = ""
		return s
	}
	return s
}

func recompute(s State) State {
	s.Visible = Apply(s.Items, s.Filters, s.TZ)
	s.Recomputes++
	return s
}
