package listing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/erazemk/fundbuero/internal/client"
	"github.com/erazemk/fundbuero/internal/model"
)

// ErrUnknownItem is returned when opening an item that is not listed.
var ErrUnknownItem = errors.New("item not in listing")

// Source provides the data behind the listing. *client.Client implements it.
type Source interface {
	Items(ctx context.Context) ([]model.Item, error)
	Categories(ctx context.Context) ([]model.Term, error)
	Locations(ctx context.Context) ([]model.Term, error)
	Contact(ctx context.Context, userID string) (*model.Contact, error)
	LoggedIn() bool
}

// View runs the listing's side effects and feeds their results to Reduce.
// It is safe for concurrent use.
type View struct {
	src Source

	mu    sync.Mutex
	state State
}

// NewView returns a view over src displaying dates in tz.
func NewView(src Source, tz *time.Location) *View {
	return &View{src: src, state: NewState(tz)}
}

// State returns the current state.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Dispatch reduces e into the current state and returns the result.
func (v *View) Dispatch(e Event) State {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = Reduce(v.state, e)
	return v.state
}

// Load fetches items, categories and locations concurrently. The listing
// becomes ready only once all three have arrived.
func (v *View) Load(ctx context.Context) error {
	var (
		items      []model.Item
		categories []model.Term
		locations  []model.Term
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = v.src.Items(ctx)
		if err != nil {
			return fmt.Errorf("loading items: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		categories, err = v.src.Categories(ctx)
		if err != nil {
			return fmt.Errorf("loading categories: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		locations, err = v.src.Locations(ctx)
		if err != nil {
			return fmt.Errorf("loading locations: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		v.Dispatch(LoadFailed{Err: err})
		return err
	}

	v.Dispatch(Loaded{Items: items, Categories: categories, Locations: locations})
	return nil
}

// Open shows the item with the given ID and its reporter's contact. Without
// a session it only records the login redirect. If the contact cannot be
// loaded the detail still opens, with State.ContactErr set.
func (v *View) Open(ctx context.Context, itemID string) error {
	item, ok := v.find(itemID)
	if !ok {
		return ErrUnknownItem
	}

	if !v.src.LoggedIn() {
		v.Dispatch(LoginRequired{})
		return nil
	}

	contact, err := v.src.Contact(ctx, item.UserID)
	if err != nil {
		var apiErr *client.Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			v.Dispatch(LoginRequired{})
			return nil
		}
		v.Dispatch(DetailOpened{Item: item, Err: fmt.Errorf("loading contact: %w", err)})
		return nil
	}

	v.Dispatch(DetailOpened{Item: item, Contact: contact})
	return nil
}

// Close returns from the detail to the listing.
func (v *View) Close() {
	v.Dispatch(DetailClosed{})
}

func (v *View) find(id string) (model.Item, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, it := range v.state.Items {
		if it.ID == id {
			return it, true
		}
	}
	return model.Item{}, false
}
