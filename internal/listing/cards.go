package listing

import (
	"time"

	"github.com/erazemk/fundbuero/internal/model"
)

// PlaceholderImage is shown for items without a photo. It is a bundled
// asset, not a stored upload.
const PlaceholderImage = "/static/placeholder.png"

// Unknown labels missing names and dates.
const Unknown = "Unbekannt"

// Card is an item prepared for display.
type Card struct {
	ID          string
	Title       string
	TypeLabel   string
	Category    string
	Location    string
	Date        string
	Description string
	Image       string
	UserID      string
}

// TypeLabel returns the display label of an item type.
func TypeLabel(t string) string {
	switch t {
	case model.ItemTypeLost:
		return "Verloren"
	case model.ItemTypeFound:
		return "Gefunden"
	default:
		return Unknown
	}
}

// FormatDate renders epoch seconds as dd.mm.yyyy in loc, or Unknown.
func FormatDate(epoch *int64, loc *time.Location) string {
	if epoch == nil {
		return Unknown
	}
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(*epoch, 0).In(loc).Format("02.01.2006")
}

// Cards renders the visible items of s.
func Cards(s State) []Card {
	cards := make([]Card, 0, len(s.Visible))
	for i := range s.Visible {
		cards = append(cards, card(&s.Visible[i], s))
	}
	return cards
}

// SelectedCard renders the open item, if any.
func SelectedCard(s State) (Card, bool) {
	if s.Selected == nil {
		return Card{}, false
	}
	return card(s.Selected, s), true
}

func card(it *model.Item, s State) Card {
	c := Card{
		ID:          it.ID,
		Title:       it.Title,
		TypeLabel:   TypeLabel(it.Type),
		Category:    nameOr(s.CategoryNames, it.CategoryID),
		Location:    nameOr(s.LocationNames, it.LocationID),
		Date:        FormatDate(it.Date, s.TZ),
		Description: it.Description,
		Image:       PlaceholderImage,
		UserID:      it.UserID,
	}
	if it.Img != "" {
		c.Image = it.Img + "?size=thumb"
	}
	return c
}

func nameOr(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return Unknown
}
