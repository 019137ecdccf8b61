package model

import (
	"strings"
	"time"
)

// Item is a lost or found report.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Img         string    `json:"img,omitempty"`
	Type        string    `json:"type"`
	Date        *int64    `json:"date,omitempty"`
	ReportedAt  int64     `json:"reportedAt"`
	CategoryID  string    `json:"categoryId"`
	LocationID  string    `json:"locationId"`
	Description string    `json:"description,omitempty"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Item types.
const (
	ItemTypeLost  = "lost"
	ItemTypeFound = "found"
)

// NormalizeItemType maps the accepted spellings of an item type to its
// canonical form. Unknown values are returned unchanged.
func NormalizeItemType(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "lost", "islost":
		return ItemTypeLost
	case "found", "isfound":
		return ItemTypeFound
	default:
		return t
	}
}

// OwnedBy reports whether userID reported the item.
func (i *Item) OwnedBy(userID string) bool {
	return userID != "" && i.UserID == userID
}
