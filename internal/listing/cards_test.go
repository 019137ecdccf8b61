package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/fundbuero/internal/model"
)

func TestCards(t *testing.T) {
	s := loadedState()
	s.Items[0].Img = "/uploads/abc.png"
	s = Reduce(s, FiltersCleared{})

	cards := Cards(s)
	require.Len(t, cards, 4)

	assert.Equal(t, Card{
		ID:        "1",
		Title:     "Schwarzer Schlüsselbund",
		TypeLabel: "Verloren",
		Category:  "Schlüssel",
		Location:  "Bibliothek",
		Date:      "15.03.2024",
		Image:     "/uploads/abc.png?size=thumb",
	}, cards[0])

	assert.Equal(t, "Gefunden", cards[1].TypeLabel)
	assert.Equal(t, Unknown, cards[1].Location)
	assert.Equal(t, "/static/placeholder.png", cards[1].Image)

	assert.Equal(t, Unknown, cards[2].Category)
	assert.Equal(t, Unknown, cards[3].Date)
}

func TestFormatDateInZone(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	assert.Equal(t, "16.03.2024", FormatDate(epoch("2024-03-15T20:00:00Z"), tokyo))
	assert.Equal(t, "15.03.2024", FormatDate(epoch("2024-03-15T20:00:00Z"), time.UTC))
	assert.Equal(t, Unknown, FormatDate(nil, time.UTC))
}

func TestTypeLabel(t *testing.T) {
	assert.Equal(t, "Verloren", TypeLabel(model.ItemTypeLost))
	assert.Equal(t, "Gefunden", TypeLabel(model.ItemTypeFound))
	assert.Equal(t, Unknown, TypeLabel(""))
}

func TestSelectedCard(t *testing.T) {
	s := loadedState()
	_, ok := SelectedCard(s)
	assert.False(t, ok)

	s = Reduce(s, DetailOpened{Item: s.Items[0]})
	c, ok := SelectedCard(s)
	require.True(t, ok)
	assert.Equal(t, "1", c.ID)
}
