package listing

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/fundbuero/internal/model"
)

func epoch(s string) *int64 {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	v := t.Unix()
	return &v
}

func sampleItems() []model.Item {
	return []model.Item{
		{ID: "1", Title: "Schwarzer Schlüsselbund", Type: model.ItemTypeLost, CategoryID: "keys", LocationID: "library", Date: epoch("2024-03-15T10:00:00Z")},
		{ID: "2", Title: "iPhone", Description: "mit roter Hülle", Type: model.ItemTypeFound, CategoryID: "electronics", LocationID: "mensa", Date: epoch("2024-03-15T12:00:00Z")},
		{ID: "3", Title: "Jacke", Description: "Schlüssel in der Tasche", Type: model.ItemTypeFound, CategoryID: "clothing", LocationID: "library", Date: epoch("2024-03-16T08:00:00Z")},
		{ID: "4", Title: "Ausweis", Type: model.ItemTypeLost, CategoryID: "documents", LocationID: "mensa"},
	}
}

func ids(items []model.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestApplySingleCriteria(t *testing.T) {
	items := sampleItems()
	tests := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{"none", Filters{}, []string{"1", "2", "3", "4"}},
		{"query title", Filters{Query: "iphone"}, []string{"2"}},
		{"query description", Filters{Query: "ROTER"}, []string{"2"}},
		{"query title or description", Filters{Query: "schlüssel"}, []string{"1", "3"}},
		{"category", Filters{CategoryID: "documents"}, []string{"4"}},
		{"location", Filters{LocationID: "library"}, []string{"1", "3"}},
		{"date", Filters{Date: "2024-03-15"}, []string{"1", "2"}},
		{"type", Filters{Type: model.ItemTypeFound}, []string{"2", "3"}},
		{"no match", Filters{Query: "fahrrad"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(items, tt.filters, time.UTC)))
		})
	}
}

// Every combination of criteria selects exactly the items matched by each
// criterion on its own.
func TestApplyIsConjunction(t *testing.T) {
	items := sampleItems()
	queries := []string{"", "schlüssel", "iphone"}
	categories := []string{"", "keys", "clothing"}
	locations := []string{"", "library", "mensa"}
	dates := []string{"", "2024-03-15", "2024-03-16"}
	types := []string{"", model.ItemTypeLost, model.ItemTypeFound}

	for _, q := range queries {
		for _, c := range categories {
			for _, l := range locations {
				for _, d := range dates {
					for _, ty := range types {
						f := Filters{Query: q, CategoryID: c, LocationID: l, Date: d, Type: ty}
						singles := []Filters{{Query: q}, {CategoryID: c}, {LocationID: l}, {Date: d}, {Type: ty}}

						var want []string
						for _, it := range items {
							ok := true
							for _, s := range singles {
								ok = ok && Match(&it, s, time.UTC)
							}
							if ok {
								want = append(want, it.ID)
							}
						}
						if want == nil {
							want = []string{}
						}
						assert.Equal(t, want, ids(Apply(items, f, time.UTC)), "%+v", f)
					}
				}
			}
		}
	}
}

func TestApplyDateUsesDisplayTimeZone(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 23:30 UTC on the 15th is already the 16th in Berlin.
	items := []model.Item{{ID: "late", Title: "Schirm", Date: epoch("2024-03-15T23:30:00Z")}}

	assert.Equal(t, []string{"late"}, ids(Apply(items, Filters{Date: "2024-03-15"}, time.UTC)))
	assert.Empty(t, Apply(items, Filters{Date: "2024-03-15"}, berlin))
	assert.Equal(t, []string{"late"}, ids(Apply(items, Filters{Date: "2024-03-16"}, berlin)))
}

func TestApplyExcludesUndatedItemsFromDateFilter(t *testing.T) {
	items := []model.Item{{ID: "undated", Title: "Ausweis"}}
	assert.Empty(t, Apply(items, Filters{Date: "2024-03-15"}, time.UTC))
	assert.Len(t, Apply(items, Filters{}, time.UTC), 1)
}

func TestApplyKeepsInput(t *testing.T) {
	items := sampleItems()
	Apply(items, Filters{Type: model.ItemTypeLost}, time.UTC)
	assert.Equal(t, sampleItems(), items)
}
