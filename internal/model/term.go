package model

import "time"

// Term is an entry of a reference vocabulary (a category or a location).
type Term struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Lookup indexes terms by ID, mapping to their names.
func Lookup(terms []Term) map[string]string {
	m := make(map[string]string, len(terms))
	for _, t := range terms {
		m[t.ID] = t.Name
	}
	return m
}
