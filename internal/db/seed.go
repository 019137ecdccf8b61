package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultCategories and DefaultLocations are inserted on every start.
// Existing names are left untouched.
var (
	DefaultCategories = []string{"Schlüssel", "Elektronik", "Kleidung", "Dokumente", "Schmuck", "Sonstiges"}
	DefaultLocations  = []string{"Bibliothek", "Mensa", "Hauptgebäude", "Sportzentrum", "Parkplatz", "Sonstiges"}
)

// Seed fills the reference vocabularies with their default terms.
func Seed(db *sql.DB) error {
	now := time.Now().UTC()
	for table, names := range map[string][]string{
		"categories": DefaultCategories,
		"locations":  DefaultLocations,
	} {
		for _, name := range names {
			_, err := db.Exec(
				`INSERT OR IGNORE INTO `+table+` (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
				uuid.NewString(), name, now, now,
			)
			if err != nil {
				return fmt.Errorf("seeding %s: %w", table, err)
			}
		}
	}
	return nil
}
