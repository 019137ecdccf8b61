package store

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/fundbuero/internal/db"
)

func TestTermsLifecycle(t *testing.T) {
	for _, v := range []Vocabulary{Categories, Locations} {
		t.Run(string(v), func(t *testing.T) {
			database := db.NewTestDB(t)
			ctx := context.Background()

			seeded, err := ListTerms(ctx, database, v)
			if err != nil {
				t.Fatalf("ListTerms: %v", err)
			}

			term, err := CreateTerm(ctx, database, v, "Fundstück")
			if err != nil {
				t.Fatalf("CreateTerm: %v", err)
			}

			all, _ := ListTerms(ctx, database, v)
			if len(all) != len(seeded)+1 {
				t.Errorf("expected %d terms, got %d", len(seeded)+1, len(all))
			}

			found, err := RenameTerm(ctx, database, v, term.ID, "Anderes")
			if err != nil || !found {
				t.Fatalf("RenameTerm: found=%v err=%v", found, err)
			}
			got, _ := GetTerm(ctx, database, v, term.ID)
			if got.Name != "Anderes" {
				t.Errorf("expected renamed term, got %q", got.Name)
			}

			deleted, err := DeleteTerm(ctx, database, v, term.ID)
			if err != nil || !deleted {
				t.Fatalf("DeleteTerm: deleted=%v err=%v", deleted, err)
			}
			got, _ = GetTerm(ctx, database, v, term.ID)
			if got != nil {
				t.Error("expected term to be gone")
			}
		})
	}
}

func TestCreateTermDuplicateNameConflicts(t *testing.T) {
	database := db.NewTestDB(t)

	_, err := CreateTerm(context.Background(), database, Categories, "Elektronik")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for seeded name, got %v", err)
	}
}

func TestDeleteReferencedTermConflicts(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	f := newFixture(t, database)

	CreateItem(ctx, database, f.item("Phone"))

	_, err := DeleteTerm(ctx, database, Locations, f.location.ID)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}
