package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/erazemk/fundbuero/internal/model"
)

// fixture holds IDs of rows every item needs.
type fixture struct {
	user     *model.User
	category *model.Term
	location *model.Term
}

func newFixture(t *testing.T, database *sql.DB) fixture {
	t.Helper()
	ctx := context.Background()

	user, err := CreateUser(ctx, database, &model.User{
		Prename: "Ana", Surname: "Novak", Username: "ana", Email: "ana@example.com", PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	category, err := CreateTerm(ctx, database, Categories, "Taschen")
	if err != nil {
		t.Fatalf("CreateTerm: %v", err)
	}
	location, err := CreateTerm(ctx, database, Locations, "Hörsaal 1")
	if err != nil {
		t.Fatalf("CreateTerm: %v", err)
	}
	return fixture{user: user, category: category, location: location}
}

func (f fixture) item(name string) *model.Item {
	return &model.Item{
		Name:       name,
		Title:      name,
		Type:       model.ItemTypeLost,
		ReportedAt: 1709251200,
		CategoryID: f.category.ID,
		LocationID: f.location.ID,
		UserID:     f.user.ID,
	}
}
