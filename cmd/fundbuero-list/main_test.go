package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/fundbuero/internal/api"
	"github.com/erazemk/fundbuero/internal/client"
	"github.com/erazemk/fundbuero/internal/db"
	"github.com/erazemk/fundbuero/internal/media"
	"github.com/erazemk/fundbuero/internal/model"
	"github.com/erazemk/fundbuero/internal/store"
)

func setup(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	database := db.NewTestDB(t)
	dir, err := media.NewDir(t.TempDir())
	require.NoError(t, err)
	server := httptest.NewServer(api.NewRouter(database, api.NewSessions(database, "test-secret", 0), media.NewLibrary(dir)))
	t.Cleanup(server.Close)

	ctx := context.Background()
	c, err := client.New(server.URL)
	require.NoError(t, err)
	_, err = c.Signup(ctx, client.SignupRequest{
		Prename: "Erika", Surname: "Muster", Email: "erika@example.com", Password: "password123", Phone: "1",
	})
	require.NoError(t, err)

	categories, err := store.ListTerms(ctx, database, store.Categories)
	require.NoError(t, err)
	locations, err := store.ListTerms(ctx, database, store.Locations)
	require.NoError(t, err)

	date := int64(1710496800) // 2024-03-15 10:00 UTC
	id, err := c.CreateItem(ctx, &model.Item{
		Name: "Schirm", Title: "Roter Schirm", Type: model.ItemTypeFound, Date: &date, ReportedAt: date,
		CategoryID: categories[0].ID, LocationID: locations[0].ID,
	})
	require.NoError(t, err)
	return server, id
}

func TestRunListsFilteredItems(t *testing.T) {
	server, _ := setup(t)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), options{server: server.URL, tz: "UTC"}, &out))
	assert.Contains(t, out.String(), "Roter Schirm")
	assert.Contains(t, out.String(), "Gefunden")
	assert.Contains(t, out.String(), "15.03.2024")

	out.Reset()
	require.NoError(t, run(context.Background(), options{server: server.URL, kind: "lost"}, &out))
	assert.Contains(t, out.String(), "Keine Einträge gefunden.")
}

func TestRunDetailNeedsLogin(t *testing.T) {
	server, id := setup(t)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), options{server: server.URL, open: id}, &out))
	assert.Contains(t, out.String(), "/login/")

	out.Reset()
	require.NoError(t, run(context.Background(), options{
		server: server.URL, open: id, email: "erika@example.com", password: "password123",
	}, &out))
	assert.Contains(t, out.String(), "erika@example.com")
}

func TestRunRejectsBadDate(t *testing.T) {
	assert.Error(t, run(context.Background(), options{server: "http://127.0.0.1:0", date: "15.03.2024"}, &bytes.Buffer{}))
}
