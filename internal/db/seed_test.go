package db

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeedIsIdempotent(t *testing.T) {
	database := NewTestDB(t)

	require.NoError(t, Seed(database))
	require.NoError(t, Seed(database))

	var categories, locations int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&categories))
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM locations`).Scan(&locations))

	require.Equal(t, len(DefaultCategories), categories)
	require.Equal(t, len(DefaultLocations), locations)
}
