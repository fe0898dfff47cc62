package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carmarket/internal/config"
	"carmarket/internal/domain"
	"carmarket/internal/repos"
)

func TestRunImportsIntoSQLite(t *testing.T) {
	pterm.DisableOutput()
	defer pterm.EnableOutput()

	dir := t.TempDir()
	src := filepath.Join(dir, "cars.json")
	require.NoError(t, os.WriteFile(src, []byte(`[
		{"id":3,"make":"Volvo","model":"V60","year":2020,"km":45000,"fuel":"Hybrid","gearbox":"Automatic","price":31500,"location":"Gothenburg"},
		{"id":1,"make":"Kia","model":"Ceed","year":2019,"km":52000,"fuel":"Petrol","gearbox":"Manual","price":14200,"location":"Lyon"}
	]`), 0o644))
	dsn := filepath.Join(dir, "listings.db")

	require.NoError(t, run(context.Background(), config.Config{}, src, dsn))

	db, err := repos.OpenDB(dsn)
	require.NoError(t, err)
	defer db.Close()
	got, err := repos.NewListingRepo(db).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Volvo", got[0].Make)
	assert.Equal(t, "Kia", got[1].Make)
}

func TestRunRejectsSQLiteSource(t *testing.T) {
	pterm.DisableOutput()
	defer pterm.EnableOutput()

	err := run(context.Background(), config.Config{}, "sqlite:other.db", filepath.Join(t.TempDir(), "x.db"))
	require.Error(t, err)
}

func TestCheckIDs(t *testing.T) {
	assert.NoError(t, checkIDs([]domain.Listing{{ID: 1}, {ID: 2}}))
	assert.Error(t, checkIDs([]domain.Listing{{ID: 1}, {ID: 1}}))
	assert.Error(t, checkIDs([]domain.Listing{{ID: 0}}))
}
