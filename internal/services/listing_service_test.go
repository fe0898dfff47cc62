package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carmarket/internal/domain"
	"carmarket/internal/filter"
	"carmarket/internal/repos"
	"carmarket/internal/services"
)

type stubSource struct {
	listings []domain.Listing
	err      error
	calls    int
}

func (s *stubSource) Load(context.Context) ([]domain.Listing, error) {
	s.calls++
	return s.listings, s.err
}

func dataset() []domain.Listing {
	return []domain.Listing{
		{ID: 1, Make: "Peugeot", Model: "208", Year: 2020, Km: 30000, Fuel: "Petrol", Gearbox: "Manual", Price: 10000},
		{ID: 2, Make: "Audi", Model: "A3", Year: 2018, Km: 70000, Fuel: "Diesel", Gearbox: "Automatic", Price: 25000},
	}
}

func TestSearch(t *testing.T) {
	src := &stubSource{listings: dataset()}
	svc := services.NewListingService(src)

	minPrice := 15000.0
	res, err := svc.Search(context.Background(), filter.Criteria{MinPrice: &minPrice})
	require.NoError(t, err)
	require.Len(t, res.Listings, 1)
	assert.Equal(t, 2, res.Listings[0].ID)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, []string{"Audi", "Peugeot"}, res.Facets.Makes)

	// the dataset is re-read on every call
	_, err = svc.Search(context.Background(), filter.Criteria{})
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestGet(t *testing.T) {
	svc := services.NewListingService(&stubSource{listings: dataset()})

	l, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Equal(t, "Peugeot", l.Make)

	l, err = svc.Get(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, l)
}

func TestLoadFailureIsWrapped(t *testing.T) {
	boom := errors.New("connection reset")
	svc := services.NewListingService(&stubSource{err: boom})

	_, err := svc.Search(context.Background(), filter.Criteria{})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "load listings")

	_, err = svc.Get(context.Background(), 1)
	require.ErrorIs(t, err, boom)

	_, err = svc.Facets(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestSearchOverSQLite(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	defer db.Close()
	repo := repos.NewListingRepo(db)
	require.NoError(t, repo.ReplaceAll(context.Background(), dataset()))

	svc := services.NewListingService(repo)
	res, err := svc.Search(context.Background(), filter.Criteria{Make: "Peugeot"})
	require.NoError(t, err)
	require.Len(t, res.Listings, 1)
	assert.Equal(t, 1, res.Listings[0].ID)
}
