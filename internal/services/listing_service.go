package services

import (
	"context"
	"fmt"

	"carmarket/internal/dataset"
	"carmarket/internal/domain"
	"carmarket/internal/filter"
)

// ListingService loads the dataset once per call and runs the pure filter
// core over that snapshot.
type ListingService struct {
	Source dataset.Source
}

func NewListingService(src dataset.Source) *ListingService {
	return &ListingService{Source: src}
}

type SearchResult struct {
	Listings []domain.Listing
	Facets   domain.Facets
	Total    int // size of the unfiltered dataset
}

func (s *ListingService) All(ctx context.Context) ([]domain.Listing, error) {
	listings, err := s.Source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load listings: %w", err)
	}
	return listings, nil
}

// Search filters the current dataset. Facets are computed from the whole
// dataset, not the filtered result, so every option stays selectable.
func (s *ListingService) Search(ctx context.Context, c filter.Criteria) (SearchResult, error) {
	all, err := s.All(ctx)
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{
		Listings: filter.Apply(all, c),
		Facets:   filter.FacetsOf(all),
		Total:    len(all),
	}, nil
}

// Get returns the listing with the given id; nil without error when there is
// no such listing.
func (s *ListingService) Get(ctx context.Context, id int) (*domain.Listing, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Find(all, id), nil
}

func (s *ListingService) Facets(ctx context.Context) (domain.Facets, error) {
	all, err := s.All(ctx)
	if err != nil {
		return domain.Facets{}, err
	}
	return filter.FacetsOf(all), nil
}
