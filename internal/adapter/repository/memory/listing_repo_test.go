package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staysocial/listing-service/internal/listing/domain"
)

func seedListing(t *testing.T, repo *ListingRepository, title string, price float64) *domain.Listing {
	t.Helper()
	l := &domain.Listing{
		Title:       title,
		Description: "Somewhere to sleep that is not the office floor.",
		Price:       domain.Price{Base: price, Currency: domain.CurrencyINR},
		Location: domain.Location{
			City:     "Delhi",
			State:    "Delhi",
			Country:  "India",
			Pincode:  "110001",
			Geometry: domain.Geometry{Kind: domain.GeometryKindPoint, Coordinates: [2]float64{77.2090, 28.6139}},
		},
		Images:    []domain.Image{{ID: "img", URL: "https://example.com/1.jpg"}},
		MaxGuests: 2,
		Type:      domain.TypeEntirePlace,
		Status:    domain.StatusActive,
	}
	require.NoError(t, repo.Create(context.Background(), l))
	return l
}

func TestListingRepository_CRUD(t *testing.T) {
	repo := NewListingRepository()
	ctx := context.Background()

	created := seedListing(t, repo, "Cozy Studio", 1200)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	fetched, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, fetched.Title)

	// The returned listing is a copy; mutating it must not touch the store.
	fetched.Title = "tampered"
	again, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cozy Studio", again.Title)

	fetched.Title = "Renamed"
	require.NoError(t, repo.Update(ctx, fetched))
	updated, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt, "creation timestamp survives updates")

	removed, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)

	_, err = repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, created), domain.ErrNotFound)
}

func TestListingRepository_ContainsIsCaseInsensitive(t *testing.T) {
	repo := NewListingRepository()
	seedListing(t, repo, "Beachside Shack in Goa", 2200)
	seedListing(t, repo, "Mountain Cabin", 1800)

	p := domain.Predicate{Clauses: []domain.Clause{
		domain.ContainsClause{Field: domain.FieldTitle, Value: "BEACH"},
	}}
	got, total, err := repo.FindPage(context.Background(), p, domain.PageRequest{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, got, 1)
	assert.Equal(t, "Beachside Shack in Goa", got[0].Title)
}

func TestListingRepository_FindPageSlicing(t *testing.T) {
	repo := NewListingRepository()
	for i := 0; i < 7; i++ {
		seedListing(t, repo, fmt.Sprintf("Listing %d", i), float64(100*(i+1)))
	}

	page := domain.PageRequest{Offset: 0, Limit: 3, SortBy: domain.SortByPrice, SortOrder: domain.SortAsc}
	got, total, err := repo.FindPage(context.Background(), domain.Predicate{}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	require.Len(t, got, 3)
	assert.Equal(t, 100.0, got[0].Price.Base)
	assert.Equal(t, 300.0, got[2].Price.Base)

	page.Offset = 6
	got, total, err = repo.FindPage(context.Background(), domain.Predicate{}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	require.Len(t, got, 1)
	assert.Equal(t, 700.0, got[0].Price.Base)

	// Offset past the end is an empty slice, never an error.
	page.Offset = 100
	got, total, err = repo.FindPage(context.Background(), domain.Predicate{}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Empty(t, got)
}

func TestListingRepository_SortIsDeterministic(t *testing.T) {
	repo := NewListingRepository()
	ids := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		l := seedListing(t, repo, "Same Title", 1000) // identical sort keys
		ids = append(ids, l.ID)
	}

	page := domain.PageRequest{Limit: 10, SortBy: domain.SortByTitle, SortOrder: domain.SortAsc}
	first, _, err := repo.FindPage(context.Background(), domain.Predicate{}, page)
	require.NoError(t, err)
	second, _, err := repo.FindPage(context.Background(), domain.Predicate{}, page)
	require.NoError(t, err)

	require.Len(t, first, 5)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID, "ties broken by identity, stable across runs")
	}
	assert.ElementsMatch(t, ids, []string{first[0].ID, first[1].ID, first[2].ID, first[3].ID, first[4].ID})
}

func TestListingRepository_DescendingSort(t *testing.T) {
	repo := NewListingRepository()
	seedListing(t, repo, "Cheap", 500)
	seedListing(t, repo, "Mid", 1500)
	seedListing(t, repo, "Pricey", 3000)

	page := domain.PageRequest{Limit: 10, SortBy: domain.SortByPrice, SortOrder: domain.SortDesc}
	got, _, err := repo.FindPage(context.Background(), domain.Predicate{}, page)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Pricey", got[0].Title)
	assert.Equal(t, "Cheap", got[2].Title)
}
