// Package memory implements the listing repository over an in-process map.
// It evaluates predicates directly, which keeps the usecase tests independent
// of a running MongoDB and doubles as a second query engine exercising the
// storage-agnostic predicate contract.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/staysocial/listing-service/internal/listing/domain"
)

type ListingRepository struct {
	mu       sync.RWMutex
	listings map[string]*domain.Listing
}

func NewListingRepository() *ListingRepository {
	return &ListingRepository{listings: make(map[string]*domain.Listing)}
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing.ID = uuid.NewString()
	listing.CreatedAt = time.Now().UTC()
	listing.UpdatedAt = listing.CreatedAt
	r.listings[listing.ID] = cloneListing(listing)
	return nil
}

func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.listings[listing.ID]
	if !ok {
		return domain.ErrNotFound
	}
	listing.CreatedAt = stored.CreatedAt
	listing.UpdatedAt = time.Now().UTC()
	r.listings[listing.ID] = cloneListing(listing)
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) (*domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.listings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(r.listings, id)
	return stored, nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.listings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneListing(stored), nil
}

func (r *ListingRepository) FindPage(ctx context.Context, predicate domain.Predicate, page domain.PageRequest) ([]*domain.Listing, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*domain.Listing, 0)
	for _, l := range r.listings {
		if matches(predicate, l) {
			matched = append(matched, cloneListing(l))
		}
	}
	sortListings(matched, page.SortBy, page.SortOrder)

	total := int64(len(matched))
	start := page.Offset
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func matches(p domain.Predicate, l *domain.Listing) bool {
	for _, c := range p.Clauses {
		if !clauseMatches(c, l) {
			return false
		}
	}
	return true
}

func clauseMatches(c domain.Clause, l *domain.Listing) bool {
	switch c := c.(type) {
	case domain.EqualsClause:
		return fieldString(c.Field, l) == c.Value
	case domain.ContainsClause:
		return strings.Contains(strings.ToLower(fieldString(c.Field, l)), strings.ToLower(c.Value))
	case domain.AnyOfClause:
		for _, sub := range c.Clauses {
			if clauseMatches(sub, l) {
				return true
			}
		}
		return false
	case domain.RangeClause:
		v := fieldNumber(c.Field, l)
		if c.Min != nil && v < *c.Min {
			return false
		}
		if c.Max != nil && v > *c.Max {
			return false
		}
		return true
	case domain.AtMostClause:
		return fieldNumber(c.Field, l) <= float64(c.Value)
	case domain.ElemRangeClause:
		for _, r := range l.Availability {
			if c.FromAtMost != nil && r.From.After(*c.FromAtMost) {
				continue
			}
			if c.ToAtLeast != nil && r.To.Before(*c.ToAtLeast) {
				continue
			}
			return true
		}
		return false
	}
	return false
}

func fieldString(field string, l *domain.Listing) string {
	switch field {
	case domain.FieldTitle:
		return l.Title
	case domain.FieldDescription:
		return l.Description
	case domain.FieldCity:
		return l.Location.City
	case domain.FieldType:
		return string(l.Type)
	case domain.FieldStatus:
		return string(l.Status)
	}
	return ""
}

func fieldNumber(field string, l *domain.Listing) float64 {
	switch field {
	case domain.FieldPriceBase:
		return l.Price.Base
	case domain.FieldMaxGuests:
		return float64(l.MaxGuests)
	}
	return 0
}

// sortListings orders deterministically: the requested key first, identity as
// the tie-breaker.
func sortListings(listings []*domain.Listing, by domain.SortField, order domain.SortOrder) {
	sort.Slice(listings, func(i, j int) bool {
		a, b := listings[i], listings[j]
		var less, equal bool
		switch by {
		case domain.SortByPrice:
			less, equal = a.Price.Base < b.Price.Base, a.Price.Base == b.Price.Base
		case domain.SortByMaxGuests:
			less, equal = a.MaxGuests < b.MaxGuests, a.MaxGuests == b.MaxGuests
		case domain.SortByTitle:
			less, equal = a.Title < b.Title, a.Title == b.Title
		default:
			less, equal = a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
		}
		if equal {
			return a.ID < b.ID
		}
		if order == domain.SortAsc {
			return less
		}
		return !less
	})
}

func cloneListing(l *domain.Listing) *domain.Listing {
	clone := *l
	clone.Images = append([]domain.Image(nil), l.Images...)
	clone.Amenities = append([]string(nil), l.Amenities...)
	clone.Availability = append([]domain.DateRange(nil), l.Availability...)
	return &clone
}
