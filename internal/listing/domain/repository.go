package domain

import "context"

// PageRequest addresses one slice of a result set.
type PageRequest struct {
	Offset    int64
	Limit     int64
	SortBy    SortField
	SortOrder SortOrder
}

// ListingRepository is the store driver contract. Implementations must keep
// FindPage ordering stable and deterministic for a fixed predicate, sort key,
// and store snapshot (ties broken by identity), and must report ErrNotFound
// for operations addressing an unknown identity.
type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	Update(ctx context.Context, listing *Listing) error
	Delete(ctx context.Context, id string) (*Listing, error)
	FindByID(ctx context.Context, id string) (*Listing, error)
	FindPage(ctx context.Context, predicate Predicate, page PageRequest) ([]*Listing, int64, error)
}
