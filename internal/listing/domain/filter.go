package domain

import (
	"strings"
	"time"
)

type SortField string

const (
	SortByPrice     SortField = "price"
	SortByCreatedAt SortField = "createdAt"
	SortByMaxGuests SortField = "maxGuests"
	SortByTitle     SortField = "title"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Canonical defaults for search input. Every call site goes through
// NewFilterSpec; nothing re-derives these ad hoc.
const (
	DefaultStatus    = StatusActive
	DefaultPage      = 1
	DefaultLimit     = 12
	MaxLimit         = 100
	DefaultSortBy    = SortByCreatedAt
	DefaultSortOrder = SortDesc
)

// FilterInput is the raw, all-optional caller input. Nil means absent.
// The validation layer upstream owns type coercion; normalization here only
// applies defaults and clamps pagination to its bounds.
type FilterInput struct {
	Search        *string
	Type          *ListingType
	Status        *ListingStatus
	MinPrice      *float64
	MaxPrice      *float64
	MaxGuests     *int
	City          *string
	AvailableFrom *time.Time
	AvailableTo   *time.Time
	Page          *int
	Limit         *int
	SortBy        *SortField
	SortOrder     *SortOrder
}

// FilterSpec is the normalized form the predicate builder consumes without
// re-validating types. Zero-value strings mean absent; pointer fields keep
// their absence explicit because zero is a meaningful bound.
type FilterSpec struct {
	Search        string
	Type          ListingType
	Status        ListingStatus
	MinPrice      *float64
	MaxPrice      *float64
	MaxGuests     *int
	City          string
	AvailableFrom *time.Time
	AvailableTo   *time.Time
	Page          int
	Limit         int
	SortBy        SortField
	SortOrder     SortOrder
}

// NewFilterSpec normalizes raw input into its canonical shape.
//
// Status defaults to "active" when absent: the absence of explicit intent must
// not leak non-active inventory. An all-whitespace search is treated as
// absent, not as "match empty string". Unknown sort fields and orders fall
// back to the defaults. MinPrice > MaxPrice is deliberately not rejected; the
// resulting predicate simply matches nothing.
func NewFilterSpec(in FilterInput) FilterSpec {
	spec := FilterSpec{
		Status:    DefaultStatus,
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		SortBy:    DefaultSortBy,
		SortOrder: DefaultSortOrder,
		MinPrice:  in.MinPrice,
		MaxPrice:  in.MaxPrice,
		MaxGuests: in.MaxGuests,
	}
	if in.Search != nil {
		spec.Search = strings.TrimSpace(*in.Search)
	}
	if in.Type != nil && ValidListingType(*in.Type) {
		spec.Type = *in.Type
	}
	if in.Status != nil && ValidListingStatus(*in.Status) {
		spec.Status = *in.Status
	}
	if in.City != nil {
		spec.City = strings.TrimSpace(*in.City)
	}
	if in.AvailableFrom != nil {
		t := *in.AvailableFrom
		spec.AvailableFrom = &t
	}
	if in.AvailableTo != nil {
		t := *in.AvailableTo
		spec.AvailableTo = &t
	}
	if in.Page != nil && *in.Page >= 1 {
		spec.Page = *in.Page
	}
	if in.Limit != nil && *in.Limit >= 1 {
		spec.Limit = *in.Limit
		if spec.Limit > MaxLimit {
			spec.Limit = MaxLimit
		}
	}
	if in.SortBy != nil {
		switch *in.SortBy {
		case SortByPrice, SortByCreatedAt, SortByMaxGuests, SortByTitle:
			spec.SortBy = *in.SortBy
		}
	}
	if in.SortOrder != nil {
		switch *in.SortOrder {
		case SortAsc, SortDesc:
			spec.SortOrder = *in.SortOrder
		}
	}
	return spec
}
