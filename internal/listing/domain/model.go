package domain

import "time"

type ListingStatus string

const (
	StatusActive   ListingStatus = "active"
	StatusInactive ListingStatus = "inactive"
	StatusPending  ListingStatus = "pending"
	StatusBlocked  ListingStatus = "blocked"
)

type ListingType string

const (
	TypeEntirePlace ListingType = "Entire Place"
	TypePrivateRoom ListingType = "Private Room"
	TypeHotelRoom   ListingType = "Hotel Room"
	TypeSharedRoom  ListingType = "Shared Room"
)

type Currency string

const (
	CurrencyINR Currency = "INR"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// GeometryKindPoint is the only geometry kind a listing may carry.
const GeometryKindPoint = "Point"

type Price struct {
	Base     float64
	Currency Currency
}

// Geometry is a GeoJSON point. Coordinates are [longitude, latitude].
type Geometry struct {
	Kind        string
	Coordinates [2]float64
}

type Location struct {
	Street   string
	City     string
	State    string
	Country  string
	Pincode  string
	Geometry Geometry
}

// Image is one entry of a listing's gallery. ID is minted when the entry is
// first stored and survives partial updates that retain the entry.
type Image struct {
	ID       string
	URL      string
	Filename string
}

// DateRange is one bookable interval. To must be strictly after From.
// A listing may carry several ranges; they are allowed to overlap.
type DateRange struct {
	From time.Time
	To   time.Time
}

type Listing struct {
	ID           string
	Title        string
	Description  string
	Price        Price
	Location     Location
	Images       []Image
	MaxGuests    int
	Bedrooms     int
	Beds         int
	Bathrooms    int
	Type         ListingType
	Amenities    []string
	Status       ListingStatus
	Availability []DateRange
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const shortDescriptionLimit = 120

// ShortDescription returns the description truncated to at most 120 characters
// with an ellipsis marker. Computed on read, never stored. Truncation counts
// runes, never splitting a multi-byte character.
func (l *Listing) ShortDescription() string {
	runes := []rune(l.Description)
	if len(runes) <= shortDescriptionLimit {
		return l.Description
	}
	return string(runes[:shortDescriptionLimit-3]) + "..."
}

func ValidListingStatus(s ListingStatus) bool {
	switch s {
	case StatusActive, StatusInactive, StatusPending, StatusBlocked:
		return true
	}
	return false
}

func ValidListingType(t ListingType) bool {
	switch t {
	case TypeEntirePlace, TypePrivateRoom, TypeHotelRoom, TypeSharedRoom:
		return true
	}
	return false
}

func ValidCurrency(c Currency) bool {
	switch c {
	case CurrencyINR, CurrencyUSD, CurrencyEUR:
		return true
	}
	return false
}
