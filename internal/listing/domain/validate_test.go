package domain

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validListing() *Listing {
	return &Listing{
		Title:       "Cozy Studio in Delhi",
		Description: "Compact studio apartment near Connaught Place, perfect for solo travelers.",
		Price:       Price{Base: 1200, Currency: CurrencyINR},
		Location: Location{
			Street:   "12 Sample Street",
			City:     "Delhi",
			State:    "Delhi",
			Country:  "India",
			Pincode:  "110001",
			Geometry: Geometry{Kind: GeometryKindPoint, Coordinates: [2]float64{77.2090, 28.6139}},
		},
		Images: []Image{
			{ID: "img-1", URL: "https://example.com/1.jpg"},
		},
		MaxGuests: 2,
		Bedrooms:  1,
		Beds:      1,
		Bathrooms: 1,
		Type:      TypeEntirePlace,
		Amenities: []string{"WiFi"},
		Status:    StatusActive,
	}
}

func TestValidateListing_Valid(t *testing.T) {
	assert.NoError(t, ValidateListing(validListing()))
}

func TestValidateListing_FieldViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Listing)
		field  string
	}{
		{"empty title", func(l *Listing) { l.Title = "   " }, "title"},
		{"title too long", func(l *Listing) { l.Title = strings.Repeat("x", 101) }, "title"},
		{"description too short", func(l *Listing) { l.Description = "too short" }, "description"},
		{"negative price", func(l *Listing) { l.Price.Base = -1 }, "price.base"},
		{"price above cap", func(l *Listing) { l.Price.Base = 1_000_001 }, "price.base"},
		{"unknown currency", func(l *Listing) { l.Price.Currency = "GBP" }, "price.currency"},
		{"empty city", func(l *Listing) { l.Location.City = "" }, "location.city"},
		{"pincode too short", func(l *Listing) { l.Location.Pincode = "12" }, "location.pincode"},
		{"pincode bad characters", func(l *Listing) { l.Location.Pincode = "110_001" }, "location.pincode"},
		{"wrong geometry kind", func(l *Listing) { l.Location.Geometry.Kind = "Polygon" }, "location.geometry.kind"},
		{"longitude out of range", func(l *Listing) { l.Location.Geometry.Coordinates[0] = 181 }, "location.geometry.coordinates"},
		{"latitude out of range", func(l *Listing) { l.Location.Geometry.Coordinates[1] = -91 }, "location.geometry.coordinates"},
		{"no images", func(l *Listing) { l.Images = nil }, "images"},
		{"too many images", func(l *Listing) {
			l.Images = make([]Image, 6)
			for i := range l.Images {
				l.Images[i] = Image{URL: "https://example.com/x.jpg"}
			}
		}, "images"},
		{"relative image url", func(l *Listing) { l.Images[0].URL = "/relative.jpg" }, "images[0].url"},
		{"zero max guests", func(l *Listing) { l.MaxGuests = 0 }, "maxGuests"},
		{"max guests above cap", func(l *Listing) { l.MaxGuests = 51 }, "maxGuests"},
		{"zero beds", func(l *Listing) { l.Beds = 0 }, "beds"},
		{"negative bathrooms", func(l *Listing) { l.Bathrooms = -1 }, "bathrooms"},
		{"unknown type", func(l *Listing) { l.Type = "Tent" }, "type"},
		{"unknown status", func(l *Listing) { l.Status = "archived" }, "status"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := validListing()
			tc.mutate(l)

			err := ValidateListing(l)
			require.Error(t, err)

			verr, ok := err.(*ValidationError)
			require.True(t, ok, "expected *ValidationError, got %T", err)
			found := false
			for _, f := range verr.Fields {
				if f.Field == tc.field {
					found = true
				}
			}
			assert.True(t, found, "expected a field error for %q, got %v", tc.field, verr.Fields)
		})
	}
}

func TestValidateListing_AvailabilityRange(t *testing.T) {
	from := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	l := validListing()
	l.Availability = []DateRange{{From: from, To: from.AddDate(0, 0, -5)}}
	err := ValidateListing(l)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "availability[0]")

	// Equal endpoints are malformed too: To must be strictly after From.
	l = validListing()
	l.Availability = []DateRange{{From: from, To: from}}
	assert.Error(t, ValidateListing(l))

	l = validListing()
	l.Availability = []DateRange{
		{From: from, To: from.AddDate(0, 0, 5)},
		{From: from.AddDate(0, 0, 2), To: from.AddDate(0, 0, 8)}, // overlap is fine
	}
	assert.NoError(t, ValidateListing(l))
}

func TestValidateListing_ReportsAllViolations(t *testing.T) {
	l := validListing()
	l.Title = ""
	l.Price.Base = -5
	l.Images = nil

	err := ValidateListing(l)
	require.Error(t, err)
	verr := err.(*ValidationError)
	assert.GreaterOrEqual(t, len(verr.Fields), 3)
}

func TestNormalizeNewListing(t *testing.T) {
	l := validListing()
	l.Title = "  Cozy Studio in Delhi  "
	l.Location.Geometry.Kind = "point" // wrong case is forced to the literal
	l.Images = []Image{
		{URL: "https://example.com/1.jpg"},
		{URL: "   "},
		{URL: "https://example.com/2.jpg"},
	}
	l.Amenities = []string{" WiFi ", "", "AC"}
	l.Price.Currency = ""
	l.Status = ""

	NormalizeNewListing(l)

	assert.Equal(t, "Cozy Studio in Delhi", l.Title)
	assert.Equal(t, GeometryKindPoint, l.Location.Geometry.Kind)
	require.Len(t, l.Images, 2)
	assert.Equal(t, "https://example.com/1.jpg", l.Images[0].URL)
	assert.Equal(t, []string{"WiFi", "AC"}, l.Amenities)
	assert.Equal(t, CurrencyINR, l.Price.Currency)
	assert.Equal(t, StatusActive, l.Status)
}

func TestListingPatch_Apply(t *testing.T) {
	l := validListing()
	l.ID = "abc123"
	title := "Renamed Studio"
	base := 1500.0
	from := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	patch := ListingPatch{
		Title: &title,
		Price: &PricePatch{Base: &base},
		Images: []Image{
			{ID: "img-1", URL: "https://example.com/1.jpg"},
			{URL: ""},
			{URL: "https://example.com/new.jpg"},
		},
		Availability: []DateRange{
			{From: from, To: from.AddDate(0, 0, 5)},
			{From: from, To: from.AddDate(0, 0, -1)}, // malformed, dropped
		},
	}
	patch.Apply(l)

	assert.Equal(t, "abc123", l.ID)
	assert.Equal(t, "Renamed Studio", l.Title)
	assert.Equal(t, 1500.0, l.Price.Base)
	assert.Equal(t, CurrencyINR, l.Price.Currency, "currency untouched by base-only patch")
	assert.Equal(t, "Delhi", l.Location.City, "unpatched section preserved")
	require.Len(t, l.Images, 2, "blank image URL dropped")
	assert.Equal(t, "img-1", l.Images[0].ID, "retained image keeps its identity")
	require.Len(t, l.Availability, 1, "malformed range dropped")
}

func TestShortDescription(t *testing.T) {
	l := validListing()
	l.Description = strings.Repeat("a", 120)
	assert.Equal(t, l.Description, l.ShortDescription())

	l.Description = strings.Repeat("a", 121)
	short := l.ShortDescription()
	assert.Len(t, short, 120)
	assert.True(t, strings.HasSuffix(short, "..."))
}

func TestShortDescription_MultiByteRunes(t *testing.T) {
	l := validListing()
	l.Description = strings.Repeat("é", 121)

	short := l.ShortDescription()
	assert.True(t, utf8.ValidString(short), "truncation must not split a rune")
	assert.Equal(t, 120, utf8.RuneCountInString(short))
	assert.True(t, strings.HasSuffix(short, "..."))

	l.Description = strings.Repeat("é", 120)
	assert.Equal(t, l.Description, l.ShortDescription(), "120 runes fit untruncated")
}
