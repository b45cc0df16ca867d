package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Bounds for the listing invariants. Kept in one place so the entity
// validators and the store schema stay in agreement.
const (
	TitleMinLen       = 1
	TitleMaxLen       = 100
	DescriptionMinLen = 10
	DescriptionMaxLen = 2000
	PriceMax          = 1_000_000
	StreetMaxLen      = 200
	CityMaxLen        = 50
	StateMaxLen       = 50
	CountryMaxLen     = 50
	PincodeMinLen     = 3
	PincodeMaxLen     = 10
	ImagesMin         = 1
	ImagesMax         = 5
	MaxGuestsMin      = 1
	MaxGuestsMax      = 50
	BedroomsMax       = 20
	BedsMin           = 1
	BedsMax           = 50
	BathroomsMax      = 20
)

var pincodePattern = regexp.MustCompile(`^[a-zA-Z0-9\s-]*$`)

// ValidateListing checks every invariant of a fully populated listing and
// returns a *ValidationError naming each violated field, or nil.
func ValidateListing(l *Listing) error {
	var fields []FieldError
	fields = append(fields, validateCore(l)...)
	fields = append(fields, validatePrice(l.Price)...)
	fields = append(fields, validateLocation(l.Location)...)
	fields = append(fields, validateImages(l.Images)...)
	fields = append(fields, validateCapacity(l)...)
	fields = append(fields, validateAvailability(l.Availability)...)
	return NewValidationError(fields)
}

func validateCore(l *Listing) []FieldError {
	var errs []FieldError
	if n := len(strings.TrimSpace(l.Title)); n < TitleMinLen || n > TitleMaxLen {
		errs = append(errs, FieldError{"title", fmt.Sprintf("must be between %d and %d characters", TitleMinLen, TitleMaxLen)})
	}
	if n := len(strings.TrimSpace(l.Description)); n < DescriptionMinLen || n > DescriptionMaxLen {
		errs = append(errs, FieldError{"description", fmt.Sprintf("must be between %d and %d characters", DescriptionMinLen, DescriptionMaxLen)})
	}
	if !ValidListingType(l.Type) {
		errs = append(errs, FieldError{"type", "must be one of: Entire Place, Private Room, Hotel Room, Shared Room"})
	}
	if !ValidListingStatus(l.Status) {
		errs = append(errs, FieldError{"status", "must be one of: active, inactive, pending, blocked"})
	}
	return errs
}

func validatePrice(p Price) []FieldError {
	var errs []FieldError
	if p.Base < 0 || p.Base > PriceMax {
		errs = append(errs, FieldError{"price.base", fmt.Sprintf("must be between 0 and %d", PriceMax)})
	}
	if !ValidCurrency(p.Currency) {
		errs = append(errs, FieldError{"price.currency", "must be INR, USD, or EUR"})
	}
	return errs
}

func validateLocation(loc Location) []FieldError {
	var errs []FieldError
	errs = appendTextBound(errs, "location.street", loc.Street, 1, StreetMaxLen)
	errs = appendTextBound(errs, "location.city", loc.City, 1, CityMaxLen)
	errs = appendTextBound(errs, "location.state", loc.State, 1, StateMaxLen)
	errs = appendTextBound(errs, "location.country", loc.Country, 1, CountryMaxLen)
	errs = appendTextBound(errs, "location.pincode", loc.Pincode, PincodeMinLen, PincodeMaxLen)
	if !pincodePattern.MatchString(loc.Pincode) {
		errs = append(errs, FieldError{"location.pincode", "may only contain letters, numbers, spaces, and hyphens"})
	}
	if loc.Geometry.Kind != GeometryKindPoint {
		errs = append(errs, FieldError{"location.geometry.kind", `must be "Point"`})
	}
	lon, lat := loc.Geometry.Coordinates[0], loc.Geometry.Coordinates[1]
	if lon < -180 || lon > 180 {
		errs = append(errs, FieldError{"location.geometry.coordinates", "longitude must be between -180 and 180"})
	}
	if lat < -90 || lat > 90 {
		errs = append(errs, FieldError{"location.geometry.coordinates", "latitude must be between -90 and 90"})
	}
	return errs
}

func validateImages(images []Image) []FieldError {
	var errs []FieldError
	if len(images) < ImagesMin || len(images) > ImagesMax {
		errs = append(errs, FieldError{"images", fmt.Sprintf("a listing must have between %d and %d images", ImagesMin, ImagesMax)})
	}
	for i, img := range images {
		u, err := url.Parse(img.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, FieldError{fmt.Sprintf("images[%d].url", i), "must be a well-formed absolute URL"})
		}
	}
	return errs
}

func validateCapacity(l *Listing) []FieldError {
	var errs []FieldError
	if l.MaxGuests < MaxGuestsMin || l.MaxGuests > MaxGuestsMax {
		errs = append(errs, FieldError{"maxGuests", fmt.Sprintf("must be between %d and %d", MaxGuestsMin, MaxGuestsMax)})
	}
	if l.Bedrooms < 0 || l.Bedrooms > BedroomsMax {
		errs = append(errs, FieldError{"bedrooms", fmt.Sprintf("must be between 0 and %d", BedroomsMax)})
	}
	if l.Beds < BedsMin || l.Beds > BedsMax {
		errs = append(errs, FieldError{"beds", fmt.Sprintf("must be between %d and %d", BedsMin, BedsMax)})
	}
	if l.Bathrooms < 0 || l.Bathrooms > BathroomsMax {
		errs = append(errs, FieldError{"bathrooms", fmt.Sprintf("must be between 0 and %d", BathroomsMax)})
	}
	return errs
}

// validateAvailability enforces the per-range invariant only; ranges may
// overlap or be disjoint with no inter-range constraint.
func validateAvailability(ranges []DateRange) []FieldError {
	var errs []FieldError
	for i, r := range ranges {
		if !r.To.After(r.From) {
			errs = append(errs, FieldError{fmt.Sprintf("availability[%d]", i), "'to' must be strictly after 'from'"})
		}
	}
	return errs
}

func appendTextBound(errs []FieldError, field, value string, min, max int) []FieldError {
	if n := len(strings.TrimSpace(value)); n < min || n > max {
		errs = append(errs, FieldError{field, fmt.Sprintf("must be between %d and %d characters", min, max)})
	}
	return errs
}
