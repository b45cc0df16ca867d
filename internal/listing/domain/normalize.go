package domain

import "strings"

// NormalizeNewListing brings caller-supplied data into its stored shape before
// validation: text fields are trimmed, the geometry kind is forced to "Point"
// whenever coordinates are supplied, image entries with blank URLs are
// dropped, the currency defaults to INR, and the status defaults to active.
func NormalizeNewListing(l *Listing) {
	l.Title = strings.TrimSpace(l.Title)
	l.Description = strings.TrimSpace(l.Description)
	l.Location.Street = strings.TrimSpace(l.Location.Street)
	l.Location.City = strings.TrimSpace(l.Location.City)
	l.Location.State = strings.TrimSpace(l.Location.State)
	l.Location.Country = strings.TrimSpace(l.Location.Country)
	l.Location.Pincode = strings.TrimSpace(l.Location.Pincode)
	l.Location.Geometry.Kind = GeometryKindPoint
	l.Images = dropBlankImages(l.Images)
	l.Amenities = trimAmenities(l.Amenities)
	if l.Price.Currency == "" {
		l.Price.Currency = CurrencyINR
	}
	if l.Status == "" {
		l.Status = StatusActive
	}
}

func dropBlankImages(images []Image) []Image {
	kept := make([]Image, 0, len(images))
	for _, img := range images {
		if strings.TrimSpace(img.URL) == "" {
			continue
		}
		kept = append(kept, img)
	}
	return kept
}

func trimAmenities(amenities []string) []string {
	trimmed := make([]string, 0, len(amenities))
	for _, a := range amenities {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		trimmed = append(trimmed, a)
	}
	return trimmed
}

func dropMalformedRanges(ranges []DateRange) []DateRange {
	kept := make([]DateRange, 0, len(ranges))
	for _, r := range ranges {
		if !r.To.After(r.From) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}
