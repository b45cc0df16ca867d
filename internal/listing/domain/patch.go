package domain

// ListingPatch carries a partial update. Nil fields are untouched; non-nil
// fields replace the stored value after the usual normalization. Slices use
// nil (not empty) to mean "leave as is".
type ListingPatch struct {
	Title        *string
	Description  *string
	Price        *PricePatch
	Location     *LocationPatch
	Images       []Image
	MaxGuests    *int
	Bedrooms     *int
	Beds         *int
	Bathrooms    *int
	Type         *ListingType
	Amenities    []string
	Status       *ListingStatus
	Availability []DateRange
}

type PricePatch struct {
	Base     *float64
	Currency *Currency
}

type LocationPatch struct {
	Street      *string
	City        *string
	State       *string
	Country     *string
	Pincode     *string
	Coordinates *[2]float64
}

// Apply merges the patch into the listing. Identity and timestamps are not
// touched. Image entries keep the IDs they arrive with, so retained entries
// preserve their stored identity; entries without an ID are left for the
// caller to mint. Malformed availability ranges in the patch are dropped
// rather than rejected; partial form submissions routinely carry half-filled
// date rows.
func (p ListingPatch) Apply(l *Listing) {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.Price != nil {
		if p.Price.Base != nil {
			l.Price.Base = *p.Price.Base
		}
		if p.Price.Currency != nil {
			l.Price.Currency = *p.Price.Currency
		}
	}
	if p.Location != nil {
		if p.Location.Street != nil {
			l.Location.Street = *p.Location.Street
		}
		if p.Location.City != nil {
			l.Location.City = *p.Location.City
		}
		if p.Location.State != nil {
			l.Location.State = *p.Location.State
		}
		if p.Location.Country != nil {
			l.Location.Country = *p.Location.Country
		}
		if p.Location.Pincode != nil {
			l.Location.Pincode = *p.Location.Pincode
		}
		if p.Location.Coordinates != nil {
			l.Location.Geometry = Geometry{Kind: GeometryKindPoint, Coordinates: *p.Location.Coordinates}
		}
	}
	if p.Images != nil {
		l.Images = dropBlankImages(p.Images)
	}
	if p.MaxGuests != nil {
		l.MaxGuests = *p.MaxGuests
	}
	if p.Bedrooms != nil {
		l.Bedrooms = *p.Bedrooms
	}
	if p.Beds != nil {
		l.Beds = *p.Beds
	}
	if p.Bathrooms != nil {
		l.Bathrooms = *p.Bathrooms
	}
	if p.Type != nil {
		l.Type = *p.Type
	}
	if p.Amenities != nil {
		l.Amenities = trimAmenities(p.Amenities)
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
	if p.Availability != nil {
		l.Availability = dropMalformedRanges(p.Availability)
	}
}
