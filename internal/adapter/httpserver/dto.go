package httpserver

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/staysocial/listing-service/internal/listing/domain"
	"github.com/staysocial/listing-service/internal/listing/usecase"
)

// StringList accepts either a JSON array of strings or a single string,
// which is coerced into a one-element list. HTML forms submit a lone checked
// amenity as a scalar.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*s = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return fmt.Errorf("amenities must be a string or an array of strings")
	}
	*s = []string{one}
	return nil
}

// apiDate accepts RFC 3339 timestamps as well as plain YYYY-MM-DD dates.
type apiDate struct {
	time.Time
}

func (d *apiDate) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t, err := parseDate(raw)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("must be an ISO date (YYYY-MM-DD)")
	}
	return t, nil
}

type priceBody struct {
	Base     float64 `json:"base" validate:"gte=0"`
	Currency string  `json:"currency" validate:"omitempty,oneof=INR USD EUR"`
}

type geometryBody struct {
	Kind        string    `json:"type"`
	Coordinates []float64 `json:"coordinates" validate:"len=2"`
}

type locationBody struct {
	Street   string       `json:"street" validate:"required"`
	City     string       `json:"city" validate:"required"`
	State    string       `json:"state" validate:"required"`
	Country  string       `json:"country" validate:"required"`
	Pincode  string       `json:"pincode" validate:"required"`
	Geometry geometryBody `json:"geometry" validate:"required"`
}

type imageBody struct {
	ID       string `json:"id"`
	URL      string `json:"url" validate:"required"`
	Filename string `json:"filename"`
}

type dateRangeBody struct {
	From apiDate `json:"from" validate:"required"`
	To   apiDate `json:"to" validate:"required"`
}

type createListingRequest struct {
	Title        string          `json:"title" validate:"required"`
	Description  string          `json:"description" validate:"required"`
	Price        priceBody       `json:"price" validate:"required"`
	Location     locationBody    `json:"location" validate:"required"`
	Images       []imageBody     `json:"images" validate:"required,min=1,max=5,dive"`
	MaxGuests    int             `json:"maxGuests" validate:"required,gte=1"`
	Bedrooms     *int            `json:"bedrooms"`
	Beds         *int            `json:"beds"`
	Bathrooms    *int            `json:"bathrooms"`
	Type         string          `json:"type" validate:"required,oneof='Entire Place' 'Private Room' 'Hotel Room' 'Shared Room'"`
	Amenities    StringList      `json:"amenities"`
	Status       string          `json:"status" validate:"omitempty,oneof=active inactive pending blocked"`
	Availability []dateRangeBody `json:"availability" validate:"omitempty,dive"`
}

// toDomain maps the request body onto the entity. Bedrooms, beds, and
// bathrooms default to 1 when omitted, matching the stored schema defaults.
func (req *createListingRequest) toDomain() *domain.Listing {
	listing := &domain.Listing{
		Title:       req.Title,
		Description: req.Description,
		Price:       domain.Price{Base: req.Price.Base, Currency: domain.Currency(req.Price.Currency)},
		Location: domain.Location{
			Street:   req.Location.Street,
			City:     req.Location.City,
			State:    req.Location.State,
			Country:  req.Location.Country,
			Pincode:  req.Location.Pincode,
			Geometry: toGeometry(req.Location.Geometry),
		},
		Images:       toImages(req.Images),
		MaxGuests:    req.MaxGuests,
		Bedrooms:     1,
		Beds:         1,
		Bathrooms:    1,
		Type:         domain.ListingType(req.Type),
		Amenities:    req.Amenities,
		Status:       domain.ListingStatus(req.Status),
		Availability: toDateRanges(req.Availability),
	}
	if req.Bedrooms != nil {
		listing.Bedrooms = *req.Bedrooms
	}
	if req.Beds != nil {
		listing.Beds = *req.Beds
	}
	if req.Bathrooms != nil {
		listing.Bathrooms = *req.Bathrooms
	}
	return listing
}

type pricePatchBody struct {
	Base     *float64 `json:"base" validate:"omitempty,gte=0"`
	Currency *string  `json:"currency" validate:"omitempty,oneof=INR USD EUR"`
}

type locationPatchBody struct {
	Street   *string       `json:"street"`
	City     *string       `json:"city"`
	State    *string       `json:"state"`
	Country  *string       `json:"country"`
	Pincode  *string       `json:"pincode"`
	Geometry *geometryBody `json:"geometry" validate:"omitempty"`
}

type updateListingRequest struct {
	Title        *string            `json:"title"`
	Description  *string            `json:"description"`
	Price        *pricePatchBody    `json:"price" validate:"omitempty"`
	Location     *locationPatchBody `json:"location" validate:"omitempty"`
	Images       []imageBody        `json:"images" validate:"omitempty,max=5,dive"`
	MaxGuests    *int               `json:"maxGuests" validate:"omitempty,gte=1"`
	Bedrooms     *int               `json:"bedrooms"`
	Beds         *int               `json:"beds"`
	Bathrooms    *int               `json:"bathrooms"`
	Type         *string            `json:"type" validate:"omitempty,oneof='Entire Place' 'Private Room' 'Hotel Room' 'Shared Room'"`
	Amenities    StringList         `json:"amenities"`
	Status       *string            `json:"status" validate:"omitempty,oneof=active inactive pending blocked"`
	Availability []dateRangeBody    `json:"availability"`
}

func (req *updateListingRequest) toPatch() domain.ListingPatch {
	patch := domain.ListingPatch{
		Title:       req.Title,
		Description: req.Description,
		MaxGuests:   req.MaxGuests,
		Bedrooms:    req.Bedrooms,
		Beds:        req.Beds,
		Bathrooms:   req.Bathrooms,
	}
	if req.Price != nil {
		patch.Price = &domain.PricePatch{Base: req.Price.Base}
		if req.Price.Currency != nil {
			currency := domain.Currency(*req.Price.Currency)
			patch.Price.Currency = &currency
		}
	}
	if req.Location != nil {
		patch.Location = &domain.LocationPatch{
			Street:  req.Location.Street,
			City:    req.Location.City,
			State:   req.Location.State,
			Country: req.Location.Country,
			Pincode: req.Location.Pincode,
		}
		if req.Location.Geometry != nil && len(req.Location.Geometry.Coordinates) == 2 {
			coords := [2]float64{req.Location.Geometry.Coordinates[0], req.Location.Geometry.Coordinates[1]}
			patch.Location.Coordinates = &coords
		}
	}
	if req.Images != nil {
		patch.Images = toImages(req.Images)
	}
	if req.Type != nil {
		t := domain.ListingType(*req.Type)
		patch.Type = &t
	}
	if req.Amenities != nil {
		patch.Amenities = req.Amenities
	}
	if req.Status != nil {
		s := domain.ListingStatus(*req.Status)
		patch.Status = &s
	}
	if req.Availability != nil {
		patch.Availability = toDateRanges(req.Availability)
	}
	return patch
}

func toGeometry(g geometryBody) domain.Geometry {
	geo := domain.Geometry{Kind: g.Kind}
	if len(g.Coordinates) == 2 {
		geo.Coordinates = [2]float64{g.Coordinates[0], g.Coordinates[1]}
	}
	return geo
}

func toImages(bodies []imageBody) []domain.Image {
	images := make([]domain.Image, 0, len(bodies))
	for _, b := range bodies {
		images = append(images, domain.Image{ID: b.ID, URL: b.URL, Filename: b.Filename})
	}
	return images
}

func toDateRanges(bodies []dateRangeBody) []domain.DateRange {
	ranges := make([]domain.DateRange, 0, len(bodies))
	for _, b := range bodies {
		ranges = append(ranges, domain.DateRange{From: b.From.Time, To: b.To.Time})
	}
	return ranges
}

type listingResponse struct {
	ID               string              `json:"id"`
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	ShortDescription string              `json:"shortDescription"`
	Price            priceResponse       `json:"price"`
	Location         locationResponse    `json:"location"`
	Images           []imageResponse     `json:"images"`
	MaxGuests        int                 `json:"maxGuests"`
	Bedrooms         int                 `json:"bedrooms"`
	Beds             int                 `json:"beds"`
	Bathrooms        int                 `json:"bathrooms"`
	Type             string              `json:"type"`
	Amenities        []string            `json:"amenities"`
	Status           string              `json:"status"`
	Availability     []dateRangeResponse `json:"availability"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

type priceResponse struct {
	Base     float64 `json:"base"`
	Currency string  `json:"currency"`
}

type locationResponse struct {
	Street   string           `json:"street"`
	City     string           `json:"city"`
	State    string           `json:"state"`
	Country  string           `json:"country"`
	Pincode  string           `json:"pincode"`
	Geometry geometryResponse `json:"geometry"`
}

type geometryResponse struct {
	Kind        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

type imageResponse struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
}

type dateRangeResponse struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func newListingResponse(l *domain.Listing) listingResponse {
	images := make([]imageResponse, 0, len(l.Images))
	for _, img := range l.Images {
		images = append(images, imageResponse{ID: img.ID, URL: img.URL, Filename: img.Filename})
	}
	availability := make([]dateRangeResponse, 0, len(l.Availability))
	for _, r := range l.Availability {
		availability = append(availability, dateRangeResponse{From: r.From, To: r.To})
	}
	amenities := l.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return listingResponse{
		ID:               l.ID,
		Title:            l.Title,
		Description:      l.Description,
		ShortDescription: l.ShortDescription(),
		Price:            priceResponse{Base: l.Price.Base, Currency: string(l.Price.Currency)},
		Location: locationResponse{
			Street:  l.Location.Street,
			City:    l.Location.City,
			State:   l.Location.State,
			Country: l.Location.Country,
			Pincode: l.Location.Pincode,
			Geometry: geometryResponse{
				Kind:        l.Location.Geometry.Kind,
				Coordinates: l.Location.Geometry.Coordinates,
			},
		},
		Images:       images,
		MaxGuests:    l.MaxGuests,
		Bedrooms:     l.Bedrooms,
		Beds:         l.Beds,
		Bathrooms:    l.Bathrooms,
		Type:         string(l.Type),
		Amenities:    amenities,
		Status:       string(l.Status),
		Availability: availability,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

type paginationResponse struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

type searchResponse struct {
	Listings   []listingResponse  `json:"listings"`
	Pagination paginationResponse `json:"pagination"`
}

func newSearchResponse(result *usecase.SearchResult) searchResponse {
	listings := make([]listingResponse, 0, len(result.Listings))
	for _, l := range result.Listings {
		listings = append(listings, newListingResponse(l))
	}
	return searchResponse{
		Listings: listings,
		Pagination: paginationResponse{
			CurrentPage: result.CurrentPage,
			TotalPages:  result.TotalPages,
			TotalCount:  result.TotalCount,
			HasNext:     result.CurrentPage < result.TotalPages,
			HasPrev:     result.CurrentPage > 1,
		},
	}
}

type errorResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}
