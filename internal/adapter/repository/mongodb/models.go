package mongodb

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/staysocial/listing-service/internal/listing/domain"
)

// listingDocument is the stored shape of a listing. The geometry document
// keeps the GeoJSON "type" key so the 2dsphere index works.
type listingDocument struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Title        string               `bson:"title"`
	Description  string               `bson:"description"`
	Price        priceDocument        `bson:"price"`
	Location     locationDocument     `bson:"location"`
	Images       []imageDocument      `bson:"images"`
	MaxGuests    int                  `bson:"max_guests"`
	Bedrooms     int                  `bson:"bedrooms"`
	Beds         int                  `bson:"beds"`
	Bathrooms    int                  `bson:"bathrooms"`
	Type         string               `bson:"type"`
	Amenities    []string             `bson:"amenities"`
	Status       string               `bson:"status"`
	Availability []dateRangeDocument  `bson:"availability"`
	CreatedAt    time.Time            `bson:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at"`
}

type priceDocument struct {
	Base     float64 `bson:"base"`
	Currency string  `bson:"currency"`
}

type locationDocument struct {
	Street   string           `bson:"street"`
	City     string           `bson:"city"`
	State    string           `bson:"state"`
	Country  string           `bson:"country"`
	Pincode  string           `bson:"pincode"`
	Geometry geometryDocument `bson:"geometry"`
}

type geometryDocument struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

type imageDocument struct {
	ID       string `bson:"id"`
	URL      string `bson:"url"`
	Filename string `bson:"filename,omitempty"`
}

type dateRangeDocument struct {
	From time.Time `bson:"from"`
	To   time.Time `bson:"to"`
}

// toListingDocument converts a domain listing into its stored form. An empty
// domain ID maps to NilObjectID so InsertOne lets the store assign one.
func toListingDocument(l *domain.Listing) (*listingDocument, error) {
	if l == nil {
		return nil, nil
	}

	docID := primitive.NilObjectID
	if l.ID != "" {
		var err error
		docID, err = primitive.ObjectIDFromHex(l.ID)
		if err != nil {
			return nil, fmt.Errorf("toListingDocument: invalid ID format %q: %w", l.ID, err)
		}
	}

	images := make([]imageDocument, 0, len(l.Images))
	for _, img := range l.Images {
		images = append(images, imageDocument{ID: img.ID, URL: img.URL, Filename: img.Filename})
	}
	availability := make([]dateRangeDocument, 0, len(l.Availability))
	for _, r := range l.Availability {
		availability = append(availability, dateRangeDocument{From: r.From, To: r.To})
	}

	return &listingDocument{
		ID:          docID,
		Title:       l.Title,
		Description: l.Description,
		Price:       priceDocument{Base: l.Price.Base, Currency: string(l.Price.Currency)},
		Location: locationDocument{
			Street:  l.Location.Street,
			City:    l.Location.City,
			State:   l.Location.State,
			Country: l.Location.Country,
			Pincode: l.Location.Pincode,
			Geometry: geometryDocument{
				Type:        l.Location.Geometry.Kind,
				Coordinates: []float64{l.Location.Geometry.Coordinates[0], l.Location.Geometry.Coordinates[1]},
			},
		},
		Images:       images,
		MaxGuests:    l.MaxGuests,
		Bedrooms:     l.Bedrooms,
		Beds:         l.Beds,
		Bathrooms:    l.Bathrooms,
		Type:         string(l.Type),
		Amenities:    l.Amenities,
		Status:       string(l.Status),
		Availability: availability,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}, nil
}

func toDomainListing(d *listingDocument) *domain.Listing {
	if d == nil {
		return nil
	}

	images := make([]domain.Image, 0, len(d.Images))
	for _, img := range d.Images {
		images = append(images, domain.Image{ID: img.ID, URL: img.URL, Filename: img.Filename})
	}
	availability := make([]domain.DateRange, 0, len(d.Availability))
	for _, r := range d.Availability {
		availability = append(availability, domain.DateRange{From: r.From, To: r.To})
	}

	var coords [2]float64
	if len(d.Location.Geometry.Coordinates) == 2 {
		coords[0] = d.Location.Geometry.Coordinates[0]
		coords[1] = d.Location.Geometry.Coordinates[1]
	}

	return &domain.Listing{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Price:       domain.Price{Base: d.Price.Base, Currency: domain.Currency(d.Price.Currency)},
		Location: domain.Location{
			Street:   d.Location.Street,
			City:     d.Location.City,
			State:    d.Location.State,
			Country:  d.Location.Country,
			Pincode:  d.Location.Pincode,
			Geometry: domain.Geometry{Kind: d.Location.Geometry.Type, Coordinates: coords},
		},
		Images:       images,
		MaxGuests:    d.MaxGuests,
		Bedrooms:     d.Bedrooms,
		Beds:         d.Beds,
		Bathrooms:    d.Bathrooms,
		Type:         domain.ListingType(d.Type),
		Amenities:    d.Amenities,
		Status:       domain.ListingStatus(d.Status),
		Availability: availability,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func toDomainListings(docs []*listingDocument) []*domain.Listing {
	listings := make([]*domain.Listing, 0, len(docs))
	for _, doc := range docs {
		listings = append(listings, toDomainListing(doc))
	}
	return listings
}
