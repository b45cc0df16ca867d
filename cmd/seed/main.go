// Command seed wipes the listings collection and repopulates it with sample
// inventory. Coordinates come from the geocode package; every record goes
// through the usecase so the stored data honors the listing invariants.
package main

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/staysocial/listing-service/internal/adapter/geocode"
	"github.com/staysocial/listing-service/internal/adapter/repository/mongodb"
	"github.com/staysocial/listing-service/internal/config"
	"github.com/staysocial/listing-service/internal/listing/domain"
	"github.com/staysocial/listing-service/internal/listing/usecase"
	"github.com/staysocial/listing-service/internal/platform/logger"
)

type sample struct {
	title       string
	description string
	price       float64
	city        string
	state       string
	listingType domain.ListingType
	maxGuests   int
	bedrooms    int
	beds        int
	bathrooms   int
	amenities   []string
}

var samples = []sample{
	{"Cozy Studio in Delhi", "Compact studio apartment near Connaught Place, perfect for solo travelers.", 1200, "Delhi", "Delhi", domain.TypeEntirePlace, 2, 1, 1, 1, []string{"WiFi", "AC"}},
	{"Modern 2BHK in Bangalore", "Spacious flat with fast Wi-Fi and balcony views of the city.", 2500, "Bangalore", "Karnataka", domain.TypeEntirePlace, 4, 2, 2, 2, []string{"WiFi", "Balcony", "Kitchen"}},
	{"Heritage Home in Jaipur", "Stay in a 200-year-old haveli with traditional interiors.", 1800, "Jaipur", "Rajasthan", domain.TypePrivateRoom, 3, 1, 2, 1, []string{"Breakfast", "Courtyard"}},
	{"Beachside Shack in Goa", "Rustic bamboo hut right on the sands of Anjuna Beach.", 2200, "Goa", "Goa", domain.TypeEntirePlace, 2, 1, 1, 1, []string{"Beach access"}},
	{"Luxury Villa in Gurgaon", "4BHK villa with a private pool and garden, ideal for families.", 7500, "Gurgaon", "Haryana", domain.TypeEntirePlace, 8, 4, 5, 4, []string{"Pool", "Garden", "WiFi", "Parking"}},
	{"Budget PG in Pune", "Affordable shared accommodation for students and professionals.", 800, "Pune", "Maharashtra", domain.TypeSharedRoom, 1, 1, 1, 1, []string{"WiFi", "Laundry"}},
	{"Treehouse Retreat in Manali", "Wooden treehouse surrounded by pine forests and snowy peaks.", 3000, "Manali", "Himachal Pradesh", domain.TypeEntirePlace, 3, 1, 2, 1, []string{"Fireplace", "Mountain view"}},
	{"Houseboat in Kerala", "Traditional houseboat stay in the backwaters of Alleppey.", 5000, "Alleppey", "Kerala", domain.TypeEntirePlace, 4, 2, 2, 2, []string{"Meals included", "Deck"}},
	{"Designer Loft in Hyderabad", "Open-plan loft with modern decor and smart home features.", 4200, "Hyderabad", "Telangana", domain.TypeEntirePlace, 4, 2, 2, 2, []string{"WiFi", "Smart TV"}},
	{"Capsule Pod in Chennai", "Futuristic pod-style accommodation near the airport.", 900, "Chennai", "Tamil Nadu", domain.TypeHotelRoom, 1, 0, 1, 1, []string{"AC", "Lockers"}},
	{"Luxury Penthouse in Kolkata", "Top-floor penthouse with a terrace garden and city views.", 8500, "Kolkata", "West Bengal", domain.TypeEntirePlace, 6, 3, 3, 3, []string{"Terrace", "WiFi", "Elevator"}},
	{"Lake View Apartment in Udaipur", "Balcony views of Lake Pichola and City Palace.", 3300, "Udaipur", "Rajasthan", domain.TypePrivateRoom, 2, 1, 1, 1, []string{"Lake view", "Breakfast"}},
	{"Riverside Cottage in Rishikesh", "Private riverside stay with yoga and rafting options.", 2800, "Rishikesh", "Uttarakhand", domain.TypeEntirePlace, 4, 2, 2, 1, []string{"Yoga deck", "River view"}},
	{"Traditional Homestay in Varanasi", "Live with a local family near the ghats.", 1500, "Varanasi", "Uttar Pradesh", domain.TypePrivateRoom, 2, 1, 1, 1, []string{"Meals included"}},
}

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load config", "error", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Error("failed to connect to MongoDB", "error", err.Error())
		return
	}
	defer mongoClient.Disconnect(context.Background())
	db := mongoClient.Database(cfg.MongoDatabase)

	var geocoder geocode.Geocoder = geocode.NewStaticGeocoder()
	if cfg.RedisAddress != "" {
		cached, err := geocode.NewCachedGeocoder(geocoder, cfg.RedisAddress)
		if err != nil {
			log.Warn("geocode cache unavailable, using static lookups", "error", err.Error())
		} else {
			defer cached.Close()
			geocoder = cached
		}
	}

	if err := db.Collection("listings").Drop(ctx); err != nil {
		log.Error("failed to drop listings collection", "error", err.Error())
		return
	}
	log.Info("old listings cleared")

	repo := mongodb.NewListingRepository(db, log)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Error("failed to ensure indexes", "error", err.Error())
		return
	}
	uc := usecase.NewListingUsecase(repo, nil, log)

	seeded := 0
	for _, s := range samples {
		coords, err := geocoder.Lookup(ctx, s.city)
		if err != nil {
			log.Warn("geocode lookup failed", "city", s.city, "error", err.Error())
			continue
		}

		checkIn := time.Now().UTC().AddDate(0, 0, 7).Truncate(24 * time.Hour)
		listing := &domain.Listing{
			Title:       s.title,
			Description: s.description,
			Price:       domain.Price{Base: s.price, Currency: domain.CurrencyINR},
			Location: domain.Location{
				Street:   "12 Sample Street",
				City:     s.city,
				State:    s.state,
				Country:  "India",
				Pincode:  "110001",
				Geometry: domain.Geometry{Kind: domain.GeometryKindPoint, Coordinates: coords},
			},
			Images: []domain.Image{
				{URL: "https://images.staysocial.example/" + slug(s.title) + "/1.jpg"},
				{URL: "https://images.staysocial.example/" + slug(s.title) + "/2.jpg"},
			},
			MaxGuests: s.maxGuests,
			Bedrooms:  s.bedrooms,
			Beds:      s.beds,
			Bathrooms: s.bathrooms,
			Type:      s.listingType,
			Amenities: s.amenities,
			Status:    domain.StatusActive,
			Availability: []domain.DateRange{
				{From: checkIn, To: checkIn.AddDate(0, 3, 0)},
			},
		}

		if _, err := uc.CreateListing(ctx, listing); err != nil {
			log.Error("failed to seed listing", "title", s.title, "error", err.Error())
			return
		}
		seeded++
	}
	log.Info("database seeded with sample listings", "count", seeded)
}

func slug(title string) string {
	out := make([]rune, 0, len(title))
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ':
			out = append(out, '-')
		}
	}
	return string(out)
}
