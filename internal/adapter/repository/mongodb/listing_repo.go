package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/staysocial/listing-service/internal/listing/domain"
	"github.com/staysocial/listing-service/internal/platform/logger"
)

type ListingRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewListingRepository(db *mongo.Database, log *logger.Logger) *ListingRepository {
	return &ListingRepository{
		collection: db.Collection("listings"),
		logger:     log,
	}
}

// EnsureIndexes creates the geospatial and search-path indexes and installs a
// $jsonSchema validator so the store itself rejects documents that slipped
// past the application-level invariants. Run once at startup.
func (r *ListingRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "location.geometry", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "location.city", Value: 1}}},
	})
	if err != nil {
		return &domain.StoreError{Op: "create indexes", Err: err}
	}

	validator := bson.M{"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"title", "description", "price", "location", "images", "max_guests", "type", "status"},
		"properties": bson.M{
			"title":       bson.M{"bsonType": "string", "minLength": 1},
			"description": bson.M{"bsonType": "string", "minLength": domain.DescriptionMinLen},
			"price": bson.M{
				"bsonType": "object",
				"required": []string{"base", "currency"},
				"properties": bson.M{
					"base":     bson.M{"bsonType": []string{"double", "int", "long", "decimal"}, "minimum": 0},
					"currency": bson.M{"enum": []string{"INR", "USD", "EUR"}},
				},
			},
			"images":     bson.M{"bsonType": "array", "minItems": domain.ImagesMin, "maxItems": domain.ImagesMax},
			"max_guests": bson.M{"bsonType": []string{"int", "long"}, "minimum": domain.MaxGuestsMin, "maximum": domain.MaxGuestsMax},
			"status":     bson.M{"enum": []string{"active", "inactive", "pending", "blocked"}},
		},
	}}
	err = r.collection.Database().RunCommand(ctx, bson.D{
		{Key: "collMod", Value: r.collection.Name()},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
	}).Err()
	if err != nil {
		// collMod fails until the collection exists; first insert creates it.
		var cmdErr mongo.CommandError
		if errors.As(err, &cmdErr) && cmdErr.Name == "NamespaceNotFound" {
			return nil
		}
		return &domain.StoreError{Op: "install schema validator", Err: err}
	}
	return nil
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	listing.ID = primitive.NewObjectID().Hex()
	listing.CreatedAt = time.Now().UTC()
	listing.UpdatedAt = listing.CreatedAt

	doc, err := toListingDocument(listing)
	if err != nil {
		return &domain.StoreError{Op: "create", Err: err}
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("ListingRepository.Create: InsertOne failed", "error", err.Error())
		return &domain.StoreError{Op: "create", Err: err}
	}
	return nil
}

func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	listing.UpdatedAt = time.Now().UTC()

	doc, err := toListingDocument(listing)
	if err != nil {
		return &domain.StoreError{Op: "update", Err: err}
	}
	res, err := r.collection.UpdateByID(ctx, doc.ID, bson.M{"$set": doc})
	if err != nil {
		r.logger.Error("ListingRepository.Update: UpdateByID failed", "listing_id", listing.ID, "error", err.Error())
		return &domain.StoreError{Op: "update", Err: err}
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var doc listingDocument
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("ListingRepository.Delete: FindOneAndDelete failed", "listing_id", id, "error", err.Error())
		return nil, &domain.StoreError{Op: "delete", Err: err}
	}
	return toDomainListing(&doc), nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var doc listingDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("ListingRepository.FindByID: FindOne failed", "listing_id", id, "error", err.Error())
		return nil, &domain.StoreError{Op: "find by id", Err: err}
	}
	return toDomainListing(&doc), nil
}

// FindPage runs the page fetch and the total count concurrently. The two
// reads commute; a count that drifts between them under concurrent mutation
// is acceptable, the result is approximately consistent rather than
// transactional.
func (r *ListingRepository) FindPage(ctx context.Context, predicate domain.Predicate, page domain.PageRequest) ([]*domain.Listing, int64, error) {
	filter := predicateToFilter(predicate)

	var (
		docs  []*listingDocument
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		opts := options.Find().
			SetSkip(page.Offset).
			SetLimit(page.Limit).
			SetSort(sortSpec(page))
		cursor, err := r.collection.Find(gctx, filter, opts)
		if err != nil {
			return err
		}
		defer cursor.Close(gctx)
		return cursor.All(gctx, &docs)
	})
	g.Go(func() error {
		var err error
		total, err = r.collection.CountDocuments(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		r.logger.Error("ListingRepository.FindPage: query failed", "error", err.Error())
		return nil, 0, &domain.StoreError{Op: "find page", Err: err}
	}
	return toDomainListings(docs), total, nil
}
