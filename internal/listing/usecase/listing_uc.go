package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/staysocial/listing-service/internal/listing/domain"
	"github.com/staysocial/listing-service/internal/platform/logger"
)

// Event subjects published on listing mutations.
const (
	SubjectListingCreated = "listing.created"
	SubjectListingUpdated = "listing.updated"
	SubjectListingDeleted = "listing.deleted"
)

// EventPublisher pushes listing lifecycle events to interested services.
// Publishing is best-effort: failures are logged and never fail the mutation.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload interface{}) error
}

type ListingUsecase struct {
	repo   domain.ListingRepository
	events EventPublisher
	logger *logger.Logger
	tracer trace.Tracer
}

// NewListingUsecase wires the listing engine. events may be nil when no
// broker is configured (the seeder runs without one).
func NewListingUsecase(repo domain.ListingRepository, events EventPublisher, log *logger.Logger) *ListingUsecase {
	return &ListingUsecase{
		repo:   repo,
		events: events,
		logger: log,
		tracer: otel.Tracer("listing-usecase"),
	}
}

// CreateListing normalizes and validates the input, persists it, and returns
// the stored listing with its assigned identity. Create rejects malformed
// availability ranges outright instead of dropping them; a bad range in a new
// listing is caller error, not form noise.
func (uc *ListingUsecase) CreateListing(ctx context.Context, input *domain.Listing) (*domain.Listing, error) {
	ctx, span := uc.tracer.Start(ctx, "ListingUsecase.CreateListing")
	defer span.End()

	listing := *input
	domain.NormalizeNewListing(&listing)
	mintImageIDs(listing.Images)
	if err := domain.ValidateListing(&listing); err != nil {
		uc.logger.Warn("ListingUsecase.CreateListing: validation failed", "error", err.Error())
		return nil, err
	}

	if err := uc.repo.Create(ctx, &listing); err != nil {
		uc.logger.Error("ListingUsecase.CreateListing: failed to persist listing", "error", err.Error())
		return nil, err
	}
	uc.logger.Info("ListingUsecase.CreateListing: listing created", "listing_id", listing.ID, "city", listing.Location.City)
	uc.publish(ctx, SubjectListingCreated, &listing)
	return &listing, nil
}

// UpdateListing merges the patch into the stored listing, preserving identity
// and the fields the patch does not name. Retained image entries keep their
// stored IDs; new entries are minted one. Returns ErrNotFound when id does
// not resolve.
func (uc *ListingUsecase) UpdateListing(ctx context.Context, id string, patch domain.ListingPatch) (*domain.Listing, error) {
	ctx, span := uc.tracer.Start(ctx, "ListingUsecase.UpdateListing")
	defer span.End()

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		uc.logger.Warn("ListingUsecase.UpdateListing: failed to find listing", "listing_id", id, "error", err.Error())
		return nil, err
	}

	patch.Apply(listing)
	mintImageIDs(listing.Images)
	if err := domain.ValidateListing(listing); err != nil {
		uc.logger.Warn("ListingUsecase.UpdateListing: validation failed", "listing_id", id, "error", err.Error())
		return nil, err
	}

	if err := uc.repo.Update(ctx, listing); err != nil {
		uc.logger.Error("ListingUsecase.UpdateListing: failed to update listing", "listing_id", id, "error", err.Error())
		return nil, err
	}
	uc.logger.Info("ListingUsecase.UpdateListing: listing updated", "listing_id", id)
	uc.publish(ctx, SubjectListingUpdated, listing)
	return listing, nil
}

// DeleteListing removes the listing by identity and returns the removed
// record so callers can log or undo. No cascading side effects.
func (uc *ListingUsecase) DeleteListing(ctx context.Context, id string) (*domain.Listing, error) {
	ctx, span := uc.tracer.Start(ctx, "ListingUsecase.DeleteListing")
	defer span.End()

	removed, err := uc.repo.Delete(ctx, id)
	if err != nil {
		uc.logger.Warn("ListingUsecase.DeleteListing: failed to delete listing", "listing_id", id, "error", err.Error())
		return nil, err
	}
	uc.logger.Info("ListingUsecase.DeleteListing: listing deleted", "listing_id", id)
	uc.publish(ctx, SubjectListingDeleted, removed)
	return removed, nil
}

func (uc *ListingUsecase) GetListingByID(ctx context.Context, id string) (*domain.Listing, error) {
	ctx, span := uc.tracer.Start(ctx, "ListingUsecase.GetListingByID")
	defer span.End()

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		uc.logger.Warn("ListingUsecase.GetListingByID: failed to find listing", "listing_id", id, "error", err.Error())
		return nil, err
	}
	return listing, nil
}

// SearchResult is one page of matching listings plus pagination metadata.
// CurrentPage echoes the requested page verbatim; asking for page 50 of a
// two-page result yields an empty Listings slice, not an error.
type SearchResult struct {
	Listings    []*domain.Listing
	TotalCount  int64
	CurrentPage int
	TotalPages  int
}

// SearchListings normalizes the filter input, builds the predicate, and runs
// a counted, paginated fetch. TotalPages is never below 1: an empty result
// set still reports exactly one, empty, page.
func (uc *ListingUsecase) SearchListings(ctx context.Context, input domain.FilterInput) (*SearchResult, error) {
	ctx, span := uc.tracer.Start(ctx, "ListingUsecase.SearchListings")
	defer span.End()

	spec := domain.NewFilterSpec(input)
	predicate := domain.BuildPredicate(spec)
	page := domain.PageRequest{
		Offset:    int64(spec.Page-1) * int64(spec.Limit),
		Limit:     int64(spec.Limit),
		SortBy:    spec.SortBy,
		SortOrder: spec.SortOrder,
	}

	listings, total, err := uc.repo.FindPage(ctx, predicate, page)
	if err != nil {
		uc.logger.Error("ListingUsecase.SearchListings: failed to search listings", "filter", fmt.Sprintf("%+v", spec), "error", err.Error())
		return nil, err
	}

	totalPages := int((total + int64(spec.Limit) - 1) / int64(spec.Limit))
	if totalPages < 1 {
		totalPages = 1
	}
	return &SearchResult{
		Listings:    listings,
		TotalCount:  total,
		CurrentPage: spec.Page,
		TotalPages:  totalPages,
	}, nil
}

func (uc *ListingUsecase) publish(ctx context.Context, subject string, listing *domain.Listing) {
	if uc.events == nil {
		return
	}
	if err := uc.events.Publish(ctx, subject, listing); err != nil {
		uc.logger.Warn("ListingUsecase: failed to publish event", "subject", subject, "listing_id", listing.ID, "error", err.Error())
	}
}

func mintImageIDs(images []domain.Image) {
	for i := range images {
		if images[i].ID == "" {
			images[i].ID = uuid.NewString()
		}
	}
}
