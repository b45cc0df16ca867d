package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/staysocial/listing-service/internal/listing/domain"
)

func TestPredicateToFilter_Empty(t *testing.T) {
	assert.Equal(t, bson.M{}, predicateToFilter(domain.Predicate{}))
}

func TestPredicateToFilter_SingleClauseIsUnwrapped(t *testing.T) {
	p := domain.Predicate{Clauses: []domain.Clause{
		domain.EqualsClause{Field: domain.FieldStatus, Value: "active"},
	}}
	assert.Equal(t, bson.M{"status": "active"}, predicateToFilter(p))
}

func TestPredicateToFilter_MultipleClausesUseAnd(t *testing.T) {
	min := 1000.0
	p := domain.Predicate{Clauses: []domain.Clause{
		domain.EqualsClause{Field: domain.FieldStatus, Value: "active"},
		domain.RangeClause{Field: domain.FieldPriceBase, Min: &min},
	}}

	filter := predicateToFilter(p)
	and, ok := filter["$and"].([]bson.M)
	require.True(t, ok, "expected $and, got %v", filter)
	require.Len(t, and, 2)
	assert.Equal(t, bson.M{"status": "active"}, and[0])
	assert.Equal(t, bson.M{"price.base": bson.M{"$gte": 1000.0}}, and[1])
}

func TestClauseToFilter_ContainsEscapesRegexMetacharacters(t *testing.T) {
	filter := clauseToFilter(domain.ContainsClause{Field: domain.FieldTitle, Value: "2BHK (sea view)"})

	inner, ok := filter["title"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, `2BHK \(sea view\)`, inner["$regex"])
	assert.Equal(t, "i", inner["$options"])
}

func TestClauseToFilter_AnyOfBecomesOr(t *testing.T) {
	filter := clauseToFilter(domain.AnyOfClause{Clauses: []domain.Clause{
		domain.ContainsClause{Field: domain.FieldTitle, Value: "loft"},
		domain.ContainsClause{Field: domain.FieldCity, Value: "loft"},
	}})

	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 2)
	assert.Contains(t, or[0], "title")
	assert.Contains(t, or[1], "location.city")
}

func TestClauseToFilter_AtMostMapsToLte(t *testing.T) {
	filter := clauseToFilter(domain.AtMostClause{Field: domain.FieldMaxGuests, Value: 4})
	assert.Equal(t, bson.M{"max_guests": bson.M{"$lte": 4}}, filter)
}

func TestClauseToFilter_RangeBounds(t *testing.T) {
	min, max := 500.0, 2500.0
	filter := clauseToFilter(domain.RangeClause{Field: domain.FieldPriceBase, Min: &min, Max: &max})
	assert.Equal(t, bson.M{"price.base": bson.M{"$gte": 500.0, "$lte": 2500.0}}, filter)

	filter = clauseToFilter(domain.RangeClause{Field: domain.FieldPriceBase, Max: &max})
	assert.Equal(t, bson.M{"price.base": bson.M{"$lte": 2500.0}}, filter)
}

func TestClauseToFilter_AvailabilityUsesElemMatch(t *testing.T) {
	from := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)

	filter := clauseToFilter(domain.ElemRangeClause{
		Field:      domain.FieldAvailability,
		FromAtMost: &from,
		ToAtLeast:  &to,
	})

	// Both bounds constrain the same array element.
	elem, ok := filter["availability"].(bson.M)
	require.True(t, ok)
	match, ok := elem["$elemMatch"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, bson.M{"$lte": from}, match["from"])
	assert.Equal(t, bson.M{"$gte": to}, match["to"])
}

func TestSortSpec(t *testing.T) {
	spec := sortSpec(domain.PageRequest{SortBy: domain.SortByPrice, SortOrder: domain.SortAsc})
	assert.Equal(t, bson.D{{Key: "price.base", Value: 1}, {Key: "_id", Value: 1}}, spec)

	spec = sortSpec(domain.PageRequest{SortBy: domain.SortByCreatedAt, SortOrder: domain.SortDesc})
	assert.Equal(t, bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}, spec)

	spec = sortSpec(domain.PageRequest{SortBy: domain.SortField("bogus")})
	assert.Equal(t, "created_at", spec[0].Key, "unknown sort key falls back to creation time")
}

func TestDocumentRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	l := &domain.Listing{
		Title:       "Cozy Studio",
		Description: "Compact studio apartment near the station.",
		Price:       domain.Price{Base: 1200, Currency: domain.CurrencyINR},
		Location: domain.Location{
			Street:   "12 Sample Street",
			City:     "Delhi",
			State:    "Delhi",
			Country:  "India",
			Pincode:  "110001",
			Geometry: domain.Geometry{Kind: domain.GeometryKindPoint, Coordinates: [2]float64{77.2090, 28.6139}},
		},
		Images:    []domain.Image{{ID: "img-1", URL: "https://example.com/1.jpg", Filename: "1.jpg"}},
		MaxGuests: 2,
		Bedrooms:  1,
		Beds:      1,
		Bathrooms: 1,
		Type:      domain.TypeEntirePlace,
		Amenities: []string{"WiFi"},
		Status:    domain.StatusActive,
		Availability: []domain.DateRange{
			{From: now, To: now.AddDate(0, 1, 0)},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	doc, err := toListingDocument(l)
	require.NoError(t, err)
	back := toDomainListing(doc)

	back.ID = "" // minted hex id is not part of the comparison
	assert.Equal(t, l, back)
}

func TestToListingDocument_RejectsBadHexID(t *testing.T) {
	l := &domain.Listing{ID: "not-a-hex-objectid"}
	_, err := toListingDocument(l)
	assert.Error(t, err)
}
