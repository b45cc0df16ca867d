package mongodb

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/staysocial/listing-service/internal/listing/domain"
)

// fieldKeys maps domain predicate field paths onto document keys.
var fieldKeys = map[string]string{
	domain.FieldTitle:        "title",
	domain.FieldDescription:  "description",
	domain.FieldCity:         "location.city",
	domain.FieldPriceBase:    "price.base",
	domain.FieldMaxGuests:    "max_guests",
	domain.FieldType:         "type",
	domain.FieldStatus:       "status",
	domain.FieldAvailability: "availability",
}

var sortKeys = map[domain.SortField]string{
	domain.SortByPrice:     "price.base",
	domain.SortByCreatedAt: "created_at",
	domain.SortByMaxGuests: "max_guests",
	domain.SortByTitle:     "title",
}

// predicateToFilter translates the storage-agnostic predicate into a Mongo
// filter document. Clauses are combined with $and so repeated keys can never
// clobber each other in the map.
func predicateToFilter(p domain.Predicate) bson.M {
	if len(p.Clauses) == 0 {
		return bson.M{}
	}
	conditions := make([]bson.M, 0, len(p.Clauses))
	for _, c := range p.Clauses {
		conditions = append(conditions, clauseToFilter(c))
	}
	if len(conditions) == 1 {
		return conditions[0]
	}
	return bson.M{"$and": conditions}
}

func clauseToFilter(c domain.Clause) bson.M {
	switch c := c.(type) {
	case domain.EqualsClause:
		return bson.M{fieldKeys[c.Field]: c.Value}
	case domain.ContainsClause:
		return bson.M{fieldKeys[c.Field]: bson.M{
			"$regex":   regexp.QuoteMeta(c.Value),
			"$options": "i",
		}}
	case domain.AnyOfClause:
		inner := make([]bson.M, 0, len(c.Clauses))
		for _, sub := range c.Clauses {
			inner = append(inner, clauseToFilter(sub))
		}
		return bson.M{"$or": inner}
	case domain.RangeClause:
		bounds := bson.M{}
		if c.Min != nil {
			bounds["$gte"] = *c.Min
		}
		if c.Max != nil {
			bounds["$lte"] = *c.Max
		}
		return bson.M{fieldKeys[c.Field]: bounds}
	case domain.AtMostClause:
		return bson.M{fieldKeys[c.Field]: bson.M{"$lte": c.Value}}
	case domain.ElemRangeClause:
		elem := bson.M{}
		if c.FromAtMost != nil {
			elem["from"] = bson.M{"$lte": *c.FromAtMost}
		}
		if c.ToAtLeast != nil {
			elem["to"] = bson.M{"$gte": *c.ToAtLeast}
		}
		return bson.M{fieldKeys[c.Field]: bson.M{"$elemMatch": elem}}
	}
	return bson.M{}
}

// sortSpec builds the sort document for a page request. _id breaks ties so
// ordering stays deterministic for a fixed predicate and store snapshot.
func sortSpec(page domain.PageRequest) bson.D {
	dir := -1
	if page.SortOrder == domain.SortAsc {
		dir = 1
	}
	key, ok := sortKeys[page.SortBy]
	if !ok {
		key = sortKeys[domain.DefaultSortBy]
	}
	return bson.D{{Key: key, Value: dir}, {Key: "_id", Value: 1}}
}
