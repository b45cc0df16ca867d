package domain

import "time"

// Field paths used by predicate clauses. Store adapters map these onto their
// own document keys; the domain never speaks a query language.
const (
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldCity         = "location.city"
	FieldPriceBase    = "price.base"
	FieldMaxGuests    = "maxGuests"
	FieldType         = "type"
	FieldStatus       = "status"
	FieldAvailability = "availability"
)

// Clause is one condition of a predicate. Concrete clause types are plain
// data so any query engine can translate or evaluate them.
type Clause interface {
	clause()
}

// EqualsClause matches records whose field equals Value exactly.
type EqualsClause struct {
	Field string
	Value string
}

// ContainsClause matches records whose field contains Value as a
// case-insensitive substring (locale-agnostic ASCII fold).
type ContainsClause struct {
	Field string
	Value string
}

// AnyOfClause matches when at least one inner clause matches (logical OR).
type AnyOfClause struct {
	Clauses []Clause
}

// RangeClause matches numeric fields within [Min, Max]; either bound may be
// absent. Min > Max is a legal clause that matches nothing.
type RangeClause struct {
	Field string
	Min   *float64
	Max   *float64
}

// AtMostClause matches records whose numeric field is <= Value.
type AtMostClause struct {
	Field string
	Value int
}

// ElemRangeClause matches records having at least one element of a date-range
// sequence whose from is at most FromAtMost and/or whose to is at least
// ToAtLeast. Both conditions, when present, must hold on the same element.
type ElemRangeClause struct {
	Field      string
	FromAtMost *time.Time
	ToAtLeast  *time.Time
}

func (EqualsClause) clause()    {}
func (ContainsClause) clause()  {}
func (AnyOfClause) clause()     {}
func (RangeClause) clause()     {}
func (AtMostClause) clause()    {}
func (ElemRangeClause) clause() {}

// Predicate is a conjunction of clauses. Empty means "match all".
type Predicate struct {
	Clauses []Clause
}

// BuildPredicate translates a normalized filter spec into a predicate. Pure:
// no I/O, no defaults of its own, absent fields contribute no clause. With
// every field absent the result is equivalent to status == "active" because
// normalization has already defaulted the status.
func BuildPredicate(spec FilterSpec) Predicate {
	var p Predicate
	if spec.Status != "" {
		p.Clauses = append(p.Clauses, EqualsClause{Field: FieldStatus, Value: string(spec.Status)})
	}
	if spec.Search != "" {
		p.Clauses = append(p.Clauses, AnyOfClause{Clauses: []Clause{
			ContainsClause{Field: FieldTitle, Value: spec.Search},
			ContainsClause{Field: FieldDescription, Value: spec.Search},
			ContainsClause{Field: FieldCity, Value: spec.Search},
		}})
	}
	if spec.Type != "" {
		p.Clauses = append(p.Clauses, EqualsClause{Field: FieldType, Value: string(spec.Type)})
	}
	if spec.MinPrice != nil || spec.MaxPrice != nil {
		p.Clauses = append(p.Clauses, RangeClause{Field: FieldPriceBase, Min: spec.MinPrice, Max: spec.MaxPrice})
	}
	if spec.MaxGuests != nil {
		// Ceiling semantics: listings that fit within the given party size,
		// not listings that accommodate at least that many guests.
		p.Clauses = append(p.Clauses, AtMostClause{Field: FieldMaxGuests, Value: *spec.MaxGuests})
	}
	if spec.City != "" {
		p.Clauses = append(p.Clauses, ContainsClause{Field: FieldCity, Value: spec.City})
	}
	if spec.AvailableFrom != nil || spec.AvailableTo != nil {
		p.Clauses = append(p.Clauses, ElemRangeClause{
			Field:      FieldAvailability,
			FromAtMost: spec.AvailableFrom,
			ToAtLeast:  spec.AvailableTo,
		})
	}
	return p
}
