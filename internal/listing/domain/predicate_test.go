package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPredicate_DefaultSpecIsStatusOnly(t *testing.T) {
	p := BuildPredicate(NewFilterSpec(FilterInput{}))

	require.Len(t, p.Clauses, 1)
	eq, ok := p.Clauses[0].(EqualsClause)
	require.True(t, ok)
	assert.Equal(t, FieldStatus, eq.Field)
	assert.Equal(t, "active", eq.Value)
}

func TestBuildPredicate_SearchIsAnOrOverThreeFields(t *testing.T) {
	search := "beach"
	p := BuildPredicate(NewFilterSpec(FilterInput{Search: &search}))

	require.Len(t, p.Clauses, 2)
	anyOf, ok := p.Clauses[1].(AnyOfClause)
	require.True(t, ok)
	require.Len(t, anyOf.Clauses, 3)

	fields := make([]string, 0, 3)
	for _, c := range anyOf.Clauses {
		contains := c.(ContainsClause)
		assert.Equal(t, "beach", contains.Value)
		fields = append(fields, contains.Field)
	}
	assert.ElementsMatch(t, []string{FieldTitle, FieldDescription, FieldCity}, fields)
}

func TestBuildPredicate_MaxGuestsIsACeiling(t *testing.T) {
	guests := 4
	p := BuildPredicate(NewFilterSpec(FilterInput{MaxGuests: &guests}))

	var atMost *AtMostClause
	for _, c := range p.Clauses {
		if am, ok := c.(AtMostClause); ok {
			atMost = &am
		}
	}
	require.NotNil(t, atMost, "maxGuests must produce an at-most clause, not at-least")
	assert.Equal(t, FieldMaxGuests, atMost.Field)
	assert.Equal(t, 4, atMost.Value)
}

func TestBuildPredicate_PriceRangeKeepsBothBounds(t *testing.T) {
	min, max := 1000.0, 2000.0
	p := BuildPredicate(NewFilterSpec(FilterInput{MinPrice: &min, MaxPrice: &max}))

	var rng *RangeClause
	for _, c := range p.Clauses {
		if r, ok := c.(RangeClause); ok {
			rng = &r
		}
	}
	require.NotNil(t, rng)
	assert.Equal(t, 1000.0, *rng.Min)
	assert.Equal(t, 2000.0, *rng.Max)
}

// An inverted price range is deliberately not rejected; the builder emits a
// clause that matches nothing.
func TestBuildPredicate_InvertedPriceRangeIsNotAnError(t *testing.T) {
	min, max := 2000.0, 1000.0
	p := BuildPredicate(NewFilterSpec(FilterInput{MinPrice: &min, MaxPrice: &max}))

	require.Len(t, p.Clauses, 2)
	rng := p.Clauses[1].(RangeClause)
	assert.Greater(t, *rng.Min, *rng.Max)
}

func TestBuildPredicate_AvailabilityWindow(t *testing.T) {
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	p := BuildPredicate(NewFilterSpec(FilterInput{AvailableFrom: &from, AvailableTo: &to}))

	var elem *ElemRangeClause
	for _, c := range p.Clauses {
		if e, ok := c.(ElemRangeClause); ok {
			elem = &e
		}
	}
	require.NotNil(t, elem)
	assert.Equal(t, from, *elem.FromAtMost)
	assert.Equal(t, to, *elem.ToAtLeast)
}

func TestBuildPredicate_AllFilters(t *testing.T) {
	search := "loft"
	typ := TypeEntirePlace
	status := StatusPending
	min, max := 100.0, 900.0
	guests := 3
	city := "Pune"
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	p := BuildPredicate(NewFilterSpec(FilterInput{
		Search:        &search,
		Type:          &typ,
		Status:        &status,
		MinPrice:      &min,
		MaxPrice:      &max,
		MaxGuests:     &guests,
		City:          &city,
		AvailableFrom: &from,
	}))

	// status + search + type + price + guests + city + availability
	assert.Len(t, p.Clauses, 7)
}
