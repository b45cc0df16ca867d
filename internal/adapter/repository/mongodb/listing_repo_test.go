package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staysocial/listing-service/internal/listing/domain"
)

// The conversion runs before any driver call, so a bare repository is enough
// to exercise the branch.
func TestUpdate_BadIDIsStoreError(t *testing.T) {
	repo := &ListingRepository{}

	err := repo.Update(context.Background(), &domain.Listing{ID: "not-a-hex-objectid"})
	require.Error(t, err)

	var serr *domain.StoreError
	assert.ErrorAs(t, err, &serr, "a conversion fault is a store fault, not a missing listing")
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
