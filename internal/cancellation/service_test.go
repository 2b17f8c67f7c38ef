package cancellation

import (
	"context"
	"testing"

	"voyago/internal/shared/dbtest"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RecordAndList(t *testing.T) {
	db := dbtest.Open(t, &Cancellation{})
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	tourist := uuid.New()
	other := uuid.New()

	require.NoError(t, svc.Record(ctx, SubjectListingBooking, uuid.New(), tourist, decimal.NewFromInt(100), "itinerary cancelled"))
	require.NoError(t, svc.Record(ctx, SubjectOrder, uuid.New(), tourist, decimal.RequireFromString("49.50"), "order cancelled"))
	require.NoError(t, svc.Record(ctx, SubjectOrder, uuid.New(), other, decimal.NewFromInt(5), ""))

	res, err := svc.GetUserCancellations(ctx, tourist, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
	require.Len(t, res.Cancellations, 2)
	for _, c := range res.Cancellations {
		assert.Equal(t, tourist, c.TouristID)
		assert.NotEqual(t, uuid.Nil, c.ID)
	}

	page, err := svc.GetUserCancellations(ctx, tourist, 1, 1)
	require.NoError(t, err)
	assert.Len(t, page.Cancellations, 1)
	assert.Equal(t, int64(2), page.Total)
}
