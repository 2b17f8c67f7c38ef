package analytics

import (
	"context"
	"testing"
	"time"

	"voyago/internal/bookings"
	"voyago/internal/cancellation"
	"voyago/internal/listings"
	"voyago/internal/orders"
	"voyago/internal/shared/apperror"
	"voyago/internal/shared/dbtest"
	"voyago/internal/shared/txn"
	"voyago/internal/wallet"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc      Service
	listings listings.Service
	wallet   wallet.Service
	bookings bookings.Service
	orders   orders.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t,
		&listings.Listing{}, &listings.ListingDate{},
		&bookings.BookingRecord{},
		&wallet.Wallet{}, &wallet.Transaction{},
		&orders.Product{}, &orders.Order{}, &orders.OrderLine{},
		&cancellation.Cancellation{},
	)
	txr := txn.NewTransactor(db)
	recorder := cancellation.NewService(cancellation.NewRepository(db))

	f := &fixture{
		listings: listings.NewService(listings.NewRepository(db), "USD"),
		wallet:   wallet.NewService(wallet.NewRepository(db), txr, "USD"),
	}
	f.bookings = bookings.NewService(bookings.NewRepository(db), f.listings, f.wallet, txr, cancellation.DefaultPolicy())
	f.bookings.SetCancellationRecorder(recorder)
	f.bookings.SetClock(func() time.Time { return time.Date(2026, time.May, 1, 9, 0, 0, 0, time.UTC) })

	f.orders = orders.NewService(orders.NewRepository(db), f.wallet, txr, "USD")
	f.orders.SetCancellationRecorder(recorder)

	f.svc = NewService(NewRepository(db), f.listings, time.UTC)
	return f
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seed books two tourists on one activity, cancels one, and places one wallet order
func (f *fixture) seed(t *testing.T) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	activity, err := f.listings.CreateListing(ctx, uuid.New(), listings.CreateListingRequest{
		Kind: listings.KindActivity, Name: "Felucca ride", Price: "40",
		AvailableDates: []string{"2026-05-10", "2026-05-11"},
	})
	require.NoError(t, err)
	_, err = f.listings.CreateListing(ctx, uuid.New(), listings.CreateListingRequest{
		Kind: listings.KindItinerary, Name: "Cairo weekend", Price: "300",
	})
	require.NoError(t, err)

	alice, bob := uuid.New(), uuid.New()
	for _, tourist := range []uuid.UUID{alice, bob} {
		_, err := f.wallet.Credit(ctx, tourist, dec("100"), wallet.ReasonTopUp, "seed")
		require.NoError(t, err)
	}

	_, err = f.bookings.Book(ctx, bookings.BookCommand{Kind: listings.KindActivity, ListingID: activity.ID, TouristID: alice, Date: time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	_, err = f.bookings.Book(ctx, bookings.BookCommand{Kind: listings.KindActivity, ListingID: activity.ID, TouristID: bob, Date: time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	_, err = f.bookings.Cancel(ctx, bookings.CancelCommand{Kind: listings.KindActivity, ListingID: activity.ID, TouristID: bob})
	require.NoError(t, err)

	mug, err := f.orders.CreateProduct(ctx, uuid.New(), orders.CreateProductRequest{Name: "Pyramid mug", Price: "8"})
	require.NoError(t, err)
	_, err = f.orders.Checkout(ctx, alice, orders.CheckoutRequest{
		Lines:           []orders.CheckoutLine{{ProductID: mug.ID.String(), Quantity: 2}},
		PaymentMethod:   orders.PaymentWallet,
		DeliveryAddress: orders.AddressRequest{Street: "1 Nile St", City: "Luxor", Country: "EG"},
	})
	require.NoError(t, err)

	return activity.ID
}

func TestGetOverview(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	overview, err := f.svc.GetOverview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), overview.Listings.Total)
	assert.Equal(t, int64(1), overview.Listings.Activities)
	assert.Equal(t, int64(1), overview.Listings.Itineraries)
	assert.Equal(t, int64(2), overview.Listings.OpenForSale)

	assert.Equal(t, int64(1), overview.Bookings.Active)
	assert.True(t, dec("40").Equal(overview.Bookings.HeldRevenue))

	assert.Equal(t, int64(1), overview.Orders.ByStatus["PROCESSING"])
	assert.True(t, dec("16").Equal(overview.Orders.Revenue))

	require.Len(t, overview.Cancellations, 1)
	assert.Equal(t, "LISTING_BOOKING", overview.Cancellations[0].SubjectType)
	assert.True(t, dec("40").Equal(overview.Cancellations[0].Refunded))

	// 200 topped up, 40 held by a booking, 16 spent on the order
	assert.True(t, dec("144").Equal(overview.WalletBalances), "got %s", overview.WalletBalances)
}

func TestGetDailyMoneyFlow(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	flow, err := f.svc.GetDailyMoneyFlow(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, flow, 7)

	today := flow[len(flow)-1]
	assert.Equal(t, time.Now().UTC().Format(listings.DateLayout), today.Date)
	assert.Equal(t, int64(2), today.BookingPayments)
	assert.True(t, dec("80").Equal(today.BookingRevenue))
	assert.Equal(t, int64(1), today.Refunds)
	assert.True(t, dec("40").Equal(today.RefundedAmount))
	assert.Equal(t, int64(1), today.OrderPayments)
	assert.True(t, dec("16").Equal(today.OrderRevenue))

	for _, day := range flow[:len(flow)-1] {
		assert.Zero(t, day.BookingPayments, day.Date)
	}
}

func TestGetListingAnalytics(t *testing.T) {
	f := newFixture(t)
	activityID := f.seed(t)

	stats, err := f.svc.GetListingAnalytics(context.Background(), activityID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.ActiveBookings)
	assert.True(t, dec("40").Equal(stats.HeldRevenue))
	assert.Equal(t, int64(1), stats.Cancellations)
	assert.True(t, dec("40").Equal(stats.Refunded))
	assert.Equal(t, []DateCount{{Date: "2026-05-10", Count: 1}}, stats.ByDate)

	_, err = f.svc.GetListingAnalytics(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrListingNotFound)
}
