package orders

import (
	"context"
	"testing"

	"voyago/internal/cancellation"
	"voyago/internal/shared/apperror"
	"voyago/internal/shared/dbtest"
	"voyago/internal/shared/txn"
	"voyago/internal/wallet"
	"voyago/pkg/cache"
	"voyago/pkg/metrics"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc           Service
	wallet        wallet.Service
	cancellations cancellation.Service
	metrics       *metrics.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t,
		&Product{}, &Order{}, &OrderLine{},
		&wallet.Wallet{}, &wallet.Transaction{},
		&cancellation.Cancellation{},
	)
	txr := txn.NewTransactor(db)

	f := &fixture{
		wallet:        wallet.NewService(wallet.NewRepository(db), txr, "USD"),
		cancellations: cancellation.NewService(cancellation.NewRepository(db)),
		metrics:       metrics.NewMetrics(prometheus.NewRegistry()),
	}
	f.svc = NewService(NewRepository(db), f.wallet, txr, "USD")
	f.svc.SetMetrics(f.metrics)
	f.svc.SetCancellationRecorder(f.cancellations)
	return f
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (f *fixture) product(t *testing.T, name, price string) *Product {
	t.Helper()
	p, err := f.svc.CreateProduct(context.Background(), uuid.New(), CreateProductRequest{Name: name, Price: price})
	require.NoError(t, err)
	return p
}

func (f *fixture) fund(t *testing.T, tourist uuid.UUID, amount string) {
	t.Helper()
	_, err := f.wallet.Credit(context.Background(), tourist, dec(amount), wallet.ReasonTopUp, "test")
	require.NoError(t, err)
}

func (f *fixture) balance(t *testing.T, tourist uuid.UUID) decimal.Decimal {
	t.Helper()
	w, err := f.wallet.GetWallet(context.Background(), tourist)
	require.NoError(t, err)
	return w.Balance
}

func (f *fixture) checkout(t *testing.T, tourist uuid.UUID, method PaymentMethod, lines ...CheckoutLine) *CheckoutResponse {
	t.Helper()
	resp, err := f.svc.Checkout(context.Background(), tourist, checkoutRequest(method, lines...))
	require.NoError(t, err)
	return resp
}

func checkoutRequest(method PaymentMethod, lines ...CheckoutLine) CheckoutRequest {
	return CheckoutRequest{
		Lines:         lines,
		PaymentMethod: method,
		DeliveryAddress: AddressRequest{
			Street:  "12 Corniche St",
			City:    "Aswan",
			Country: "EG",
		},
	}
}

func line(p *Product, qty int) CheckoutLine {
	return CheckoutLine{ProductID: p.ID.String(), Quantity: qty}
}

func TestCheckout_PricesFromCatalogue(t *testing.T) {
	f := newFixture(t)
	tourist := uuid.New()
	scarf := f.product(t, "Cotton scarf", "12.50")
	mug := f.product(t, "Pyramid mug", "8")

	resp := f.checkout(t, tourist, PaymentCashOnDelivery, line(scarf, 2), line(mug, 1), line(scarf, 1))
	assert.Equal(t, StatusProcessing, resp.Order.Status)
	assert.True(t, dec("45.50").Equal(resp.Order.TotalAmount))
	assert.Len(t, resp.Order.Lines, 2, "duplicate lines are merged")
	assert.Nil(t, resp.WalletBalance)
	assert.Equal(t, "Aswan", resp.Order.DeliveryAddress.City)
}

func TestCheckout_WalletPayment(t *testing.T) {
	f := newFixture(t)
	tourist := uuid.New()
	mug := f.product(t, "Pyramid mug", "8")
	f.fund(t, tourist, "20")

	resp := f.checkout(t, tourist, PaymentWallet, line(mug, 2))
	require.NotNil(t, resp.WalletBalance)
	assert.True(t, dec("4").Equal(*resp.WalletBalance))

	_, err := f.svc.Checkout(context.Background(), tourist, checkoutRequest(PaymentWallet, line(mug, 1)))
	assert.ErrorIs(t, err, apperror.ErrInsufficientFunds)

	orders, err := f.svc.ListOrders(context.Background(), tourist, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), orders.Total, "unpaid order is rolled back")
	assert.True(t, dec("4").Equal(f.balance(t, tourist)))
}

func TestCheckout_UnknownProduct(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Checkout(context.Background(), uuid.New(), checkoutRequest(PaymentCreditCard,
		CheckoutLine{ProductID: uuid.New().String(), Quantity: 1}))
	assert.ErrorIs(t, err, apperror.ErrProductNotFound)

	_, err = f.svc.Checkout(context.Background(), uuid.New(), checkoutRequest(PaymentCreditCard,
		CheckoutLine{ProductID: "nope", Quantity: 1}))
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestCancelOrder_ProcessingRefundsTotal(t *testing.T) {
	f := newFixture(t)
	tourist := uuid.New()
	scarf := f.product(t, "Cotton scarf", "12.50")

	order := f.checkout(t, tourist, PaymentCreditCard, line(scarf, 2)).Order

	result, err := f.svc.CancelOrder(context.Background(), order.ID, tourist)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, result.Status)
	assert.True(t, dec("25").Equal(result.RefundedAmount))
	assert.True(t, dec("25").Equal(result.NewWalletBalance))
	assert.True(t, dec("25").Equal(f.balance(t, tourist)))

	got, err := f.svc.GetOrder(context.Background(), order.ID, tourist, false)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)

	history, err := f.cancellations.GetUserCancellations(context.Background(), tourist, 10, 0)
	require.NoError(t, err)
	require.Len(t, history.Cancellations, 1)
	assert.Equal(t, cancellation.SubjectOrder, history.Cancellations[0].SubjectType)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Cancellations.WithLabelValues("ORDER", "success")))

	// a second attempt sees CANCELLED
	_, err = f.svc.CancelOrder(context.Background(), order.ID, tourist)
	assert.ErrorIs(t, err, apperror.ErrInvalidStatus)
	assert.True(t, dec("25").Equal(f.balance(t, tourist)))
}

func TestCancelOrder_ShippedIsRejected(t *testing.T) {
	f := newFixture(t)
	tourist := uuid.New()
	mug := f.product(t, "Pyramid mug", "8")
	f.fund(t, tourist, "8")

	order := f.checkout(t, tourist, PaymentWallet, line(mug, 1)).Order
	_, err := f.svc.UpdateStatus(context.Background(), order.ID, StatusShipped)
	require.NoError(t, err)

	_, err = f.svc.CancelOrder(context.Background(), order.ID, tourist)
	assert.ErrorIs(t, err, apperror.ErrInvalidStatus)
	assert.True(t, decimal.Zero.Equal(f.balance(t, tourist)), "wallet unchanged")
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Cancellations.WithLabelValues("ORDER", "INVALID_STATUS")))
}

func TestCancelOrder_OwnershipAndLookup(t *testing.T) {
	f := newFixture(t)
	owner := uuid.New()
	mug := f.product(t, "Pyramid mug", "8")
	order := f.checkout(t, owner, PaymentCashOnDelivery, line(mug, 1)).Order

	_, err := f.svc.CancelOrder(context.Background(), order.ID, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = f.svc.CancelOrder(context.Background(), uuid.New(), owner)
	assert.ErrorIs(t, err, apperror.ErrOrderNotFound)

	_, err = f.svc.GetOrder(context.Background(), order.ID, uuid.New(), false)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	_, err = f.svc.GetOrder(context.Background(), order.ID, uuid.New(), true)
	assert.NoError(t, err)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	f := newFixture(t)
	mug := f.product(t, "Pyramid mug", "8")
	order := f.checkout(t, uuid.New(), PaymentCashOnDelivery, line(mug, 1)).Order

	_, err := f.svc.UpdateStatus(context.Background(), order.ID, StatusDelivered)
	assert.ErrorIs(t, err, apperror.ErrInvalidStatus, "cannot skip shipping")

	updated, err := f.svc.UpdateStatus(context.Background(), order.ID, StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, updated.Status)

	updated, err = f.svc.UpdateStatus(context.Background(), order.ID, StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, updated.Status)

	_, err = f.svc.UpdateStatus(context.Background(), order.ID, StatusShipped)
	assert.ErrorIs(t, err, apperror.ErrInvalidStatus)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusProcessing, StatusShipped))
	assert.True(t, CanTransition(StatusShipped, StatusDelivered))
	assert.False(t, CanTransition(StatusProcessing, StatusDelivered))
	assert.False(t, CanTransition(StatusProcessing, StatusCancelled))
	assert.False(t, CanTransition(StatusCancelled, StatusShipped))
	assert.False(t, CanTransition(StatusDelivered, StatusShipped))
}

func TestListProducts_CachedUntilCatalogueChanges(t *testing.T) {
	f := newFixture(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	f.svc.SetCacheService(cache.NewService(client))

	f.product(t, "Cotton scarf", "12.50")

	list, err := f.svc.ListProducts(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
	assert.True(t, mr.Exists("voyago:products:list:page:1:limit:10"))

	f.product(t, "Pyramid mug", "8")
	assert.False(t, mr.Exists("voyago:products:list:page:1:limit:10"), "create invalidates the list")

	list, err = f.svc.ListProducts(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
	assert.Equal(t, "Cotton scarf", list.Products[0].Name)
}

func TestCreateProduct_RejectsBadPrice(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateProduct(context.Background(), uuid.New(), CreateProductRequest{Name: "Free", Price: "0"})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}
