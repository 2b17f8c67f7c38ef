package wallet

import (
	"context"
	"errors"
	"sync"
	"testing"

	"voyago/internal/shared/apperror"
	"voyago/internal/shared/dbtest"
	"voyago/internal/shared/txn"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (Service, *gorm.DB, txn.Transactor) {
	t.Helper()
	db := dbtest.Open(t, &Wallet{}, &Transaction{})
	txr := txn.NewTransactor(db)
	return NewService(NewRepository(db), txr, "USD"), db, txr
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertBalance(t *testing.T, svc Service, touristID uuid.UUID, want string) {
	t.Helper()
	w, err := svc.GetWallet(context.Background(), touristID)
	require.NoError(t, err)
	assert.True(t, dec(want).Equal(w.Balance), "balance: want %s got %s", want, w.Balance)
}

func TestCredit_OpensWalletOnFirstUse(t *testing.T) {
	svc, _, _ := newTestService(t)
	tourist := uuid.New()

	assertBalance(t, svc, tourist, "0")

	balance, err := svc.Credit(context.Background(), tourist, dec("100"), ReasonTopUp, "seed")
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(balance))

	balance, err = svc.Credit(context.Background(), tourist, dec("25.50"), ReasonBookingRefund, "l1")
	require.NoError(t, err)
	assert.True(t, dec("125.50").Equal(balance))
	assertBalance(t, svc, tourist, "125.50")
}

func TestDebit_InsufficientFundsLeavesBalance(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	tourist := uuid.New()

	_, err := svc.Credit(ctx, tourist, dec("50"), ReasonTopUp, "")
	require.NoError(t, err)

	_, err = svc.Debit(ctx, tourist, dec("100"), ReasonBookingPayment, "l1")
	assert.ErrorIs(t, err, apperror.ErrInsufficientFunds)
	assertBalance(t, svc, tourist, "50")

	history, err := svc.GetTransactions(ctx, tourist, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), history.Total, "failed debit must not be recorded")
}

func TestDebit_MissingWalletIsZero(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Debit(context.Background(), uuid.New(), dec("1"), ReasonBookingPayment, "")
	assert.ErrorIs(t, err, apperror.ErrInsufficientFunds)
}

func TestDebit_ExactBalance(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	tourist := uuid.New()

	_, err := svc.Credit(ctx, tourist, dec("100"), ReasonTopUp, "")
	require.NoError(t, err)

	balance, err := svc.Debit(ctx, tourist, dec("100"), ReasonBookingPayment, "l1")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
	assertBalance(t, svc, tourist, "0")
}

func TestRejectsNonPositiveAmounts(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	tourist := uuid.New()

	for _, amount := range []string{"0", "-5"} {
		_, err := svc.Credit(ctx, tourist, dec(amount), ReasonTopUp, "")
		assert.ErrorIs(t, err, apperror.ErrInvalidAmount)

		_, err = svc.Debit(ctx, tourist, dec(amount), ReasonBookingPayment, "")
		assert.ErrorIs(t, err, apperror.ErrInvalidAmount)
	}
}

func TestDebit_RollsBackWithOuterTransaction(t *testing.T) {
	svc, _, txr := newTestService(t)
	ctx := context.Background()
	tourist := uuid.New()

	_, err := svc.Credit(ctx, tourist, dec("100"), ReasonTopUp, "")
	require.NoError(t, err)

	boom := errors.New("later step failed")
	err = txr.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := svc.Debit(ctx, tourist, dec("60"), ReasonBookingPayment, "l1"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assertBalance(t, svc, tourist, "100")
}

func TestDebit_ConcurrentNeverOverdraws(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	tourist := uuid.New()

	_, err := svc.Credit(ctx, tourist, dec("100"), ReasonTopUp, "")
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Debit(ctx, tourist, dec("30"), ReasonOrderPayment, ""); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, apperror.ErrInsufficientFunds)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)
	assertBalance(t, svc, tourist, "10")
}

func TestGetTransactions_NewestFirst(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	tourist := uuid.New()

	_, err := svc.Credit(ctx, tourist, dec("100"), ReasonTopUp, "first")
	require.NoError(t, err)
	_, err = svc.Debit(ctx, tourist, dec("40"), ReasonBookingPayment, "second")
	require.NoError(t, err)

	page, err := svc.GetTransactions(ctx, tourist, 10, 0)
	require.NoError(t, err)
	require.Len(t, page.Transactions, 2)
	assert.Equal(t, int64(2), page.Total)

	debit := page.Transactions[0]
	if debit.Type != TransactionDebit {
		debit = page.Transactions[1]
	}
	assert.Equal(t, ReasonBookingPayment, debit.Reason)
	assert.True(t, dec("60").Equal(debit.BalanceAfter))
}

func TestTopUp(t *testing.T) {
	svc, _, _ := newTestService(t)
	tourist := uuid.New()

	w, err := svc.TopUp(context.Background(), tourist, dec("75"), "promo")
	require.NoError(t, err)
	assert.Equal(t, "USD", w.Currency)
	assert.True(t, dec("75").Equal(w.Balance))
}
