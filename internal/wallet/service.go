package wallet

import (
	"context"
	"fmt"

	"voyago/internal/shared/apperror"
	"voyago/internal/shared/txn"
	"voyago/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service is the wallet ledger. Credit and Debit join the caller's
// transaction when one is open so a booking and its payment commit together.
type Service interface {
	Credit(ctx context.Context, touristID uuid.UUID, amount decimal.Decimal, reason Reason, reference string) (decimal.Decimal, error)
	Debit(ctx context.Context, touristID uuid.UUID, amount decimal.Decimal, reason Reason, reference string) (decimal.Decimal, error)
	GetWallet(ctx context.Context, touristID uuid.UUID) (*WalletResponse, error)
	GetTransactions(ctx context.Context, touristID uuid.UUID, limit, offset int) (*TransactionListResponse, error)
	TopUp(ctx context.Context, touristID uuid.UUID, amount decimal.Decimal, reference string) (*WalletResponse, error)
}

type service struct {
	repo     Repository
	txr      txn.Transactor
	currency string
}

func NewService(repo Repository, txr txn.Transactor, currency string) Service {
	if currency == "" {
		currency = "USD"
	}
	return &service{
		repo:     repo,
		txr:      txr,
		currency: currency,
	}
}

// Credit adds amount to the balance, opening the wallet on first use
func (s *service) Credit(ctx context.Context, touristID uuid.UUID, amount decimal.Decimal, reason Reason, reference string) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, apperror.ErrInvalidAmount
	}

	var balance decimal.Decimal
	err := s.txr.WithinTransaction(ctx, func(ctx context.Context) error {
		w, err := s.repo.GetOrCreateForUpdate(ctx, touristID, s.currency)
		if err != nil {
			return err
		}

		balance = w.Balance.Add(amount)
		if err := s.repo.UpdateBalance(ctx, touristID, balance); err != nil {
			return err
		}
		return s.repo.AddTransaction(ctx, &Transaction{
			TouristID:    touristID,
			Type:         TransactionCredit,
			Amount:       amount,
			BalanceAfter: balance,
			Reason:       reason,
			Reference:    reference,
		})
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to credit wallet: %w", err)
	}

	logger.GetDefault().LogWalletMovement(ctx, touristID.String(), string(TransactionCredit), amount.StringFixed(2), balance.StringFixed(2), string(reason))
	return balance, nil
}

// Debit removes amount from the balance. A missing wallet has a zero balance.
// On ErrInsufficientFunds nothing is written.
func (s *service) Debit(ctx context.Context, touristID uuid.UUID, amount decimal.Decimal, reason Reason, reference string) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, apperror.ErrInvalidAmount
	}

	var balance decimal.Decimal
	err := s.txr.WithinTransaction(ctx, func(ctx context.Context) error {
		w, err := s.repo.GetForUpdate(ctx, touristID)
		if err != nil {
			return err
		}
		if w == nil || w.Balance.LessThan(amount) {
			return apperror.ErrInsufficientFunds
		}

		balance = w.Balance.Sub(amount)
		if err := s.repo.UpdateBalance(ctx, touristID, balance); err != nil {
			return err
		}
		return s.repo.AddTransaction(ctx, &Transaction{
			TouristID:    touristID,
			Type:         TransactionDebit,
			Amount:       amount,
			BalanceAfter: balance,
			Reason:       reason,
			Reference:    reference,
		})
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to debit wallet: %w", err)
	}

	logger.GetDefault().LogWalletMovement(ctx, touristID.String(), string(TransactionDebit), amount.StringFixed(2), balance.StringFixed(2), string(reason))
	return balance, nil
}

func (s *service) GetWallet(ctx context.Context, touristID uuid.UUID) (*WalletResponse, error) {
	w, err := s.repo.Get(ctx, touristID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return &WalletResponse{TouristID: touristID, Balance: decimal.Zero, Currency: s.currency}, nil
	}
	return &WalletResponse{TouristID: w.TouristID, Balance: w.Balance, Currency: w.Currency}, nil
}

func (s *service) GetTransactions(ctx context.Context, touristID uuid.UUID, limit, offset int) (*TransactionListResponse, error) {
	entries, total, err := s.repo.ListTransactions(ctx, touristID, limit, offset)
	if err != nil {
		return nil, err
	}
	return &TransactionListResponse{
		Transactions: entries,
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	}, nil
}

// TopUp is the admin path for loading funds
func (s *service) TopUp(ctx context.Context, touristID uuid.UUID, amount decimal.Decimal, reference string) (*WalletResponse, error) {
	balance, err := s.Credit(ctx, touristID, amount, ReasonTopUp, reference)
	if err != nil {
		return nil, err
	}
	return &WalletResponse{TouristID: touristID, Balance: balance, Currency: s.currency}, nil
}
