package wallet

import (
	"context"
	"errors"
	"fmt"

	"voyago/internal/shared/txn"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Get(ctx context.Context, touristID uuid.UUID) (*Wallet, error)
	// GetForUpdate returns nil when the tourist has no wallet yet
	GetForUpdate(ctx context.Context, touristID uuid.UUID) (*Wallet, error)
	// GetOrCreateForUpdate returns the wallet row locked for the rest of the transaction
	GetOrCreateForUpdate(ctx context.Context, touristID uuid.UUID, currency string) (*Wallet, error)
	UpdateBalance(ctx context.Context, touristID uuid.UUID, balance decimal.Decimal) error
	AddTransaction(ctx context.Context, entry *Transaction) error
	ListTransactions(ctx context.Context, touristID uuid.UUID, limit, offset int) ([]Transaction, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Get returns nil when the tourist has no wallet yet
func (r *repository) Get(ctx context.Context, touristID uuid.UUID) (*Wallet, error) {
	var w Wallet
	err := txn.Conn(ctx, r.db).First(&w, "tourist_id = ?", touristID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &w, nil
}

func (r *repository) GetForUpdate(ctx context.Context, touristID uuid.UUID) (*Wallet, error) {
	var w Wallet
	err := txn.Conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&w, "tourist_id = ?", touristID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return &w, nil
}

func (r *repository) GetOrCreateForUpdate(ctx context.Context, touristID uuid.UUID, currency string) (*Wallet, error) {
	db := txn.Conn(ctx, r.db)

	// concurrent first credits race on the insert; the loser just reads
	seed := &Wallet{TouristID: touristID, Balance: decimal.Zero, Currency: currency}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(seed).Error; err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	var w Wallet
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&w, "tourist_id = ?", touristID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return &w, nil
}

func (r *repository) UpdateBalance(ctx context.Context, touristID uuid.UUID, balance decimal.Decimal) error {
	result := txn.Conn(ctx, r.db).Model(&Wallet{}).
		Where("tourist_id = ?", touristID).
		Update("balance", balance)
	if result.Error != nil {
		return fmt.Errorf("failed to update wallet balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update wallet balance: wallet %s not found", touristID)
	}
	return nil
}

func (r *repository) AddTransaction(ctx context.Context, entry *Transaction) error {
	if err := txn.Conn(ctx, r.db).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to record wallet transaction: %w", err)
	}
	return nil
}

func (r *repository) ListTransactions(ctx context.Context, touristID uuid.UUID, limit, offset int) ([]Transaction, int64, error) {
	var (
		entries []Transaction
		total   int64
	)

	query := txn.Conn(ctx, r.db).Model(&Transaction{}).Where("tourist_id = ?", touristID).Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count wallet transactions: %w", err)
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list wallet transactions: %w", err)
	}
	return entries, total, nil
}
