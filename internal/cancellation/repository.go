package cancellation

import (
	"context"
	"fmt"

	"voyago/internal/shared/txn"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface defines the contract for cancellation data operations
type Repository interface {
	Create(ctx context.Context, cancellation *Cancellation) error
	ListByTourist(ctx context.Context, touristID uuid.UUID, limit, offset int) ([]Cancellation, int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new cancellation repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, cancellation *Cancellation) error {
	if err := txn.Conn(ctx, r.db).Create(cancellation).Error; err != nil {
		return fmt.Errorf("failed to create cancellation: %w", err)
	}
	return nil
}

func (r *repository) ListByTourist(ctx context.Context, touristID uuid.UUID, limit, offset int) ([]Cancellation, int64, error) {
	var (
		cancellations []Cancellation
		total         int64
	)

	query := txn.Conn(ctx, r.db).Model(&Cancellation{}).Where("tourist_id = ?", touristID).Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count cancellations: %w", err)
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&cancellations).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get user cancellations: %w", err)
	}
	return cancellations, total, nil
}
