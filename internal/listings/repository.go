package listings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"voyago/internal/shared/apperror"
	"voyago/internal/shared/txn"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(ctx context.Context, listing *Listing) error
	GetByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	List(ctx context.Context, query ListQuery) ([]Listing, int64, error)
	SetBookingOpen(ctx context.Context, id uuid.UUID, open bool) error
	AddDates(ctx context.Context, id uuid.UUID, dates []time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, listing *Listing) error {
	if err := txn.Conn(ctx, r.db).Create(listing).Error; err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Listing, error) {
	var listing Listing
	err := txn.Conn(ctx, r.db).
		Preload("AvailableDates", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC")
		}).
		First(&listing, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return &listing, nil
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]Listing, int64, error) {
	var (
		items []Listing
		total int64
	)

	db := txn.Conn(ctx, r.db).Model(&Listing{})
	if query.Kind != "" {
		db = db.Where("kind = ?", query.Kind)
	}
	db = db.Session(&gorm.Session{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	err := db.Preload("AvailableDates", func(db *gorm.DB) *gorm.DB {
		return db.Order("date ASC")
	}).
		Order("created_at DESC").
		Limit(query.Limit).
		Offset(query.Offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list listings: %w", err)
	}
	return items, total, nil
}

func (r *repository) SetBookingOpen(ctx context.Context, id uuid.UUID, open bool) error {
	result := txn.Conn(ctx, r.db).Model(&Listing{}).Where("id = ?", id).Update("booking_open", open)
	if result.Error != nil {
		return fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.ErrListingNotFound
	}
	return nil
}

// AddDates ignores dates the listing already offers
func (r *repository) AddDates(ctx context.Context, id uuid.UUID, dates []time.Time) error {
	if len(dates) == 0 {
		return nil
	}
	rows := make([]ListingDate, 0, len(dates))
	for _, d := range dates {
		rows = append(rows, ListingDate{ListingID: id, Date: ToDate(d)})
	}

	err := txn.Conn(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to add listing dates: %w", err)
	}
	return nil
}
