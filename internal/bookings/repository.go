package bookings

import (
	"context"
	"errors"
	"fmt"

	"voyago/internal/shared/apperror"
	"voyago/internal/shared/txn"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository is the booking record store. Every method joins the
// transaction carried by ctx.
type Repository interface {
	AddBooking(ctx context.Context, record *BookingRecord) error
	RemoveBooking(ctx context.Context, listingID, touristID uuid.UUID) error
	FindBooking(ctx context.Context, listingID, touristID uuid.UUID) (*BookingRecord, error)
	ListByTourist(ctx context.Context, touristID uuid.UUID, limit, offset int) ([]BookingRecord, int64, error)
	ListBookers(ctx context.Context, listingID uuid.UUID) ([]uuid.UUID, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// AddBooking fails with ErrAlreadyBooked if the pair already holds a booking.
// The unique index settles races the pre-check cannot see.
func (r *repository) AddBooking(ctx context.Context, record *BookingRecord) error {
	existing, err := r.FindBooking(ctx, record.ListingID, record.TouristID)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperror.ErrAlreadyBooked
	}

	if err := txn.Conn(ctx, r.db).Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.ErrAlreadyBooked
		}
		return fmt.Errorf("failed to create booking record: %w", err)
	}
	return nil
}

func (r *repository) RemoveBooking(ctx context.Context, listingID, touristID uuid.UUID) error {
	result := txn.Conn(ctx, r.db).
		Where("listing_id = ? AND tourist_id = ?", listingID, touristID).
		Delete(&BookingRecord{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete booking record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.ErrNotBooked
	}
	return nil
}

// FindBooking returns nil, nil when the pair has no booking
func (r *repository) FindBooking(ctx context.Context, listingID, touristID uuid.UUID) (*BookingRecord, error) {
	var record BookingRecord
	err := txn.Conn(ctx, r.db).
		Where("listing_id = ? AND tourist_id = ?", listingID, touristID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find booking record: %w", err)
	}
	return &record, nil
}

func (r *repository) ListByTourist(ctx context.Context, touristID uuid.UUID, limit, offset int) ([]BookingRecord, int64, error) {
	var (
		records []BookingRecord
		total   int64
	)

	query := txn.Conn(ctx, r.db).Model(&BookingRecord{}).Where("tourist_id = ?", touristID).Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	err := query.Order("booked_date ASC").Limit(limit).Offset(offset).Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get user bookings: %w", err)
	}
	return records, total, nil
}

// ListBookers derives the listing's bookers list from its live records
func (r *repository) ListBookers(ctx context.Context, listingID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := txn.Conn(ctx, r.db).Model(&BookingRecord{}).
		Where("listing_id = ?", listingID).
		Order("created_at ASC").
		Pluck("tourist_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookers: %w", err)
	}
	return ids, nil
}
