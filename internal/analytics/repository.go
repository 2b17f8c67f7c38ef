package analytics

import (
	"context"
	"fmt"
	"time"

	"voyago/internal/bookings"
	"voyago/internal/cancellation"
	"voyago/internal/listings"
	"voyago/internal/orders"
	"voyago/internal/wallet"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository runs read-only aggregate queries over the booking tables
type Repository interface {
	GetListingTotals(ctx context.Context) (*ListingTotals, error)
	GetBookingTotals(ctx context.Context) (*BookingTotals, error)
	GetOrderTotals(ctx context.Context) (*OrderTotals, error)
	GetRefundsBySubject(ctx context.Context) ([]SubjectRefunds, error)
	GetWalletBalances(ctx context.Context) (decimal.Decimal, error)
	GetMovementsSince(ctx context.Context, since time.Time) ([]movement, error)
	GetListingAnalytics(ctx context.Context, listingID uuid.UUID) (*ListingAnalytics, []time.Time, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetListingTotals(ctx context.Context) (*ListingTotals, error) {
	var totals ListingTotals
	db := r.db.WithContext(ctx).Model(&listings.Listing{})

	err := db.Select(`
		COUNT(*) AS total,
		COALESCE(SUM(CASE WHEN kind = ? THEN 1 ELSE 0 END), 0) AS itineraries,
		COALESCE(SUM(CASE WHEN kind = ? THEN 1 ELSE 0 END), 0) AS activities,
		COALESCE(SUM(CASE WHEN booking_open THEN 1 ELSE 0 END), 0) AS open_for_sale
	`, listings.KindItinerary, listings.KindActivity).Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get listing totals: %w", err)
	}
	return &totals, nil
}

func (r *repository) GetBookingTotals(ctx context.Context) (*BookingTotals, error) {
	var totals BookingTotals
	err := r.db.WithContext(ctx).Model(&bookings.BookingRecord{}).
		Select("COUNT(*) AS active, COALESCE(SUM(amount_paid), 0) AS held_revenue").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get booking totals: %w", err)
	}
	return &totals, nil
}

func (r *repository) GetOrderTotals(ctx context.Context) (*OrderTotals, error) {
	var rows []struct {
		Status  string
		Count   int64
		Revenue decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&orders.Order{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS revenue").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get order totals: %w", err)
	}

	totals := &OrderTotals{ByStatus: make(map[string]int64, len(rows)), Revenue: decimal.Zero}
	for _, row := range rows {
		totals.ByStatus[row.Status] = row.Count
		if row.Status != string(orders.StatusCancelled) {
			totals.Revenue = totals.Revenue.Add(row.Revenue)
		}
	}
	return totals, nil
}

func (r *repository) GetRefundsBySubject(ctx context.Context) ([]SubjectRefunds, error) {
	var rows []SubjectRefunds
	err := r.db.WithContext(ctx).Model(&cancellation.Cancellation{}).
		Select("subject_type, COUNT(*) AS count, COALESCE(SUM(refund_amount), 0) AS refunded").
		Group("subject_type").
		Order("subject_type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get refunds by subject: %w", err)
	}
	return rows, nil
}

func (r *repository) GetWalletBalances(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&wallet.Wallet{}).
		Select("COALESCE(SUM(balance), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum wallet balances: %w", err)
	}
	return total, nil
}

func (r *repository) GetMovementsSince(ctx context.Context, since time.Time) ([]movement, error) {
	var rows []movement
	err := r.db.WithContext(ctx).Model(&wallet.Transaction{}).
		Select("reason, amount, created_at").
		Where("created_at >= ?", since).
		Where("reason IN ?", []wallet.Reason{
			wallet.ReasonBookingPayment, wallet.ReasonBookingRefund,
			wallet.ReasonOrderPayment, wallet.ReasonOrderRefund,
		}).
		Order("created_at").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet movements: %w", err)
	}
	return rows, nil
}

// GetListingAnalytics returns the aggregates plus the booked dates of active bookings
func (r *repository) GetListingAnalytics(ctx context.Context, listingID uuid.UUID) (*ListingAnalytics, []time.Time, error) {
	out := &ListingAnalytics{ListingID: listingID}
	db := r.db.WithContext(ctx)

	var held struct {
		ActiveBookings int64
		HeldRevenue    decimal.Decimal
	}
	err := db.Model(&bookings.BookingRecord{}).
		Select("COUNT(*) AS active_bookings, COALESCE(SUM(amount_paid), 0) AS held_revenue").
		Where("listing_id = ?", listingID).
		Scan(&held).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get listing bookings: %w", err)
	}
	out.ActiveBookings = held.ActiveBookings
	out.HeldRevenue = held.HeldRevenue

	var refunds struct {
		Cancellations int64
		Refunded      decimal.Decimal
	}
	err = db.Model(&cancellation.Cancellation{}).
		Select("COUNT(*) AS cancellations, COALESCE(SUM(refund_amount), 0) AS refunded").
		Where("subject_type = ? AND subject_id = ?", cancellation.SubjectListingBooking, listingID).
		Scan(&refunds).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get listing cancellations: %w", err)
	}
	out.Cancellations = refunds.Cancellations
	out.Refunded = refunds.Refunded

	var dates []time.Time
	err = db.Model(&bookings.BookingRecord{}).
		Where("listing_id = ?", listingID).
		Order("booked_date").
		Pluck("booked_date", &dates).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get booked dates: %w", err)
	}
	return out, dates, nil
}
