package analytics

import (
	"context"
	"time"

	"voyago/internal/listings"
	"voyago/internal/shared/constants"
	"voyago/internal/wallet"
	"voyago/pkg/cache"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxDailyWindow = 366

type Service interface {
	GetOverview(ctx context.Context) (*Overview, error)
	GetDailyMoneyFlow(ctx context.Context, days int) ([]DailyMoneyFlow, error)
	GetListingAnalytics(ctx context.Context, listingID uuid.UUID) (*ListingAnalytics, error)

	SetCacheService(cacheService cache.Service)
}

// ListingLookup interface for listing existence checks (to avoid circular dependency)
type ListingLookup interface {
	GetForBooking(ctx context.Context, id uuid.UUID) (*listings.Listing, error)
}

type service struct {
	repo         Repository
	listings     ListingLookup
	location     *time.Location
	now          func() time.Time
	cacheService cache.Service
}

func NewService(repo Repository, listingLookup ListingLookup, loc *time.Location) Service {
	if loc == nil {
		loc = time.UTC
	}
	return &service{
		repo:     repo,
		listings: listingLookup,
		location: loc,
		now:      time.Now,
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) GetOverview(ctx context.Context) (*Overview, error) {
	fetch := func() (interface{}, error) {
		listingTotals, err := s.repo.GetListingTotals(ctx)
		if err != nil {
			return nil, err
		}
		bookingTotals, err := s.repo.GetBookingTotals(ctx)
		if err != nil {
			return nil, err
		}
		orderTotals, err := s.repo.GetOrderTotals(ctx)
		if err != nil {
			return nil, err
		}
		refunds, err := s.repo.GetRefundsBySubject(ctx)
		if err != nil {
			return nil, err
		}
		balances, err := s.repo.GetWalletBalances(ctx)
		if err != nil {
			return nil, err
		}
		return Overview{
			Listings:       *listingTotals,
			Bookings:       *bookingTotals,
			Orders:         *orderTotals,
			Cancellations:  refunds,
			WalletBalances: balances,
		}, nil
	}

	if s.cacheService == nil {
		data, err := fetch()
		if err != nil {
			return nil, err
		}
		overview := data.(Overview)
		return &overview, nil
	}

	var overview Overview
	if err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_ANALYTICS_OVERVIEW, constants.TTL_ANALYTICS_OVERVIEW, fetch, &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

// GetDailyMoneyFlow groups wallet payments and refunds of the last days by
// calendar day in the booking time zone, oldest first. Days without movement
// are included so charts stay continuous.
func (s *service) GetDailyMoneyFlow(ctx context.Context, days int) ([]DailyMoneyFlow, error) {
	if days <= 0 {
		days = 30
	}
	if days > maxDailyWindow {
		days = maxDailyWindow
	}

	today := s.now().In(s.location)
	first := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, s.location).AddDate(0, 0, -(days - 1))

	rows, err := s.repo.GetMovementsSince(ctx, first)
	if err != nil {
		return nil, err
	}

	out := make([]DailyMoneyFlow, days)
	index := make(map[string]int, days)
	for i := range out {
		key := first.AddDate(0, 0, i).Format(listings.DateLayout)
		out[i] = DailyMoneyFlow{
			Date:           key,
			BookingRevenue: decimal.Zero,
			RefundedAmount: decimal.Zero,
			OrderRevenue:   decimal.Zero,
		}
		index[key] = i
	}

	for _, row := range rows {
		i, ok := index[row.CreatedAt.In(s.location).Format(listings.DateLayout)]
		if !ok {
			continue
		}
		day := &out[i]
		switch wallet.Reason(row.Reason) {
		case wallet.ReasonBookingPayment:
			day.BookingPayments++
			day.BookingRevenue = day.BookingRevenue.Add(row.Amount)
		case wallet.ReasonOrderPayment:
			day.OrderPayments++
			day.OrderRevenue = day.OrderRevenue.Add(row.Amount)
		case wallet.ReasonBookingRefund, wallet.ReasonOrderRefund:
			day.Refunds++
			day.RefundedAmount = day.RefundedAmount.Add(row.Amount)
		}
	}
	return out, nil
}

func (s *service) GetListingAnalytics(ctx context.Context, listingID uuid.UUID) (*ListingAnalytics, error) {
	if _, err := s.listings.GetForBooking(ctx, listingID); err != nil {
		return nil, err
	}

	out, dates, err := s.repo.GetListingAnalytics(ctx, listingID)
	if err != nil {
		return nil, err
	}

	out.ByDate = make([]DateCount, 0)
	for _, d := range dates {
		key := d.Format(listings.DateLayout)
		if n := len(out.ByDate); n > 0 && out.ByDate[n-1].Date == key {
			out.ByDate[n-1].Count++
			continue
		}
		out.ByDate = append(out.ByDate, DateCount{Date: key, Count: 1})
	}
	return out, nil
}
