package listings

import (
	"context"
	"fmt"
	"time"

	"voyago/internal/shared/apperror"
	"voyago/internal/shared/constants"
	"voyago/pkg/cache"
	"voyago/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service interface {
	CreateListing(ctx context.Context, createdBy uuid.UUID, req CreateListingRequest) (*ListingResponse, error)
	GetListing(ctx context.Context, id uuid.UUID) (*ListingResponse, error)
	ListListings(ctx context.Context, query ListQuery) (*ListingListResponse, error)
	SetBookingOpen(ctx context.Context, id uuid.UUID, open bool) (*ListingResponse, error)
	AddAvailableDates(ctx context.Context, id uuid.UUID, dates []string) (*ListingResponse, error)

	// GetForBooking reads the listing from the database, bypassing the cache,
	// and joins the caller's transaction
	GetForBooking(ctx context.Context, id uuid.UUID) (*Listing, error)

	SetCacheService(cacheService cache.Service)
}

type service struct {
	repo            Repository
	defaultCurrency string
	cacheService    cache.Service
}

func NewService(repo Repository, defaultCurrency string) Service {
	if defaultCurrency == "" {
		defaultCurrency = "USD"
	}
	return &service{
		repo:            repo,
		defaultCurrency: defaultCurrency,
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) invalidateListingCache(ctx context.Context, id uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Delete(ctx, constants.BuildListingDetailKey(id.String())); err != nil {
		logger.GetDefault().Warn("failed to invalidate listing detail cache", "listing_id", id.String(), "error", err)
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_LISTINGS_LIST); err != nil {
		logger.GetDefault().Warn("failed to invalidate listing list cache", "error", err)
	}
}

func (s *service) CreateListing(ctx context.Context, createdBy uuid.UUID, req CreateListingRequest) (*ListingResponse, error) {
	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown kind %q", apperror.ErrInvalidInput, req.Kind)
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || !price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be a positive amount", apperror.ErrInvalidInput)
	}

	currency := req.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}

	bookingOpen := true
	if req.BookingOpen != nil {
		bookingOpen = *req.BookingOpen
	}

	dates, err := parseDates(req.AvailableDates)
	if err != nil {
		return nil, err
	}

	listing := &Listing{
		Kind:        req.Kind,
		Name:        req.Name,
		Description: req.Description,
		Price:       price.Round(2),
		Currency:    currency,
		BookingOpen: bookingOpen,
		CreatedBy:   createdBy,
	}
	for _, d := range uniqueDates(dates) {
		listing.AvailableDates = append(listing.AvailableDates, ListingDate{Date: d})
	}

	if err := s.repo.Create(ctx, listing); err != nil {
		return nil, err
	}
	s.invalidateListingCache(ctx, listing.ID)

	resp := ToResponse(listing)
	return &resp, nil
}

func (s *service) GetListing(ctx context.Context, id uuid.UUID) (*ListingResponse, error) {
	fetch := func() (interface{}, error) {
		listing, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return ToResponse(listing), nil
	}

	if s.cacheService == nil {
		data, err := fetch()
		if err != nil {
			return nil, err
		}
		resp := data.(ListingResponse)
		return &resp, nil
	}

	var resp ListingResponse
	key := constants.BuildListingDetailKey(id.String())
	if err := s.cacheService.GetOrSet(ctx, key, constants.TTL_LISTING_DETAIL, fetch, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *service) ListListings(ctx context.Context, query ListQuery) (*ListingListResponse, error) {
	if query.Kind != "" && !query.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown kind %q", apperror.ErrInvalidInput, query.Kind)
	}

	fetch := func() (interface{}, error) {
		items, total, err := s.repo.List(ctx, query)
		if err != nil {
			return nil, err
		}
		out := ListingListResponse{
			Listings: make([]ListingResponse, 0, len(items)),
			Total:    total,
			Limit:    query.Limit,
			Offset:   query.Offset,
		}
		for i := range items {
			out.Listings = append(out.Listings, ToResponse(&items[i]))
		}
		return out, nil
	}

	if s.cacheService == nil {
		data, err := fetch()
		if err != nil {
			return nil, err
		}
		resp := data.(ListingListResponse)
		return &resp, nil
	}

	var resp ListingListResponse
	page := query.Offset/max(query.Limit, 1) + 1
	key := constants.BuildListingListKey(string(query.Kind), page, query.Limit)
	if err := s.cacheService.GetOrSet(ctx, key, constants.TTL_LISTINGS_LIST, fetch, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *service) SetBookingOpen(ctx context.Context, id uuid.UUID, open bool) (*ListingResponse, error) {
	if err := s.repo.SetBookingOpen(ctx, id, open); err != nil {
		return nil, err
	}
	s.invalidateListingCache(ctx, id)

	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToResponse(listing)
	return &resp, nil
}

func (s *service) AddAvailableDates(ctx context.Context, id uuid.UUID, raw []string) (*ListingResponse, error) {
	dates, err := parseDates(raw)
	if err != nil {
		return nil, err
	}

	// surface a clean 404 before touching the dates table
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.AddDates(ctx, id, uniqueDates(dates)); err != nil {
		return nil, err
	}
	s.invalidateListingCache(ctx, id)

	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToResponse(listing)
	return &resp, nil
}

func (s *service) GetForBooking(ctx context.Context, id uuid.UUID) (*Listing, error) {
	return s.repo.GetByID(ctx, id)
}

func parseDates(raw []string) ([]time.Time, error) {
	out := make([]time.Time, 0, len(raw))
	for _, r := range raw {
		d, err := ParseDate(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidDate, r)
		}
		out = append(out, d)
	}
	return out, nil
}

func uniqueDates(dates []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(dates))
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		d = ToDate(d)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}
