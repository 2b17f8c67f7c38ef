package bookings

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"voyago/internal/cancellation"
	"voyago/internal/listings"
	"voyago/internal/notifications"
	"voyago/internal/shared/apperror"
	"voyago/internal/shared/constants"
	"voyago/internal/shared/txn"
	"voyago/internal/wallet"
	"voyago/pkg/lock"
	"voyago/pkg/logger"
	"voyago/pkg/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service is the booking orchestrator for itineraries and activities
type Service interface {
	Book(ctx context.Context, cmd BookCommand) (*BookingResponse, error)
	Cancel(ctx context.Context, cmd CancelCommand) (*CancelResult, error)
	GetUserBookings(ctx context.Context, touristID uuid.UUID, limit, offset int) (*BookingListResponse, error)
	GetBookers(ctx context.Context, listingID uuid.UUID) ([]uuid.UUID, error)

	SetLocker(locker lock.Locker, waitTimeout time.Duration)
	SetPublisher(publisher notifications.Publisher)
	SetMetrics(m *metrics.Metrics)
	SetCancellationRecorder(recorder CancellationRecorder)
	SetClock(now func() time.Time)
}

// ListingLookup interface for listing reads (to avoid circular dependency)
type ListingLookup interface {
	GetForBooking(ctx context.Context, id uuid.UUID) (*listings.Listing, error)
}

// WalletLedger interface for the payment and refund side of an operation
type WalletLedger interface {
	Credit(ctx context.Context, touristID uuid.UUID, amount decimal.Decimal, reason wallet.Reason, reference string) (decimal.Decimal, error)
	Debit(ctx context.Context, touristID uuid.UUID, amount decimal.Decimal, reason wallet.Reason, reference string) (decimal.Decimal, error)
}

// CancellationRecorder writes the cancellation audit trail
type CancellationRecorder interface {
	Record(ctx context.Context, subject cancellation.SubjectType, subjectID, touristID uuid.UUID, refund decimal.Decimal, reason string) error
}

type service struct {
	repo     Repository
	listings ListingLookup
	wallet   WalletLedger
	txr      txn.Transactor
	policy   cancellation.Policy

	locker    lock.Locker
	lockWait  time.Duration
	publisher notifications.Publisher
	metrics   *metrics.Metrics
	recorder  CancellationRecorder
	now       func() time.Time
}

func NewService(repo Repository, listingLookup ListingLookup, ledger WalletLedger, txr txn.Transactor, policy cancellation.Policy) Service {
	return &service{
		repo:      repo,
		listings:  listingLookup,
		wallet:    ledger,
		txr:       txr,
		policy:    policy,
		locker:    lock.NewLocalLocker(),
		publisher: notifications.NoopPublisher{},
		now:       time.Now,
	}
}

// SetLocker replaces the in-process locker, normally with the Redis one.
// A positive waitTimeout bounds how long a request queues for the lock.
func (s *service) SetLocker(locker lock.Locker, waitTimeout time.Duration) {
	s.locker = locker
	s.lockWait = waitTimeout
}

func (s *service) SetPublisher(publisher notifications.Publisher) {
	s.publisher = publisher
}

func (s *service) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

func (s *service) SetCancellationRecorder(recorder CancellationRecorder) {
	s.recorder = recorder
}

func (s *service) SetClock(now func() time.Time) {
	s.now = now
}

// acquire serialises Book and Cancel for one (listing, tourist) pair
func (s *service) acquire(ctx context.Context, listingID, touristID uuid.UUID) (func(), error) {
	if s.lockWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.lockWait)
		defer cancel()
	}
	release, err := s.locker.Acquire(ctx, constants.BuildBookingLockKey(listingID.String(), touristID.String()))
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, fmt.Errorf("%w: %v", apperror.ErrBusy, err)
		}
		return nil, fmt.Errorf("failed to acquire booking lock: %w", err)
	}
	return release, nil
}

// loadListing resolves the listing and checks it is of the requested kind
func (s *service) loadListing(ctx context.Context, kind listings.Kind, id uuid.UUID) (*listings.Listing, error) {
	listing, err := s.listings.GetForBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if kind != "" && listing.Kind != kind {
		return nil, apperror.ErrListingNotFound
	}
	return listing, nil
}

// Book reserves the selected date and pays for it from the wallet, all in one transaction
func (s *service) Book(ctx context.Context, cmd BookCommand) (*BookingResponse, error) {
	release, err := s.acquire(ctx, cmd.ListingID, cmd.TouristID)
	if err != nil {
		return nil, err
	}
	defer release()

	var (
		record  *BookingRecord
		balance decimal.Decimal
	)
	err = s.txr.WithinTransaction(ctx, func(ctx context.Context) error {
		// Step 1: Listing must exist and accept bookings
		listing, err := s.loadListing(ctx, cmd.Kind, cmd.ListingID)
		if err != nil {
			return err
		}
		if !listing.BookingOpen {
			return apperror.ErrBookingClosed
		}

		// Step 2: Date must be offered and not already past
		date := listings.ToDate(cmd.Date)
		today := listings.ToDate(s.now().In(s.policy.Location))
		if date.Before(today) || !listing.HasDate(date) {
			return apperror.ErrInvalidDate
		}

		// Step 3: Record the booking
		ref, err := generateBookingReference(s.now())
		if err != nil {
			return fmt.Errorf("failed to generate booking reference: %w", err)
		}
		record = &BookingRecord{
			BookingRef:  ref,
			ListingID:   listing.ID,
			TouristID:   cmd.TouristID,
			ListingKind: listing.Kind,
			BookedDate:  date,
			AmountPaid:  listing.Price,
			Currency:    listing.Currency,
		}
		if err := s.repo.AddBooking(ctx, record); err != nil {
			return err
		}

		// Step 4: Pay upfront; drop the record again if the wallet cannot cover it
		balance, err = s.wallet.Debit(ctx, cmd.TouristID, listing.Price, wallet.ReasonBookingPayment, listing.ID.String())
		if err != nil {
			if errors.Is(err, apperror.ErrInsufficientFunds) {
				if rmErr := s.repo.RemoveBooking(ctx, listing.ID, cmd.TouristID); rmErr != nil {
					return fmt.Errorf("failed to roll back booking after payment failure: %w", rmErr)
				}
			}
			return err
		}
		return nil
	})
	if err != nil {
		s.metrics.ObserveBooking(string(cmd.Kind), apperror.Outcome(err))
		return nil, fmt.Errorf("failed to book listing: %w", err)
	}

	s.metrics.ObserveBooking(string(record.ListingKind), "success")
	logger.GetDefault().LogBookingCreated(ctx, record.ID.String(), record.ListingID.String(), record.TouristID.String(), record.AmountPaid.StringFixed(2))
	s.publish(ctx, notifications.NewEventBuilder(notifications.EventBookingCreated).
		WithTourist(record.TouristID).
		WithSubject(record.ListingID, string(record.ListingKind)).
		WithAmount(record.AmountPaid.StringFixed(2), balance.StringFixed(2)).
		WithBookedDate(record.BookedDate.Format(listings.DateLayout)).
		Build())

	resp := toResponse(record)
	resp.WalletBalance = balance
	return &resp, nil
}

// Cancel removes the booking and refunds the listing price when the booked
// date is still outside the cancellation window. No role can bypass the window.
func (s *service) Cancel(ctx context.Context, cmd CancelCommand) (*CancelResult, error) {
	release, err := s.acquire(ctx, cmd.ListingID, cmd.TouristID)
	if err != nil {
		return nil, err
	}
	defer release()

	var result *CancelResult
	err = s.txr.WithinTransaction(ctx, func(ctx context.Context) error {
		listing, err := s.loadListing(ctx, cmd.Kind, cmd.ListingID)
		if err != nil {
			return err
		}

		// Step 1: There must be a booking to cancel
		record, err := s.repo.FindBooking(ctx, listing.ID, cmd.TouristID)
		if err != nil {
			return err
		}
		if record == nil {
			return apperror.ErrNotBooked
		}

		// Step 2: Cancellation window
		if !s.policy.CanCancel(record.BookedDate, s.now()) {
			return apperror.ErrCancellationWindowClosed
		}

		// Step 3: Remove the booking
		if err := s.repo.RemoveBooking(ctx, listing.ID, cmd.TouristID); err != nil {
			return err
		}

		// Step 4: Full refund of the listing price
		balance, err := s.wallet.Credit(ctx, cmd.TouristID, listing.Price, wallet.ReasonBookingRefund, listing.ID.String())
		if err != nil {
			return err
		}

		if s.recorder != nil {
			if err := s.recorder.Record(ctx, cancellation.SubjectListingBooking, listing.ID, cmd.TouristID, listing.Price, "booking cancelled by tourist"); err != nil {
				return err
			}
		}

		result = &CancelResult{
			ListingID:        listing.ID,
			RefundedAmount:   listing.Price,
			NewWalletBalance: balance,
		}
		return nil
	})
	if err != nil {
		s.metrics.ObserveCancellation(string(cancellation.SubjectListingBooking), apperror.Outcome(err))
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.metrics.ObserveCancellation(string(cancellation.SubjectListingBooking), "success")
	s.metrics.ObserveRefund(string(cancellation.SubjectListingBooking), result.RefundedAmount)
	logger.GetDefault().LogBookingCancelled(ctx, result.ListingID.String(), cmd.TouristID.String(), result.RefundedAmount.StringFixed(2))
	s.publish(ctx, notifications.NewEventBuilder(notifications.EventBookingCancelled).
		WithTourist(cmd.TouristID).
		WithSubject(result.ListingID, string(cmd.Kind)).
		WithAmount(result.RefundedAmount.StringFixed(2), result.NewWalletBalance.StringFixed(2)).
		Build())

	return result, nil
}

func (s *service) GetUserBookings(ctx context.Context, touristID uuid.UUID, limit, offset int) (*BookingListResponse, error) {
	records, total, err := s.repo.ListByTourist(ctx, touristID, limit, offset)
	if err != nil {
		return nil, err
	}

	out := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(records)),
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}
	for i := range records {
		out.Bookings = append(out.Bookings, toResponse(&records[i]))
	}
	return out, nil
}

func (s *service) GetBookers(ctx context.Context, listingID uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.ListBookers(ctx, listingID)
}

// publish runs after commit; a broker outage must not undo a committed booking
func (s *service) publish(ctx context.Context, event *notifications.DomainEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "failed to publish domain event", err, map[string]interface{}{
			"type":       string(event.Type),
			"tourist_id": event.TouristID.String(),
		})
	}
}

// generateBookingReference generates a human readable booking reference
func generateBookingReference(now time.Time) (string, error) {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	randomPart := make([]byte, 6)

	for i := range randomPart {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}
		randomPart[i] = letters[num.Int64()]
	}

	return fmt.Sprintf("VOY-%s-%s", now.Format("20060102"), string(randomPart)), nil
}
