package cancellation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service interface defines the contract for cancellation business logic
type Service interface {
	// Record writes the audit row inside the caller's transaction, if any
	Record(ctx context.Context, subject SubjectType, subjectID, touristID uuid.UUID, refund decimal.Decimal, reason string) error
	GetUserCancellations(ctx context.Context, touristID uuid.UUID, limit, offset int) (*CancellationListResponse, error)
}

type CancellationListResponse struct {
	Cancellations []Cancellation `json:"cancellations"`
	Total         int64          `json:"total"`
	Limit         int            `json:"limit"`
	Offset        int            `json:"offset"`
}

type service struct {
	repo Repository
}

// NewService creates a new cancellation service instance
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Record(ctx context.Context, subject SubjectType, subjectID, touristID uuid.UUID, refund decimal.Decimal, reason string) error {
	c := &Cancellation{
		SubjectType:  subject,
		SubjectID:    subjectID,
		TouristID:    touristID,
		RefundAmount: refund,
		Reason:       reason,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return fmt.Errorf("failed to record cancellation: %w", err)
	}
	return nil
}

func (s *service) GetUserCancellations(ctx context.Context, touristID uuid.UUID, limit, offset int) (*CancellationListResponse, error) {
	items, total, err := s.repo.ListByTourist(ctx, touristID, limit, offset)
	if err != nil {
		return nil, err
	}
	return &CancellationListResponse{
		Cancellations: items,
		Total:         total,
		Limit:         limit,
		Offset:        offset,
	}, nil
}
