package orders

import (
	"context"
	"fmt"

	"voyago/internal/cancellation"
	"voyago/internal/notifications"
	"voyago/internal/shared/apperror"
	"voyago/internal/shared/constants"
	"voyago/internal/shared/txn"
	"voyago/internal/wallet"
	"voyago/pkg/cache"
	"voyago/pkg/logger"
	"voyago/pkg/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service interface {
	// Catalogue
	CreateProduct(ctx context.Context, createdBy uuid.UUID, req CreateProductRequest) (*Product, error)
	ListProducts(ctx context.Context, limit, offset int) (*ProductListResponse, error)

	// Orders
	Checkout(ctx context.Context, touristID uuid.UUID, req CheckoutRequest) (*CheckoutResponse, error)
	CancelOrder(ctx context.Context, orderID, touristID uuid.UUID) (*CancelResult, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status OrderStatus) (*Order, error)
	GetOrder(ctx context.Context, orderID, requesterID uuid.UUID, isAdmin bool) (*Order, error)
	ListOrders(ctx context.Context, touristID uuid.UUID, limit, offset int) (*OrderListResponse, error)

	SetCacheService(cacheService cache.Service)
	SetPublisher(publisher notifications.Publisher)
	SetMetrics(m *metrics.Metrics)
	SetCancellationRecorder(recorder CancellationRecorder)
}

// WalletLedger interface for order payments and refunds (to avoid circular dependency)
type WalletLedger interface {
	Credit(ctx context.Context, touristID uuid.UUID, amount decimal.Decimal, reason wallet.Reason, reference string) (decimal.Decimal, error)
	Debit(ctx context.Context, touristID uuid.UUID, amount decimal.Decimal, reason wallet.Reason, reference string) (decimal.Decimal, error)
}

type CancellationRecorder interface {
	Record(ctx context.Context, subject cancellation.SubjectType, subjectID, touristID uuid.UUID, refund decimal.Decimal, reason string) error
}

type service struct {
	repo            Repository
	wallet          WalletLedger
	txr             txn.Transactor
	defaultCurrency string

	cacheService cache.Service
	publisher    notifications.Publisher
	metrics      *metrics.Metrics
	recorder     CancellationRecorder
}

func NewService(repo Repository, ledger WalletLedger, txr txn.Transactor, defaultCurrency string) Service {
	if defaultCurrency == "" {
		defaultCurrency = "USD"
	}
	return &service{
		repo:            repo,
		wallet:          ledger,
		txr:             txr,
		defaultCurrency: defaultCurrency,
		publisher:       notifications.NoopPublisher{},
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
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

func (s *service) CreateProduct(ctx context.Context, createdBy uuid.UUID, req CreateProductRequest) (*Product, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil || !price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be a positive amount", apperror.ErrInvalidInput)
	}

	currency := req.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}

	product := &Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       price.Round(2),
		Currency:    currency,
		CreatedBy:   createdBy,
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_PRODUCTS_LIST); err != nil {
			logger.GetDefault().Warn("failed to invalidate product list cache", "error", err)
		}
	}
	return product, nil
}

func (s *service) ListProducts(ctx context.Context, limit, offset int) (*ProductListResponse, error) {
	fetch := func() (interface{}, error) {
		products, total, err := s.repo.ListProducts(ctx, limit, offset)
		if err != nil {
			return nil, err
		}
		return ProductListResponse{Products: products, Total: total, Limit: limit, Offset: offset}, nil
	}

	if s.cacheService == nil {
		data, err := fetch()
		if err != nil {
			return nil, err
		}
		resp := data.(ProductListResponse)
		return &resp, nil
	}

	var resp ProductListResponse
	page := offset/max(limit, 1) + 1
	if err := s.cacheService.GetOrSet(ctx, constants.BuildProductListKey(page, limit), constants.TTL_PRODUCTS_LIST, fetch, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Checkout prices the cart from the catalogue and places the order in PROCESSING.
// WALLET orders are paid in the same transaction.
func (s *service) Checkout(ctx context.Context, touristID uuid.UUID, req CheckoutRequest) (*CheckoutResponse, error) {
	// Step 1: Merge duplicate lines
	quantities := make(map[uuid.UUID]int, len(req.Lines))
	ids := make([]uuid.UUID, 0, len(req.Lines))
	for _, line := range req.Lines {
		id, err := uuid.Parse(line.ProductID)
		if err != nil || line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: invalid order line", apperror.ErrInvalidInput)
		}
		if _, seen := quantities[id]; !seen {
			ids = append(ids, id)
		}
		quantities[id] += line.Quantity
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: order has no lines", apperror.ErrInvalidInput)
	}

	switch req.PaymentMethod {
	case PaymentCashOnDelivery, PaymentCreditCard, PaymentWallet:
	default:
		return nil, fmt.Errorf("%w: unknown payment method %q", apperror.ErrInvalidInput, req.PaymentMethod)
	}

	var (
		order   *Order
		balance *decimal.Decimal
	)
	err := s.txr.WithinTransaction(ctx, func(ctx context.Context) error {
		// Step 2: Price every line from the catalogue
		products, err := s.repo.GetProductsByIDs(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		order = &Order{
			TouristID:     touristID,
			Currency:      s.defaultCurrency,
			PaymentMethod: req.PaymentMethod,
			Status:        StatusProcessing,
			DeliveryAddress: DeliveryAddress{
				Street:     req.DeliveryAddress.Street,
				City:       req.DeliveryAddress.City,
				PostalCode: req.DeliveryAddress.PostalCode,
				Country:    req.DeliveryAddress.Country,
			},
		}
		total := decimal.Zero
		for _, id := range ids {
			product, ok := byID[id]
			if !ok {
				return fmt.Errorf("%w: %s", apperror.ErrProductNotFound, id)
			}
			line := OrderLine{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    quantities[id],
				UnitPrice:   product.Price,
			}
			total = total.Add(line.LineTotal())
			order.Lines = append(order.Lines, line)
		}
		order.TotalAmount = total

		// Step 3: Persist the order
		if err := s.repo.CreateOrder(ctx, order); err != nil {
			return err
		}

		// Step 4: Wallet orders are paid upfront
		if req.PaymentMethod == PaymentWallet {
			b, err := s.wallet.Debit(ctx, touristID, total, wallet.ReasonOrderPayment, order.ID.String())
			if err != nil {
				return err
			}
			balance = &b
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to checkout: %w", err)
	}

	event := notifications.NewEventBuilder(notifications.EventOrderPlaced).
		WithTourist(touristID).
		WithSubject(order.ID, string(order.PaymentMethod))
	if balance != nil {
		event = event.WithAmount(order.TotalAmount.StringFixed(2), balance.StringFixed(2))
	} else {
		event = event.WithAmount(order.TotalAmount.StringFixed(2), "")
	}
	s.publish(ctx, event.Build())

	return &CheckoutResponse{Order: order, WalletBalance: balance}, nil
}

// CancelOrder cancels a PROCESSING order and refunds its total to the wallet.
// Unlike listing bookings there is no date window here: orders are gated on
// status alone. Kept as observed until product decides otherwise.
func (s *service) CancelOrder(ctx context.Context, orderID, touristID uuid.UUID) (*CancelResult, error) {
	var result *CancelResult
	err := s.txr.WithinTransaction(ctx, func(ctx context.Context) error {
		// Step 1: Lock the order and check ownership
		order, err := s.repo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order.TouristID != touristID {
			return apperror.ErrForbidden
		}

		// Step 2: Only orders that have not shipped can be cancelled
		if order.Status != StatusProcessing {
			return fmt.Errorf("%w: order is %s", apperror.ErrInvalidStatus, order.Status)
		}
		if err := s.repo.UpdateStatus(ctx, order.ID, StatusProcessing, StatusCancelled); err != nil {
			return err
		}

		// Step 3: Refund the full total
		balance, err := s.wallet.Credit(ctx, touristID, order.TotalAmount, wallet.ReasonOrderRefund, order.ID.String())
		if err != nil {
			return err
		}

		if s.recorder != nil {
			if err := s.recorder.Record(ctx, cancellation.SubjectOrder, order.ID, touristID, order.TotalAmount, "order cancelled by tourist"); err != nil {
				return err
			}
		}

		result = &CancelResult{
			OrderID:          order.ID,
			Status:           StatusCancelled,
			RefundedAmount:   order.TotalAmount,
			NewWalletBalance: balance,
		}
		return nil
	})
	s.metrics.ObserveCancellation(string(cancellation.SubjectOrder), apperror.Outcome(err))
	if err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	s.metrics.ObserveRefund(string(cancellation.SubjectOrder), result.RefundedAmount)
	logger.GetDefault().LogOrderCancelled(ctx, result.OrderID.String(), touristID.String(), result.RefundedAmount.StringFixed(2))
	s.publish(ctx, notifications.NewEventBuilder(notifications.EventOrderCancelled).
		WithTourist(touristID).
		WithSubject(result.OrderID, string(cancellation.SubjectOrder)).
		WithAmount(result.RefundedAmount.StringFixed(2), result.NewWalletBalance.StringFixed(2)).
		Build())

	return result, nil
}

// UpdateStatus moves an order forward through fulfilment
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status OrderStatus) (*Order, error) {
	var order *Order
	err := s.txr.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if !CanTransition(current.Status, status) {
			return fmt.Errorf("%w: cannot move order from %s to %s", apperror.ErrInvalidStatus, current.Status, status)
		}
		if err := s.repo.UpdateStatus(ctx, orderID, current.Status, status); err != nil {
			return err
		}
		current.Status = status
		order = current
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	return order, nil
}

func (s *service) GetOrder(ctx context.Context, orderID, requesterID uuid.UUID, isAdmin bool) (*Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.TouristID != requesterID {
		return nil, apperror.ErrForbidden
	}
	return order, nil
}

func (s *service) ListOrders(ctx context.Context, touristID uuid.UUID, limit, offset int) (*OrderListResponse, error) {
	orders, total, err := s.repo.ListByTourist(ctx, touristID, limit, offset)
	if err != nil {
		return nil, err
	}
	return &OrderListResponse{Orders: orders, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *service) publish(ctx context.Context, event *notifications.DomainEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "failed to publish domain event", err, map[string]interface{}{
			"type":       string(event.Type),
			"tourist_id": event.TouristID.String(),
		})
	}
}
