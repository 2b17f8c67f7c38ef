package orders

import (
	"context"
	"errors"
	"fmt"

	"voyago/internal/shared/apperror"
	"voyago/internal/shared/txn"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// Products
	CreateProduct(ctx context.Context, product *Product) error
	GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	ListProducts(ctx context.Context, limit, offset int) ([]Product, int64, error)

	// Orders
	CreateOrder(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to OrderStatus) error
	ListByTourist(ctx context.Context, touristID uuid.UUID, limit, offset int) ([]Order, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateProduct(ctx context.Context, product *Product) error {
	if err := txn.Conn(ctx, r.db).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *repository) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error) {
	var products []Product
	err := txn.Conn(ctx, r.db).
		Where("id IN ?", ids).
		Where("archived = ?", false).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

func (r *repository) ListProducts(ctx context.Context, limit, offset int) ([]Product, int64, error) {
	var (
		products []Product
		total    int64
	)
	query := txn.Conn(ctx, r.db).Model(&Product{}).Where("archived = ?", false).Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}
	err := query.Order("name ASC").Limit(limit).Offset(offset).Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// CreateOrder inserts the order together with its lines
func (r *repository) CreateOrder(ctx context.Context, order *Order) error {
	if err := txn.Conn(ctx, r.db).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	return r.get(txn.Conn(ctx, r.db), id)
}

// GetByIDForUpdate locks the order row until the surrounding transaction ends
func (r *repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Order, error) {
	return r.get(txn.Conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *repository) get(db *gorm.DB, id uuid.UUID) (*Order, error) {
	var order Order
	err := db.Preload("Lines").First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// UpdateStatus only applies when the order is still in status from
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to OrderStatus) error {
	result := txn.Conn(ctx, r.db).Model(&Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: order is no longer %s", apperror.ErrInvalidStatus, from)
	}
	return nil
}

func (r *repository) ListByTourist(ctx context.Context, touristID uuid.UUID, limit, offset int) ([]Order, int64, error) {
	var (
		orders []Order
		total  int64
	)
	query := txn.Conn(ctx, r.db).Model(&Order{}).Where("tourist_id = ?", touristID).Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}
	err := query.Preload("Lines").Order("created_at DESC").Limit(limit).Offset(offset).Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}
