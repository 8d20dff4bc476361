package orderRepo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"medicore/database"
	"medicore/models"
)

// ErrNotFound is returned when no order matches the given ID.
var ErrNotFound = errors.New("order not found")

// ErrStatusConflict is returned when a status update loses the race
// against a concurrent transition on the same order.
var ErrStatusConflict = errors.New("order status changed concurrently")

// InsufficientStockError is returned when a conditional stock decrement
// matched no document: the product is missing, inactive or under-stocked.
// The whole transaction is aborted when any item hits this.
type InsufficientStockError struct {
	ProductID string
	Requested int
}

func (e InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (requested %d)", e.ProductID, e.Requested)
}

type OrderRepository interface {
	// PlaceOrderTransactionally inserts the order and decrements stock for
	// every item in a single all-or-nothing transaction.
	PlaceOrderTransactionally(ctx context.Context, order *models.Order) error
	// CancelOrderTransactionally marks the order cancelled and restores the
	// reserved stock, again atomically.
	CancelOrderTransactionally(ctx context.Context, orderID string) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	// UpdateStatus applies the transition only while the stored status
	// still equals fromStatus; ErrStatusConflict otherwise.
	UpdateStatus(ctx context.Context, id, fromStatus, toStatus string) error
	UpdatePayment(ctx context.Context, id string, payment *models.Payment) error
	EnsureIndexes() error
}

type mongoOrderRepo struct {
	orderColl   *mongo.Collection
	productColl *mongo.Collection
}

// NewMongoOrderRepo constructs a new MongoDB OrderRepository.
func NewMongoOrderRepo() OrderRepository {
	db := database.DB()
	return &mongoOrderRepo{
		orderColl:   db.Collection("orders"),
		productColl: db.Collection("products"),
	}
}
