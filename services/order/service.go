package order

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	orderRepo "medicore/database/repository/order"
	productRepo "medicore/database/repository/product"
	"medicore/models"
	"medicore/services/availability"
	"medicore/services/payment"
	"medicore/utils"
)

// InsufficientStockError signals that at least one item could not be
// reserved; the transaction aborted, so no stock was decremented.
type InsufficientStockError struct {
	ProductID string
	Requested int
}

func (e InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (requested %d)", e.ProductID, e.Requested)
}

// InvalidTransitionError signals a status change the order lifecycle does
// not allow.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}

// NotPayableError signals a payment-intent request for an order that is
// past the payable stage.
type NotPayableError struct {
	OrderID string
	Status  string
}

func (e NotPayableError) Error() string {
	return fmt.Sprintf("order %s in status %s cannot be paid", e.OrderID, e.Status)
}

// Legal fulfilment transitions. Cancellation goes through CancelOrder
// (it restores stock transactionally); delivered and cancelled are
// terminal.
var transitions = map[string][]string{
	models.OrderPending: {models.OrderPaid},
	models.OrderPaid:    {models.OrderShipped},
	models.OrderShipped: {models.OrderDelivered},
}

func canTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Service places, pays, fulfils and cancels orders with atomic stock
// reservation.
type Service interface {
	PlaceOrder(ctx context.Context, input models.PlaceOrderInput) (*models.Order, error)
	CancelOrder(ctx context.Context, orderID string) error
	CreatePaymentIntent(ctx context.Context, orderID string) (*models.Payment, error)
	UpdateStatus(ctx context.Context, orderID, newStatus string) (*models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
}

// DefaultOrderService implements Service.
type DefaultOrderService struct {
	Repo        orderRepo.OrderRepository
	ProductRepo productRepo.ProductRepository
	Payments    payment.Service
}

// PlaceOrder snapshots product name and price per item, then hands the
// order to the transactional repository: either every item's stock is
// decremented and the order persists, or nothing changes.
func (s *DefaultOrderService) PlaceOrder(ctx context.Context, input models.PlaceOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	total := 0.0
	for _, in := range input.Items {
		if in.Quantity <= 0 {
			return nil, fmt.Errorf("product %s: quantity must be positive", in.ProductID)
		}
		product, err := s.ProductRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			if errors.Is(err, productRepo.ErrNotFound) {
				return nil, availability.NotFoundError{Resource: "product", ID: in.ProductID}
			}
			return nil, fmt.Errorf("product lookup failed: %w", err)
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  in.Quantity,
		})
		total += product.Price * float64(in.Quantity)
	}

	o := &models.Order{
		UserID:  input.UserID,
		Items:   items,
		Total:   total,
		Status:  models.OrderPending,
		Payment: input.Payment,
		Address: input.Address,
	}

	if err := s.Repo.PlaceOrderTransactionally(ctx, o); err != nil {
		var stockErr orderRepo.InsufficientStockError
		if errors.As(err, &stockErr) {
			return nil, InsufficientStockError{ProductID: stockErr.ProductID, Requested: stockErr.Requested}
		}
		return nil, fmt.Errorf("order placement failed: %w", err)
	}

	utils.GetLogger().Info("order placed",
		zap.String("id", o.ID),
		zap.String("userId", o.UserID),
		zap.Float64("total", o.Total),
		zap.Int("items", len(o.Items)))
	return o, nil
}

func (s *DefaultOrderService) CancelOrder(ctx context.Context, orderID string) error {
	if err := s.Repo.CancelOrderTransactionally(ctx, orderID); err != nil {
		if errors.Is(err, orderRepo.ErrNotFound) {
			return availability.NotFoundError{Resource: "order", ID: orderID}
		}
		return err
	}
	utils.GetLogger().Info("order cancelled", zap.String("id", orderID))
	return nil
}

// CreatePaymentIntent creates a Stripe intent for a pending order and
// records the payment sub-record on the order before returning it. The
// amount always comes from the stored order total, never from the caller.
func (s *DefaultOrderService) CreatePaymentIntent(ctx context.Context, orderID string) (*models.Payment, error) {
	o, err := s.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != models.OrderPending {
		return nil, NotPayableError{OrderID: o.ID, Status: o.Status}
	}

	pay, err := s.Payments.CreateIntent(o.Total, "usd", "order "+o.ID)
	if err != nil {
		return nil, fmt.Errorf("payment intent creation failed: %w", err)
	}
	if err := s.Repo.UpdatePayment(ctx, o.ID, pay); err != nil {
		return nil, fmt.Errorf("payment record update failed: %w", err)
	}

	utils.GetLogger().Info("order payment intent recorded",
		zap.String("id", o.ID),
		zap.String("intentId", pay.StripeIntentID))
	return pay, nil
}

// UpdateStatus advances the fulfilment lifecycle one legal step. The
// conditional repository update is authoritative; a racing transition
// surfaces as InvalidTransitionError from the committed status.
func (s *DefaultOrderService) UpdateStatus(ctx context.Context, orderID, newStatus string) (*models.Order, error) {
	o, err := s.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !canTransition(o.Status, newStatus) {
		return nil, InvalidTransitionError{From: o.Status, To: newStatus}
	}

	if err := s.Repo.UpdateStatus(ctx, orderID, o.Status, newStatus); err != nil {
		if errors.Is(err, orderRepo.ErrStatusConflict) {
			if current, getErr := s.Repo.GetByID(ctx, orderID); getErr == nil {
				return nil, InvalidTransitionError{From: current.Status, To: newStatus}
			}
			return nil, InvalidTransitionError{From: o.Status, To: newStatus}
		}
		return nil, fmt.Errorf("order status update failed: %w", err)
	}
	o.Status = newStatus

	utils.GetLogger().Info("order status updated",
		zap.String("id", o.ID),
		zap.String("status", newStatus))
	return o, nil
}

func (s *DefaultOrderService) GetByID(ctx context.Context, id string) (*models.Order, error) {
	o, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderRepo.ErrNotFound) {
			return nil, availability.NotFoundError{Resource: "order", ID: id}
		}
		return nil, err
	}
	return o, nil
}

func (s *DefaultOrderService) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.Repo.ListByUser(ctx, userID)
}
