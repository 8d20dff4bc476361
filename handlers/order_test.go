package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"medicore/middleware"
	"medicore/models"
)

// fakeOrderService captures the input handed to PlaceOrder.
type fakeOrderService struct {
	placed *models.PlaceOrderInput
}

func (f *fakeOrderService) PlaceOrder(ctx context.Context, input models.PlaceOrderInput) (*models.Order, error) {
	f.placed = &input
	return &models.Order{ID: "ord-1", UserID: input.UserID, Status: models.OrderPending}, nil
}

func (f *fakeOrderService) CancelOrder(ctx context.Context, orderID string) error { return nil }

func (f *fakeOrderService) CreatePaymentIntent(ctx context.Context, orderID string) (*models.Payment, error) {
	return nil, nil
}

func (f *fakeOrderService) UpdateStatus(ctx context.Context, orderID, newStatus string) (*models.Order, error) {
	return nil, nil
}

func (f *fakeOrderService) GetByID(ctx context.Context, id string) (*models.Order, error) {
	return nil, nil
}

func (f *fakeOrderService) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return nil, nil
}

func TestPlaceOrderUserIDComesFromToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeOrderService{}
	router := gin.New()
	router.POST("/api/orders", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, "user-from-token")
	}, NewOrderHandler(svc).Place)

	// No userId in the body; the token identity must be enough.
	body := `{"items":[{"productId":"prod-1","quantity":2}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.placed == nil {
		t.Fatal("PlaceOrder was not called")
	}
	if svc.placed.UserID != "user-from-token" {
		t.Fatalf("expected token identity, got %q", svc.placed.UserID)
	}
}

func TestPlaceOrderBodyUserIDIsOverridden(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeOrderService{}
	router := gin.New()
	router.POST("/api/orders", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, "user-from-token")
	}, NewOrderHandler(svc).Place)

	body := `{"userId":"someone-else","items":[{"productId":"prod-1","quantity":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.placed.UserID != "user-from-token" {
		t.Fatalf("body userId must not win, got %q", svc.placed.UserID)
	}
}
