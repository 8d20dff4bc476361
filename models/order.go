package models

import "time"

// Order statuses.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// OrderItem snapshots the product name and unit price at order time.
type OrderItem struct {
	ProductID string  `bson:"productId" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	UnitPrice float64 `bson:"unitPrice" json:"unitPrice"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

// Order is a multi-item purchase. Stock for every item is reserved
// atomically when the order is placed.
type Order struct {
	ID        string      `bson:"id" json:"id"`
	UserID    string      `bson:"userId" json:"userId"`
	Items     []OrderItem `bson:"items" json:"items"`
	Total     float64     `bson:"total" json:"total"`
	Status    string      `bson:"status" json:"status"`
	Payment   *Payment    `bson:"payment,omitempty" json:"payment,omitempty"`
	Address   string      `bson:"address,omitempty" json:"address,omitempty"`
	CreatedAt time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// PlaceOrderInput is the payload accepted by the order service. UserID is
// set from the authenticated token, not from the request body.
type PlaceOrderInput struct {
	UserID  string           `json:"userId"`
	Items   []OrderItemInput `json:"items" binding:"required"`
	Address string           `json:"address"`
	Payment *Payment         `json:"payment"`
}

// OrderItemInput references a product by ID; name and price are
// snapshotted server-side.
type OrderItemInput struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}
