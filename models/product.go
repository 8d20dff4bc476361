package models

// Product is a storefront item (medicine, equipment, supplements).
type Product struct {
	ID       string  `bson:"id" json:"id"`
	Name     string  `bson:"name" json:"name"`
	SKU      string  `bson:"sku" json:"sku"`
	Category string  `bson:"category,omitempty" json:"category,omitempty"`
	Price    float64 `bson:"price" json:"price"`
	Stock    int     `bson:"stock" json:"stock"`
	ImageURL string  `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Active   bool    `bson:"active" json:"active"`
}
