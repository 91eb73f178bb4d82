package domain

import "time"

// OrderItem is one brand's line in a marketplace order. Order-level status
// is denormalized onto the item so the brand dashboard reads a single table.
type OrderItem struct {
	OrderItemID string    `json:"id" dynamodbav:"order_item_id"`
	OrderID     string    `json:"order_id" dynamodbav:"order_id"`
	BrandID     string    `json:"brand_id" dynamodbav:"brand_id"`
	ProductID   string    `json:"product_id" dynamodbav:"product_id"`
	Quantity    int       `json:"quantity" dynamodbav:"quantity"`
	Price       float64   `json:"price" dynamodbav:"price"`
	OrderStatus string    `json:"order_status" dynamodbav:"order_status"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
}
