package domain

import "time"

// Embedding pipeline states stamped on the product row.
const (
	EmbeddingPending   = "pending"
	EmbeddingCompleted = "completed"
	EmbeddingFailed    = "failed"
)

type Product struct {
	ProductID       string    `json:"id" dynamodbav:"product_id"`
	BrandID         string    `json:"brand_id" dynamodbav:"brand_id"`
	Title           string    `json:"title" dynamodbav:"title"`
	Description     string    `json:"description,omitempty" dynamodbav:"description"`
	Price           float64   `json:"price" dynamodbav:"price"`
	StockQuantity   int       `json:"stock_quantity" dynamodbav:"stock_quantity"`
	ImageURLs       []string  `json:"image_urls,omitempty" dynamodbav:"image_urls"`
	IsActive        bool      `json:"is_active" dynamodbav:"is_active"`
	Embedding       []float64 `json:"-" dynamodbav:"embedding"`
	EmbeddingStatus string    `json:"embedding_status,omitempty" dynamodbav:"embedding_status"`
	CreatedAt       time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

type CreateProductRequest struct {
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	StockQuantity int      `json:"stock_quantity" validate:"gte=0"`
	ImageURLs     []string `json:"image_urls"`
}
