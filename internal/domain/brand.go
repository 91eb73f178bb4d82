package domain

import "time"

// Brand is a seller-side tenant. Its id equals the id of the account it
// belongs to. Verified is only ever set by the review workflow, never by
// the brand itself; product creation is gated on it.
type Brand struct {
	BrandID        string    `json:"id" dynamodbav:"brand_id"`
	BrandName      string    `json:"brand_name" dynamodbav:"brand_name"`
	BrandLegalName string    `json:"brand_legal_name" dynamodbav:"brand_legal_name"`
	Slug           string    `json:"slug,omitempty" dynamodbav:"slug"`
	Description    string    `json:"description,omitempty" dynamodbav:"description"`
	Email          string    `json:"email" dynamodbav:"email"`
	Verified       bool      `json:"verified" dynamodbav:"verified"`
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated" dynamodbav:"updated_at"`
}

// UpdateBrandSettingsRequest carries the PATCHable settings fields.
// Absent fields are left untouched.
type UpdateBrandSettingsRequest struct {
	BrandName   *string `json:"brand_name"`
	Description *string `json:"description"`
	Email       *string `json:"email" validate:"omitempty,email"`
}

// BrandSettings is the settings projection returned to the dashboard.
type BrandSettings struct {
	BrandID     string `json:"id"`
	BrandName   string `json:"brand_name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	Email       string `json:"email"`
	Verified    bool   `json:"verified"`
}
