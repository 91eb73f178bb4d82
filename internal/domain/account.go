package domain

import "time"

// Account roles. Brand accounts own a row in the brands table keyed by the
// same id; shopper accounts do not.
const (
	RoleBrand = "brand"
	RoleUser  = "user"
)

// Account is an identity record. Email addresses are stored lower-cased and
// trimmed; passwords only ever as bcrypt hashes.
type Account struct {
	AccountID      string     `json:"id" dynamodbav:"account_id"`
	Email          string     `json:"email" dynamodbav:"email"`
	PasswordHash   string     `json:"-" dynamodbav:"password_hash"`
	Role           string     `json:"role" dynamodbav:"role"`
	EmailConfirmed bool       `json:"email_confirmed" dynamodbav:"email_confirmed"`
	Enable         bool       `json:"enable" dynamodbav:"enable"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty" dynamodbav:"deleted_at"`
	CreatedAt      time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time  `json:"updated" dynamodbav:"updated_at"`
}
