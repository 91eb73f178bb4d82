package domain

// PendingSignup is a transient registration record awaiting OTP confirmation.
// At most one exists per normalized email; a resend overwrites it. The
// password is held as a bcrypt hash, never plaintext.
type PendingSignup struct {
	BrandName      string `json:"brand_name"`
	BrandLegalName string `json:"brand_legal_name"`
	Email          string `json:"email"`
	PasswordHash   string `json:"password_hash"`
	OTP            string `json:"otp"`
	ExpiresAt      int64  `json:"expires_at"` // epoch ms
	Attempts       int    `json:"attempts"`
}

// SignupRequest starts the OTP flow.
type SignupRequest struct {
	BrandName      string `json:"brandName" validate:"required"`
	BrandLegalName string `json:"brandLegalName" validate:"required"`
	Email          string `json:"email" validate:"required"`
	Password       string `json:"password" validate:"required"`
}

// VerifySignupRequest confirms the OTP and provisions the account + brand.
type VerifySignupRequest struct {
	Email string `json:"email" validate:"required"`
	OTP   string `json:"otp" validate:"required"`
}

// LoginRequest authenticates an existing brand account.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
