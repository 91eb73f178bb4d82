// Package signup holds transient pending-signup records between OTP issuance
// and OTP confirmation.
package signup

import (
	"context"
	"strings"

	"github.com/wardro8e/api/internal/domain"
)

// Store keeps at most one pending record per normalized email. Put
// unconditionally overwrites, so a resend replaces the previous OTP.
//
// Records are retained past their OTP expiry (until the backend's own TTL
// fires) so a verification attempt against a stale record can be answered
// with "expired" rather than "no pending signup".
type Store interface {
	Put(ctx context.Context, p *domain.PendingSignup) error
	// Get returns the pending record for the email, or an error wrapping
	// domain.ErrNotFound.
	Get(ctx context.Context, email string) (*domain.PendingSignup, error)
	Delete(ctx context.Context, email string) error
}

// NormalizeEmail lower-cases and trims an email for use as a store key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
