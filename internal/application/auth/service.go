package auth

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/wardro8e/api/internal/domain"
	"github.com/wardro8e/api/internal/pkg/id"
	pkgtoken "github.com/wardro8e/api/internal/pkg/token"
	"github.com/wardro8e/api/internal/pkg/validate"
	"github.com/wardro8e/api/internal/signup"
	"golang.org/x/crypto/bcrypt"
)

// Wrong OTP submissions allowed against one pending record before the
// record is discarded and the signup must restart.
const maxOTPAttempts = 5

var otpShape = regexp.MustCompile(`^\d{6}$`)

// WeakPasswordError carries the itemized strength failures so the handler
// can return them field-by-field.
type WeakPasswordError struct {
	Errors []string
}

func (e *WeakPasswordError) Error() string { return "weak password: " + strings.Join(e.Errors, "; ") }
func (e *WeakPasswordError) Unwrap() error { return domain.ErrBadRequest }

// LoginResult bundles the tokens and account returned by Login/Refresh.
type LoginResult struct {
	Bearer       string
	RefreshToken string
	Account      *domain.Account
}

// Identity is the who-am-I projection, brand-enriched when applicable.
type Identity struct {
	UserID         string `json:"userId"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	BrandName      string `json:"brandName,omitempty"`
	BrandLegalName string `json:"brandLegalName,omitempty"`
	Verified       bool   `json:"verified"`
}

type Service interface {
	RequestSignup(ctx context.Context, req domain.SignupRequest) error
	VerifySignup(ctx context.Context, req domain.VerifySignupRequest) (*domain.Brand, error)
	Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*LoginResult, error)
	Logout(ctx context.Context, accountID string) error
	WhoAmI(ctx context.Context, accountID, email string) (*Identity, error)
}

type accountStore interface {
	Put(ctx context.Context, a *domain.Account) error
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	HardDelete(ctx context.Context, accountID string) error
}

type brandStore interface {
	Put(ctx context.Context, b *domain.Brand) error
	Get(ctx context.Context, brandID string) (*domain.Brand, error)
}

type sessionStore interface {
	Put(ctx context.Context, s *domain.Session) error
	GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	RotateRefreshToken(ctx context.Context, sessionID, newToken string, newExpiry int64) error
	SoftDeleteByAccount(ctx context.Context, accountID string) error
}

type jwtSigner interface {
	Sign(accountID, email, role, sessionID string) (string, error)
}

type mailer interface {
	SendOTPEmail(to, otp, brandName string) error
}

type ServiceDeps struct {
	Pending         signup.Store
	AccountRepo     accountStore
	BrandRepo       brandStore
	SessionRepo     sessionStore
	Mailer          mailer
	JWTProvider     jwtSigner
	OTPTTL          time.Duration
	RefreshTokenDur time.Duration
}

type service struct {
	pending         signup.Store
	accountRepo     accountStore
	brandRepo       brandStore
	sessionRepo     sessionStore
	mailer          mailer
	jwtProvider     jwtSigner
	otpTTL          time.Duration
	refreshTokenDur time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		pending:         deps.Pending,
		accountRepo:     deps.AccountRepo,
		brandRepo:       deps.BrandRepo,
		sessionRepo:     deps.SessionRepo,
		mailer:          deps.Mailer,
		jwtProvider:     deps.JWTProvider,
		otpTTL:          deps.OTPTTL,
		refreshTokenDur: deps.RefreshTokenDur,
	}
}

// RequestSignup validates the signup form, stores a pending record and
// emails the OTP. No partial state survives a failed email dispatch.
func (s *service) RequestSignup(ctx context.Context, req domain.SignupRequest) error {
	brandName := strings.TrimSpace(req.BrandName)
	brandLegalName := strings.TrimSpace(req.BrandLegalName)
	email := signup.NormalizeEmail(req.Email)
	if brandName == "" || brandLegalName == "" || email == "" || req.Password == "" {
		return fmt.Errorf("all fields are required: %w", domain.ErrBadRequest)
	}
	if !validate.Email(email) {
		return fmt.Errorf("invalid email: %w", domain.ErrBadRequest)
	}
	if ok, errs := validate.Password(req.Password); !ok {
		return &WeakPasswordError{Errors: errs}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	otp, err := pkgtoken.NewOTP()
	if err != nil {
		return err
	}

	p := &domain.PendingSignup{
		BrandName:      brandName,
		BrandLegalName: brandLegalName,
		Email:          email,
		PasswordHash:   string(hash),
		OTP:            otp,
		ExpiresAt:      time.Now().Add(s.otpTTL).UnixMilli(),
	}
	if err := s.pending.Put(ctx, p); err != nil {
		return err
	}

	if err := s.mailer.SendOTPEmail(email, otp, brandName); err != nil {
		if derr := s.pending.Delete(ctx, email); derr != nil {
			slog.Warn("failed to discard pending signup after email failure", "email", email, "err", derr)
		}
		return fmt.Errorf("send otp email: %w", err)
	}
	return nil
}

// VerifySignup checks the OTP against the pending record and, on success,
// provisions the account and brand rows and discards the pending record.
func (s *service) VerifySignup(ctx context.Context, req domain.VerifySignupRequest) (*domain.Brand, error) {
	email := signup.NormalizeEmail(req.Email)
	otp := strings.TrimSpace(req.OTP)
	if email == "" || otp == "" {
		return nil, fmt.Errorf("email and otp are required: %w", domain.ErrBadRequest)
	}
	if !otpShape.MatchString(otp) {
		return nil, fmt.Errorf("invalid OTP format: %w", domain.ErrBadRequest)
	}

	p, err := s.pending.Get(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("no pending signup found: %w", domain.ErrBadRequest)
	}
	if p.ExpiresAt <= time.Now().UnixMilli() {
		if derr := s.pending.Delete(ctx, email); derr != nil {
			slog.Warn("failed to delete expired pending signup", "email", email, "err", derr)
		}
		return nil, fmt.Errorf("verification code expired, restart signup: %w", domain.ErrBadRequest)
	}
	if p.OTP != otp {
		p.Attempts++
		if p.Attempts >= maxOTPAttempts {
			if derr := s.pending.Delete(ctx, email); derr != nil {
				slog.Warn("failed to delete pending signup after too many attempts", "email", email, "err", derr)
			}
			return nil, fmt.Errorf("too many incorrect codes, restart signup: %w", domain.ErrBadRequest)
		}
		if perr := s.pending.Put(ctx, p); perr != nil {
			slog.Warn("failed to record otp attempt", "email", email, "err", perr)
		}
		return nil, fmt.Errorf("invalid OTP: %w", domain.ErrBadRequest)
	}

	if _, err := s.accountRepo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("this email is already registered: %w", domain.ErrConflict)
	}

	now := time.Now().UTC()
	account := &domain.Account{
		AccountID:      id.New(),
		Email:          email,
		PasswordHash:   p.PasswordHash,
		Role:           domain.RoleBrand,
		EmailConfirmed: true, // the OTP proved ownership
		Enable:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.accountRepo.Put(ctx, account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	brand := &domain.Brand{
		BrandID:        account.AccountID,
		BrandName:      p.BrandName,
		BrandLegalName: p.BrandLegalName,
		Email:          email,
		Verified:       false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.brandRepo.Put(ctx, brand); err != nil {
		// Compensate so no orphaned identity is left behind.
		if derr := s.accountRepo.HardDelete(ctx, account.AccountID); derr != nil {
			slog.Error("orphaned account after brand insert failure",
				"account_id", account.AccountID, "err", derr)
		}
		return nil, fmt.Errorf("create brand profile: %w", err)
	}

	if derr := s.pending.Delete(ctx, email); derr != nil {
		slog.Warn("failed to delete confirmed pending signup", "email", email, "err", derr)
	}
	return brand, nil
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error) {
	email := signup.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", domain.ErrBadRequest)
	}
	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if !account.Enable {
		return nil, fmt.Errorf("account disabled: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	return s.openSession(ctx, account)
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token required: %w", domain.ErrBadRequest)
	}
	sess, err := s.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", domain.ErrUnauthorized)
	}
	if !sess.Enable || sess.RefreshExpiresAt < time.Now().Unix() {
		return nil, fmt.Errorf("refresh token expired: %w", domain.ErrUnauthorized)
	}
	account, err := s.accountRepo.Get(ctx, sess.AccountID)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", domain.ErrUnauthorized)
	}

	newToken, err := pkgtoken.NewRefreshToken()
	if err != nil {
		return nil, err
	}
	newExpiry := time.Now().Add(s.refreshTokenDur).Unix()
	if err := s.sessionRepo.RotateRefreshToken(ctx, sess.SessionID, newToken, newExpiry); err != nil {
		return nil, err
	}
	bearer, err := s.jwtProvider.Sign(account.AccountID, account.Email, account.Role, sess.SessionID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Bearer: bearer, RefreshToken: newToken, Account: account}, nil
}

func (s *service) Logout(ctx context.Context, accountID string) error {
	return s.sessionRepo.SoftDeleteByAccount(ctx, accountID)
}

// WhoAmI derives role from brands-row existence and best-effort-enriches
// brand identities; a failed enrichment never fails the whole call.
func (s *service) WhoAmI(ctx context.Context, accountID, email string) (*Identity, error) {
	ident := &Identity{UserID: accountID, Email: email, Role: domain.RoleUser}
	brand, err := s.brandRepo.Get(ctx, accountID)
	if err != nil {
		return ident, nil
	}
	ident.Role = domain.RoleBrand
	ident.BrandName = brand.BrandName
	ident.BrandLegalName = brand.BrandLegalName
	ident.Verified = brand.Verified
	return ident, nil
}

func (s *service) openSession(ctx context.Context, account *domain.Account) (*LoginResult, error) {
	refreshToken, err := pkgtoken.NewRefreshToken()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	sess := &domain.Session{
		SessionID:        id.New(),
		AccountID:        account.AccountID,
		Enable:           true,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: now.Add(s.refreshTokenDur).Unix(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.sessionRepo.Put(ctx, sess); err != nil {
		return nil, err
	}
	bearer, err := s.jwtProvider.Sign(account.AccountID, account.Email, account.Role, sess.SessionID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Bearer: bearer, RefreshToken: refreshToken, Account: account}, nil
}
