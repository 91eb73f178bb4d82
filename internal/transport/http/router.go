package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/wardro8e/api/internal/application/auth"
	"github.com/wardro8e/api/internal/application/brand"
	"github.com/wardro8e/api/internal/application/order"
	"github.com/wardro8e/api/internal/application/product"
	"github.com/wardro8e/api/internal/application/verification"
	"github.com/wardro8e/api/internal/config"
	"github.com/wardro8e/api/internal/transport/http/handler"
	appmiddleware "github.com/wardro8e/api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	var authMw, optionalAuthMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
		optionalAuthMw = appmiddleware.AuthOptional(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
		optionalAuthMw = authMw
	}

	// Fixed-window quotas on the OTP endpoints so one address cannot farm
	// codes; a token bucket absorbs login bursts.
	signupRL := appmiddleware.NewWindowLimiter(cfg.SignupRateMax, cfg.RateWindow, "signup:")
	verifyRL := appmiddleware.NewWindowLimiter(cfg.VerifyRateMax, cfg.RateWindow, "verify:")
	loginRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		Pending:         deps.PendingSignups,
		AccountRepo:     deps.AccountRepo,
		BrandRepo:       deps.BrandRepo,
		SessionRepo:     deps.SessionRepo,
		Mailer:          deps.Mailer,
		JWTProvider:     deps.JWTProvider,
		OTPTTL:          cfg.OTPTTL,
		RefreshTokenDur: cfg.RefreshTokenDur,
	})
	productDeps := product.ServiceDeps{
		ProductRepo:  deps.ProductRepo,
		BrandRepo:    deps.BrandRepo,
		ObjectStore:  deps.S3Store,
		ImagesBucket: cfg.S3Buckets.ProductImages,
	}
	if deps.EmbeddingWorker != nil {
		productDeps.Embedder = deps.EmbeddingWorker
	}
	productSvc := product.NewService(productDeps)
	brandSvc := brand.NewService(deps.BrandRepo)
	orderSvc := order.NewService(deps.OrderItemRepo, deps.BrandRepo)
	verificationSvc := verification.NewService(verification.ServiceDeps{
		VerificationRepo:    deps.VerificationRepo,
		BrandRepo:           deps.BrandRepo,
		ObjectStore:         deps.S3Store,
		Mailer:              deps.Mailer,
		Events:              deps.Events,
		AddressProofsBucket: cfg.S3Buckets.AddressProofs,
		ContractsBucket:     cfg.S3Buckets.Contracts,
	})

	healthH := handler.NewHealthHandler(deps.EmbeddingClient)
	authH := handler.NewAuthHandler(authSvc, cfg.AppEnv == "production")
	productH := handler.NewProductHandler(productSvc)
	settingsH := handler.NewSettingsHandler(brandSvc)
	orderH := handler.NewOrderHandler(orderSvc)
	verificationH := handler.NewVerificationHandler(verificationSvc)

	r.Route("/api", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health", healthH.Ping)
		r.Get("/embedding/health", healthH.EmbeddingHealth)

		r.With(signupRL.Limit).Post("/auth/brand/signup", authH.Signup)
		r.With(verifyRL.Limit).Post("/auth/brand/verify", authH.Verify)
		r.With(loginRL.Limit).Post("/auth/brand/login", authH.Login)
		r.Post("/auth/brand/refresh", authH.Refresh)

		// Logout clears the auth cookie even when the token is expired or
		// invalid, so it cannot sit behind the auth middleware. Claims are
		// picked up when present to revoke the server-side session.
		r.With(optionalAuthMw).Delete("/auth/brand/login", authH.Logout)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/auth/me", authH.Me)

			r.Get("/brand/products", productH.List)
			r.Post("/brand/products", productH.Create)
			r.Post("/brand/products/images", productH.UploadImage)
			r.Delete("/brand/products/images", productH.DeleteImage)

			r.Get("/brand/settings", settingsH.Get)
			r.Patch("/brand/settings", settingsH.Update)

			r.Post("/brand/verification", verificationH.Submit)
			r.Get("/brand/verification/status", verificationH.Status)
			r.Get("/brand/verification/documents", verificationH.Document)

			r.Get("/brand/orders", orderH.List)
		})
	})

	return r
}
