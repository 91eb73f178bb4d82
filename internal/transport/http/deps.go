package http

import (
	"github.com/wardro8e/api/internal/embedding"
	"github.com/wardro8e/api/internal/infrastructure/dynamo"
	jwtinfra "github.com/wardro8e/api/internal/infrastructure/jwt"
	s3infra "github.com/wardro8e/api/internal/infrastructure/s3"
	"github.com/wardro8e/api/internal/infrastructure/smtp"
	"github.com/wardro8e/api/internal/infrastructure/sns"
	"github.com/wardro8e/api/internal/signup"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	AccountRepo      *dynamo.AccountRepo
	BrandRepo        *dynamo.BrandRepo
	ProductRepo      *dynamo.ProductRepo
	OrderItemRepo    *dynamo.OrderItemRepo
	VerificationRepo *dynamo.VerificationRepo
	SessionRepo      *dynamo.SessionRepo
	PendingSignups   signup.Store
	S3Store          *s3infra.Store
	Mailer           smtp.Mailer
	Events           sns.EventPublisher // nil when no ops topic is configured
	JWTProvider      *jwtinfra.Provider
	EmbeddingClient  *embedding.Client // nil when the embedding service is not configured
	EmbeddingWorker  *embedding.Worker // nil when the embedding service is not configured
}
