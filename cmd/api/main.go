package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/wardro8e/api/internal/config"
	"github.com/wardro8e/api/internal/embedding"
	"github.com/wardro8e/api/internal/infrastructure/dynamo"
	jwtinfra "github.com/wardro8e/api/internal/infrastructure/jwt"
	s3infra "github.com/wardro8e/api/internal/infrastructure/s3"
	"github.com/wardro8e/api/internal/infrastructure/smtp"
	"github.com/wardro8e/api/internal/infrastructure/sns"
	"github.com/wardro8e/api/internal/signup"
	transporthttp "github.com/wardro8e/api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// JWT provider (optional — graceful fallback if keys are missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// S3 store.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client)

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)

	// SNS ops-event publisher (optional — graceful fallback).
	var events sns.EventPublisher
	if cfg.OpsTopicARN != "" {
		if p, err := sns.NewPublisher(cfg); err == nil {
			events = p
		} else {
			log.Printf("WARN: SNS publisher not available: %v", err)
		}
	}

	// Pending-signup store: Redis when configured, in-process otherwise.
	var pending signup.Store
	if cfg.RedisAddr != "" {
		pending = signup.NewRedisStore(cfg.RedisAddr, cfg.RedisDB, cfg.OTPTTL)
		log.Printf("Pending signups stored in Redis at %s", cfg.RedisAddr)
	} else {
		pending = signup.NewMemoryStore(cfg.OTPTTL)
	}

	productRepo := dynamo.NewProductRepo(dynamoClient, cfg.DynamoTables.Products)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Embedding pipeline (optional — products list without visual search
	// when the service is absent).
	var embeddingClient *embedding.Client
	var embeddingWorker *embedding.Worker
	if cfg.EmbeddingServiceURL != "" {
		embeddingClient = embedding.NewClient(cfg.EmbeddingServiceURL)
		embeddingWorker = embedding.NewWorker(embeddingClient, productRepo, 64)
		go embeddingWorker.Run(ctx)
	} else {
		log.Println("WARN: embedding service not configured, products will not be indexed for visual search")
	}

	deps := &transporthttp.Deps{
		AccountRepo:      dynamo.NewAccountRepo(dynamoClient, cfg.DynamoTables.Accounts),
		BrandRepo:        dynamo.NewBrandRepo(dynamoClient, cfg.DynamoTables.Brands),
		ProductRepo:      productRepo,
		OrderItemRepo:    dynamo.NewOrderItemRepo(dynamoClient, cfg.DynamoTables.OrderItems),
		VerificationRepo: dynamo.NewVerificationRepo(dynamoClient, cfg.DynamoTables.BrandVerifications),
		SessionRepo:      dynamo.NewSessionRepo(dynamoClient, cfg.DynamoTables.Sessions),
		PendingSignups:   pending,
		S3Store:          s3Store,
		Mailer:           mailer,
		Events:           events,
		JWTProvider:      jwtProvider,
		EmbeddingClient:  embeddingClient,
		EmbeddingWorker:  embeddingWorker,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
