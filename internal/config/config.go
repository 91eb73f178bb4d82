package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3Buckets      S3Buckets

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration
	RefreshTokenDur   time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	// Pending-signup store. Empty RedisAddr selects the in-process store.
	RedisAddr string
	RedisDB   int
	OTPTTL    time.Duration

	// Signup/verify fixed-window throttles.
	SignupRateMax int
	VerifyRateMax int
	RateWindow    time.Duration

	// Image-embedding microservice (optional).
	EmbeddingServiceURL string

	// SNS topic for operational events (optional).
	OpsTopicARN string
	SNSRegion   string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Accounts           string
	Brands             string
	Products           string
	OrderItems         string
	BrandVerifications string
	Sessions           string
}

// S3Buckets holds the bucket name for each document class.
type S3Buckets struct {
	ProductImages string
	AddressProofs string
	Contracts     string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Accounts:           getEnv("DYNAMO_TABLE_ACCOUNTS", "accounts"),
			Brands:             getEnv("DYNAMO_TABLE_BRANDS", "brands"),
			Products:           getEnv("DYNAMO_TABLE_PRODUCTS", "products"),
			OrderItems:         getEnv("DYNAMO_TABLE_ORDER_ITEMS", "order_items"),
			BrandVerifications: getEnv("DYNAMO_TABLE_BRAND_VERIFICATIONS", "brand_verifications"),
			Sessions:           getEnv("DYNAMO_TABLE_SESSIONS", "sessions"),
		},
		S3Buckets: S3Buckets{
			ProductImages: getEnv("S3_BUCKET_PRODUCT_IMAGES", "product-images"),
			AddressProofs: getEnv("S3_BUCKET_ADDRESS_PROOFS", "address-proof-docs"),
			Contracts:     getEnv("S3_BUCKET_CONTRACTS", "contract-docs"),
		},

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		RefreshTokenDur:   time.Duration(getEnvInt("REFRESH_TOKEN_EXPIRY_DAYS", 30)) * 24 * time.Hour,

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvInt("SMTP_PORT", 1025),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@wardro8e.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		RedisAddr: getEnv("REDIS_ADDR", ""),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		OTPTTL:    time.Duration(getEnvInt("OTP_TTL_MINUTES", 10)) * time.Minute,

		SignupRateMax: getEnvInt("SIGNUP_RATE_MAX", 5),
		VerifyRateMax: getEnvInt("VERIFY_RATE_MAX", 10),
		RateWindow:    time.Duration(getEnvInt("RATE_WINDOW_MINUTES", 15)) * time.Minute,

		EmbeddingServiceURL: getEnv("PYTHON_SERVICE_URL", ""),

		OpsTopicARN: getEnv("OPS_TOPIC_ARN", ""),
		SNSRegion:   getEnv("SNS_REGION", "us-east-1"),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
