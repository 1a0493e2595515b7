package config

import "time"

const (
	DefaultEnvFile = ".env"

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "event_planner"
	DefaultMongoConnTimeout  = 10 * time.Second
	DefaultQueryTimeout      = 5 * time.Second

	DefaultPort     = "5000"
	DefaultLogLevel = "info"
	DefaultTimezone = "Asia/Kolkata"

	DefaultJWTTTL     = 1 * time.Hour
	DefaultBcryptCost = 10
	MinJWTSecretLen   = 16

	DefaultAIAPIURL         = "https://api.groq.com/openai/v1/chat/completions"
	DefaultAIModel          = "llama-3.3-70b-versatile"
	DefaultAIRequestTimeout = 25 * time.Second
	DefaultAIMaxAttempts    = 3
	DefaultAIBackoffBase    = 1 * time.Second
	DefaultAIBackoffMax     = 8 * time.Second
	DefaultPlanCacheTTL     = 6 * time.Hour

	DefaultRedisConnTimeout = 3 * time.Second

	DefaultBookingEventsTopic    = "bookings.created"
	DefaultBookingEventsDLQTopic = "bookings.created.dlq"

	TicketFormatPDF  = "pdf"
	TicketFormatText = "text"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	// plan generation may take three model calls plus backoff
	DefaultRequestTimeout = 90 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 100 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)

var DefaultCORSAllowedOrigins = []string{
	"https://event-planner-india.netlify.app",
	"http://localhost:3000",
	"http://localhost:5000",
}
