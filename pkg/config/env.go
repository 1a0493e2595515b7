package config

const (
	EnvFile = "ENV_FILE"

	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"
	EnvQueryTimeout      = "MONGO_QUERY_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"
	EnvTimezone = "TIMEZONE"

	EnvJWTSecret  = "JWT_SECRET"
	EnvJWTTTL     = "JWT_TTL"
	EnvBcryptCost = "BCRYPT_COST"

	EnvAIAPIURL         = "AI_API_URL"
	EnvAIAPIKey         = "AI_API_KEY"
	EnvAIModel          = "AI_MODEL"
	EnvAIRequestTimeout = "AI_REQUEST_TIMEOUT"
	EnvAIMaxAttempts    = "AI_MAX_ATTEMPTS"
	EnvAIBackoffBase    = "AI_BACKOFF_BASE"
	EnvAIBackoffMax     = "AI_BACKOFF_MAX"
	EnvPlanCacheTTL     = "PLAN_CACHE_TTL"

	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvRedisDB       = "REDIS_DB"

	EnvKafkaBrokers          = "KAFKA_BROKERS"
	EnvBookingEventsTopic    = "BOOKING_EVENTS_TOPIC"
	EnvBookingEventsDLQTopic = "BOOKING_EVENTS_DLQ_TOPIC"

	EnvCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"
	EnvTicketFormat       = "TICKET_FORMAT"
	EnvRequireAuthForPlan = "REQUIRE_AUTH_FOR_PLANS"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
