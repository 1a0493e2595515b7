package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"utsav/pkg/client"
	"utsav/pkg/locale"
	"utsav/pkg/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration
	QueryTimeout      time.Duration

	Port     string
	LogLevel string
	Timezone string
	Location *time.Location

	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int

	AIAPIURL         string
	AIAPIKey         string
	AIModel          string
	AIRequestTimeout time.Duration
	AIMaxAttempts    int
	AIBackoffBase    time.Duration
	AIBackoffMax     time.Duration
	PlanCacheTTL     time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers          []string
	BookingEventsTopic    string
	BookingEventsDLQTopic string

	CORSAllowedOrigins  []string
	TicketFormat        string
	RequireAuthForPlans bool

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log    *logger.Logger
	Client *client.Client
}

// Load reads the environment (after an optional .env file), validates it and
// exits the process when the configuration is unusable.
func Load(serviceName string) *Config {
	cfg, err := FromEnv(serviceName)
	if cfg == nil {
		logger.New(logger.Config{Service: serviceName}).Fatal("failed to load configuration", "error", err)
	}
	if err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// FromEnv builds and validates a Config without exiting.
func FromEnv(serviceName string) (*Config, error) {
	envFile := getEnvStr(EnvFile, DefaultEnvFile)
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading %s: %w", envFile, err)
	}

	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),
		QueryTimeout:      getEnvDuration(EnvQueryTimeout, DefaultQueryTimeout),

		Port:     getEnvStr(EnvPort, DefaultPort),
		LogLevel: getEnvStr(EnvLogLevel, DefaultLogLevel),
		Timezone: getEnvStr(EnvTimezone, DefaultTimezone),

		JWTSecret:  getEnvStr(EnvJWTSecret, ""),
		JWTTTL:     getEnvDuration(EnvJWTTTL, DefaultJWTTTL),
		BcryptCost: getEnvNum(EnvBcryptCost, DefaultBcryptCost),

		AIAPIURL:         getEnvStr(EnvAIAPIURL, DefaultAIAPIURL),
		AIAPIKey:         getEnvStr(EnvAIAPIKey, ""),
		AIModel:          getEnvStr(EnvAIModel, DefaultAIModel),
		AIRequestTimeout: getEnvDuration(EnvAIRequestTimeout, DefaultAIRequestTimeout),
		AIMaxAttempts:    getEnvNum(EnvAIMaxAttempts, DefaultAIMaxAttempts),
		AIBackoffBase:    getEnvDuration(EnvAIBackoffBase, DefaultAIBackoffBase),
		AIBackoffMax:     getEnvDuration(EnvAIBackoffMax, DefaultAIBackoffMax),
		PlanCacheTTL:     getEnvDuration(EnvPlanCacheTTL, DefaultPlanCacheTTL),

		RedisAddr:     getEnvStr(EnvRedisAddr, ""),
		RedisPassword: getEnvStr(EnvRedisPassword, ""),
		RedisDB:       getEnvNum(EnvRedisDB, 0),

		KafkaBrokers:          getEnvList(EnvKafkaBrokers, nil),
		BookingEventsTopic:    getEnvStr(EnvBookingEventsTopic, DefaultBookingEventsTopic),
		BookingEventsDLQTopic: getEnvStr(EnvBookingEventsDLQTopic, DefaultBookingEventsDLQTopic),

		CORSAllowedOrigins:  getEnvList(EnvCORSAllowedOrigins, DefaultCORSAllowedOrigins),
		TicketFormat:        strings.ToLower(getEnvStr(EnvTicketFormat, TicketFormatPDF)),
		RequireAuthForPlans: getEnvBool(EnvRequireAuthForPlan, false),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Client: client.NewClient(),
	}
	cfg.Location = locale.Location(cfg.Timezone)
	cfg.Log = logger.New(logger.Config{
		Level:     cfg.LogLevel,
		Format:    logger.JSON,
		AddSource: true,
		Service:   serviceName,
	})

	return cfg, cfg.Validate()
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

// SetRedis connects the plan cache when REDIS_ADDR is configured.
func (cfg *Config) SetRedis() {
	if cfg.RedisAddr == "" {
		cfg.Log.Info("REDIS_ADDR not set, plan cache disabled")
		return
	}
	cfg.Client.SetRedis(cfg.Log, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, DefaultRedisConnTimeout)
}

func (cfg *Config) EventsEnabled() bool {
	return len(cfg.KafkaBrokers) > 0
}

func (cfg *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		problems = append(problems, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://.+`).MatchString(cfg.MongoURI) {
		problems = append(problems, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}
	if cfg.MongoDatabaseName == "" {
		problems = append(problems, "MongoDatabaseName cannot be empty")
	}

	if cfg.Location == nil || (cfg.Location.String() != cfg.Timezone && cfg.Timezone != "") {
		problems = append(problems, fmt.Sprintf("Timezone must be a valid IANA zone, got: %s", cfg.Timezone))
	}

	if !strings.HasPrefix(cfg.AIAPIURL, "http://") && !strings.HasPrefix(cfg.AIAPIURL, "https://") {
		problems = append(problems, fmt.Sprintf("AIAPIURL must be an http(s) URL, got: %s", cfg.AIAPIURL))
	}
	if cfg.AIModel == "" {
		problems = append(problems, "AIModel cannot be empty")
	}
	if cfg.AIMaxAttempts < 1 {
		problems = append(problems, fmt.Sprintf("AIMaxAttempts must be at least 1, got: %d", cfg.AIMaxAttempts))
	}
	if cfg.AIBackoffMax < cfg.AIBackoffBase {
		problems = append(problems, fmt.Sprintf("AIBackoffMax (%s) must be >= AIBackoffBase (%s)", cfg.AIBackoffMax, cfg.AIBackoffBase))
	}

	if cfg.TicketFormat != TicketFormatPDF && cfg.TicketFormat != TicketFormatText {
		problems = append(problems, fmt.Sprintf("TicketFormat must be %q or %q, got: %s", TicketFormatPDF, TicketFormatText, cfg.TicketFormat))
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		problems = append(problems, fmt.Sprintf("BcryptCost must be between 4 and 31, got: %d", cfg.BcryptCost))
	}

	for name, d := range map[string]time.Duration{
		"MongoConnTimeout": cfg.MongoConnTimeout,
		"QueryTimeout":     cfg.QueryTimeout,
		"JWTTTL":           cfg.JWTTTL,
		"AIRequestTimeout": cfg.AIRequestTimeout,
		"AIBackoffBase":    cfg.AIBackoffBase,
		"PlanCacheTTL":     cfg.PlanCacheTTL,
		"RateLimitWindow":  cfg.RateLimitWindow,
		"RequestTimeout":   cfg.RequestTimeout,
		"IdempotencyTTL":   cfg.IdempotencyTTL,
		"ReadTimeout":      cfg.ReadTimeout,
		"WriteTimeout":     cfg.WriteTimeout,
		"IdleTimeout":      cfg.IdleTimeout,
		"ShutdownTimeout":  cfg.ShutdownTimeout,
	} {
		if d <= 0 {
			problems = append(problems, fmt.Sprintf("%s must be positive, got: %s", name, d))
		}
	}
	if cfg.WriteTimeout > 0 && cfg.WriteTimeout < cfg.RequestTimeout {
		problems = append(problems, fmt.Sprintf("WriteTimeout (%s) must be >= RequestTimeout (%s)", cfg.WriteTimeout, cfg.RequestTimeout))
	}

	if cfg.RateLimitRequests <= 0 {
		problems = append(problems, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		problems = append(problems, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	return joinProblems(problems)
}

// ValidateAPI adds the checks only the HTTP server needs.
func (cfg *Config) ValidateAPI() error {
	var problems []string
	if len(cfg.JWTSecret) < MinJWTSecretLen {
		problems = append(problems, fmt.Sprintf("JWTSecret must be at least %d characters", MinJWTSecretLen))
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		problems = append(problems, "CORSAllowedOrigins cannot be empty")
	}
	return joinProblems(problems)
}

func joinProblems(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString("Configuration validation failed:\n")
	for i, p := range problems {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, p)
	}
	return errors.New(b.String())
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"query_timeout", cfg.QueryTimeout,
		"port", cfg.Port,
		"timezone", cfg.Timezone,
		"jwt_secret_set", cfg.JWTSecret != "",
		"jwt_ttl", cfg.JWTTTL,
		"ai_api_url", cfg.AIAPIURL,
		"ai_api_key_set", cfg.AIAPIKey != "",
		"ai_model", cfg.AIModel,
		"ai_request_timeout", cfg.AIRequestTimeout,
		"ai_max_attempts", cfg.AIMaxAttempts,
		"ai_backoff_base", cfg.AIBackoffBase,
		"ai_backoff_max", cfg.AIBackoffMax,
		"plan_cache_ttl", cfg.PlanCacheTTL,
		"redis_addr", cfg.RedisAddr,
		"kafka_brokers", cfg.KafkaBrokers,
		"booking_events_topic", cfg.BookingEventsTopic,
		"cors_allowed_origins", cfg.CORSAllowedOrigins,
		"ticket_format", cfg.TicketFormat,
		"require_auth_for_plans", cfg.RequireAuthForPlans,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log, cfg.ShutdownTimeout)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
