package main

import (
	"context"
	"net/http"

	authhandler "utsav/internal/auth/handler"
	authrepo "utsav/internal/auth/repository"
	authservice "utsav/internal/auth/service"
	authvalidator "utsav/internal/auth/validator"
	"utsav/internal/bookings/events"
	bookinghandler "utsav/internal/bookings/handler"
	bookingrepo "utsav/internal/bookings/repository"
	bookingservice "utsav/internal/bookings/service"
	bookingvalidator "utsav/internal/bookings/validator"
	hallhandler "utsav/internal/halls/handler"
	hallrepo "utsav/internal/halls/repository"
	hallservice "utsav/internal/halls/service"
	planhandler "utsav/internal/plans/handler"
	planrepo "utsav/internal/plans/repository"
	planservice "utsav/internal/plans/service"
	planvalidator "utsav/internal/plans/validator"
	mongoMigration "utsav/internal/migrations/mongo"
	tickethandler "utsav/internal/tickets/handler"
	ticketservice "utsav/internal/tickets/service"
	"utsav/pkg/app"
	"utsav/pkg/config"
	"utsav/pkg/kafka"
	kafkaconfig "utsav/pkg/kafka/config"
	kafkamiddleware "utsav/pkg/kafka/middleware"
	"utsav/pkg/llm"
	"utsav/pkg/middleware"
)

const ServiceName = "utsav-api"

func main() {
	cfg := config.Load(ServiceName)
	if err := cfg.ValidateAPI(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.SetMongo()
	cfg.SetRedis()
	ensureIndexes(cfg)
	cfg.Log.Info("Starting Utsav API")

	serverApp := app.NewApplication(cfg)

	tokens := authservice.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	authService := authservice.NewAuthService(
		authrepo.NewMongoUserRepository(cfg),
		authvalidator.NewAuthValidator(),
		tokens,
		cfg,
	)

	bookingService := bookingservice.NewBookingService(
		bookingrepo.NewMongoBookingRepository(cfg),
		bookingvalidator.NewBookingValidator(),
		initPublisher(cfg, serverApp),
		cfg,
	)

	ticketIssuer := ticketservice.NewTicketIssuer(bookingService, ticketservice.RendererFor(cfg.TicketFormat), cfg)
	hallService := hallservice.NewHallService(hallrepo.NewMongoHallRepository(cfg), cfg)
	planService := initPlanService(cfg)

	serverApp.SetApp(
		authhandler.NewAuthHandler(authService, cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
		tickethandler.NewTicketHandler(ticketIssuer, cfg.Log),
		hallhandler.NewHallHandler(hallService, cfg.Log),
		planhandler.NewPlanHandler(planService, cfg.Log, planMiddleware(cfg, serverApp, tokens)...),
	)
	serverApp.Run()
}

// ensureIndexes builds the Mongo indexes the API depends on, so a database
// that never saw cmd/migrate still rejects double bookings.
func ensureIndexes(cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()

	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	if err := mongoMigration.EnsureIndexes(ctx, db, cfg.Log); err != nil {
		cancel()
		cfg.GracefulShutdown()
		cfg.Log.Fatal("Failed to ensure Mongo indexes", "error", err)
	}
}

// initPublisher returns a Kafka-backed publisher when brokers are configured.
// Events are best effort, so a broken Kafka setup only disables them.
func initPublisher(cfg *config.Config, serverApp *app.Application) bookingservice.EventPublisher {
	if !cfg.EventsEnabled() {
		cfg.Log.Info("KAFKA_BROKERS not set, booking events disabled")
		return events.NoopPublisher{}
	}

	kafkaCfg, err := kafkaconfig.Load(cfg.KafkaBrokers)
	if err != nil {
		cfg.Log.Error("Invalid Kafka configuration, booking events disabled", "error", err)
		return events.NoopPublisher{}
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic, cfg.BookingEventsDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Error("Failed to create Kafka producer, booking events disabled", "error", err)
		return events.NoopPublisher{}
	}

	metrics := kafkamiddleware.NewMetrics()
	producer.Use(kafkamiddleware.LoggingProducerMiddleware(cfg.Log))
	producer.Use(metrics.ProducerMiddleware())

	serverApp.OnShutdown(func() {
		metrics.Log(cfg.Log)
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	})

	cfg.Log.Info("Booking events enabled", "topic", producer.Topic())
	return events.NewKafkaPublisher(producer)
}

func initPlanService(cfg *config.Config) planservice.PlanService {
	completer := llm.NewClient(llm.Config{
		URL:     cfg.AIAPIURL,
		APIKey:  cfg.AIAPIKey,
		Model:   cfg.AIModel,
		Timeout: cfg.AIRequestTimeout,
	}, nil)
	if cfg.AIAPIKey == "" {
		cfg.Log.Warn("AI_API_KEY not set, plan generation will fail until it is configured")
	}

	var cache planrepo.PlanCache = planrepo.NoopPlanCache{}
	if cfg.Client.Redis != nil {
		cache = planrepo.NewRedisPlanCache(cfg.Client.Redis, cfg.PlanCacheTTL)
		cfg.Log.Info("Plan cache enabled", "ttl", cfg.PlanCacheTTL)
	}

	return planservice.NewPlanService(completer, cache, planvalidator.NewPlanValidator(), cfg)
}

// planMiddleware guards plan generation, which spends paid model calls.
func planMiddleware(cfg *config.Config, serverApp *app.Application, tokens middleware.TokenVerifier) []func(http.Handler) http.Handler {
	limiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow, nil, cfg.Log)
	serverApp.OnShutdown(limiter.Stop)

	chain := []func(http.Handler) http.Handler{middleware.RateLimit(limiter)}
	if cfg.RequireAuthForPlans {
		chain = append(chain, middleware.RequireAuth(tokens, cfg.Log))
		cfg.Log.Info("Plan generation requires a bearer token")
	}
	return chain
}
