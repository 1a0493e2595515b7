package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"utsav/internal/notifications/handler"
	"utsav/internal/notifications/service"
	"utsav/pkg/config"
	"utsav/pkg/kafka"
	kafkaconfig "utsav/pkg/kafka/config"
	kafkamiddleware "utsav/pkg/kafka/middleware"
)

const ServiceName = "utsav-notifications"

func main() {
	cfg := config.Load(ServiceName)
	if !cfg.EventsEnabled() {
		cfg.Log.Fatal("KAFKA_BROKERS must be set for the notifications worker")
	}

	kafkaCfg, err := kafkaconfig.Load(cfg.KafkaBrokers)
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	eventsHandler := handler.NewBookingEventsHandler(service.NewLogNotifier(cfg.Log), cfg.Log)
	consumer, err := kafka.NewConsumer(kafkaCfg, cfg.BookingEventsTopic, cfg.BookingEventsDLQTopic, eventsHandler.Handle, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}

	metrics := kafkamiddleware.NewMetrics()
	consumer.Use(kafkamiddleware.LoggingConsumerMiddleware(cfg.Log))
	consumer.Use(metrics.ConsumerMiddleware())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Starting notifications worker", "topic", cfg.BookingEventsTopic)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Kafka consumer stopped", "error", err)
	}

	cfg.Log.Info("Shutting down notifications worker")
	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close Kafka consumer", "error", err)
	}
	metrics.Log(cfg.Log)
}
