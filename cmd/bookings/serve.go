package main

import (
	"fmt"

	"roombook/internal/bookings"
	"roombook/internal/bookings/events"
	"roombook/pkg/app"
	"roombook/pkg/config"
	"roombook/pkg/kafka"
	kafka_config "roombook/pkg/kafka/config"
	kafka_middleware "roombook/pkg/kafka/middleware"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the booking HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load(ServiceName)
			cfg.Log.Info("Starting Bookings service", "version", Version)

			publisher, err := newPublisher(cfg)
			if err != nil {
				return err
			}

			components := bookings.Wire(cfg, publisher)
			serverApp := app.NewApplication(cfg)
			serverApp.SetApp(components.Handler, components.Health)
			serverApp.OnShutdown("event-publisher", components.Publisher)
			serverApp.Run()
			return nil
		},
	}
}

func newPublisher(cfg *config.Config) (events.Publisher, error) {
	if !cfg.EventsEnabled {
		cfg.Log.Info("Booking events disabled")
		return nil, nil
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		return nil, fmt.Errorf("kafka config: %w", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}

	cfg.Log.Info("Booking events enabled", "topic", kafkaCfg.Topic, "dlq_topic", kafkaCfg.DLQTopic)
	return events.NewKafkaPublisher(producer), nil
}
