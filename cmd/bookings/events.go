package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"roombook/internal/bookings/events"
	"roombook/pkg/config"
	"roombook/pkg/kafka"
	kafka_config "roombook/pkg/kafka/config"
	kafka_middleware "roombook/pkg/kafka/middleware"

	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	var topic, groupID string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Tail booking lifecycle events from Kafka and log them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load(ServiceName + "-events")

			kafkaCfg, err := kafka_config.Load()
			if err != nil {
				return fmt.Errorf("kafka config: %w", err)
			}
			if topic != "" {
				kafkaCfg.Topic = topic
			}
			if groupID != "" {
				kafkaCfg.Consumer.Group = groupID
			}
			kafkaCfg.LogConfiguration(cfg.Log)

			consumer, err := kafka.NewConsumer(kafkaCfg, events.LogHandler(cfg.Log), cfg.Log)
			if err != nil {
				return fmt.Errorf("kafka consumer: %w", err)
			}
			defer consumer.Close()

			if kafkaCfg.EnableMiddleware {
				consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			cfg.Log.Info("Consuming booking events", "topic", kafkaCfg.Topic, "group_id", kafkaCfg.Consumer.Group)
			if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			cfg.Log.Info("Event consumer stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&topic, "topic", "", "topic to consume (defaults to EVENTS_TOPIC)")
	cmd.Flags().StringVar(&groupID, "group", "", "consumer group ID (defaults to EVENTS_CONSUMER_GROUP)")
	return cmd
}
