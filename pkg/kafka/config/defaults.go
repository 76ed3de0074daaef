package kafka_config

import "time"

const (
	DefaultEventsTopic         = "booking-events"
	DefaultEventsDLQTopic      = "booking-events-dlq"
	DefaultEventsConsumerGroup = "bookings-events-tail"

	DefaultKafkaBrokers = "localhost:9092"
)

// Booking events are small JSON documents published one per request, so the
// producer flushes almost immediately and skips compression.
const (
	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 5 * time.Millisecond
	DefaultProducerRequireAcks  = -1
	DefaultProducerCompression  = "none"
)

// The events command tails the topic: a new group starts at the newest
// offset and reads one event at a time.
const (
	DefaultConsumerStartOffset       = -1
	DefaultConsumerMinBytes          = 1
	DefaultConsumerMaxBytes          = 1 << 20
	DefaultConsumerMaxWait           = 250 * time.Millisecond
	DefaultConsumerCommitInterval    = 0
	DefaultConsumerHeartbeatInterval = 3 * time.Second
	DefaultConsumerSessionTimeout    = 10 * time.Second
	DefaultConsumerRebalanceTimeout  = 30 * time.Second
	DefaultConsumerMaxRetries        = 3
)

const DefaultEnableMiddleware = true
