package config

import "time"

const (
	DefaultPort      = "3000"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultRoomCount                     = 10
	DefaultAllowMultipleBookingsPerEmail = false

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultEventsEnabled        = false
	DefaultEventsBufferSize     = 256
	DefaultEventsPublishTimeout = 5 * time.Second
)
