package config

const (
	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvRoomCount                     = "ROOM_COUNT"
	EnvAllowMultipleBookingsPerEmail = "ALLOW_MULTIPLE_BOOKINGS_PER_EMAIL"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvEventsEnabled        = "EVENTS_ENABLED"
	EnvEventsBufferSize     = "EVENTS_BUFFER_SIZE"
	EnvEventsPublishTimeout = "EVENTS_PUBLISH_TIMEOUT"
)
