package kafka_config

// Event routing. The topic names are shared by the serve command, which
// produces booking events, and the events command, which tails them.
const (
	EnvEventsTopic         = "EVENTS_TOPIC"
	EnvEventsDLQTopic      = "EVENTS_DLQ_TOPIC"
	EnvEventsConsumerGroup = "EVENTS_CONSUMER_GROUP"
)

const EnvKafkaBrokers = "KAFKA_BROKERS"

const (
	EnvProducerMaxAttempts  = "KAFKA_PRODUCER_MAX_ATTEMPTS"
	EnvProducerBatchTimeout = "KAFKA_PRODUCER_BATCH_TIMEOUT"
	EnvProducerRequireAcks  = "KAFKA_PRODUCER_REQUIRE_ACKS"
	EnvProducerCompression  = "KAFKA_PRODUCER_COMPRESSION"
)

const (
	EnvConsumerStartOffset       = "KAFKA_CONSUMER_START_OFFSET"
	EnvConsumerMinBytes          = "KAFKA_CONSUMER_MIN_BYTES"
	EnvConsumerMaxBytes          = "KAFKA_CONSUMER_MAX_BYTES"
	EnvConsumerMaxWait           = "KAFKA_CONSUMER_MAX_WAIT"
	EnvConsumerCommitInterval    = "KAFKA_CONSUMER_COMMIT_INTERVAL"
	EnvConsumerHeartbeatInterval = "KAFKA_CONSUMER_HEARTBEAT_INTERVAL"
	EnvConsumerSessionTimeout    = "KAFKA_CONSUMER_SESSION_TIMEOUT"
	EnvConsumerRebalanceTimeout  = "KAFKA_CONSUMER_REBALANCE_TIMEOUT"
	EnvConsumerMaxRetries        = "KAFKA_CONSUMER_MAX_RETRIES"
)

const EnvEnableMiddleware = "KAFKA_ENABLE_MIDDLEWARE"
