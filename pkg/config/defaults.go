package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "barbershop"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultKafkaBrokers       = "localhost:9092"
	DefaultKafkaTopic         = "appointments.created"
	DefaultKafkaConsumerGroup = "appointments-feed"

	DefaultPort = "8080"

	// The number the payment-confirmation WhatsApp link points at.
	DefaultShopWhatsApp = "201206310046"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout   = 30 * time.Second
	DefaultIdempotencyTTL   = 24 * time.Hour
	DefaultWizardSessionTTL = 30 * time.Minute
	DefaultMaxRequestSize   = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100
)
