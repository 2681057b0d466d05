package config

import (
	"os"
	"strconv"
	"time"
)

// Fixed PIX copy-paste code shown to every buyer. The payment step is a
// deterministic simulation; the code never varies per order.
const defaultPixCopyPasteCode = "00020126740014BR.GOV.BCB.PIX0129djdiegocostaoficial@gmail.com0219Ingresso DC Eventos5204000053039865802BR5917DIEGO COSTA BESSA6013NOVA FRIBURGO622605221SeZvQwqvedLKqjVDwiH166304DF49"

type Config struct {
	// Server configuration
	Environment string

	// Redis configuration
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// PubNub configuration
	PubNubPublishKey   string
	PubNubSubscribeKey string
	PubNubSecretKey    string

	// Payment configuration
	PaymentProvider  string
	PixCopyPasteCode string

	// Outbound notification
	NewSaleWebhookURL string

	// Checkout configuration
	MaxTicketQuantity  int
	TicketCodeAttempts int
	ReservationWindow  time.Duration
	SessionTTL         time.Duration

	// Reconciliation sweep
	SweepInterval    time.Duration
	SweepGracePeriod time.Duration

	// Rate limiting
	CheckoutRateLimit  int
	CheckoutRateWindow time.Duration

	// Monitoring
	EnableMetrics bool
}

func LoadConfig() *Config {
	return &Config{
		// Server
		Environment: getEnv("ENVIRONMENT", "development"),

		// Redis
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// PubNub
		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubSecretKey:    getEnv("PUBNUB_SECRET_KEY", ""),

		// Payment
		PaymentProvider:  getEnv("PAYMENT_PROVIDER", "mock"),
		PixCopyPasteCode: getEnv("PIX_COPY_PASTE_CODE", defaultPixCopyPasteCode),

		// Notification
		NewSaleWebhookURL: getEnv("NEW_SALE_WEBHOOK_URL", "https://eobxw8ynswuvnem.m.pipedream.net"),

		// Checkout
		MaxTicketQuantity:  getEnvAsInt("MAX_TICKET_QUANTITY", 10),
		TicketCodeAttempts: getEnvAsInt("TICKET_CODE_ATTEMPTS", 5),
		ReservationWindow:  getEnvAsDuration("RESERVATION_WINDOW", "20m"),
		SessionTTL:         getEnvAsDuration("SESSION_TTL", "1h"),

		// Sweep
		SweepInterval:    getEnvAsDuration("SWEEP_INTERVAL", "10m"),
		SweepGracePeriod: getEnvAsDuration("SWEEP_GRACE_PERIOD", "30m"),

		// Rate limiting
		CheckoutRateLimit:  getEnvAsInt("CHECKOUT_RATE_LIMIT", 10),
		CheckoutRateWindow: getEnvAsDuration("CHECKOUT_RATE_WINDOW", "1m"),

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	// If parsing fails, try to parse default value
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
