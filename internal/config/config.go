package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/deepscribes/transcription-platform/internal/transcription/models"
)

// Config is loaded once at startup. Missing required resource names fail
// fast here, before any store is constructed.
type Config struct {
	HTTPAddr  string
	AWSRegion string

	TranscriptionsTable string
	SubscriptionsTable  string
	IdempotencyTable    string

	AudioBucket       string
	ProcessingBucket  string
	TranscriptsBucket string

	DirectoryBaseURL string
	DirectoryAPIKey  string

	SenderEmail string

	KafkaBrokers []string
	KafkaTopic   string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:  getenv("HTTP_ADDR", ":8081"),
		AWSRegion: os.Getenv("AWS_REGION"),

		TranscriptionsTable: os.Getenv("DDB_TABLE_NAME"),
		SubscriptionsTable:  os.Getenv("DDB_SUBSCRIPTIONS_TABLE_NAME"),
		IdempotencyTable:    os.Getenv("DDB_IDEMPOTENCY_TABLE_NAME"),

		AudioBucket:       os.Getenv("AWS_BUCKET_NAME"),
		ProcessingBucket:  os.Getenv("AWS_TEMP_BUCKET_NAME"),
		TranscriptsBucket: os.Getenv("AWS_TRANSCRIPTS_BUCKET_NAME"),

		DirectoryBaseURL: getenv("CLERK_API_URL", "https://api.clerk.dev/v1"),
		DirectoryAPIKey:  os.Getenv("CLERK_API_KEY"),

		SenderEmail: os.Getenv("SES_SOURCE_EMAIL"),

		KafkaTopic: getenv("KAFKA_TOPIC", "transcription-events"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	required := map[string]string{
		"DDB_TABLE_NAME":               cfg.TranscriptionsTable,
		"DDB_SUBSCRIPTIONS_TABLE_NAME": cfg.SubscriptionsTable,
		"DDB_IDEMPOTENCY_TABLE_NAME":   cfg.IdempotencyTable,
		"AWS_BUCKET_NAME":              cfg.AudioBucket,
		"AWS_TEMP_BUCKET_NAME":         cfg.ProcessingBucket,
		"AWS_TRANSCRIPTS_BUCKET_NAME":  cfg.TranscriptsBucket,
	}
	var missing []string
	for name, value := range required {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: missing %s", models.ErrMisconfigured, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
