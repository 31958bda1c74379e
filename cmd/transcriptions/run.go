package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/deepscribes/transcription-platform/internal/artifacts"
	"github.com/deepscribes/transcription-platform/internal/config"
	"github.com/deepscribes/transcription-platform/internal/storage/dynamo"
	"github.com/deepscribes/transcription-platform/internal/transcription/httpapi"
	"github.com/deepscribes/transcription-platform/internal/transcription/kafka"
	"github.com/deepscribes/transcription-platform/internal/transcription/service"
)

func run(ctx context.Context) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var awsOpts []func(*awsconfig.LoadOptions) error
	if cfg.AWSRegion != "" {
		awsOpts = append(awsOpts, awsconfig.WithRegion(cfg.AWSRegion))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsOpts...)
	if err != nil {
		return fmt.Errorf("aws config: %w", err)
	}

	// Shared backend clients, constructed once and injected everywhere.
	ddb := dynamodb.NewFromConfig(awsCfg)
	s3Client := s3.NewFromConfig(awsCfg)

	repo, err := dynamo.NewTranscriptionRepo(ddb, cfg.TranscriptionsTable)
	if err != nil {
		return fmt.Errorf("transcription repo: %w", err)
	}
	guard, err := dynamo.NewGuard(ddb, cfg.IdempotencyTable)
	if err != nil {
		return fmt.Errorf("idempotency guard: %w", err)
	}

	refs := artifacts.NewService(artifacts.NewS3Presigner(s3Client), artifacts.Buckets{
		Audio:       cfg.AudioBucket,
		Processing:  cfg.ProcessingBucket,
		Transcripts: cfg.TranscriptsBucket,
	})

	svcOpts := []service.Option{service.WithLogger(logger)}
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(kafka.ProducerConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
			Logger:  logger,
		})
		if err != nil {
			return fmt.Errorf("kafka producer: %w", err)
		}
		defer producer.Close()
		svcOpts = append(svcOpts, service.WithPublisher(producer))
	}

	svc := service.New(repo, svcOpts...)
	h := httpapi.New(svc, refs, guard, logger)
	router := httpapi.NewRouter(h)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil

	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen and serve: %w", err)
	}
}
