// Command userwipe is the administrative path for removing every record a
// user owns. It validates the user against the directory when credentials
// are configured, wipes transcriptions and subscriptions, and optionally
// notifies the user. Never part of the production pipeline.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/rs/zerolog"

	"github.com/deepscribes/transcription-platform/internal/app"
	"github.com/deepscribes/transcription-platform/internal/config"
	"github.com/deepscribes/transcription-platform/internal/directory"
	"github.com/deepscribes/transcription-platform/internal/notify"
	"github.com/deepscribes/transcription-platform/internal/storage/dynamo"
)

func main() {
	userID := flag.String("user", "", "id of the user whose records to wipe")
	sendNotice := flag.Bool("notify", false, "email the user after the wipe")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "usage: userwipe -user <id> [-notify]")
		os.Exit(2)
	}

	os.Exit(app.Run("userwipe", func(ctx context.Context) error {
		return run(ctx, *userID, *sendNotice)
	}))
}

func run(ctx context.Context, userID string, sendNotice bool) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Str("user_id", userID).Logger()

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
	ddb := dynamodb.NewFromConfig(awsCfg)

	repo, err := dynamo.NewTranscriptionRepo(ddb, cfg.TranscriptionsTable)
	if err != nil {
		return err
	}
	subs, err := dynamo.NewSubscriptionRepo(ddb, cfg.SubscriptionsTable)
	if err != nil {
		return err
	}

	// Directory lookup is validation only; a missing profile aborts the
	// wipe so a typo in the id cannot silently delete nothing.
	var userEmail string
	if cfg.DirectoryAPIKey != "" {
		dir, err := directory.New(cfg.DirectoryBaseURL, cfg.DirectoryAPIKey, logger)
		if err != nil {
			return err
		}
		user, err := dir.GetUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("directory lookup: %w", err)
		}
		userEmail = user.PrimaryEmail()
		logger.Info().Str("username", user.Username).Msg("user resolved")
	}

	if err := repo.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("wipe transcriptions: %w", err)
	}
	logger.Info().Msg("transcriptions wiped")

	if err := subs.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("wipe subscriptions: %w", err)
	}
	logger.Info().Msg("subscriptions wiped")

	if sendNotice && userEmail != "" && cfg.SenderEmail != "" {
		guard, err := dynamo.NewGuard(ddb, cfg.IdempotencyTable)
		if err != nil {
			return err
		}
		mailer, err := notify.NewMailer(sesv2.NewFromConfig(awsCfg), cfg.SenderEmail, guard, logger)
		if err != nil {
			return err
		}
		err = mailer.SendOnce(ctx, "user-wipe-"+userID, userEmail,
			"Your data has been removed",
			"All transcriptions and subscriptions tied to your account have been deleted.")
		if err != nil {
			// Уведомление best-effort, сам wipe уже выполнен
			logger.Warn().Err(err).Msg("notification failed")
		}
	}

	return nil
}
