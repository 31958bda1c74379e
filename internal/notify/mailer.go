// Package notify sends outbound email through SESv2. Fire-and-forget: the
// caller learns whether the send was handed off, never delivery status.
package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog"

	"github.com/deepscribes/transcription-platform/internal/transcription/models"
	"github.com/deepscribes/transcription-platform/internal/transcription/repository"
)

const defaultSenderName = "Deepscribes Info"

type emailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type Mailer struct {
	api    emailAPI
	source string
	guard  repository.IdempotencyGuard
	logger zerolog.Logger
}

func NewMailer(api emailAPI, sourceEmail string, guard repository.IdempotencyGuard, logger zerolog.Logger) (*Mailer, error) {
	if sourceEmail == "" {
		return nil, fmt.Errorf("%w: source email is required", models.ErrMisconfigured)
	}
	return &Mailer{
		api:    api,
		source: sourceEmail,
		guard:  guard,
		logger: logger.With().Str("component", "mailer").Logger(),
	}, nil
}

type sendOptions struct {
	senderEmail string
	senderName  string
	replyTo     string
}

type SendOption func(*sendOptions)

func WithSender(email, name string) SendOption {
	return func(o *sendOptions) {
		o.senderEmail = email
		o.senderName = name
	}
}

func WithReplyTo(addr string) SendOption {
	return func(o *sendOptions) { o.replyTo = addr }
}

func (m *Mailer) Send(ctx context.Context, to, subject, body string, opts ...SendOption) error {
	if to == "" || subject == "" {
		return models.ErrInvalidArgument
	}

	o := sendOptions{senderEmail: m.source, senderName: defaultSenderName}
	for _, opt := range opts {
		opt(&o)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", o.senderName, o.senderEmail)),
		Destination: &sestypes.Destination{
			ToAddresses: []string{to},
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(subject)},
				Body: &sestypes.Body{
					Text: &sestypes.Content{Data: aws.String(body)},
				},
			},
		},
	}
	if o.replyTo != "" {
		input.ReplyToAddresses = []string{o.replyTo}
	}

	if _, err := m.api.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	m.logger.Info().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}

// SendOnce suppresses duplicate sends keyed by token. Best-effort: the guard
// check and accept are not atomic, so a concurrent duplicate can still slip
// through the window.
func (m *Mailer) SendOnce(ctx context.Context, token, to, subject, body string, opts ...SendOption) error {
	if m.guard == nil {
		return m.Send(ctx, to, subject, body, opts...)
	}

	seen, err := m.guard.Check(ctx, token)
	if err != nil {
		return fmt.Errorf("idempotency check: %w", err)
	}
	if seen {
		m.logger.Debug().Str("token", token).Msg("duplicate send suppressed")
		return nil
	}

	if err := m.Send(ctx, to, subject, body, opts...); err != nil {
		return err
	}

	if err := m.guard.Accept(ctx, token); err != nil {
		return fmt.Errorf("idempotency accept: %w", err)
	}
	return nil
}
