package models

import "time"

type Status string

const (
	ProcessingStatus         Status = "processing"
	ReadyStatus              Status = "ready"
	ErrorStatus              Status = "error"
	PlanLimitsExceededStatus Status = "plan_limits_exceeded"
	RateLimitsExceededStatus Status = "rate_limits_exceeded"
)

// StatusSet is the set of statuses a deployment accepts. The production set
// has changed over time, so it is injected rather than hard-coded.
type StatusSet map[Status]struct{}

func NewStatusSet(statuses ...Status) StatusSet {
	set := make(StatusSet, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	return set
}

func DefaultStatusSet() StatusSet {
	return NewStatusSet(
		ProcessingStatus,
		ReadyStatus,
		ErrorStatus,
		PlanLimitsExceededStatus,
		RateLimitsExceededStatus,
	)
}

func (s StatusSet) Contains(status Status) bool {
	_, ok := s[status]
	return ok
}

// Transcription is one user's transcription job as stored in the database.
// The id is the partition key; userId is indexed for per-user listing.
type Transcription struct {
	ID                  string    `dynamodbav:"id" json:"id"`
	Title               string    `dynamodbav:"title" json:"title"`
	Status              Status    `dynamodbav:"status" json:"status"`
	CreatedAt           time.Time `dynamodbav:"createdAt" json:"created_at"`
	UserID              string    `dynamodbav:"userId" json:"user_id"`
	TranscriptionLength float64   `dynamodbav:"transcriptionLength" json:"transcription_length"`
	AudioExtension      string    `dynamodbav:"audioExtension,omitempty" json:"audio_extension,omitempty"`
	RefinementPrompt    string    `dynamodbav:"refinementPrompt,omitempty" json:"refinement_prompt,omitempty"`
}

// CreateTranscriptionInput carries the caller-settable creation fields.
// ID, Status and TranscriptionLength are optional; the service fills them.
type CreateTranscriptionInput struct {
	ID                  string
	Title               string
	Status              Status
	UserID              string
	TranscriptionLength float64
	AudioExtension      string
	RefinementPrompt    string
}

// IdempotencyRecord marks a mutating request as already accepted. ExpiresAt
// is epoch seconds and doubles as the backend TTL attribute.
type IdempotencyRecord struct {
	ID        string `dynamodbav:"id" json:"id"`
	ExpiresAt int64  `dynamodbav:"ttl" json:"ttl"`
}

func (r IdempotencyRecord) Expired(now time.Time) bool {
	return r.ExpiresAt <= now.Unix()
}
