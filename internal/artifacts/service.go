package artifacts

import (
	"context"
	"fmt"
	"time"

	"github.com/deepscribes/transcription-platform/internal/transcription/models"
)

// referenceTTL is the validity window of an issued reference.
const referenceTTL = time.Hour

// Presigner signs read or write URLs for a concrete bucket/key. The S3
// implementation lives in presign.go; tests substitute a fake.
type Presigner interface {
	PresignGet(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
	PresignPut(ctx context.Context, bucket, key, contentType string, expires time.Duration) (string, error)
}

// Request identifies one artifact and the access direction wanted.
type Request struct {
	Stage           Stage
	TranscriptionID string
	Direction       Direction
	ChunkID         string
	AudioExtension  string
}

// Reference is a transient capability, generated fresh on each request and
// never stored. The signed URL differs per issuance; the coordinates do not.
type Reference struct {
	Stage           Stage     `json:"stage"`
	TranscriptionID string    `json:"transcription_id"`
	ChunkID         string    `json:"chunk_id,omitempty"`
	Direction       Direction `json:"direction"`
	Bucket          string    `json:"bucket"`
	Key             string    `json:"key"`
	ContentType     string    `json:"content_type,omitempty"`
	URL             string    `json:"url"`
	ExpiresAt       time.Time `json:"expires_at"`
}

type Service struct {
	presigner Presigner
	buckets   Buckets
	clock     func() time.Time
}

func NewService(presigner Presigner, buckets Buckets) *Service {
	return &Service{
		presigner: presigner,
		buckets:   buckets,
		clock:     time.Now,
	}
}

// IssueReference derives the storage coordinates and signs a 1-hour URL for
// exactly the requested direction. No object is created or inspected;
// existence of the target is never verified here.
func (s *Service) IssueReference(ctx context.Context, req Request) (*Reference, error) {
	coords, err := DeriveCoordinates(s.buckets, req.Stage, req.TranscriptionID, req.ChunkID, req.AudioExtension)
	if err != nil {
		return nil, err
	}

	var url string
	switch req.Direction {
	case DirectionRead:
		url, err = s.presigner.PresignGet(ctx, coords.Bucket, coords.Key, referenceTTL)
	case DirectionWrite:
		url, err = s.presigner.PresignPut(ctx, coords.Bucket, coords.Key, coords.ContentType, referenceTTL)
	default:
		return nil, fmt.Errorf("%w: unknown direction %q", models.ErrInvalidArgument, req.Direction)
	}
	if err != nil {
		return nil, fmt.Errorf("presign %s %s/%s: %w", req.Direction, coords.Bucket, coords.Key, err)
	}

	return &Reference{
		Stage:           req.Stage,
		TranscriptionID: req.TranscriptionID,
		ChunkID:         req.ChunkID,
		Direction:       req.Direction,
		Bucket:          coords.Bucket,
		Key:             coords.Key,
		ContentType:     coords.ContentType,
		URL:             url,
		ExpiresAt:       s.clock().Add(referenceTTL),
	}, nil
}
