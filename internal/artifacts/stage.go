// Package artifacts issues time-bounded signed references into the four
// pipeline storage areas. The storage location is a pure function of the
// stage coordinates, so re-issuing a reference always addresses the same
// object; downstream stages recompute keys instead of passing them around.
package artifacts

import (
	"fmt"

	"github.com/deepscribes/transcription-platform/internal/transcription/models"
)

type Stage string

const (
	StageRawAudio        Stage = "raw-audio"
	StageOptimizedAudio  Stage = "optimized-audio"
	StageRawTranscript   Stage = "raw-transcript"
	StageFinalTranscript Stage = "final-transcript"
)

type Direction string

const (
	DirectionRead  Direction = "read"
	DirectionWrite Direction = "write"
)

// Buckets names the three storage areas. Audio holds uploaded originals,
// Processing holds optimizer output, Transcripts holds raw and final text.
type Buckets struct {
	Audio       string
	Processing  string
	Transcripts string
}

// Coordinates is the derived storage location for one artifact.
type Coordinates struct {
	Bucket      string
	Key         string
	ContentType string
}

type stageSpec struct {
	bucket      func(Buckets) string
	prefix      string
	ext         string // fixed object extension; raw audio uses the record's hint instead
	contentType string
	chunked     bool
	useAudioExt bool
}

// The key prefixes are a wire convention shared with the pipeline workers.
// Changing them requires a migration plan.
var stageSpecs = map[Stage]stageSpec{
	StageRawAudio: {
		bucket:      func(b Buckets) string { return b.Audio },
		prefix:      "audio/",
		useAudioExt: true,
	},
	StageOptimizedAudio: {
		bucket:      func(b Buckets) string { return b.Processing },
		prefix:      "optimized/",
		ext:         ".ogg",
		contentType: "audio/ogg",
		chunked:     true,
	},
	StageRawTranscript: {
		bucket:  func(b Buckets) string { return b.Transcripts },
		prefix:  "raw/",
		chunked: true,
	},
	StageFinalTranscript: {
		bucket: func(b Buckets) string { return b.Transcripts },
		prefix: "final/",
	},
}

// DeriveCoordinates maps (stage, transcriptionID, chunkID, audioExt) to a
// bucket and key. Deterministic: identical inputs always address the same
// object.
func DeriveCoordinates(buckets Buckets, stage Stage, transcriptionID, chunkID, audioExt string) (Coordinates, error) {
	spec, ok := stageSpecs[stage]
	if !ok {
		return Coordinates{}, fmt.Errorf("%w: unknown stage %q", models.ErrMissingCoordinate, stage)
	}
	if transcriptionID == "" {
		return Coordinates{}, fmt.Errorf("%w: empty transcription id", models.ErrMissingCoordinate)
	}
	if chunkID != "" && !spec.chunked {
		return Coordinates{}, fmt.Errorf("%w: stage %s does not support chunked addressing", models.ErrMissingCoordinate, stage)
	}

	bucket := spec.bucket(buckets)
	if bucket == "" {
		return Coordinates{}, fmt.Errorf("%w: no bucket configured for stage %s", models.ErrMissingCoordinate, stage)
	}

	key := spec.prefix + transcriptionID
	if chunkID != "" {
		key += "/" + chunkID
	}
	if spec.ext != "" {
		key += spec.ext
	} else if spec.useAudioExt && audioExt != "" {
		key += "." + audioExt
	}

	return Coordinates{
		Bucket:      bucket,
		Key:         key,
		ContentType: spec.contentType,
	}, nil
}
