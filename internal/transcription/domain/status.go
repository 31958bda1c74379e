// Package domain holds the advisory status transition policy. Storage
// persists whatever status a caller supplies; pipelines that want a legality
// check call ValidateTransition before updating.
package domain

import (
	"fmt"

	"github.com/deepscribes/transcription-platform/internal/transcription/models"
)

// CanTransition reports whether the pipeline is moving forward. Processing
// may move to any terminal state; terminal states are absorbing.
func CanTransition(from, to models.Status) bool {
	switch from {
	case models.ProcessingStatus:
		switch to {
		case models.ReadyStatus, models.ErrorStatus,
			models.PlanLimitsExceededStatus, models.RateLimitsExceededStatus:
			return true
		}
		return false
	default:
		return false
	}
}

func ValidateTransition(from, to models.Status) error {
	if from == to {
		return nil
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("invalid transition: %s -> %s", from, to)
	}
	return nil
}
