package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/deepscribes/transcription-platform/internal/artifacts"
	"github.com/deepscribes/transcription-platform/internal/transcription/models"
	"github.com/deepscribes/transcription-platform/internal/transcription/repository"
	"github.com/deepscribes/transcription-platform/internal/transcription/service"
)

// idempotencyHeader carries the caller-chosen dedup token for mutating
// requests. Optional; requests without it are not deduplicated.
const idempotencyHeader = "Idempotency-Key"

type Handler struct {
	svc    *service.Service
	refs   *artifacts.Service
	guard  repository.IdempotencyGuard
	logger zerolog.Logger
}

func New(svc *service.Service, refs *artifacts.Service, guard repository.IdempotencyGuard, logger zerolog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		refs:   refs,
		guard:  guard,
		logger: logger.With().Str("component", "httpapi").Logger(),
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) CreateTranscription(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req CreateTranscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid json body")
		return
	}

	// Best-effort dedup: check before the write, accept after it. Not a
	// lock; a concurrent duplicate inside the window can still land.
	token := r.Header.Get(idempotencyHeader)
	if token != "" && h.guard != nil {
		seen, err := h.guard.Check(r.Context(), token)
		if err != nil {
			h.writeError(w, err)
			return
		}
		if seen {
			writeErrorJSON(w, http.StatusConflict, "duplicate request")
			return
		}
	}

	t, err := h.svc.Create(r.Context(), models.CreateTranscriptionInput{
		ID:                  req.ID,
		Title:               req.Title,
		Status:              req.Status,
		UserID:              req.UserID,
		TranscriptionLength: req.TranscriptionLength,
		AudioExtension:      req.AudioExtension,
		RefinementPrompt:    req.RefinementPrompt,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	if token != "" && h.guard != nil {
		if err := h.guard.Accept(r.Context(), token); err != nil {
			h.logger.Warn().Err(err).Str("token", token).Msg("idempotency accept failed")
		}
	}

	writeJSON(w, http.StatusCreated, toTranscriptionResponse(t))
}

func (h *Handler) GetTranscription(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTranscriptionResponse(t))
}

func (h *Handler) ListUserTranscriptions(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.ListByUser(r.Context(), r.PathValue("userId"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]TranscriptionResponse, 0, len(records))
	for i := range records {
		out = append(out, toTranscriptionResponse(&records[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	var req UpdateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid json body")
		return
	}
	h.noContentOrError(w, h.svc.UpdateTitle(r.Context(), r.PathValue("id"), req.Title))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid json body")
		return
	}
	h.noContentOrError(w, h.svc.UpdateStatus(r.Context(), r.PathValue("id"), req.Status))
}

func (h *Handler) UpdateDuration(w http.ResponseWriter, r *http.Request) {
	var req UpdateDurationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid json body")
		return
	}
	h.noContentOrError(w, h.svc.UpdateDuration(r.Context(), r.PathValue("id"), req.Seconds))
}

func (h *Handler) UpdateRefinementPrompt(w http.ResponseWriter, r *http.Request) {
	var req UpdatePromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid json body")
		return
	}
	h.noContentOrError(w, h.svc.UpdateRefinementPrompt(r.Context(), r.PathValue("id"), req.Prompt))
}

// IssueReference signs a read or write URL for one pipeline artifact. The
// audio extension hint comes from the stored record, so raw-audio references
// require the record to exist.
func (h *Handler) IssueReference(w http.ResponseWriter, r *http.Request) {
	var req ReferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid json body")
		return
	}

	id := r.PathValue("id")
	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	ref, err := h.refs.IssueReference(r.Context(), artifacts.Request{
		Stage:           req.Stage,
		TranscriptionID: id,
		Direction:       req.Direction,
		ChunkID:         req.ChunkID,
		AudioExtension:  t.AudioExtension,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ref)
}

func (h *Handler) noContentOrError(w http.ResponseWriter, err error) {
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		writeErrorJSON(w, http.StatusNotFound, "not found")
	case errors.Is(err, models.ErrInvalidArgument), errors.Is(err, models.ErrMissingCoordinate):
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrStoreUnavailable):
		writeErrorJSON(w, http.StatusBadGateway, "store unavailable")
	default:
		h.logger.Error().Err(err).Msg("internal error")
		writeErrorJSON(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorJSON(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
