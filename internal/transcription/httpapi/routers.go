package httpapi

import "net/http"

func NewRouter(h *Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health)

	mux.HandleFunc("POST /transcriptions", h.CreateTranscription)
	mux.HandleFunc("GET /transcriptions/{id}", h.GetTranscription)
	mux.HandleFunc("PATCH /transcriptions/{id}/title", h.UpdateTitle)
	mux.HandleFunc("PATCH /transcriptions/{id}/status", h.UpdateStatus)
	mux.HandleFunc("PATCH /transcriptions/{id}/duration", h.UpdateDuration)
	mux.HandleFunc("PATCH /transcriptions/{id}/prompt", h.UpdateRefinementPrompt)
	mux.HandleFunc("POST /transcriptions/{id}/references", h.IssueReference)

	mux.HandleFunc("GET /users/{userId}/transcriptions", h.ListUserTranscriptions)

	return mux
}
