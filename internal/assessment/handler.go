package assessment

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"doq-health/internal/auth"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type submitRequest struct {
	Input
	UserID string `json:"userId,omitempty"`
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	// The body userId keeps compatibility with existing clients; a verified
	// identity on the request wins.
	userID := req.UserID
	if u, ok := auth.FromContext(r.Context()); ok {
		userID = u.ID
	}

	res, err := h.svc.Assess(r.Context(), userID, req.Input)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			http.Error(w, verr.Error(), http.StatusBadRequest)
			return
		}
		if errors.Is(err, ErrSentinelResult) {
			http.Error(w, ErrSentinelResult.Error(), http.StatusInternalServerError)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if u, ok := auth.FromContext(r.Context()); ok {
		userID = u.ID
	}
	if userID == "" {
		http.Error(w, "User ID is required", http.StatusBadRequest)
		return
	}

	history, err := h.svc.History(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to load assessments", http.StatusInternalServerError)
		return
	}
	if history == nil {
		history = []Assessment{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(history)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/assessment", h.Submit)
	r.Get("/assessment", h.ListHistory)
}
