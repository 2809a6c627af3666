package heygen

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	tokens TokenProvider
}

func NewHandler(tokens TokenProvider) *Handler {
	return &Handler{tokens: tokens}
}

// CreateToken mints a short-lived avatar session token for the client. The
// streaming session itself never touches this server.
func (h *Handler) CreateToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.tokens.CreateSessionToken(r.Context())
	if err != nil {
		http.Error(w, "Failed to get session token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/avatar/token", h.CreateToken)
}
