package provider

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	f := Filter{
		Specialty: r.URL.Query().Get("specialty"),
		Query:     r.URL.Query().Get("q"),
	}

	providers, err := h.svc.List(r.Context(), f)
	if err != nil {
		http.Error(w, "Failed to load providers", http.StatusInternalServerError)
		return
	}
	if providers == nil {
		providers = []Provider{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(providers)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/providers", h.List)
}
