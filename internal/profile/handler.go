package profile

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

func resolveUserID(r *http.Request, bodyUserID string) string {
	if u, ok := auth.FromContext(r.Context()); ok {
		return u.ID
	}
	return bodyUserID
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := resolveUserID(r, r.URL.Query().Get("userId"))
	if userID == "" {
		http.Error(w, "User ID is required", http.StatusBadRequest)
		return
	}

	account, err := h.svc.GetAccount(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// The health profile is optional; absence is not an error here.
	health, err := h.svc.GetHealth(r.Context(), userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data":   account,
		"health": health,
	})
}

type saveProfileRequest struct {
	UserID      string      `json:"userId"`
	ProfileData ProfileData `json:"profileData"`
}

func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var req saveProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	userID := resolveUserID(r, req.UserID)
	if userID == "" {
		http.Error(w, "User ID is required", http.StatusBadRequest)
		return
	}

	if err := h.svc.SaveProfile(r.Context(), userID, req.ProfileData); err != nil {
		http.Error(w, "Failed to save user profile", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

type subscriptionRequest struct {
	UserID string           `json:"userId"`
	Tier   SubscriptionTier `json:"tier"`
}

func (h *Handler) SetSubscription(w http.ResponseWriter, r *http.Request) {
	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	userID := resolveUserID(r, req.UserID)
	if userID == "" {
		http.Error(w, "User ID is required", http.StatusBadRequest)
		return
	}
	if !req.Tier.Valid() {
		http.Error(w, "Unknown subscription tier", http.StatusBadRequest)
		return
	}

	if err := h.svc.SetSubscription(r.Context(), userID, req.Tier); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update subscription", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// GetOnboarding gates navigation after login: the client lands wherever
// NextStep points. The verdict needs the auth record to seed lazy creation,
// so an unauthenticated request is a 401 here.
func (h *Handler) GetOnboarding(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		// Fall back to query parameters for body-userId compatible clients.
		userID := r.URL.Query().Get("userId")
		if userID == "" {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		user = &auth.User{ID: userID, Email: r.URL.Query().Get("email")}
	}

	decision, err := h.svc.ResolveOnboarding(r.Context(), user)
	if err != nil {
		http.Error(w, "Failed to resolve onboarding state", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(decision)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/user/profile", h.GetProfile)
	r.Post("/user/profile", h.SaveProfile)
	r.Post("/user/subscription", h.SetSubscription)
	r.Get("/user/onboarding", h.GetOnboarding)
}
