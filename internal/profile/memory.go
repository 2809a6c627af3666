package profile

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory Repository with the same merge semantics
// as the Postgres implementation. It backs the tests of everything layered
// on the reconciler.
type MemoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]AccountProfile
	health   map[string]HealthProfile
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		accounts: make(map[string]AccountProfile),
		health:   make(map[string]HealthProfile),
	}
}

func (r *MemoryRepository) GetAccount(_ context.Context, userID string) (*AccountProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (r *MemoryRepository) CreateAccount(_ context.Context, a *AccountProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[a.ID]; ok {
		return ErrAlreadyExists
	}
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	r.accounts[a.ID] = *a
	return nil
}

func (r *MemoryRepository) UpsertAccount(_ context.Context, a *AccountProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	if existing, ok := r.accounts[a.ID]; ok {
		a.CreatedAt = existing.CreatedAt
	} else if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	r.accounts[a.ID] = *a
	return nil
}

func (r *MemoryRepository) SetSubscriptionTier(_ context.Context, userID string, tier SubscriptionTier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[userID]
	if !ok {
		return ErrNotFound
	}
	a.SubscriptionTier = tier
	a.UpdatedAt = time.Now()
	r.accounts[userID] = a
	return nil
}

func (r *MemoryRepository) GetHealth(_ context.Context, userID string) (*HealthProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.health[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &h, nil
}

func (r *MemoryRepository) UpsertHealth(_ context.Context, userID string, patch HealthPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.health[userID]
	if !ok {
		h = HealthProfile{
			ID:          uuid.New(),
			UserID:      userID,
			Allergies:   []string{},
			Medications: []string{},
			Conditions:  []string{},
			CreatedAt:   time.Now(),
		}
	}
	if patch.Allergies != nil {
		h.Allergies = patch.Allergies
	}
	if patch.Medications != nil {
		h.Medications = patch.Medications
	}
	if patch.Conditions != nil {
		h.Conditions = patch.Conditions
	}
	if patch.HealthGoals != nil {
		h.HealthGoals = *patch.HealthGoals
	}
	if patch.RecentSymptoms != nil {
		h.RecentSymptoms = *patch.RecentSymptoms
	}
	if patch.AIRecommendations != nil {
		h.AIRecommendations = *patch.AIRecommendations
	}
	if patch.LastAssessmentAt != nil {
		h.LastAssessmentAt = patch.LastAssessmentAt
	}
	h.UpdatedAt = time.Now()
	r.health[userID] = h
	return nil
}
