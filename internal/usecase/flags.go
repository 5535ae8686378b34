package usecase

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/Rut304/polybot-sub000/internal/domain/models"
	"github.com/Rut304/polybot-sub000/internal/domain/repository"
)

// FlagService evaluates feature flags for the dashboard frontend.
type FlagService struct {
	store repository.FlagStore
}

// NewFlagService creates a flag service.
func NewFlagService(store repository.FlagStore) *FlagService {
	return &FlagService{store: store}
}

// List returns every flag definition.
func (s *FlagService) List(ctx context.Context) ([]models.FeatureFlag, error) {
	return s.store.List(ctx)
}

// Upsert creates or updates a flag definition.
func (s *FlagService) Upsert(ctx context.Context, f models.FeatureFlag) error {
	if f.Name == "" {
		return fmt.Errorf("flag name is required")
	}
	if f.RolloutPercentage < 0 || f.RolloutPercentage > 100 {
		return fmt.Errorf("rollout percentage must be 0-100, got %d", f.RolloutPercentage)
	}
	return s.store.Upsert(ctx, f)
}

// Resolve evaluates all flags for one user. Per-user overrides win over
// the rollout percentage; hash bucketing is stable per (user, flag) pair
// so a user never flips buckets between requests.
func (s *FlagService) Resolve(ctx context.Context, userID string) (*models.ResolvedFlags, error) {
	flags, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	overrides := map[string]bool{}
	if userID != "" {
		rows, err := s.store.Overrides(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, o := range rows {
			overrides[o.FlagName] = o.Enabled
		}
	}

	resolved := &models.ResolvedFlags{
		UserID: userID,
		Flags:  make(map[string]bool, len(flags)),
	}
	for _, f := range flags {
		if v, ok := overrides[f.Name]; ok {
			resolved.Flags[f.Name] = v
			continue
		}
		resolved.Flags[f.Name] = flagEnabled(f, userID)
	}
	return resolved, nil
}

func flagEnabled(f models.FeatureFlag, userID string) bool {
	if !f.Enabled {
		return false
	}
	if f.RolloutPercentage >= 100 {
		return true
	}
	if f.RolloutPercentage <= 0 {
		return false
	}
	return rolloutBucket(userID, f.Name) < f.RolloutPercentage
}

// rolloutBucket maps (user, flag) to a stable bucket in [0, 100).
func rolloutBucket(userID, flagName string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	_, _ = h.Write([]byte(":"))
	_, _ = h.Write([]byte(flagName))
	return int(h.Sum32() % 100)
}
