package models

import "time"

// FeatureFlag controls gradual rollout of a dashboard or bot feature.
type FeatureFlag struct {
	Name              string    `json:"name"`
	Enabled           bool      `json:"enabled"`
	RolloutPercentage int       `json:"rolloutPercentage"` // 0-100
	UpdatedAt         time.Time `json:"updatedAt"`
}

// FlagOverride pins a flag on or off for a single user, bypassing the
// rollout percentage.
type FlagOverride struct {
	FlagName string `json:"flagName"`
	UserID   string `json:"userId"`
	Enabled  bool   `json:"enabled"`
}

// ResolvedFlags is the flag set evaluated for one user.
type ResolvedFlags struct {
	UserID string          `json:"userId,omitempty"`
	Flags  map[string]bool `json:"flags"`
}
