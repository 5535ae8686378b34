package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rut304/polybot-sub000/internal/domain/models"
)

func TestResolveDisabledFlagIsOff(t *testing.T) {
	svc := NewFlagService(&fakeFlagStore{flags: []models.FeatureFlag{
		{Name: "new-chart", Enabled: false, RolloutPercentage: 100},
	}})

	res, err := svc.Resolve(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, res.Flags["new-chart"])
}

func TestResolveFullRolloutIsOn(t *testing.T) {
	svc := NewFlagService(&fakeFlagStore{flags: []models.FeatureFlag{
		{Name: "new-chart", Enabled: true, RolloutPercentage: 100},
	}})

	res, err := svc.Resolve(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, res.Flags["new-chart"])
}

func TestResolveZeroRolloutIsOff(t *testing.T) {
	svc := NewFlagService(&fakeFlagStore{flags: []models.FeatureFlag{
		{Name: "new-chart", Enabled: true, RolloutPercentage: 0},
	}})

	res, err := svc.Resolve(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, res.Flags["new-chart"])
}

func TestResolveOverrideWinsOverRollout(t *testing.T) {
	svc := NewFlagService(&fakeFlagStore{
		flags: []models.FeatureFlag{
			{Name: "new-chart", Enabled: true, RolloutPercentage: 0},
			{Name: "beta-table", Enabled: true, RolloutPercentage: 100},
		},
		overrides: []models.FlagOverride{
			{FlagName: "new-chart", UserID: "user-1", Enabled: true},
			{FlagName: "beta-table", UserID: "user-1", Enabled: false},
		},
	})

	res, err := svc.Resolve(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, res.Flags["new-chart"])
	assert.False(t, res.Flags["beta-table"])
}

func TestResolveBucketingIsStable(t *testing.T) {
	svc := NewFlagService(&fakeFlagStore{flags: []models.FeatureFlag{
		{Name: "partial", Enabled: true, RolloutPercentage: 50},
	}})

	first, err := svc.Resolve(context.Background(), "user-42")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := svc.Resolve(context.Background(), "user-42")
		require.NoError(t, err)
		assert.Equal(t, first.Flags["partial"], again.Flags["partial"])
	}
}

func TestResolvePartialRolloutSplitsUsers(t *testing.T) {
	svc := NewFlagService(&fakeFlagStore{flags: []models.FeatureFlag{
		{Name: "partial", Enabled: true, RolloutPercentage: 50},
	}})

	on := 0
	const users = 200
	for i := 0; i < users; i++ {
		res, err := svc.Resolve(context.Background(), fmt.Sprintf("user-%d", i))
		require.NoError(t, err)
		if res.Flags["partial"] {
			on++
		}
	}
	// Hash bucketing should land roughly half the users in the rollout.
	assert.Greater(t, on, users/5)
	assert.Less(t, on, users*4/5)
}

func TestUpsertValidatesRollout(t *testing.T) {
	svc := NewFlagService(&fakeFlagStore{})

	err := svc.Upsert(context.Background(), models.FeatureFlag{Name: "", RolloutPercentage: 50})
	assert.Error(t, err)

	err = svc.Upsert(context.Background(), models.FeatureFlag{Name: "x", RolloutPercentage: 101})
	assert.Error(t, err)

	err = svc.Upsert(context.Background(), models.FeatureFlag{
		Name: "x", Enabled: true, RolloutPercentage: 25, UpdatedAt: time.Now(),
	})
	assert.NoError(t, err)
}
