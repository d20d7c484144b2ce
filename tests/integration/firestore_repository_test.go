package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eleccycle/eleccycle-backend/internal/impact"
	"github.com/eleccycle/eleccycle-backend/internal/recycling/domain"
	"github.com/eleccycle/eleccycle-backend/internal/recycling/repository"
)

// setupFirestore connects to the Firestore emulator. Skips the test when
// FIRESTORE_EMULATOR_HOST is not set, so the suite runs without external
// services by default.
func setupFirestore(t *testing.T) *firestore.Client {
	t.Helper()

	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set, skipping Firestore integration test")
	}

	projectID := os.Getenv("TEST_FIREBASE_PROJECT_ID")
	if projectID == "" {
		projectID = "eleccycle-test"
	}

	client, err := firestore.NewClient(context.Background(), projectID)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func testUserID() string {
	return fmt.Sprintf("it-user-%d", time.Now().UnixNano())
}

func TestProfileLifecycle(t *testing.T) {
	client := setupFirestore(t)
	repo := repository.NewProfileRepository(client)
	ctx := context.Background()
	uid := testUserID()

	err := repo.Create(ctx, &domain.UserProfile{
		UserID: uid,
		Name:   "Integration User",
		Email:  uid + "@example.com",
	})
	require.NoError(t, err)

	// duplicate create must fail with the sentinel
	err = repo.Create(ctx, &domain.UserProfile{UserID: uid, Name: "dup", Email: "dup@example.com"})
	assert.ErrorIs(t, err, domain.ErrProfileAlreadyExists)

	profile, err := repo.Get(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, uid, profile.UserID)
	assert.Zero(t, profile.TotalPoints)
	assert.False(t, profile.CreatedAt.IsZero(), "server timestamp should be populated")

	_, err = repo.Get(ctx, "missing-"+uid)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestApplyImpactIncrementsAtomically(t *testing.T) {
	client := setupFirestore(t)
	repo := repository.NewProfileRepository(client)
	ctx := context.Background()
	uid := testUserID()

	require.NoError(t, repo.Create(ctx, &domain.UserProfile{
		UserID: uid,
		Name:   "Integration User",
		Email:  uid + "@example.com",
	}))

	est := impact.ForDevice(impact.Smartphone)
	require.NoError(t, repo.ApplyImpact(ctx, uid, est))
	require.NoError(t, repo.ApplyImpact(ctx, uid, est))

	profile, err := repo.Get(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, int64(2), profile.RecycledDevices)
	assert.Equal(t, 2*est.Points, profile.TotalPoints)
	assert.InDelta(t, 2*est.CO2SavedKg, profile.CO2Saved, 1e-6)
	assert.InDelta(t, 2*est.Materials.Copper, profile.MaterialsSaved.Copper, 1e-6)
}

func TestActivityAppendAndHistoryOrder(t *testing.T) {
	client := setupFirestore(t)
	repo := repository.NewActivityRepository(client)
	ctx := context.Background()
	uid := testUserID()

	for _, dt := range []impact.DeviceType{impact.Smartphone, impact.Laptop} {
		est := impact.ForDevice(dt)
		id, err := repo.Append(ctx, &domain.RecyclingActivity{
			UserID:     uid,
			DeviceType: string(dt),
			Materials:  est.Materials,
			Points:     est.Points,
			CO2Saved:   est.CO2SavedKg,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, id)
		// server timestamps need distinct write times for a stable order
		time.Sleep(50 * time.Millisecond)
	}

	activities, err := repo.ListByUser(ctx, uid)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, "laptop", activities[0].DeviceType)
	assert.Equal(t, "smartphone", activities[1].DeviceType)
	assert.True(t, activities[0].Timestamp.After(activities[1].Timestamp) ||
		activities[0].Timestamp.Equal(activities[1].Timestamp))
}

func TestCollectionPointsRoundTrip(t *testing.T) {
	client := setupFirestore(t)
	repo := repository.NewPointRepository(client)
	ctx := context.Background()

	_, _, err := client.Collection("collectionPoints").Add(ctx, map[string]any{
		"name":    "Integration Drop-off",
		"address": "Calle Falsa 123",
		"location": map[string]any{
			"latitude":  20.6786,
			"longitude": -103.3854,
		},
		"operatingHours": "9-17",
	})
	require.NoError(t, err)

	points, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, points)

	found := false
	for _, p := range points {
		if p.Name == "Integration Drop-off" {
			found = true
			assert.NotEmpty(t, p.ID)
			assert.InDelta(t, 20.6786, p.Location.Latitude, 1e-9)
		}
	}
	assert.True(t, found)
}
