package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eleccycle/eleccycle-backend/internal/impact"
	"github.com/eleccycle/eleccycle-backend/internal/recycling/domain"
)

func newActivityFixture(t *testing.T) (*ActivityService, *fakeProfileStore, *fakeActivityStore, *fakeGuard) {
	t.Helper()
	profiles := newFakeProfileStore()
	activities := &fakeActivityStore{}
	guard := &fakeGuard{}
	svc := NewActivityService(activities, profiles, guard, zap.NewNop())
	return svc, profiles, activities, guard
}

func seedProfile(t *testing.T, profiles *fakeProfileStore, uid string) {
	t.Helper()
	require.NoError(t, profiles.Create(context.Background(), &domain.UserProfile{
		UserID: uid,
		Name:   "Test User",
		Email:  uid + "@example.com",
	}))
}

func TestRecordSmartphoneCreditsProfile(t *testing.T) {
	svc, profiles, activities, _ := newActivityFixture(t)
	seedProfile(t, profiles, "u1")

	res, err := svc.Record(context.Background(), "u1", impact.ForDevice(impact.Smartphone))
	require.NoError(t, err)
	assert.Equal(t, domain.RecordApplied, res.Outcome)
	assert.NotEmpty(t, res.ActivityID)

	p, err := profiles.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.RecycledDevices)
	assert.Equal(t, int64(50), p.TotalPoints)
	assert.InDelta(t, 0.8, p.CO2Saved, 1e-9)
	assert.InDelta(t, 15, p.MaterialsSaved.Copper, 1e-9)
	assert.InDelta(t, 0.034, p.MaterialsSaved.Gold, 1e-9)

	assert.Len(t, activities.activities, 1)
	assert.Equal(t, "smartphone", activities.activities[0].DeviceType)
}

func TestRecordSequenceSumsCounters(t *testing.T) {
	svc, profiles, _, guard := newActivityFixture(t)
	seedProfile(t, profiles, "u1")

	devices := []impact.DeviceType{
		impact.Smartphone, impact.Laptop, impact.Tablet,
		impact.Desktop, impact.Monitor, impact.Printer,
		impact.TV, impact.Console, impact.Other, impact.Smartphone,
	}

	var wantPoints int64
	var wantCO2, wantCopper, wantGold, wantPlastic, wantAluminum float64
	for _, d := range devices {
		est := impact.ForDevice(d)
		res, err := svc.Record(context.Background(), "u1", est)
		require.NoError(t, err)
		require.Equal(t, domain.RecordApplied, res.Outcome)

		wantPoints += est.Points
		wantCO2 += est.CO2SavedKg
		wantCopper += est.Materials.Copper
		wantGold += est.Materials.Gold
		wantPlastic += est.Materials.Plastic
		wantAluminum += est.Materials.Aluminum
	}

	p, err := profiles.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(len(devices)), p.RecycledDevices)
	assert.Equal(t, wantPoints, p.TotalPoints)
	assert.InDelta(t, wantCO2, p.CO2Saved, 1e-9)
	assert.InDelta(t, wantCopper, p.MaterialsSaved.Copper, 1e-9)
	assert.InDelta(t, wantGold, p.MaterialsSaved.Gold, 1e-9)
	assert.InDelta(t, wantPlastic, p.MaterialsSaved.Plastic, 1e-9)
	assert.InDelta(t, wantAluminum, p.MaterialsSaved.Aluminum, 1e-9)

	// every record acquired and released the per-user guard
	assert.Equal(t, len(devices), guard.acquires)
	assert.Equal(t, len(devices), guard.releases)
}

func TestRecordProfileIncrementFailureIsPartial(t *testing.T) {
	svc, profiles, activities, guard := newActivityFixture(t)
	seedProfile(t, profiles, "u1")
	profiles.applyErr = errTransient

	res, err := svc.Record(context.Background(), "u1", impact.ForDevice(impact.Laptop))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProfileUnderCredited)
	assert.Equal(t, domain.RecordActivityOnly, res.Outcome)
	assert.NotEmpty(t, res.ActivityID)

	// the activity document was still written
	assert.Len(t, activities.activities, 1)
	assert.Equal(t, 1, guard.releases)
}

func TestRecordAppendFailureLeavesProfileUntouched(t *testing.T) {
	svc, profiles, _, _ := newActivityFixture(t)
	seedProfile(t, profiles, "u1")

	activities := &fakeActivityStore{appendErr: errTransient}
	svc = NewActivityService(activities, profiles, &fakeGuard{}, zap.NewNop())

	res, err := svc.Record(context.Background(), "u1", impact.ForDevice(impact.Tablet))
	require.Error(t, err)
	assert.Equal(t, domain.RecordFailed, res.Outcome)
	assert.Empty(t, res.ActivityID)

	p, err := profiles.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Zero(t, p.RecycledDevices)
	assert.Zero(t, p.TotalPoints)
}

func TestRecordRejectsConcurrentWriteForSameUser(t *testing.T) {
	svc, profiles, activities, guard := newActivityFixture(t)
	seedProfile(t, profiles, "u1")
	guard.held = true

	res, err := svc.Record(context.Background(), "u1", impact.ForDevice(impact.Smartphone))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRecordInFlight)
	assert.Equal(t, domain.RecordFailed, res.Outcome)
	assert.Empty(t, activities.activities)
}

func TestRecordRejectsNegativeEstimate(t *testing.T) {
	svc, profiles, activities, guard := newActivityFixture(t)
	seedProfile(t, profiles, "u1")

	est := impact.ForDevice(impact.Smartphone)
	est.Points = -10

	res, err := svc.Record(context.Background(), "u1", est)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNegativeImpact)
	assert.Equal(t, domain.RecordFailed, res.Outcome)
	assert.Empty(t, activities.activities)
	assert.Zero(t, guard.acquires)
}

func TestRecordRequiresUserID(t *testing.T) {
	svc, _, activities, _ := newActivityFixture(t)

	res, err := svc.Record(context.Background(), "", impact.ForDevice(impact.Other))
	require.Error(t, err)
	assert.Equal(t, domain.RecordFailed, res.Outcome)
	assert.Empty(t, activities.activities)
}
