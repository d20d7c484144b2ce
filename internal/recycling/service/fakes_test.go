package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eleccycle/eleccycle-backend/internal/impact"
	"github.com/eleccycle/eleccycle-backend/internal/recycling/domain"
)

// In-memory stand-ins for the Firestore repositories. They mimic the store
// semantics the services rely on: not-found sentinels, commutative
// increments, and newest-first activity listings.

type fakeProfileStore struct {
	profiles map[string]*domain.UserProfile

	createErr error
	getErr    error
	applyErr  error
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: map[string]*domain.UserProfile{}}
}

func (f *fakeProfileStore) Create(_ context.Context, p *domain.UserProfile) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.profiles[p.UserID]; ok {
		return domain.ErrProfileAlreadyExists
	}
	cp := *p
	cp.CreatedAt = time.Now()
	f.profiles[p.UserID] = &cp
	return nil
}

func (f *fakeProfileStore) Get(_ context.Context, userID string) (*domain.UserProfile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileStore) ApplyImpact(_ context.Context, userID string, est impact.Estimate) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	p, ok := f.profiles[userID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.RecycledDevices++
	p.TotalPoints += est.Points
	p.CO2Saved += est.CO2SavedKg
	p.MaterialsSaved.Copper += est.Materials.Copper
	p.MaterialsSaved.Gold += est.Materials.Gold
	p.MaterialsSaved.Plastic += est.Materials.Plastic
	p.MaterialsSaved.Aluminum += est.Materials.Aluminum
	return nil
}

func (f *fakeProfileStore) UpdateContact(_ context.Context, userID string, upd domain.ContactUpdate) error {
	p, ok := f.profiles[userID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Phone != nil {
		p.Phone = *upd.Phone
	}
	if upd.Address != nil {
		p.Address = *upd.Address
	}
	return nil
}

func (f *fakeProfileStore) UpdateEmail(_ context.Context, userID, email string) error {
	p, ok := f.profiles[userID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.Email = email
	return nil
}

type fakeActivityStore struct {
	activities []domain.RecyclingActivity

	appendErr error
	listErr   error
	clock     time.Time
}

func (f *fakeActivityStore) Append(_ context.Context, a *domain.RecyclingActivity) (string, error) {
	if f.appendErr != nil {
		return "", f.appendErr
	}
	f.clock = f.clock.Add(time.Second)
	stored := *a
	stored.ID = fmt.Sprintf("act-%d", len(f.activities)+1)
	stored.Timestamp = f.clock
	f.activities = append(f.activities, stored)
	return stored.ID, nil
}

func (f *fakeActivityStore) ListByUser(_ context.Context, userID string) ([]domain.RecyclingActivity, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []domain.RecyclingActivity{}
	for i := len(f.activities) - 1; i >= 0; i-- {
		if f.activities[i].UserID == userID {
			out = append(out, f.activities[i])
		}
	}
	return out, nil
}

type fakePointStore struct {
	points []domain.CollectionPoint
	err    error
}

func (f *fakePointStore) ListAll(context.Context) ([]domain.CollectionPoint, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.CollectionPoint, len(f.points))
	copy(out, f.points)
	return out, nil
}

type fakeGuard struct {
	held     bool
	acquires int
	releases int
	err      error
}

func (f *fakeGuard) Acquire(context.Context, string) (func(), error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.held {
		return nil, domain.ErrRecordInFlight
	}
	f.held = true
	f.acquires++
	return func() {
		f.held = false
		f.releases++
	}, nil
}

var errTransient = errors.New("store unavailable")
