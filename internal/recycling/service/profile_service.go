package service

import (
	"context"

	"github.com/eleccycle/eleccycle-backend/internal/recycling/domain"
)

// ProfileService reads and maintains user profiles and their history.
type ProfileService struct {
	profiles   ProfileStore
	activities ActivityStore
}

func NewProfileService(profiles ProfileStore, activities ActivityStore) *ProfileService {
	return &ProfileService{
		profiles:   profiles,
		activities: activities,
	}
}

// CreateProfile writes the initial profile with all counters at zero.
func (s *ProfileService) CreateProfile(ctx context.Context, userID, name, email string) (*domain.UserProfile, error) {
	profile := &domain.UserProfile{
		UserID: userID,
		Name:   name,
		Email:  email,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetProfile returns the user's profile. domain.ErrProfileNotFound is a
// valid terminal state for a freshly created account; any other error is
// transient and retryable.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return s.profiles.Get(ctx, userID)
}

// UpdateContact applies editable contact fields to the profile.
func (s *ProfileService) UpdateContact(ctx context.Context, userID string, upd domain.ContactUpdate) (*domain.UserProfile, error) {
	if err := s.profiles.UpdateContact(ctx, userID, upd); err != nil {
		return nil, err
	}
	return s.profiles.Get(ctx, userID)
}

// SyncEmail mirrors an auth-side email change onto the profile document.
func (s *ProfileService) SyncEmail(ctx context.Context, userID, email string) error {
	return s.profiles.UpdateEmail(ctx, userID, email)
}

// History returns the user's activities most recent first. An empty slice
// is a valid result.
func (s *ProfileService) History(ctx context.Context, userID string) ([]domain.RecyclingActivity, error) {
	return s.activities.ListByUser(ctx, userID)
}

// Achievements derives milestone progress from the profile counters.
func (s *ProfileService) Achievements(ctx context.Context, userID string) ([]domain.Achievement, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.AchievementsFor(profile), nil
}
