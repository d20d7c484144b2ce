package service

import (
	"context"

	"github.com/eleccycle/eleccycle-backend/internal/impact"
	"github.com/eleccycle/eleccycle-backend/internal/recycling/domain"
)

// Store interfaces consumed by the services. The Firestore repositories in
// the repository package satisfy them; tests substitute in-memory fakes.

type ProfileStore interface {
	Create(ctx context.Context, profile *domain.UserProfile) error
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
	ApplyImpact(ctx context.Context, userID string, est impact.Estimate) error
	UpdateContact(ctx context.Context, userID string, upd domain.ContactUpdate) error
	UpdateEmail(ctx context.Context, userID, email string) error
}

type ActivityStore interface {
	Append(ctx context.Context, activity *domain.RecyclingActivity) (string, error)
	ListByUser(ctx context.Context, userID string) ([]domain.RecyclingActivity, error)
}

type PointStore interface {
	ListAll(ctx context.Context) ([]domain.CollectionPoint, error)
}

// WriteGuard bounds recycling writes to one in flight per user.
type WriteGuard interface {
	Acquire(ctx context.Context, userID string) (release func(), err error)
}
