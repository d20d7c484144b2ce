package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/eleccycle/eleccycle-backend/internal/impact"
	"github.com/eleccycle/eleccycle-backend/internal/recycling/domain"
)

const usersCollection = "users"

// ProfileRepository handles Firestore operations for user profiles.
type ProfileRepository struct {
	client *firestore.Client
}

func NewProfileRepository(client *firestore.Client) *ProfileRepository {
	return &ProfileRepository{client: client}
}

// Create writes the initial zero-counter profile document for a new user.
func (r *ProfileRepository) Create(ctx context.Context, profile *domain.UserProfile) error {
	if profile.UserID == "" {
		return fmt.Errorf("user id required")
	}

	_, err := r.client.Collection(usersCollection).Doc(profile.UserID).Create(ctx, profile)
	if status.Code(err) == codes.AlreadyExists {
		return domain.ErrProfileAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// Get retrieves a profile by user id. A missing document maps to
// domain.ErrProfileNotFound; any other failure is a transient store error.
func (r *ProfileRepository) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	doc, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	var profile domain.UserProfile
	if err := doc.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	profile.UserID = doc.Ref.ID

	return &profile, nil
}

// ApplyImpact atomically increments the cumulative counters by the given
// estimate. Increments commute, so concurrent applies never lose credit.
func (r *ProfileRepository) ApplyImpact(ctx context.Context, userID string, est impact.Estimate) error {
	updates := []firestore.Update{
		{Path: "recycledDevices", Value: firestore.Increment(1)},
		{Path: "totalPoints", Value: firestore.Increment(est.Points)},
		{Path: "co2Saved", Value: firestore.Increment(est.CO2SavedKg)},
		{Path: "materialsSaved.copper", Value: firestore.Increment(est.Materials.Copper)},
		{Path: "materialsSaved.gold", Value: firestore.Increment(est.Materials.Gold)},
		{Path: "materialsSaved.plastic", Value: firestore.Increment(est.Materials.Plastic)},
		{Path: "materialsSaved.aluminum", Value: firestore.Increment(est.Materials.Aluminum)},
	}

	_, err := r.client.Collection(usersCollection).Doc(userID).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return domain.ErrProfileNotFound
	}
	if err != nil {
		return fmt.Errorf("apply impact: %w", err)
	}
	return nil
}

// UpdateContact merges the editable contact fields into the profile.
// Counter fields are not reachable through this path.
func (r *ProfileRepository) UpdateContact(ctx context.Context, userID string, upd domain.ContactUpdate) error {
	var updates []firestore.Update
	if upd.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *upd.Name})
	}
	if upd.Phone != nil {
		updates = append(updates, firestore.Update{Path: "phone", Value: *upd.Phone})
	}
	if upd.Address != nil {
		updates = append(updates, firestore.Update{Path: "address", Value: *upd.Address})
	}
	if len(updates) == 0 {
		return nil
	}

	_, err := r.client.Collection(usersCollection).Doc(userID).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return domain.ErrProfileNotFound
	}
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	return nil
}

// UpdateEmail keeps the profile document's email in step with the auth record.
func (r *ProfileRepository) UpdateEmail(ctx context.Context, userID, email string) error {
	_, err := r.client.Collection(usersCollection).Doc(userID).Update(ctx, []firestore.Update{
		{Path: "email", Value: email},
	})
	if status.Code(err) == codes.NotFound {
		return domain.ErrProfileNotFound
	}
	if err != nil {
		return fmt.Errorf("update email: %w", err)
	}
	return nil
}

// ListAll streams every profile. Used by the drift audit worker.
func (r *ProfileRepository) ListAll(ctx context.Context) ([]domain.UserProfile, error) {
	iter := r.client.Collection(usersCollection).Documents(ctx)
	defer iter.Stop()

	var profiles []domain.UserProfile
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list profiles: %w", err)
		}

		var p domain.UserProfile
		if err := doc.DataTo(&p); err != nil {
			return nil, fmt.Errorf("decode profile %s: %w", doc.Ref.ID, err)
		}
		p.UserID = doc.Ref.ID
		profiles = append(profiles, p)
	}

	return profiles, nil
}
