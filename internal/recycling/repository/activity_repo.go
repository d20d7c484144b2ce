package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/eleccycle/eleccycle-backend/internal/recycling/domain"
)

const activitiesCollection = "recyclingActivities"

// ActivityRepository handles Firestore operations for recycling activities.
// Activities are append-only; there is no update or delete path.
type ActivityRepository struct {
	client *firestore.Client
}

func NewActivityRepository(client *firestore.Client) *ActivityRepository {
	return &ActivityRepository{client: client}
}

// Append inserts a new activity document and returns its generated id.
// The timestamp field is assigned by the server via the serverTimestamp tag.
func (r *ActivityRepository) Append(ctx context.Context, activity *domain.RecyclingActivity) (string, error) {
	ref, _, err := r.client.Collection(activitiesCollection).Add(ctx, activity)
	if err != nil {
		return "", fmt.Errorf("append activity: %w", err)
	}
	return ref.ID, nil
}

// ListByUser returns a user's activities ordered by timestamp descending,
// most recent first. An empty result is valid, not an error.
func (r *ActivityRepository) ListByUser(ctx context.Context, userID string) ([]domain.RecyclingActivity, error) {
	iter := r.client.Collection(activitiesCollection).
		Where("userId", "==", userID).
		OrderBy("timestamp", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	activities := []domain.RecyclingActivity{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list activities: %w", err)
		}

		var a domain.RecyclingActivity
		if err := doc.DataTo(&a); err != nil {
			return nil, fmt.Errorf("decode activity %s: %w", doc.Ref.ID, err)
		}
		a.ID = doc.Ref.ID
		activities = append(activities, a)
	}

	return activities, nil
}
