package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/eleccycle/eleccycle-backend/internal/recycling/domain"
)

const pointsCollection = "collectionPoints"

// PointRepository reads the collection-point reference data. The set is
// provisioned out-of-band and never written by this service.
type PointRepository struct {
	client *firestore.Client
}

func NewPointRepository(client *firestore.Client) *PointRepository {
	return &PointRepository{client: client}
}

// ListAll fetches every collection point. A fetch failure is returned as an
// error so callers can tell an outage apart from "zero points exist".
func (r *PointRepository) ListAll(ctx context.Context) ([]domain.CollectionPoint, error) {
	iter := r.client.Collection(pointsCollection).Documents(ctx)
	defer iter.Stop()

	points := []domain.CollectionPoint{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list collection points: %w", err)
		}

		var p domain.CollectionPoint
		if err := doc.DataTo(&p); err != nil {
			return nil, fmt.Errorf("decode collection point %s: %w", doc.Ref.ID, err)
		}
		p.ID = doc.Ref.ID
		points = append(points, p)
	}

	return points, nil
}
