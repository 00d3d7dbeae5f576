package db

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/types"
)

const runsCollection = "runs"

// RunStore persists finished run records and serves them back to the API.
// It is a thin handle around the shared Firestore client so the runner and
// the handlers can be wired with the same value.
type RunStore struct {
	client *firestore.Client
}

func NewRunStore(client *firestore.Client) *RunStore {
	return &RunStore{client: client}
}

// SaveRun writes one record, keyed by its run id.
func (s *RunStore) SaveRun(ctx context.Context, rec *types.RunRecord) error {
	docRef := s.client.Collection(runsCollection).Doc(rec.ID)
	if _, err := docRef.Set(ctx, rec); err != nil {
		return fmt.Errorf("failed to save run %s: %w", rec.ID, err)
	}
	return nil
}

// RecentRuns retrieves up to limit records, newest first.
func (s *RunStore) RecentRuns(ctx context.Context, limit int) ([]types.RunRecord, error) {
	iter := s.client.Collection(runsCollection).
		OrderBy("ranAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var runs []types.RunRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating runs collection: %w", err)
		}

		var rec types.RunRecord
		if err := doc.DataTo(&rec); err != nil {
			log.Printf("Warning: Error converting document %s to RunRecord: %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		rec.ID = doc.Ref.ID
		runs = append(runs, rec)
	}

	return runs, nil
}
