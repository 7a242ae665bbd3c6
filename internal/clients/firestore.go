package clients

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore keeps client records in one Firestore collection.
type FirestoreStore struct {
	col *firestore.CollectionRef
}

func NewFirestoreStore(client *firestore.Client, collection string) *FirestoreStore {
	return &FirestoreStore{col: client.Collection(collection)}
}

func (s *FirestoreStore) Create(ctx context.Context, id string, rec Record) error {
	data := maps.Clone(map[string]any(rec))
	data["createdAt"] = firestore.ServerTimestamp
	data["updatedAt"] = firestore.ServerTimestamp

	if _, err := s.col.Doc(id).Set(ctx, data); err != nil {
		return fmt.Errorf("set client %s: %w", id, err)
	}
	return nil
}

func (s *FirestoreStore) Get(ctx context.Context, id string) (Record, error) {
	snap, err := s.col.Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get client %s: %w", id, err)
	}
	return Record(snap.Data()), nil
}

func (s *FirestoreStore) Update(ctx context.Context, id string, fields Record) error {
	keys := slices.Sorted(maps.Keys(fields))
	updates := make([]firestore.Update, 0, len(keys)+1)
	for _, k := range keys {
		// FieldPath keeps keys containing dots as single fields.
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: fields[k]})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp})

	_, err := s.col.Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update client %s: %w", id, err)
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, id string) error {
	if _, err := s.col.Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete client %s: %w", id, err)
	}
	return nil
}

func (s *FirestoreStore) List(ctx context.Context) ([]Record, error) {
	iter := s.col.Documents(ctx)
	defer iter.Stop()

	var out []Record
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list clients: %w", err)
		}
		rec := Record(snap.Data())
		rec["id"] = snap.Ref.ID
		out = append(out, rec)
	}
	return out, nil
}
