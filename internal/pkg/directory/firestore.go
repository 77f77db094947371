package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore backs the directory with Cloud Firestore. Documents are
// stored as plain maps keyed by the JSON field names the domain types declare,
// so the same records round-trip through every backend identically.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirebaseApp initialises the Firebase app from either inline credentials
// JSON or a credentials file path, falling back to application-default
// credentials when neither is set.
func NewFirebaseApp(ctx context.Context, projectID, credentials string) (*firebase.App, error) {
	var opts []option.ClientOption
	if credentials != "" {
		if strings.HasPrefix(credentials, "{") {
			opts = append(opts, option.WithCredentialsJSON([]byte(credentials)))
		} else {
			opts = append(opts, option.WithCredentialsFile(credentials))
		}
	}
	var cfg *firebase.Config
	if projectID != "" {
		cfg = &firebase.Config{ProjectID: projectID}
	}
	app, err := firebase.NewApp(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase init: %w", err)
	}
	return app, nil
}

func NewFirestoreStore(ctx context.Context, app *firebase.App) (*FirestoreStore, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &FirestoreStore{client: client}, nil
}

func (f *FirestoreStore) GetByID(ctx context.Context, collection, id string) (json.RawMessage, error) {
	snap, err := f.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return json.Marshal(snap.Data())
}

func (f *FirestoreStore) QueryEquals(ctx context.Context, collection string, preds ...Predicate) ([]json.RawMessage, error) {
	q := f.client.Collection(collection).Query
	for _, p := range preds {
		q = q.Where(p.Field, "==", p.Value)
	}

	var out []json.RawMessage
	it := q.Documents(ctx)
	defer it.Stop()
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", collection, err)
		}
		raw, err := json.Marshal(snap.Data())
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, nil
}

func (f *FirestoreStore) Put(ctx context.Context, collection, id string, doc any) error {
	data, err := toMap(doc)
	if err != nil {
		return err
	}
	if _, err := f.client.Collection(collection).Doc(id).Set(ctx, data); err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, id, err)
	}
	return nil
}

func (f *FirestoreStore) Delete(ctx context.Context, collection, id string) error {
	if _, err := f.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (f *FirestoreStore) ApplyBatch(ctx context.Context, muts []Mutation) error {
	batch := f.client.Batch()
	for _, mut := range muts {
		ref := f.client.Collection(mut.Collection).Doc(mut.ID)
		switch mut.Op {
		case OpCreate:
			data, err := toMap(mut.Doc)
			if err != nil {
				return err
			}
			batch.Create(ref, data)
		case OpSet:
			data, err := toMap(mut.Doc)
			if err != nil {
				return err
			}
			batch.Set(ref, data)
		case OpUpdate:
			updates := make([]firestore.Update, 0, len(mut.Fields))
			for field, value := range mut.Fields {
				updates = append(updates, firestore.Update{Path: field, Value: value})
			}
			batch.Update(ref, updates)
		case OpDelete:
			batch.Delete(ref)
		default:
			return fmt.Errorf("unknown mutation op %q", mut.Op)
		}
	}
	if _, err := batch.Commit(ctx); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("batch commit: %w", ErrAlreadyExists)
		}
		return fmt.Errorf("batch commit: %w", err)
	}
	return nil
}

func (f *FirestoreStore) Watch(ctx context.Context, collection string) (<-chan Event, error) {
	ch := make(chan Event, 64)
	snaps := f.client.Collection(collection).Snapshots(ctx)

	go func() {
		defer close(ch)
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				if ctx.Err() == nil {
					slog.Error("directory watch stream ended", "collection", collection, "error", err)
				}
				return
			}
			for _, change := range snap.Changes {
				ev := Event{Collection: collection, ID: change.Doc.Ref.ID, Kind: EventPut}
				if change.Kind == firestore.DocumentRemoved {
					ev.Kind = EventDelete
				}
				select {
				case ch <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}

func (f *FirestoreStore) Close() error {
	return f.client.Close()
}

// toMap round-trips a domain value through JSON so the stored field names are
// the JSON tags, not the Go struct names.
func toMap(doc any) (map[string]any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}
