package directory

import (
	"context"
	"encoding/json"
	"errors"
)

// Collection names used across the directory. The same names back every
// store implementation.
const (
	CollectionClients   = "clients"
	CollectionBranches  = "branches"
	CollectionUsers     = "users"
	CollectionEmployees = "employees"
	CollectionPayroll   = "payroll_records"
	CollectionTickets   = "notifications"
	CollectionInvoices  = "invoices"
	CollectionPayments  = "payments"
)

// ErrNotFound is returned by GetByID when no document exists under the id.
var ErrNotFound = errors.New("document not found")

// ErrAlreadyExists is returned when a Create mutation targets an existing id.
// Batch callers rely on this: a concurrent writer that already claimed the id
// aborts the whole batch instead of overwriting it.
var ErrAlreadyExists = errors.New("document already exists")

// Predicate is a top-level field equality filter.
type Predicate struct {
	Field string
	Value any
}

// Eq builds an equality predicate.
func Eq(field string, value any) Predicate {
	return Predicate{Field: field, Value: value}
}

type Op string

const (
	OpCreate Op = "create" // fails if the id exists
	OpUpdate Op = "update" // merges Fields into an existing document
	OpDelete Op = "delete"
	OpSet    Op = "set" // create or full replace
)

// Mutation is one entry of an atomic batch. Create and Set carry a full
// document; Update carries a field merge.
type Mutation struct {
	Op         Op
	Collection string
	ID         string
	Doc        any
	Fields     map[string]any
}

// EventKind classifies a change notification.
type EventKind string

const (
	EventPut    EventKind = "put"
	EventDelete EventKind = "delete"
)

// Event is a change notification for one document. Watchers must treat
// delivery as at-least-once; the migrator's idempotence depends on that.
type Event struct {
	Collection string
	ID         string
	Kind       EventKind
}

// Store is the document directory every repository runs against. Backends:
// Firestore for deployments, Postgres (jsonb documents) for self-hosted
// installs, and an in-memory store for tests.
type Store interface {
	// GetByID returns the raw document or ErrNotFound.
	GetByID(ctx context.Context, collection, id string) (json.RawMessage, error)

	// QueryEquals returns every document matching all predicates.
	QueryEquals(ctx context.Context, collection string, preds ...Predicate) ([]json.RawMessage, error)

	// Put creates or fully replaces a document.
	Put(ctx context.Context, collection, id string, doc any) error

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, collection, id string) error

	// ApplyBatch commits all mutations atomically or none of them.
	ApplyBatch(ctx context.Context, muts []Mutation) error

	// Watch streams change events for one collection until ctx is done.
	Watch(ctx context.Context, collection string) (<-chan Event, error)

	Close() error
}

// BatchLimit is the per-batch mutation ceiling of the backing stores. Callers
// building large rewrites split into sequential batches below this bound.
const BatchLimit = 450

// Decode unmarshals a raw document into out.
func Decode(raw json.RawMessage, out any) error {
	return json.Unmarshal(raw, out)
}

// DecodeAll unmarshals a result set into a slice of T.
func DecodeAll[T any](raws []json.RawMessage) ([]T, error) {
	items := make([]T, 0, len(raws))
	for _, raw := range raws {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
