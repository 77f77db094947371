package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const notifyChannel = "directory_changes"

// PostgresStore keeps every collection in one jsonb documents table. Equality
// queries use jsonb containment, batches run in a single transaction, and
// watchers ride LISTEN/NOTIFY (the NOTIFY is issued inside the transaction so
// it only fires on commit).
type PostgresStore struct {
	pool *pgxpool.Pool
	dsn  string
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	config.MaxConns = 25
	config.MinConns = 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	s := &PostgresStore{pool: pool, dsn: dsn}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			id         TEXT NOT NULL,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (collection, id)
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure documents table: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetByID(ctx context.Context, collection, id string) (json.RawMessage, error) {
	var data json.RawMessage
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`,
		collection, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return data, nil
}

func (s *PostgresStore) QueryEquals(ctx context.Context, collection string, preds ...Predicate) ([]json.RawMessage, error) {
	filter := make(map[string]any, len(preds))
	for _, p := range preds {
		filter[p.Field] = p.Value
	}
	filterJSON, err := json.Marshal(filter)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND data @> $2::jsonb`,
		collection, string(filterJSON))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	defer rows.Close()

	var out []json.RawMessage
	for rows.Next() {
		var data json.RawMessage
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Put(ctx context.Context, collection, id string, doc any) error {
	return s.ApplyBatch(ctx, []Mutation{{Op: OpSet, Collection: collection, ID: id, Doc: doc}})
}

func (s *PostgresStore) Delete(ctx context.Context, collection, id string) error {
	return s.ApplyBatch(ctx, []Mutation{{Op: OpDelete, Collection: collection, ID: id}})
}

func (s *PostgresStore) ApplyBatch(ctx context.Context, muts []Mutation) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, mut := range muts {
		if err := s.applyOne(ctx, tx, mut); err != nil {
			return err
		}
		kind := EventPut
		if mut.Op == OpDelete {
			kind = EventDelete
		}
		payload := fmt.Sprintf("%s|%s|%s", mut.Collection, mut.ID, kind)
		if _, err := tx.Exec(ctx, `SELECT pg_notify($1, $2)`, notifyChannel, payload); err != nil {
			return fmt.Errorf("notify %s/%s: %w", mut.Collection, mut.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

func (s *PostgresStore) applyOne(ctx context.Context, tx pgx.Tx, mut Mutation) error {
	switch mut.Op {
	case OpCreate:
		data, err := json.Marshal(mut.Doc)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)`,
			mut.Collection, mut.ID, string(data))
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("%s/%s: %w", mut.Collection, mut.ID, ErrAlreadyExists)
			}
			return fmt.Errorf("create %s/%s: %w", mut.Collection, mut.ID, err)
		}
	case OpSet:
		data, err := json.Marshal(mut.Doc)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)
			ON CONFLICT (collection, id)
			DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
			mut.Collection, mut.ID, string(data))
		if err != nil {
			return fmt.Errorf("set %s/%s: %w", mut.Collection, mut.ID, err)
		}
	case OpUpdate:
		fields, err := json.Marshal(mut.Fields)
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `
			UPDATE documents SET data = data || $3::jsonb, updated_at = NOW()
			WHERE collection = $1 AND id = $2`,
			mut.Collection, mut.ID, string(fields))
		if err != nil {
			return fmt.Errorf("update %s/%s: %w", mut.Collection, mut.ID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%s/%s: %w", mut.Collection, mut.ID, ErrNotFound)
		}
	case OpDelete:
		_, err := tx.Exec(ctx,
			`DELETE FROM documents WHERE collection = $1 AND id = $2`,
			mut.Collection, mut.ID)
		if err != nil {
			return fmt.Errorf("delete %s/%s: %w", mut.Collection, mut.ID, err)
		}
	default:
		return fmt.Errorf("unknown mutation op %q", mut.Op)
	}
	return nil
}

func (s *PostgresStore) Watch(ctx context.Context, collection string) (<-chan Event, error) {
	// A dedicated connection outside the pool; LISTEN holds it for the
	// lifetime of the watch.
	conn, err := pgx.Connect(ctx, s.dsn)
	if err != nil {
		return nil, fmt.Errorf("watch connect: %w", err)
	}
	if _, err := conn.Exec(ctx, `LISTEN `+notifyChannel); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("listen: %w", err)
	}

	ch := make(chan Event, 64)
	go func() {
		defer close(ch)
		defer func() { _ = conn.Close(context.Background()) }()
		for {
			notification, err := conn.WaitForNotification(ctx)
			if err != nil {
				if ctx.Err() == nil {
					slog.Error("directory watch stream ended", "collection", collection, "error", err)
				}
				return
			}
			parts := strings.SplitN(notification.Payload, "|", 3)
			if len(parts) != 3 || parts[0] != collection {
				continue
			}
			ev := Event{Collection: parts[0], ID: parts[1], Kind: EventKind(parts[2])}
			select {
			case ch <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
