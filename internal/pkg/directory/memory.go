package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is an in-process Store with genuinely atomic batches. It backs
// every service test and doubles as a scratch directory for local runs.
type MemoryStore struct {
	mu       sync.Mutex
	data     map[string]map[string]json.RawMessage // collection -> id -> doc
	watchers map[string][]chan Event
	closed   bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:     make(map[string]map[string]json.RawMessage),
		watchers: make(map[string][]chan Event),
	}
}

func (m *MemoryStore) GetByID(ctx context.Context, collection, id string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.data[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return doc, nil
}

func (m *MemoryStore) QueryEquals(ctx context.Context, collection string, preds ...Predicate) ([]json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []json.RawMessage
	for _, doc := range m.data[collection] {
		ok, err := matches(doc, preds)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (m *MemoryStore) Put(ctx context.Context, collection, id string, doc any) error {
	return m.ApplyBatch(ctx, []Mutation{{Op: OpSet, Collection: collection, ID: id, Doc: doc}})
}

func (m *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	return m.ApplyBatch(ctx, []Mutation{{Op: OpDelete, Collection: collection, ID: id}})
}

func (m *MemoryStore) ApplyBatch(ctx context.Context, muts []Mutation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Validate and marshal everything before touching state so a failing
	// mutation leaves the store untouched.
	type staged struct {
		mut Mutation
		doc json.RawMessage
	}
	stage := make([]staged, 0, len(muts))
	for _, mut := range muts {
		s := staged{mut: mut}
		switch mut.Op {
		case OpCreate:
			if _, exists := m.data[mut.Collection][mut.ID]; exists {
				return fmt.Errorf("%s/%s: %w", mut.Collection, mut.ID, ErrAlreadyExists)
			}
			raw, err := json.Marshal(mut.Doc)
			if err != nil {
				return err
			}
			s.doc = raw
		case OpSet:
			raw, err := json.Marshal(mut.Doc)
			if err != nil {
				return err
			}
			s.doc = raw
		case OpUpdate:
			existing, ok := m.data[mut.Collection][mut.ID]
			if !ok {
				return fmt.Errorf("%s/%s: %w", mut.Collection, mut.ID, ErrNotFound)
			}
			merged, err := mergeFields(existing, mut.Fields)
			if err != nil {
				return err
			}
			s.doc = merged
		case OpDelete:
			// Always legal.
		default:
			return fmt.Errorf("unknown mutation op %q", mut.Op)
		}
		stage = append(stage, s)
	}

	for _, s := range stage {
		col := m.data[s.mut.Collection]
		if col == nil {
			col = make(map[string]json.RawMessage)
			m.data[s.mut.Collection] = col
		}
		switch s.mut.Op {
		case OpDelete:
			delete(col, s.mut.ID)
			m.notify(Event{Collection: s.mut.Collection, ID: s.mut.ID, Kind: EventDelete})
		default:
			col[s.mut.ID] = s.doc
			m.notify(Event{Collection: s.mut.Collection, ID: s.mut.ID, Kind: EventPut})
		}
	}
	return nil
}

func (m *MemoryStore) Watch(ctx context.Context, collection string) (<-chan Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan Event, 64)
	m.watchers[collection] = append(m.watchers[collection], ch)

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		chans := m.watchers[collection]
		for i, c := range chans {
			if c == ch {
				m.watchers[collection] = append(chans[:i], chans[i+1:]...)
				close(ch)
				break
			}
		}
	}()
	return ch, nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// notify is called with the lock held; slow watchers drop events rather than
// block writers.
func (m *MemoryStore) notify(ev Event) {
	for _, ch := range m.watchers[ev.Collection] {
		select {
		case ch <- ev:
		default:
		}
	}
}

func matches(doc json.RawMessage, preds []Predicate) (bool, error) {
	var fields map[string]any
	if err := json.Unmarshal(doc, &fields); err != nil {
		return false, err
	}
	for _, p := range preds {
		got, ok := fields[p.Field]
		if !ok {
			return false, nil
		}
		if !looseEqual(got, p.Value) {
			return false, nil
		}
	}
	return true, nil
}

// looseEqual compares a decoded JSON value with a native Go value, tolerating
// the float64 representation JSON numbers decode to.
func looseEqual(got, want any) bool {
	if gf, ok := toFloat(got); ok {
		if wf, ok := toFloat(want); ok {
			return gf == wf
		}
		return false
	}
	return got == want
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func mergeFields(existing json.RawMessage, fields map[string]any) (json.RawMessage, error) {
	var doc map[string]any
	if err := json.Unmarshal(existing, &doc); err != nil {
		return nil, err
	}
	for k, v := range fields {
		doc[k] = v
	}
	return json.Marshal(doc)
}
