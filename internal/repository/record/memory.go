package record

import (
	"context"
	"sync"

	"github.com/kailas-cloud/askdex/internal/domain"
	domrec "github.com/kailas-cloud/askdex/internal/domain/record"
)

// Memory is the in-process record store. A single mutex guards index
// mutation: searches and reads run concurrently, inserts/updates/deletes
// exclude each other and in-flight searches so a query never observes a
// half-updated index.
type Memory struct {
	mu     sync.RWMutex
	schema domrec.Schema

	nextID  int64
	order   []int64
	records map[int64]domrec.Record
	tokens  map[int64]map[string]int
}

// NewMemory creates an empty in-memory store validating against schema.
func NewMemory(schema domrec.Schema) *Memory {
	return &Memory{
		schema:  schema,
		records: make(map[int64]domrec.Record),
		tokens:  make(map[int64]map[string]int),
	}
}

// Insert validates fields and stores a new record under a monotonically
// increasing id. Returns the assigned id.
func (m *Memory) Insert(_ context.Context, fields domrec.Fields) (int64, error) {
	fields = fields.Trimmed()
	if err := m.schema.Validate(fields); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := m.nextID
	rec := domrec.New(id, fields, m.schema.Searchable)

	m.records[id] = rec
	m.tokens[id] = domrec.TokenCounts(rec.SearchText())
	m.order = append(m.order, id)

	return id, nil
}

// Get returns a record by id.
func (m *Memory) Get(_ context.Context, id int64) (domrec.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return domrec.Record{}, domain.ErrRecordNotFound
	}
	return rec, nil
}

// Update replaces a record's fields and recomputes its search index entry.
func (m *Memory) Update(_ context.Context, id int64, fields domrec.Fields) error {
	fields = fields.Trimmed()
	if err := m.schema.Validate(fields); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return domain.ErrRecordNotFound
	}

	updated := rec.WithFields(fields, m.schema.Searchable)
	m.records[id] = updated
	m.tokens[id] = domrec.TokenCounts(updated.SearchText())

	return nil
}

// Search scores every record by query token frequency in its search text and
// returns all records with score > 0, descending by score, ties by id
// ascending. Zero matches is an empty result, not an error.
func (m *Memory) Search(_ context.Context, terms []string) ([]domain.Match, error) {
	tokens := queryTokens(terms)
	if len(tokens) == 0 {
		return nil, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var matches []domain.Match
	for id, counts := range m.tokens {
		if score := scoreCounts(tokens, counts); score > 0 {
			matches = append(matches, domain.Match{
				Record: m.records[id],
				Score:  float64(score),
			})
		}
	}

	sortMatches(matches)
	return matches, nil
}

// ListAll returns every record in insertion order.
func (m *Memory) ListAll(_ context.Context) ([]domrec.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domrec.Record, 0, len(m.order))
	for _, id := range m.order {
		if rec, ok := m.records[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Delete removes a record. Deleting an absent id is a deliberate no-op so
// callers never need to distinguish "already gone" from "just removed".
func (m *Memory) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return nil
	}

	delete(m.records, id)
	delete(m.tokens, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of stored records.
func (m *Memory) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records), nil
}

// Ping implements the health contract; the memory driver is always reachable.
func (m *Memory) Ping(_ context.Context) error { return nil }
