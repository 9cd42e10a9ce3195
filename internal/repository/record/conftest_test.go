package record

import (
	"context"
	"testing"

	domrec "github.com/kailas-cloud/askdex/internal/domain/record"
)

// mockStore implements the consumer interface for tests. Unset funcs fall
// back to an in-memory fake so driver tests can run against realistic state.
type mockStore struct {
	hsetFn        func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn     func(ctx context.Context, key string) (map[string]string, error)
	hgetAllMultiF func(ctx context.Context, keys []string) ([]map[string]string, error)
	delFn         func(ctx context.Context, key string) error
	incrFn        func(ctx context.Context, key string) (int64, error)
	rpushFn       func(ctx context.Context, key string, values ...string) error
	lrangeFn      func(ctx context.Context, key string, start, stop int64) ([]string, error)
	lremFn        func(ctx context.Context, key string, value string) error

	hashes   map[string]map[string]string
	lists    map[string][]string
	counters map[string]int64
}

func newMockStore() *mockStore {
	return &mockStore{
		hashes:   make(map[string]map[string]string),
		lists:    make(map[string][]string),
		counters: make(map[string]int64),
	}
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	h, ok := m.hashes[key]
	if !ok {
		h = make(map[string]string)
		m.hashes[key] = h
	}
	for k, v := range fields {
		h[k] = v
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	out := make(map[string]string, len(m.hashes[key]))
	for k, v := range m.hashes[key] {
		out[k] = v
	}
	return out, nil
}

func (m *mockStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.hgetAllMultiF != nil {
		return m.hgetAllMultiF(ctx, keys)
	}
	out := make([]map[string]string, len(keys))
	for i, key := range keys {
		h, err := m.HGetAll(ctx, key)
		if err != nil {
			return nil, err
		}
		out[i] = h
	}
	return out, nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	delete(m.hashes, key)
	return nil
}

func (m *mockStore) Incr(ctx context.Context, key string) (int64, error) {
	if m.incrFn != nil {
		return m.incrFn(ctx, key)
	}
	m.counters[key]++
	return m.counters[key], nil
}

func (m *mockStore) RPush(ctx context.Context, key string, values ...string) error {
	if m.rpushFn != nil {
		return m.rpushFn(ctx, key, values...)
	}
	m.lists[key] = append(m.lists[key], values...)
	return nil
}

func (m *mockStore) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	if m.lrangeFn != nil {
		return m.lrangeFn(ctx, key, start, stop)
	}
	list := m.lists[key]
	if start == 0 && stop == -1 {
		out := make([]string, len(list))
		copy(out, list)
		return out, nil
	}
	return nil, nil
}

func (m *mockStore) LRem(ctx context.Context, key string, value string) error {
	if m.lremFn != nil {
		return m.lremFn(ctx, key, value)
	}
	var kept []string
	for _, v := range m.lists[key] {
		if v != value {
			kept = append(kept, v)
		}
	}
	m.lists[key] = kept
	return nil
}

func newTestRedis(t *testing.T) (*Redis, *mockStore) {
	t.Helper()
	ms := newMockStore()
	return NewRedis(ms, domrec.DefaultSchema()), ms
}

func profileFields(name, role, department, bio string) domrec.Fields {
	return domrec.Fields{
		{Name: "name", Value: name},
		{Name: "role", Value: role},
		{Name: "department", Value: department},
		{Name: "bio", Value: bio},
	}
}
