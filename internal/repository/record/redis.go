package record

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/askdex/internal/domain"
	domrec "github.com/kailas-cloud/askdex/internal/domain/record"
)

// store is the consumer interface for the redis record driver (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Incr(ctx context.Context, key string) (int64, error)
	RPush(ctx context.Context, key string, values ...string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	LRem(ctx context.Context, key string, value string) error
}

// Redis is the redis-backed record store. Records live in hashes, insertion
// order in a list, id allocation through INCR. Scoring stays in-process on
// the derived search text, so ranking is identical to the memory driver.
type Redis struct {
	store  store
	schema domrec.Schema
}

// NewRedis creates a redis-backed record store validating against schema.
func NewRedis(s store, schema domrec.Schema) *Redis {
	return &Redis{store: s, schema: schema}
}

// Insert validates fields, allocates the next id and persists the record.
func (r *Redis) Insert(ctx context.Context, fields domrec.Fields) (int64, error) {
	fields = fields.Trimmed()
	if err := r.schema.Validate(fields); err != nil {
		return 0, err
	}

	id, err := r.store.Incr(ctx, counterKey())
	if err != nil {
		return 0, fmt.Errorf("allocate record id: %w", err)
	}

	rec := domrec.New(id, fields, r.schema.Searchable)
	if err := r.persist(ctx, &rec); err != nil {
		return 0, err
	}

	if err := r.store.RPush(ctx, orderKey(), formatID(id)); err != nil {
		// The hash without an order entry would be invisible to ListAll and
		// Search; drop it so a failed insert leaves nothing behind.
		_ = r.store.Del(ctx, recordKey(id))
		return 0, fmt.Errorf("append record order: %w", err)
	}

	return id, nil
}

// Get returns a record by id.
func (r *Redis) Get(ctx context.Context, id int64) (domrec.Record, error) {
	m, err := r.store.HGetAll(ctx, recordKey(id))
	if err != nil {
		return domrec.Record{}, fmt.Errorf("hgetall %s: %w", recordKey(id), err)
	}
	if len(m) == 0 {
		return domrec.Record{}, domain.ErrRecordNotFound
	}
	return parseHashFields(id, m)
}

// Update replaces a record's fields and re-derives its search text.
func (r *Redis) Update(ctx context.Context, id int64, fields domrec.Fields) error {
	fields = fields.Trimmed()
	if err := r.schema.Validate(fields); err != nil {
		return err
	}

	current, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	updated := current.WithFields(fields, r.schema.Searchable)
	return r.persist(ctx, &updated)
}

// Search loads all records and scores them in-process.
func (r *Redis) Search(ctx context.Context, terms []string) ([]domain.Match, error) {
	tokens := queryTokens(terms)
	if len(tokens) == 0 {
		return nil, nil
	}

	records, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var matches []domain.Match
	for i := range records {
		counts := domrec.TokenCounts(records[i].SearchText())
		if score := scoreCounts(tokens, counts); score > 0 {
			matches = append(matches, domain.Match{
				Record: records[i],
				Score:  float64(score),
			})
		}
	}

	sortMatches(matches)
	return matches, nil
}

// ListAll returns every record in insertion order.
func (r *Redis) ListAll(ctx context.Context) ([]domrec.Record, error) {
	ids, err := r.orderedIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = recordKey(id)
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	out := make([]domrec.Record, 0, len(ids))
	for i, m := range hashes {
		if len(m) == 0 {
			// Order entry without a hash: record deleted mid-listing.
			continue
		}
		rec, err := parseHashFields(ids[i], m)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Delete removes a record. Absent ids are a no-op.
func (r *Redis) Delete(ctx context.Context, id int64) error {
	if err := r.store.Del(ctx, recordKey(id)); err != nil {
		return fmt.Errorf("del %s: %w", recordKey(id), err)
	}
	if err := r.store.LRem(ctx, orderKey(), formatID(id)); err != nil {
		return fmt.Errorf("lrem record order: %w", err)
	}
	return nil
}

// Count returns the number of stored records.
func (r *Redis) Count(ctx context.Context) (int, error) {
	ids, err := r.orderedIDs(ctx)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (r *Redis) persist(ctx context.Context, rec *domrec.Record) error {
	fields, err := buildHashFields(rec)
	if err != nil {
		return err
	}
	if err := r.store.HSet(ctx, recordKey(rec.ID()), fields); err != nil {
		return fmt.Errorf("hset %s: %w", recordKey(rec.ID()), err)
	}
	return nil
}

func (r *Redis) orderedIDs(ctx context.Context) ([]int64, error) {
	raw, err := r.store.LRange(ctx, orderKey(), 0, -1)
	if err != nil {
		return nil, fmt.Errorf("lrange record order: %w", err)
	}

	ids := make([]int64, 0, len(raw))
	for _, s := range raw {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse record id %q: %w", s, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func recordKey(id int64) string {
	return domain.KeyPrefix + "record:" + formatID(id)
}

func orderKey() string {
	return domain.KeyPrefix + "records:order"
}

func counterKey() string {
	return domain.KeyPrefix + "records:next_id"
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
