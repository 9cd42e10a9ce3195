package record

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/kailas-cloud/askdex/internal/domain"
	domrec "github.com/kailas-cloud/askdex/internal/domain/record"
)

func newTestMemory() *Memory {
	return NewMemory(domrec.DefaultSchema())
}

func TestMemory_InsertAssignsMonotonicIDs(t *testing.T) {
	ctx := context.Background()
	m := newTestMemory()

	id1, err := m.Insert(ctx, profileFields("Ada Lovelace", "CEO", "Engineering", "Pioneer."))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	id2, err := m.Insert(ctx, profileFields("Jane Doe", "CTO", "Engineering", "Leads engineering."))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if id1 != 1 || id2 != 2 {
		t.Errorf("ids = %d, %d, want 1, 2", id1, id2)
	}
}

func TestMemory_InsertValidation(t *testing.T) {
	ctx := context.Background()
	m := newTestMemory()

	_, err := m.Insert(ctx, domrec.Fields{
		{Name: "name", Value: "   "},
		{Name: "role", Value: "CTO"},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error is not *ValidationError: %v", err)
	}
	// name is empty after trimming, department and bio are missing.
	want := map[string]bool{"name": true, "department": true, "bio": true}
	if len(verr.Fields) != len(want) {
		t.Fatalf("bad fields = %v, want %v", verr.Fields, want)
	}
	for _, f := range verr.Fields {
		if !want[f] {
			t.Errorf("unexpected bad field %q", f)
		}
	}
}

func TestMemory_InsertSearchRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := newTestMemory()

	id, err := m.Insert(ctx, profileFields("Ada Lovelace", "CEO", "Engineering", "First programmer."))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	matches, err := m.Search(ctx, []string{"CEO"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Record.ID() != id {
		t.Errorf("matched id = %d, want %d", matches[0].Record.ID(), id)
	}
	if matches[0].Score <= 0 {
		t.Errorf("score = %v, want > 0", matches[0].Score)
	}
}

func TestMemory_SearchRankingAndTies(t *testing.T) {
	ctx := context.Background()
	m := newTestMemory()

	// Record 1 mentions "engineering" twice, record 2 once, record 3 never.
	id1, _ := m.Insert(ctx, profileFields("Jane Doe", "CTO", "Engineering", "Leads engineering."))
	id2, _ := m.Insert(ctx, profileFields("John Roe", "VP", "Engineering", "Ships features."))
	_, _ = m.Insert(ctx, profileFields("Ann Poe", "CFO", "Finance", "Counts beans."))

	matches, err := m.Search(ctx, []string{"engineering"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Record.ID() != id1 || matches[1].Record.ID() != id2 {
		t.Errorf("order = [%d, %d], want [%d, %d]",
			matches[0].Record.ID(), matches[1].Record.ID(), id1, id2)
	}
	if matches[0].Score <= matches[1].Score {
		t.Errorf("scores = %v, %v, want descending", matches[0].Score, matches[1].Score)
	}

	// Equal-score tie breaks by id ascending.
	tied, err := m.Search(ctx, []string{"doe", "roe"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(tied) != 2 || tied[0].Record.ID() != id1 || tied[1].Record.ID() != id2 {
		t.Errorf("tie order = %v, want ids [%d, %d]", tied, id1, id2)
	}
}

func TestMemory_SearchDeterminism(t *testing.T) {
	ctx := context.Background()
	m := newTestMemory()
	for i := 0; i < 10; i++ {
		_, _ = m.Insert(ctx, profileFields(
			fmt.Sprintf("Person %d", i), "Engineer", "Engineering", "Writes code."))
	}

	first, err := m.Search(ctx, []string{"engineer"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := m.Search(ctx, []string{"engineer"})
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("result size changed between runs: %d vs %d", len(again), len(first))
		}
		for j := range again {
			if again[j].Record.ID() != first[j].Record.ID() {
				t.Fatalf("order changed between runs at %d", j)
			}
		}
	}
}

func TestMemory_SearchNoMatches(t *testing.T) {
	ctx := context.Background()
	m := newTestMemory()
	_, _ = m.Insert(ctx, profileFields("Jane Doe", "CTO", "Engineering", "Leads engineering."))

	matches, err := m.Search(ctx, []string{"weather"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}

	matches, err = m.Search(ctx, nil)
	if err != nil {
		t.Fatalf("empty search: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches for empty terms, got %d", len(matches))
	}
}

func TestMemory_GetNotFound(t *testing.T) {
	m := newTestMemory()
	_, err := m.Get(context.Background(), 42)
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Errorf("error = %v, want ErrRecordNotFound", err)
	}
}

func TestMemory_UpdateRecomputesSearchText(t *testing.T) {
	ctx := context.Background()
	m := newTestMemory()

	id, _ := m.Insert(ctx, profileFields("Jane Doe", "CTO", "Engineering", "Leads engineering."))
	if err := m.Update(ctx, id, profileFields("Jane Doe", "CEO", "Leadership", "Runs the company.")); err != nil {
		t.Fatalf("update: %v", err)
	}

	if matches, _ := m.Search(ctx, []string{"cto"}); len(matches) != 0 {
		t.Errorf("stale index: old role still matches")
	}
	matches, _ := m.Search(ctx, []string{"ceo"})
	if len(matches) != 1 || matches[0].Record.ID() != id {
		t.Errorf("new role not indexed: %v", matches)
	}
}

func TestMemory_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m := newTestMemory()

	id, _ := m.Insert(ctx, profileFields("Jane Doe", "CTO", "Engineering", "Leads engineering."))

	if err := m.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	// Second delete of the same id must be a no-op, not an error.
	if err := m.Delete(ctx, id); err != nil {
		t.Fatalf("repeat delete: %v", err)
	}
	if err := m.Delete(ctx, 999); err != nil {
		t.Fatalf("delete of never-existing id: %v", err)
	}

	if _, err := m.Get(ctx, id); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Errorf("record still present after delete")
	}
}

func TestMemory_ListAllInsertionOrder(t *testing.T) {
	ctx := context.Background()
	m := newTestMemory()

	id1, _ := m.Insert(ctx, profileFields("A", "CEO", "X", "a"))
	id2, _ := m.Insert(ctx, profileFields("B", "CTO", "Y", "b"))
	id3, _ := m.Insert(ctx, profileFields("C", "CFO", "Z", "c"))
	_ = m.Delete(ctx, id2)

	records, err := m.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 || records[0].ID() != id1 || records[1].ID() != id3 {
		t.Errorf("list order wrong: %v", records)
	}

	n, _ := m.Count(ctx)
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	m := newTestMemory()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, _ = m.Insert(ctx, profileFields(
					fmt.Sprintf("Person %d-%d", i, j), "Engineer", "Engineering", "Writes code."))
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, _ = m.Search(ctx, []string{"engineer"})
				_, _ = m.ListAll(ctx)
			}
		}()
	}
	wg.Wait()

	n, _ := m.Count(ctx)
	if n != 8*50 {
		t.Errorf("count = %d, want %d", n, 8*50)
	}
}
