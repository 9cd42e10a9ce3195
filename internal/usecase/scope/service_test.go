package scope

import (
	"testing"

	"github.com/kailas-cloud/askdex/internal/domain"
)

func testDomains() []Domain {
	return []Domain{
		{Category: "people", Keywords: []string{"who", "ceo", "cto", "role", "leader"}},
		{Category: "projects", Keywords: []string{"project", "deadline", "milestone"}},
	}
}

func TestClassify(t *testing.T) {
	svc := New(testDomains())

	tests := []struct {
		name         string
		question     string
		wantInScope  bool
		wantCategory string
	}{
		{name: "people question", question: "Who is the CTO?", wantInScope: true, wantCategory: "people"},
		{name: "case insensitive", question: "WHO LEADS ENGINEERING", wantInScope: true, wantCategory: "people"},
		{name: "second domain", question: "what's the project deadline", wantInScope: true, wantCategory: "projects"},
		{name: "first matching domain wins", question: "who owns the project", wantInScope: true, wantCategory: "people"},
		{name: "out of scope", question: "What's the weather today?", wantInScope: false, wantCategory: domain.CategoryUnknown},
		{name: "empty question", question: "", wantInScope: false, wantCategory: domain.CategoryUnknown},
		{name: "whitespace only", question: "   \t\n", wantInScope: false, wantCategory: domain.CategoryUnknown},
		{name: "punctuation only", question: "?!?", wantInScope: false, wantCategory: domain.CategoryUnknown},
		// Substring semantics: keyword inside a larger token still matches.
		{name: "keyword as substring", question: "explain ceorate trends", wantInScope: true, wantCategory: "people"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Classify(tt.question)
			if got.InScope != tt.wantInScope {
				t.Errorf("InScope = %v, want %v", got.InScope, tt.wantInScope)
			}
			if got.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", got.Category, tt.wantCategory)
			}
		})
	}
}

func TestClassify_Idempotent(t *testing.T) {
	svc := New(testDomains())

	questions := []string{"Who is the CTO?", "What's the weather today?", "", "project deadline"}
	for _, q := range questions {
		first := svc.Classify(q)
		for i := 0; i < 3; i++ {
			if got := svc.Classify(q); got != first {
				t.Errorf("Classify(%q) not idempotent: %+v vs %+v", q, got, first)
			}
		}
	}
}

func TestClassify_NoDomains(t *testing.T) {
	svc := New(nil)
	if got := svc.Classify("who is the ceo"); got.InScope {
		t.Errorf("expected out of scope with no domains, got %+v", got)
	}
}
