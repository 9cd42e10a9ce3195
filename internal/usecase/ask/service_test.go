package ask

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/askdex/internal/domain"
	domrec "github.com/kailas-cloud/askdex/internal/domain/record"
	"github.com/kailas-cloud/askdex/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterGenerationMetrics()
	m.Run()
}

type mockClassifier struct {
	verdict domain.ScopeVerdict
}

func (m *mockClassifier) Classify(string) domain.ScopeVerdict { return m.verdict }

type mockRetriever struct {
	result   domain.RetrievalResult
	err      error
	calls    int
	lastTopK int
}

func (m *mockRetriever) Retrieve(_ context.Context, _ string, topK int) (domain.RetrievalResult, error) {
	m.calls++
	m.lastTopK = topK
	return m.result, m.err
}

type mockComposer struct {
	result       domain.AnswerResult
	lastVerdict  domain.ScopeVerdict
	lastRetrieve domain.RetrievalResult
}

func (m *mockComposer) Compose(_ context.Context, _ string, verdict domain.ScopeVerdict, retrieval domain.RetrievalResult) domain.AnswerResult {
	m.lastVerdict = verdict
	m.lastRetrieve = retrieval
	return m.result
}

func ctoMatch() domain.Match {
	rec := domrec.New(1, domrec.Fields{
		{Name: "name", Value: "Jane Doe"},
		{Name: "role", Value: "CTO"},
	}, []string{"name", "role"})
	return domain.Match{Record: rec, Score: 2}
}

func TestAnswer_BlankQuestionIsOutOfScope(t *testing.T) {
	retriever := &mockRetriever{}
	composer := &mockComposer{result: domain.OutOfScopeAnswer("ask me about people")}
	svc := New(&mockClassifier{verdict: domain.OutOfScope()}, retriever, composer, 3, zap.NewNop())

	for _, question := range []string{"", "   ", "\t\n"} {
		got, err := svc.Answer(context.Background(), question)
		if err != nil {
			t.Fatalf("Answer(%q): %v, want out-of-scope answer, never an error", question, err)
		}
		if got.InScope {
			t.Errorf("Answer(%q).InScope = true, want false", question)
		}
		if got.Confidence != domain.ConfidenceNone {
			t.Errorf("Answer(%q).Confidence = %v, want 0", question, got.Confidence)
		}
	}
	if retriever.calls != 0 {
		t.Error("retriever must not run for a blank question")
	}
}

func TestAnswer_OutOfScopeSkipsRetriever(t *testing.T) {
	retriever := &mockRetriever{}
	composer := &mockComposer{result: domain.OutOfScopeAnswer("outside")}
	svc := New(&mockClassifier{verdict: domain.OutOfScope()}, retriever, composer, 3, zap.NewNop())

	got, err := svc.Answer(context.Background(), "What's the weather today?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if retriever.calls != 0 {
		t.Errorf("retriever called %d times for an out-of-scope question", retriever.calls)
	}
	if got.InScope {
		t.Error("InScope = true, want false")
	}
	if !composer.lastRetrieve.Empty() {
		t.Error("composer should receive an empty retrieval result")
	}
}

func TestAnswer_InScopeRunsFullPipeline(t *testing.T) {
	retriever := &mockRetriever{result: domain.RetrievalResult{Matches: []domain.Match{ctoMatch()}}}
	composer := &mockComposer{result: domain.GroundedAnswer("Jane Doe is the CTO.", []int64{1}, 0.85)}
	svc := New(&mockClassifier{verdict: domain.InScopeFor("people")}, retriever, composer, 5, zap.NewNop())

	got, err := svc.Answer(context.Background(), "Who is the CTO?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if retriever.calls != 1 {
		t.Fatalf("retriever calls = %d, want 1", retriever.calls)
	}
	if retriever.lastTopK != 5 {
		t.Errorf("topK = %d, want 5", retriever.lastTopK)
	}
	if composer.lastVerdict.Category != "people" {
		t.Errorf("composer verdict category = %q, want people", composer.lastVerdict.Category)
	}
	if len(composer.lastRetrieve.Matches) != 1 {
		t.Errorf("composer retrieval matches = %d, want 1", len(composer.lastRetrieve.Matches))
	}
	if got.AnswerText != "Jane Doe is the CTO." {
		t.Errorf("AnswerText = %q", got.AnswerText)
	}
}

func TestAnswer_RetrieverError(t *testing.T) {
	storeErr := errors.New("store unavailable")
	retriever := &mockRetriever{err: storeErr}
	svc := New(&mockClassifier{verdict: domain.InScopeFor("people")}, retriever, &mockComposer{}, 3, zap.NewNop())

	_, err := svc.Answer(context.Background(), "Who is the CTO?")
	if !errors.Is(err, storeErr) {
		t.Fatalf("err = %v, want wrapped store error", err)
	}
}

func TestNew_DefaultsTopK(t *testing.T) {
	retriever := &mockRetriever{}
	svc := New(&mockClassifier{verdict: domain.InScopeFor("people")}, retriever, &mockComposer{result: domain.NoMatchAnswer("n/a")}, 0, zap.NewNop())

	if _, err := svc.Answer(context.Background(), "who"); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if retriever.lastTopK != defaultTopK {
		t.Errorf("topK = %d, want default %d", retriever.lastTopK, defaultTopK)
	}
}

func TestClassifyOutcome(t *testing.T) {
	tests := []struct {
		name   string
		result domain.AnswerResult
		want   string
	}{
		{name: "out of scope", result: domain.OutOfScopeAnswer("x"), want: outcomeOutOfScope},
		{name: "grounded", result: domain.GroundedAnswer("x", []int64{1}, 0.85), want: outcomeGrounded},
		{name: "no match", result: domain.NoMatchAnswer("x"), want: outcomeNoMatch},
		{name: "degraded", result: domain.DegradedAnswer("x"), want: outcomeDegraded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyOutcome(tt.result); got != tt.want {
				t.Errorf("classifyOutcome() = %q, want %q", got, tt.want)
			}
		})
	}
}
