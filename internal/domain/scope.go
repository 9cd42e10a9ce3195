package domain

// CategoryUnknown is the verdict category for questions outside every configured domain.
const CategoryUnknown = "unknown"

// ScopeVerdict is the outcome of scope classification for a single question.
// Ephemeral: recomputed per question, never persisted.
type ScopeVerdict struct {
	InScope  bool
	Category string
}

// OutOfScope returns the verdict for a question no domain covers.
func OutOfScope() ScopeVerdict {
	return ScopeVerdict{InScope: false, Category: CategoryUnknown}
}

// InScopeFor returns the verdict for a question matched by the given domain category.
func InScopeFor(category string) ScopeVerdict {
	return ScopeVerdict{InScope: true, Category: category}
}
