package askdex

// Field is a single named value in a record. Field order is preserved.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Record is a stored record with its server-assigned id.
type Record struct {
	ID     int64   `json:"id"`
	Fields []Field `json:"fields"`
}

// Answer is the outcome of one question.
type Answer struct {
	Answer         string  `json:"answer"`
	InScope        bool    `json:"in_scope"`
	CitedRecordIDs []int64 `json:"cited_record_ids"`
	Confidence     float64 `json:"confidence"`
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            `json:"status"` // "ok", "degraded", "error"
	Checks map[string]string `json:"checks"` // component -> "ok"/"error"
}
