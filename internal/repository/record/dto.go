package record

import (
	"encoding/json"
	"fmt"

	domrec "github.com/kailas-cloud/askdex/internal/domain/record"
)

// Hash layout of one record key. Field order matters for records, and redis
// hashes are unordered, so the ordered field list is stored as a JSON array
// under a reserved hash field alongside the derived search text.
const (
	hashFieldFields     = "__fields"
	hashFieldSearchText = "__search_text"
)

type fieldDTO struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// buildHashFields converts a domain record into a flat map[string]string for HSET.
func buildHashFields(rec *domrec.Record) (map[string]string, error) {
	fields := rec.Fields()
	dtos := make([]fieldDTO, len(fields))
	for i, f := range fields {
		dtos[i] = fieldDTO{Name: f.Name, Value: f.Value}
	}

	data, err := json.Marshal(dtos)
	if err != nil {
		return nil, fmt.Errorf("marshal fields: %w", err)
	}

	return map[string]string{
		hashFieldFields:     string(data),
		hashFieldSearchText: rec.SearchText(),
	}, nil
}

// parseHashFields converts a flat hash map back into a domain record.
func parseHashFields(id int64, m map[string]string) (domrec.Record, error) {
	raw, ok := m[hashFieldFields]
	if !ok {
		return domrec.Record{}, fmt.Errorf("record %d: missing %s hash field", id, hashFieldFields)
	}

	var dtos []fieldDTO
	if err := json.Unmarshal([]byte(raw), &dtos); err != nil {
		return domrec.Record{}, fmt.Errorf("record %d: unmarshal fields: %w", id, err)
	}

	fields := make(domrec.Fields, len(dtos))
	for i, d := range dtos {
		fields[i] = domrec.Field{Name: d.Name, Value: d.Value}
	}

	return domrec.Reconstruct(id, fields, m[hashFieldSearchText]), nil
}
