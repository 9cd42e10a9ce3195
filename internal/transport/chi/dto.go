package chi

import (
	domrec "github.com/kailas-cloud/askdex/internal/domain/record"
)

// Wire types for the JSON API. Record fields travel as an ordered array so
// clients see them in insertion order.

type fieldDTO struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type recordDTO struct {
	ID     int64      `json:"id"`
	Fields []fieldDTO `json:"fields"`
}

type recordWriteRequest struct {
	Fields []fieldDTO `json:"fields"`
}

type recordListResponse struct {
	Items []recordDTO `json:"items"`
	Total int         `json:"total"`
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer         string  `json:"answer"`
	InScope        bool    `json:"in_scope"`
	CitedRecordIDs []int64 `json:"cited_record_ids"`
	Confidence     float64 `json:"confidence"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type errorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

func recordToDTO(rec domrec.Record) recordDTO {
	fields := rec.Fields()
	out := make([]fieldDTO, len(fields))
	for i, f := range fields {
		out[i] = fieldDTO{Name: f.Name, Value: f.Value}
	}
	return recordDTO{ID: rec.ID(), Fields: out}
}

func fieldsFromDTO(in []fieldDTO) domrec.Fields {
	fields := make(domrec.Fields, len(in))
	for i, f := range in {
		fields[i] = domrec.Field{Name: f.Name, Value: f.Value}
	}
	return fields
}
