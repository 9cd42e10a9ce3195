package record

// Schema declares which field names a record must carry, which are optional,
// and which feed the derived search text. Schema is configuration, validated
// once at startup.
type Schema struct {
	Required   []string
	Optional   []string
	Searchable []string
}

// DefaultSchema returns the people-profile schema.
func DefaultSchema() Schema {
	return Schema{
		Required:   []string{"name", "role", "department", "bio"},
		Optional:   []string{"email", "photo_url"},
		Searchable: []string{"name", "role", "department", "bio"},
	}
}

// Validate checks that every required field is present and non-empty after
// trimming, and that no undeclared field names appear. Returns a
// ValidationError listing every offending field at once.
func (s Schema) Validate(fields Fields) error {
	var bad []string

	for _, name := range s.Required {
		v, ok := fields.Get(name)
		if !ok || len(v) == 0 {
			bad = append(bad, name)
		}
	}

	declared := make(map[string]struct{}, len(s.Required)+len(s.Optional))
	for _, name := range s.Required {
		declared[name] = struct{}{}
	}
	for _, name := range s.Optional {
		declared[name] = struct{}{}
	}
	for _, f := range fields {
		if _, ok := declared[f.Name]; !ok {
			bad = append(bad, f.Name)
		}
	}

	if len(bad) > 0 {
		return NewValidationError(bad)
	}
	return nil
}
