package catalog

// Field names a required payload field and knows how to detect its absence on
// the parsed record.
type Field[T any] struct {
	Name    string
	Missing func(*T) bool
}

// Descriptor parameterizes the generic CRUD service over one resource type:
// its display name, ordered required-field list, addressing mode, and the
// boolean columns that may be toggled.
type Descriptor[T any] struct {
	// Name is the display name used in error messages, e.g. "Course".
	Name string

	// Required is checked in order on create; the first missing field names
	// the validation error.
	Required []Field[T]

	// Slug reads the record's slug. Nil means the type is id-addressed and
	// carries no uniqueness rule (reviews).
	Slug func(*T) string

	// Flags lists the boolean columns ToggleFlag accepts.
	Flags []string

	// Normalize optionally clamps or derives fields before persisting.
	Normalize func(*T)
}

// SlugAddressed reports whether public lookups use the slug column.
func (d Descriptor[T]) SlugAddressed() bool {
	return d.Slug != nil
}

func (d Descriptor[T]) firstMissing(rec *T) string {
	for _, f := range d.Required {
		if f.Missing(rec) {
			return f.Name
		}
	}
	return ""
}

func (d Descriptor[T]) allowsFlag(name string) bool {
	for _, f := range d.Flags {
		if f == name {
			return true
		}
	}
	return false
}
