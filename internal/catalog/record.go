// Package catalog loads and validates the static list of major groups.
package catalog

import (
	"fmt"

	"github.com/dshills/gradefit/internal/selection"
)

// Weights holds the points awarded per subject for each grade, indexed A..E.
type Weights [selection.NumGrades]Points

// For returns the weight for grade g. g must be valid.
func (w Weights) For(g selection.Grade) Points {
	return w[g.Index()]
}

// Record is one major group (专业组) in the catalog.
type Record struct {
	School           string              `json:"school"`
	Group            string              `json:"group"`
	Weights          Weights             `json:"weights"`
	RequiredSubjects []selection.Subject `json:"required_subjects"`
	Threshold        Points              `json:"score"`
}

// CatalogError identifies a malformed catalog record.
type CatalogError struct {
	Index  int // zero-based record position; -1 for document-level problems
	School string
	Group  string
	Field  string
	Err    error
}

func (e *CatalogError) Error() string {
	where := "catalog"
	if e.Index >= 0 {
		where = fmt.Sprintf("records[%d]", e.Index)
		if e.School != "" || e.Group != "" {
			where += fmt.Sprintf(" (%s / %s)", e.School, e.Group)
		}
	}
	if e.Field != "" {
		where += " " + e.Field
	}
	return where + ": " + e.Err.Error()
}

func (e *CatalogError) Unwrap() error { return e.Err }

func recordError(i int, r Record, field, format string, args ...any) *CatalogError {
	return &CatalogError{
		Index:  i,
		School: r.School,
		Group:  r.Group,
		Field:  field,
		Err:    fmt.Errorf(format, args...),
	}
}

// validateRecord checks the invariants evaluation relies on.
func validateRecord(i int, r Record) error {
	if r.School == "" {
		return recordError(i, r, "school", "required")
	}
	if r.Group == "" {
		return recordError(i, r, "group", "required")
	}
	for gi, w := range r.Weights {
		if w < 0 {
			return recordError(i, r, weightKeys[gi], "must not be negative")
		}
	}
	if r.Threshold < 0 {
		return recordError(i, r, "score", "must not be negative")
	}
	seen := make(map[selection.Subject]bool)
	for _, s := range r.RequiredSubjects {
		if !s.IsElective() {
			return recordError(i, r, "required_subjects", "%q is not an elective subject", s)
		}
		if seen[s] {
			return recordError(i, r, "required_subjects", "duplicate subject %s", s)
		}
		seen[s] = true
	}
	return nil
}

// Catalog is an immutable, validated sequence of records.
type Catalog struct {
	Name        string
	Description string
	Hash        string
	records     []Record
}

// New validates records and wraps them in a Catalog. The records are copied.
func New(name string, records []Record) (*Catalog, error) {
	out := make([]Record, len(records))
	for i, r := range records {
		if err := validateRecord(i, r); err != nil {
			return nil, err
		}
		r.RequiredSubjects = append([]selection.Subject(nil), r.RequiredSubjects...)
		out[i] = r
	}
	return &Catalog{Name: name, records: out}, nil
}

// Len returns the number of records.
func (c *Catalog) Len() int { return len(c.records) }

// Record returns the i-th record. The RequiredSubjects slice is shared and
// must not be modified.
func (c *Catalog) Record(i int) Record { return c.records[i] }

// Records returns a copy of all records in catalog order.
func (c *Catalog) Records() []Record {
	out := make([]Record, len(c.records))
	for i, r := range c.records {
		r.RequiredSubjects = append([]selection.Subject(nil), r.RequiredSubjects...)
		out[i] = r
	}
	return out
}
