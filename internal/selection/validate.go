package selection

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError describes a single problem with a selection.
type ValidationError struct {
	Field   string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ValidationErrors is every problem found in one selection.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return "invalid selection: " + strings.Join(msgs, "; ")
}

// Fields returns the offending field names in report order.
func (v ValidationErrors) Fields() []string {
	out := make([]string, len(v))
	for i, e := range v {
		out[i] = e.Field
	}
	return out
}

// Validate checks the elective set and grade map. It returns nil or a
// ValidationErrors value listing every violation.
func Validate(sel Selection) error {
	var errs ValidationErrors

	if len(sel.Electives) != ElectiveCount {
		errs = append(errs, ValidationError{"electives", fmt.Sprintf("want exactly %d electives, got %d", ElectiveCount, len(sel.Electives))})
	}
	seen := make(map[Subject]bool)
	for i, e := range sel.Electives {
		field := fmt.Sprintf("electives[%d]", i)
		switch {
		case !e.IsElective():
			errs = append(errs, ValidationError{field, fmt.Sprintf("%q is not an elective subject", e)})
		case seen[e]:
			errs = append(errs, ValidationError{field, fmt.Sprintf("duplicate elective %s", e)})
		}
		seen[e] = true
	}

	for _, s := range All() {
		field := "grades." + string(s)
		g, ok := sel.Grades[s]
		switch {
		case !ok || g == GradeUnset:
			errs = append(errs, ValidationError{field, "missing grade"})
		case !g.Valid():
			errs = append(errs, ValidationError{field, fmt.Sprintf("invalid grade %d", g)})
		}
	}
	var unknown []string
	for s := range sel.Grades {
		if !s.Valid() {
			unknown = append(unknown, string(s))
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		errs = append(errs, ValidationError{"grades." + name, "unknown subject"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
