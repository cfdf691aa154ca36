package selection

import (
	"crypto/sha256"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SubjectGrades maps each subject to the grade the student received.
type SubjectGrades map[Subject]Grade

// Selection is the student's input: three chosen electives and a grade for
// every subject. It is owned by the caller and passed by value.
type Selection struct {
	Electives []Subject     `json:"electives" yaml:"electives"`
	Grades    SubjectGrades `json:"grades" yaml:"grades"`
}

// HasElective reports whether s is among the chosen electives.
func (sel Selection) HasElective(s Subject) bool {
	for _, e := range sel.Electives {
		if e == s {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of sel.
func (sel Selection) Clone() Selection {
	out := Selection{Electives: append([]Subject(nil), sel.Electives...)}
	if sel.Grades != nil {
		out.Grades = make(SubjectGrades, len(sel.Grades))
		for k, v := range sel.Grades {
			out.Grades[k] = v
		}
	}
	return out
}

// File is a selection loaded from disk.
type File struct {
	FilePath  string
	Selection Selection
	Hash      string
}

// Load reads a YAML (or JSON) selection file and computes its SHA-256 hash.
// The selection is parsed but not validated.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("selection.Load: %w", err)
	}
	var sel Selection
	if err := yaml.Unmarshal(data, &sel); err != nil {
		return nil, fmt.Errorf("selection.Load: parse %s: %w", path, err)
	}
	h := sha256.Sum256(data)
	return &File{
		FilePath:  path,
		Selection: sel,
		Hash:      fmt.Sprintf("sha256:%x", h),
	}, nil
}

// ParseElectives splits a comma-separated list such as "物理,化学,生物".
// Names are not checked here; Validate reports unknown or duplicate entries.
func ParseElectives(list string) []Subject {
	var out []Subject
	for _, part := range splitList(list) {
		out = append(out, Subject(part))
	}
	return out
}

// ParseGrades parses "语文=A,数学=B,..." into a grade map. Unknown subject
// names are rejected.
func ParseGrades(list string) (SubjectGrades, error) {
	grades := make(SubjectGrades)
	for _, part := range splitList(list) {
		name, letter, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("selection.ParseGrades: %q is not subject=grade", part)
		}
		s, known := ParseSubject(name)
		if !known {
			return nil, fmt.Errorf("selection.ParseGrades: unknown subject %q", s)
		}
		if _, dup := grades[s]; dup {
			return nil, fmt.Errorf("selection.ParseGrades: subject %s given twice", s)
		}
		g, err := ParseGrade(letter)
		if err != nil {
			return nil, fmt.Errorf("selection.ParseGrades: %s: %w", s, err)
		}
		grades[s] = g
	}
	return grades, nil
}

// ParseGradeString parses a compact string of ten letters, one per subject
// in the order returned by All, e.g. "AABBAACDEA".
func ParseGradeString(letters string) (SubjectGrades, error) {
	letters = strings.TrimSpace(letters)
	subjects := All()
	if len(letters) != len(subjects) {
		return nil, fmt.Errorf("selection.ParseGradeString: want %d letters, got %d", len(subjects), len(letters))
	}
	grades := make(SubjectGrades, len(subjects))
	for i, s := range subjects {
		g, err := ParseGrade(letters[i : i+1])
		if err != nil {
			return nil, fmt.Errorf("selection.ParseGradeString: %s: %w", s, err)
		}
		grades[s] = g
	}
	return grades, nil
}

func splitList(list string) []string {
	var out []string
	for _, p := range strings.FieldsFunc(list, func(r rune) bool { return r == ',' || r == '，' }) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
