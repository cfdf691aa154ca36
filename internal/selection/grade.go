package selection

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Grade is an academic proficiency letter, A (best) through E.
// The zero value means no grade was given.
type Grade uint8

const (
	GradeUnset Grade = iota
	GradeA
	GradeB
	GradeC
	GradeD
	GradeE
)

// NumGrades is the number of valid grade letters.
const NumGrades = 5

// Grades returns the valid grades from best to worst.
func Grades() []Grade {
	return []Grade{GradeA, GradeB, GradeC, GradeD, GradeE}
}

func (g Grade) Valid() bool {
	return g >= GradeA && g <= GradeE
}

// Index returns the zero-based position of g in A..E.
// It panics on an invalid grade; callers validate first.
func (g Grade) Index() int {
	if !g.Valid() {
		panic(fmt.Sprintf("selection: invalid grade %d", g))
	}
	return int(g - GradeA)
}

func (g Grade) String() string {
	if !g.Valid() {
		return ""
	}
	return string(rune('A' + g.Index()))
}

// ParseGrade accepts a single letter A-E in either case.
func ParseGrade(s string) (Grade, error) {
	t := strings.ToUpper(strings.TrimSpace(s))
	if len(t) != 1 || t[0] < 'A' || t[0] > 'E' {
		return GradeUnset, fmt.Errorf("invalid grade %q: want one of A, B, C, D, E", s)
	}
	return GradeA + Grade(t[0]-'A'), nil
}

func (g Grade) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("invalid grade %d", g)
	}
	return []byte(g.String()), nil
}

func (g *Grade) UnmarshalText(text []byte) error {
	parsed, err := ParseGrade(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

func (g *Grade) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: grade must be a scalar", node.Line)
	}
	// Blank grades stay unset so validation can name the subject.
	if strings.TrimSpace(node.Value) == "" || node.ShortTag() == "!!null" {
		*g = GradeUnset
		return nil
	}
	if err := g.UnmarshalText([]byte(node.Value)); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	return nil
}
