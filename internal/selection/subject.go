// Package selection holds a student's chosen electives and subject grades.
package selection

import "strings"

// Subject is one of the ten graded subjects.
type Subject string

const (
	SubjectChinese         Subject = "语文"
	SubjectMath            Subject = "数学"
	SubjectForeignLanguage Subject = "外语"
	SubjectPhysics         Subject = "物理"
	SubjectChemistry       Subject = "化学"
	SubjectBiology         Subject = "生物"
	SubjectHistory         Subject = "历史"
	SubjectGeography       Subject = "地理"
	SubjectPolitics        Subject = "政治"
	SubjectTechnology      Subject = "技术"
)

// ElectiveCount is the number of electives a student must choose.
const ElectiveCount = 3

var mandatorySubjects = []Subject{SubjectChinese, SubjectMath, SubjectForeignLanguage}

var electiveSubjects = []Subject{
	SubjectPhysics, SubjectChemistry, SubjectBiology,
	SubjectHistory, SubjectGeography, SubjectPolitics, SubjectTechnology,
}

// Mandatory returns the three always-graded subjects.
func Mandatory() []Subject {
	return append([]Subject(nil), mandatorySubjects...)
}

// Electives returns the seven elective subjects.
func Electives() []Subject {
	return append([]Subject(nil), electiveSubjects...)
}

// All returns every subject in canonical order: mandatory first, then electives.
func All() []Subject {
	out := make([]Subject, 0, len(mandatorySubjects)+len(electiveSubjects))
	out = append(out, mandatorySubjects...)
	return append(out, electiveSubjects...)
}

// Valid reports whether s is one of the ten known subjects.
func (s Subject) Valid() bool {
	return s.IsMandatory() || s.IsElective()
}

func (s Subject) IsMandatory() bool {
	for _, m := range mandatorySubjects {
		if s == m {
			return true
		}
	}
	return false
}

func (s Subject) IsElective() bool {
	for _, e := range electiveSubjects {
		if s == e {
			return true
		}
	}
	return false
}

// ParseSubject trims whitespace and returns the subject if known.
func ParseSubject(name string) (Subject, bool) {
	s := Subject(strings.TrimSpace(name))
	return s, s.Valid()
}
