package report

import (
	"bytes"
	"fmt"

	"github.com/dshills/gradefit/internal/catalog"
	"github.com/dshills/gradefit/internal/eligibility"
	"github.com/dshills/gradefit/internal/selection"
)

// GradeCounts is the number of subjects at each grade, indexed A..E.
type GradeCounts [selection.NumGrades]int

// Of returns the count for grade g.
func (c GradeCounts) Of(g selection.Grade) int {
	return c[g.Index()]
}

// MarshalJSON emits counts as an object keyed by grade letter.
func (c GradeCounts) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, g := range selection.Grades() {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%q:%d", g.String(), c[i])
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// CountGrades tallies valid grades; unset or invalid entries are skipped.
func CountGrades(grades selection.SubjectGrades) GradeCounts {
	var c GradeCounts
	for _, g := range grades {
		if g.Valid() {
			c[g.Index()]++
		}
	}
	return c
}

// Options controls how results are presented.
type Options struct {
	EligibleOnly bool
}

// Build assembles a report from evaluation results. Results are copied,
// never recomputed, and keep catalog order within each school. Schools
// appear in the order of their first result.
func Build(results []eligibility.Result, sel selection.Selection, cat *catalog.Catalog, opts Options) *Report {
	sel = sel.Clone()
	r := &Report{
		Input: Input{
			Electives:    sel.Electives,
			Grades:       sel.Grades,
			GradeCounts:  CountGrades(sel.Grades),
			EligibleOnly: opts.EligibleOnly,
		},
		Summary: ComputeSummary(results),
		Schools: []School{},
	}
	if cat != nil {
		r.Input.Catalog = cat.Name
		r.Input.CatalogHash = cat.Hash
	}

	shown := results
	if opts.EligibleOnly {
		shown = eligibility.Eligible(results)
	}
	r.Schools = GroupBySchool(shown)
	return r
}

// GroupBySchool buckets results by school in first-appearance order.
func GroupBySchool(results []eligibility.Result) []School {
	schools := []School{}
	index := make(map[string]int)
	for _, res := range results {
		res.MissingSubjects = append([]selection.Subject(nil), res.MissingSubjects...)
		i, ok := index[res.School]
		if !ok {
			i = len(schools)
			index[res.School] = i
			schools = append(schools, School{Name: res.School, Score: res.TotalScore})
		}
		schools[i].Groups = append(schools[i].Groups, res)
	}
	return schools
}

// ComputeSummary counts groups and schools across all results.
func ComputeSummary(results []eligibility.Result) Summary {
	s := Summary{Groups: len(results)}
	schools := make(map[string]bool)
	for _, res := range results {
		if _, seen := schools[res.School]; !seen {
			schools[res.School] = false
		}
		if res.Eligible {
			s.EligibleGroups++
			schools[res.School] = true
		}
	}
	s.Schools = len(schools)
	for _, eligible := range schools {
		if eligible {
			s.EligibleSchools++
		}
	}
	return s
}
