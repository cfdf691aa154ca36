// Package eligibility scores a selection against every major group in a
// catalog and decides which groups the student may apply to.
package eligibility

import (
	"fmt"

	"github.com/dshills/gradefit/internal/catalog"
	"github.com/dshills/gradefit/internal/selection"
)

// Result is the outcome for one catalog record.
type Result struct {
	School           string              `json:"school"`
	Group            string              `json:"group"`
	TotalScore       catalog.Points      `json:"total_score"`
	Threshold        catalog.Points      `json:"threshold"`
	PrerequisitesMet bool                `json:"prerequisites_met"`
	MissingSubjects  []selection.Subject `json:"missing_subjects,omitempty"`
	Eligible         bool                `json:"is_eligible"`
}

// Evaluate validates sel and returns one Result per catalog record, in
// catalog order. On a validation failure it returns a
// selection.ValidationErrors and no results. Neither input is modified.
func Evaluate(sel selection.Selection, cat *catalog.Catalog) ([]Result, error) {
	if err := selection.Validate(sel); err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, fmt.Errorf("eligibility.Evaluate: nil catalog")
	}

	results := make([]Result, cat.Len())
	for i := range results {
		rec := cat.Record(i)
		missing := MissingSubjects(sel, rec.RequiredSubjects)
		score := Score(sel.Grades, rec.Weights)
		met := len(missing) == 0
		results[i] = Result{
			School:           rec.School,
			Group:            rec.Group,
			TotalScore:       score,
			Threshold:        rec.Threshold,
			PrerequisitesMet: met,
			MissingSubjects:  missing,
			Eligible:         met && score >= rec.Threshold,
		}
	}
	return results, nil
}

// Score sums the weight of every subject's grade. All ten subjects count,
// mandatory ones included. Grades must be valid.
func Score(grades selection.SubjectGrades, w catalog.Weights) catalog.Points {
	var total catalog.Points
	for _, g := range grades {
		total += w.For(g)
	}
	return total
}

// MissingSubjects returns the required subjects that are not among the
// chosen electives, in requirement order. An empty result means the
// prerequisites are met.
func MissingSubjects(sel selection.Selection, required []selection.Subject) []selection.Subject {
	var missing []selection.Subject
	for _, s := range required {
		if !sel.HasElective(s) {
			missing = append(missing, s)
		}
	}
	return missing
}

// Eligible filters results down to the eligible ones without reordering.
func Eligible(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Eligible {
			out = append(out, r)
		}
	}
	return out
}
