// Package report defines the gradefit output document and groups
// evaluation results by school for display.
package report

import (
	"time"

	"github.com/dshills/gradefit/internal/catalog"
	"github.com/dshills/gradefit/internal/eligibility"
	"github.com/dshills/gradefit/internal/selection"
)

// Report is the top-level output object.
type Report struct {
	Tool    string   `json:"tool"`
	Version string   `json:"version"`
	Input   Input    `json:"input"`
	Summary Summary  `json:"summary"`
	Schools []School `json:"schools"`
	Meta    Meta     `json:"meta"`
}

// Input records the selection and catalog the report was computed from.
type Input struct {
	Electives     []selection.Subject     `json:"electives"`
	Grades        selection.SubjectGrades `json:"grades"`
	GradeCounts   GradeCounts             `json:"grade_counts"`
	SelectionFile string                  `json:"selection_file,omitempty"`
	SelectionHash string                  `json:"selection_hash,omitempty"`
	Catalog       string                  `json:"catalog"`
	CatalogHash   string                  `json:"catalog_hash,omitempty"`
	EligibleOnly  bool                    `json:"eligible_only"`
}

// Summary counts groups and schools over the full result set, before any
// eligible-only filtering.
type Summary struct {
	Groups          int `json:"groups"`
	EligibleGroups  int `json:"eligible_groups"`
	Schools         int `json:"schools"`
	EligibleSchools int `json:"eligible_schools"`
}

// School is the displayed results for one school.
type School struct {
	Name string `json:"name"`
	// Score is the display score for the school: the total of its first
	// listed group.
	Score  catalog.Points       `json:"score"`
	Groups []eligibility.Result `json:"groups"`
}

// Meta identifies one run of the tool.
type Meta struct {
	RunID       string    `json:"run_id,omitempty"`
	GeneratedAt time.Time `json:"generated_at,omitzero"`
}
