package internal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"github.com/dshills/gradefit/internal/catalog"
	"github.com/dshills/gradefit/internal/eligibility"
	"github.com/dshills/gradefit/internal/render"
	"github.com/dshills/gradefit/internal/report"
	"github.com/dshills/gradefit/internal/selection"
)

func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Dir(filepath.Dir(filename))
}

type goldenResult struct {
	School          string              `json:"school"`
	Group           string              `json:"group"`
	TotalScore      json.Number         `json:"total_score"`
	Eligible        bool                `json:"is_eligible"`
	MissingSubjects []selection.Subject `json:"missing_subjects"`
}

func loadGolden(t *testing.T) map[string][]goldenResult {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(projectRoot(), "testdata", "golden", "districts.json"))
	if err != nil {
		t.Fatalf("failed to read golden file: %v", err)
	}
	var golden map[string][]goldenResult
	if err := json.Unmarshal(data, &golden); err != nil {
		t.Fatalf("failed to parse golden JSON: %v", err)
	}
	return golden
}

func TestGoldenDistricts(t *testing.T) {
	root := projectRoot()

	cat, err := catalog.Load(filepath.Join(root, "testdata", "catalogs", "districts.json"))
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	if cat.Name != "districts" {
		t.Errorf("catalog name = %q, want districts", cat.Name)
	}

	for name, want := range loadGolden(t) {
		t.Run(name, func(t *testing.T) {
			f, err := selection.Load(filepath.Join(root, "testdata", "selections", name))
			if err != nil {
				t.Fatalf("failed to load selection: %v", err)
			}

			results, err := eligibility.Evaluate(f.Selection, cat)
			if err != nil {
				t.Fatalf("evaluate: %v", err)
			}
			if len(results) != len(want) {
				t.Fatalf("got %d results, want %d", len(results), len(want))
			}
			for i, w := range want {
				got := results[i]
				if got.School != w.School || got.Group != w.Group {
					t.Errorf("[%d] = %s/%s, want %s/%s", i, got.School, got.Group, w.School, w.Group)
				}
				if got.TotalScore.String() != w.TotalScore.String() {
					t.Errorf("[%d] %s score = %s, want %s", i, got.Group, got.TotalScore, w.TotalScore)
				}
				if got.Eligible != w.Eligible {
					t.Errorf("[%d] %s eligible = %v, want %v", i, got.Group, got.Eligible, w.Eligible)
				}
				if !reflect.DeepEqual(got.MissingSubjects, w.MissingSubjects) {
					t.Errorf("[%d] %s missing = %v, want %v", i, got.Group, got.MissingSubjects, w.MissingSubjects)
				}
			}

			// Every group shown in the eligible-only report is eligible, and
			// every eligible group is shown.
			rep := report.Build(results, f.Selection, cat, report.Options{EligibleOnly: true})
			shown := 0
			for _, s := range rep.Schools {
				for _, g := range s.Groups {
					if !g.Eligible {
						t.Errorf("ineligible group %s shown", g.Group)
					}
					shown++
				}
			}
			if shown != rep.Summary.EligibleGroups {
				t.Errorf("shown %d groups, summary says %d eligible", shown, rep.Summary.EligibleGroups)
			}

			md := render.Markdown(rep)
			for _, s := range rep.Schools {
				if !strings.Contains(md, "## "+s.Name) {
					t.Errorf("markdown missing school %s", s.Name)
				}
			}
		})
	}
}

func TestGoldenReportJSONStable(t *testing.T) {
	root := projectRoot()
	cat, err := catalog.Load(filepath.Join(root, "testdata", "catalogs", "districts.json"))
	if err != nil {
		t.Fatal(err)
	}
	f, err := selection.Load(filepath.Join(root, "testdata", "selections", "science.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	marshal := func() string {
		results, err := eligibility.Evaluate(f.Selection, cat)
		if err != nil {
			t.Fatal(err)
		}
		data, err := json.MarshalIndent(report.Build(results, f.Selection, cat, report.Options{}), "", "  ")
		if err != nil {
			t.Fatal(err)
		}
		return string(data)
	}

	first := marshal()
	for i := 0; i < 5; i++ {
		if marshal() != first {
			t.Fatal("report JSON differs between identical runs")
		}
	}
	if !strings.Contains(first, `"total_score": 90`) {
		t.Errorf("expected decimal-free score encoding in:\n%s", first)
	}
}
