package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dshills/gradefit/internal/catalog"
	"github.com/dshills/gradefit/internal/eligibility"
	"github.com/dshills/gradefit/internal/selection"
)

func testSelection() selection.Selection {
	grades := make(selection.SubjectGrades)
	for i, s := range selection.All() {
		grades[s] = selection.Grades()[i%selection.NumGrades]
	}
	return selection.Selection{
		Electives: []selection.Subject{selection.SubjectPhysics, selection.SubjectChemistry, selection.SubjectBiology},
		Grades:    grades,
	}
}

func testResults() []eligibility.Result {
	return []eligibility.Result{
		{School: "甲大学", Group: "理科", TotalScore: catalog.Whole(250), Threshold: catalog.Whole(240), PrerequisitesMet: true, Eligible: true},
		{School: "乙学院", Group: "文科", TotalScore: catalog.Whole(90), Threshold: catalog.Whole(80), MissingSubjects: []selection.Subject{selection.SubjectHistory}},
		{School: "甲大学", Group: "医学", TotalScore: catalog.Whole(251), Threshold: catalog.Whole(260), PrerequisitesMet: true},
		{School: "丙学院", Group: "工科", TotalScore: catalog.Whole(120), Threshold: catalog.Whole(100), PrerequisitesMet: true, Eligible: true},
	}
}

func TestBuildGroupsBySchool(t *testing.T) {
	r := Build(testResults(), testSelection(), nil, Options{})

	if len(r.Schools) != 3 {
		t.Fatalf("expected 3 schools, got %d", len(r.Schools))
	}
	wantOrder := []string{"甲大学", "乙学院", "丙学院"}
	for i, name := range wantOrder {
		if r.Schools[i].Name != name {
			t.Errorf("school[%d] = %s, want %s", i, r.Schools[i].Name, name)
		}
	}
	first := r.Schools[0]
	if len(first.Groups) != 2 || first.Groups[0].Group != "理科" || first.Groups[1].Group != "医学" {
		t.Errorf("unexpected groups for 甲大学: %+v", first.Groups)
	}
	if first.Score != catalog.Whole(250) {
		t.Errorf("display score = %s, want 250 from first group", first.Score)
	}
}

func TestBuildEligibleOnly(t *testing.T) {
	r := Build(testResults(), testSelection(), nil, Options{EligibleOnly: true})

	if len(r.Schools) != 2 {
		t.Fatalf("expected 2 schools, got %d", len(r.Schools))
	}
	if r.Schools[0].Name != "甲大学" || len(r.Schools[0].Groups) != 1 {
		t.Errorf("unexpected first school %+v", r.Schools[0])
	}
	if r.Schools[1].Name != "丙学院" {
		t.Errorf("second school = %s, want 丙学院", r.Schools[1].Name)
	}
	for _, s := range r.Schools {
		for _, g := range s.Groups {
			if !g.Eligible {
				t.Errorf("ineligible group %s/%s shown", s.Name, g.Group)
			}
		}
	}
	if !r.Input.EligibleOnly {
		t.Error("expected EligibleOnly recorded in input")
	}
}

func TestBuildSummaryIgnoresFilter(t *testing.T) {
	r := Build(testResults(), testSelection(), nil, Options{EligibleOnly: true})
	want := Summary{Groups: 4, EligibleGroups: 2, Schools: 3, EligibleSchools: 2}
	if r.Summary != want {
		t.Errorf("summary = %+v, want %+v", r.Summary, want)
	}
}

func TestBuildNoResults(t *testing.T) {
	r := Build(nil, testSelection(), nil, Options{EligibleOnly: true})
	if r.Schools == nil {
		t.Error("expected empty, non-nil schools")
	}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"schools":[]`) {
		t.Errorf("expected empty schools array in %s", data)
	}
}

func TestBuildCatalogIdentity(t *testing.T) {
	cat, err := catalog.New("mem", nil)
	if err != nil {
		t.Fatal(err)
	}
	cat.Hash = "sha256:abc"
	r := Build(nil, testSelection(), cat, Options{})
	if r.Input.Catalog != "mem" || r.Input.CatalogHash != "sha256:abc" {
		t.Errorf("unexpected catalog identity %q %q", r.Input.Catalog, r.Input.CatalogHash)
	}
}

func TestBuildCopiesInputs(t *testing.T) {
	results := testResults()
	sel := testSelection()
	r := Build(results, sel, nil, Options{})

	r.Schools[1].Groups[0].MissingSubjects[0] = selection.SubjectTechnology
	if results[1].MissingSubjects[0] != selection.SubjectHistory {
		t.Error("report shares missing subjects with results")
	}
	r.Input.Electives[0] = selection.SubjectHistory
	r.Input.Grades[selection.SubjectMath] = selection.GradeE
	if sel.Electives[0] != selection.SubjectPhysics || sel.Grades[selection.SubjectMath] != selection.GradeB {
		t.Error("report shares selection state")
	}
}

func TestCountGrades(t *testing.T) {
	c := CountGrades(testSelection().Grades)
	for _, g := range selection.Grades() {
		if c.Of(g) != 2 {
			t.Errorf("count of %s = %d, want 2", g, c.Of(g))
		}
	}

	partial := selection.SubjectGrades{
		selection.SubjectChinese: selection.GradeA,
		selection.SubjectMath:    selection.GradeA,
		selection.SubjectHistory: selection.GradeUnset,
	}
	c = CountGrades(partial)
	if c.Of(selection.GradeA) != 2 {
		t.Errorf("count of A = %d, want 2", c.Of(selection.GradeA))
	}
	total := 0
	for _, n := range c {
		total += n
	}
	if total != 2 {
		t.Errorf("unset grade was counted: total %d", total)
	}
}

func TestGradeCountsJSON(t *testing.T) {
	data, err := json.Marshal(GradeCounts{3, 2, 1, 0, 4})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"A":3,"B":2,"C":1,"D":0,"E":4}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}
