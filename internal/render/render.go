// Package render produces Markdown and terminal output from a report.
package render

import (
	"fmt"
	"strings"

	"github.com/dshills/gradefit/internal/eligibility"
	"github.com/dshills/gradefit/internal/report"
	"github.com/dshills/gradefit/internal/selection"
)

const (
	labelEligible   = "可报考"
	labelIneligible = "不可报考"
	noResults       = "没有找到符合条件的学校"
)

// Markdown renders a report as a Markdown document.
func Markdown(r *report.Report) string {
	var b strings.Builder

	b.WriteString("# 三位一体初审筛选结果\n\n")
	fmt.Fprintf(&b, "**Catalog:** %s\n", r.Input.Catalog)
	fmt.Fprintf(&b, "**Electives:** %s\n", joinSubjects(r.Input.Electives))
	fmt.Fprintf(&b, "**Grades:** %s\n", gradeLine(r.Input.Grades))
	fmt.Fprintf(&b, "**Grade counts:** %s\n", countLine(r.Input.GradeCounts))
	fmt.Fprintf(&b, "**Eligible:** %d of %d groups at %d of %d schools\n\n",
		r.Summary.EligibleGroups, r.Summary.Groups, r.Summary.EligibleSchools, r.Summary.Schools)

	if len(r.Schools) == 0 {
		b.WriteString(noResults + "\n")
		return b.String()
	}

	for _, s := range r.Schools {
		fmt.Fprintf(&b, "## %s (%d个专业组, %s分)\n\n", s.Name, len(s.Groups), s.Score)
		for _, g := range s.Groups {
			renderGroup(&b, g)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderGroup(b *strings.Builder, g eligibility.Result) {
	fmt.Fprintf(b, "- %s: **%s** (%s / %s)", g.Group, verdictLabel(g.Eligible), g.TotalScore, g.Threshold)
	if len(g.MissingSubjects) > 0 {
		fmt.Fprintf(b, " 缺少选考科目: %s", joinSubjects(g.MissingSubjects))
	}
	b.WriteString("\n")
}

func verdictLabel(eligible bool) string {
	if eligible {
		return labelEligible
	}
	return labelIneligible
}

func joinSubjects(subjects []selection.Subject) string {
	names := make([]string, len(subjects))
	for i, s := range subjects {
		names[i] = string(s)
	}
	return strings.Join(names, "、")
}

// gradeLine lists grades in canonical subject order.
func gradeLine(grades selection.SubjectGrades) string {
	var parts []string
	for _, s := range selection.All() {
		if g, ok := grades[s]; ok && g.Valid() {
			parts = append(parts, fmt.Sprintf("%s %s", s, g))
		}
	}
	return strings.Join(parts, ", ")
}

func countLine(c report.GradeCounts) string {
	parts := make([]string, 0, selection.NumGrades)
	for _, g := range selection.Grades() {
		parts = append(parts, fmt.Sprintf("%s×%d", g, c.Of(g)))
	}
	return strings.Join(parts, " ")
}
