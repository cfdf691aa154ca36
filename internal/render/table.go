package render

import (
	"fmt"
	"io"

	"github.com/dshills/gradefit/internal/report"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// Table writes the report as a terminal table. Verdicts are coloured when
// colored is true.
func Table(w io.Writer, r *report.Report, colored bool) {
	heading := color.New(color.FgCyan, color.Bold)
	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed)
	for _, c := range []*color.Color{heading, ok, bad} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	heading.Fprintf(w, "\n%s | %s\n", joinSubjects(r.Input.Electives), countLine(r.Input.GradeCounts))
	fmt.Fprintf(w, "Eligible: %d of %d groups at %d of %d schools\n",
		r.Summary.EligibleGroups, r.Summary.Groups, r.Summary.EligibleSchools, r.Summary.Schools)

	if len(r.Schools) == 0 {
		fmt.Fprintln(w, noResults)
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"School", "Group", "Score", "Threshold", "Result", "Missing"})
	table.SetAutoWrapText(false)
	table.SetRowLine(true)

	for _, s := range r.Schools {
		for _, g := range s.Groups {
			verdict := bad.Sprint(labelIneligible)
			if g.Eligible {
				verdict = ok.Sprint(labelEligible)
			}
			table.Append([]string{
				s.Name,
				g.Group,
				g.TotalScore.String(),
				g.Threshold.String(),
				verdict,
				joinSubjects(g.MissingSubjects),
			})
		}
	}
	table.Render()
}
