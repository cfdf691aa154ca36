package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dshills/gradefit/internal/config"
	"github.com/dshills/gradefit/internal/eligibility"
	"github.com/dshills/gradefit/internal/render"
	"github.com/dshills/gradefit/internal/report"
	"github.com/dshills/gradefit/internal/selection"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type checkFlags struct {
	selectionPath string
	electives     string
	grades        string
	catalog       string
	format        string
	out           string
	all           bool
	failOnNone    bool
	noColor       bool
	verbose       bool

	color      bool
	forceColor bool
	stdout     io.Writer
	now    func() time.Time
}

func newCheckCmd(cfg config.Config) *cobra.Command {
	f := &checkFlags{color: cfg.Color, forceColor: cfg.ForceColor}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate a selection against every major group in a catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.stdout = cmd.OutOrStdout()
			return runCheck(f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.selectionPath, "selection", "", "YAML or JSON selection file")
	flags.StringVar(&f.electives, "electives", "", "Three electives, comma separated (e.g. 物理,化学,生物)")
	flags.StringVar(&f.grades, "grades", "", "Grades as 语文=A,数学=B,... or ten letters in subject order")
	flags.StringVar(&f.catalog, "catalog", cfg.Catalog, "Built-in catalog name or catalog file path")
	flags.StringVar(&f.format, "format", cfg.Format, "Output format: table, md or json")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.BoolVar(&f.all, "all", !cfg.EligibleOnly, "Also list groups the student is not eligible for")
	flags.BoolVar(&f.failOnNone, "fail-on-none", false, "Exit non-zero if no group is eligible")
	flags.BoolVar(&f.noColor, "no-color", false, "Disable coloured table output")
	flags.BoolVar(&f.verbose, "verbose", false, "Print processing steps to stderr")

	return cmd
}

func runCheck(f *checkFlags) error {
	logger := log.New(os.Stderr, "", 0)
	verbose := func(msg string, args ...any) {
		if f.verbose {
			logger.Printf(msg, args...)
		}
	}
	stdout := f.stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	now := f.now
	if now == nil {
		now = time.Now
	}

	// 1. Build selection
	sel, selFile, err := buildSelection(f, verbose)
	if err != nil {
		return err
	}

	// 2. Load catalog
	verbose("Loading catalog: %s", f.catalog)
	cat, err := loadCatalog(f.catalog)
	if err != nil {
		return err
	}
	verbose("Loaded %d major groups (%s)", cat.Len(), cat.Hash)

	// 3. Evaluate
	results, err := eligibility.Evaluate(sel, cat)
	if err != nil {
		var verrs selection.ValidationErrors
		if errors.As(err, &verrs) {
			return exitError(3, "%v", verrs)
		}
		return fmt.Errorf("evaluation failed: %w", err)
	}

	// 4. Build report
	rep := report.Build(results, sel, cat, report.Options{EligibleOnly: !f.all})
	rep.Tool = "gradefit"
	rep.Version = version
	if selFile != nil {
		rep.Input.SelectionFile = filepath.Base(selFile.FilePath)
		rep.Input.SelectionHash = selFile.Hash
	}
	rep.Meta = report.Meta{
		RunID:       uuid.New().String(),
		GeneratedAt: now().UTC(),
	}
	verbose("Eligible for %d of %d groups", rep.Summary.EligibleGroups, rep.Summary.Groups)

	// 5. Output
	var output string
	switch strings.ToLower(f.format) {
	case "json":
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		output = string(data) + "\n"
	case "md", "markdown":
		output = render.Markdown(rep)
	case "table":
		var b strings.Builder
		render.Table(&b, rep, useColor(f))
		output = b.String()
	default:
		return exitError(3, "unknown format: %s", f.format)
	}

	if f.out != "" {
		verbose("Writing output to %s", f.out)
		if err := os.WriteFile(f.out, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		fmt.Fprint(stdout, output)
	}

	// 6. Exit code based on --fail-on-none
	if f.failOnNone && rep.Summary.EligibleGroups == 0 {
		return exitError(2, "no eligible major groups in catalog %s", cat.Name)
	}
	return nil
}

// buildSelection merges the selection file with --electives and --grades.
// Flags replace the corresponding part of the file.
func buildSelection(f *checkFlags, verbose func(string, ...any)) (selection.Selection, *selection.File, error) {
	var (
		sel     selection.Selection
		selFile *selection.File
	)
	if f.selectionPath != "" {
		verbose("Loading selection: %s", f.selectionPath)
		sf, err := selection.Load(f.selectionPath)
		if err != nil {
			return sel, nil, exitError(3, "failed to load selection: %v", err)
		}
		sel, selFile = sf.Selection, sf
	}

	if f.electives != "" {
		sel.Electives = selection.ParseElectives(f.electives)
	}
	if f.grades != "" {
		grades, err := parseGradesFlag(f.grades)
		if err != nil {
			return sel, nil, exitError(3, "invalid --grades: %v", err)
		}
		sel.Grades = grades
	}

	if f.selectionPath == "" && f.electives == "" && f.grades == "" {
		return sel, nil, exitError(3, "no selection given: use --selection or --electives and --grades")
	}
	return sel, selFile, nil
}

// useColor reports whether table output gets ANSI colours. Colour needs a
// terminal on stdout unless GRADEFIT_COLOR forces it; files never get it.
func useColor(f *checkFlags) bool {
	if !f.color || f.noColor || f.out != "" {
		return false
	}
	return f.forceColor || !color.NoColor
}

func parseGradesFlag(v string) (selection.SubjectGrades, error) {
	if strings.Contains(v, "=") {
		return selection.ParseGrades(v)
	}
	return selection.ParseGradeString(v)
}
