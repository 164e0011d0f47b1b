package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/jqlkit/internal/jql"
	"github.com/roach88/jqlkit/internal/querydef"
)

// ValidationReport is the validate command's JSON payload.
type ValidationReport struct {
	Valid    bool          `json:"valid"`
	Queries  int           `json:"queries"`
	Errors   []loadFailure `json:"errors,omitempty"`
	Warnings []LintFinding `json:"warnings,omitempty"`
}

// LintFinding is a lint warning attached to a query.
type LintFinding struct {
	Code    string `json:"code"`
	Query   string `json:"query"`
	Source  string `json:"source"`
	Message string `json:"message"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "Compile and lint query definitions",
		Long: `Compile every query definition under path and lint the result.

All errors are collected, not just the first. Lint findings flag JQL
that renders but is probably unintended, such as an empty IN list.
Warnings fail the command only with --strict.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd, args[0], strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat lint warnings as failures")
	return cmd
}

func runValidate(opts *RootOptions, cmd *cobra.Command, path string, strict bool) error {
	f := opts.formatter(cmd)

	result, errs, err := loadQueries(opts, f, path, querydef.LoadModeCollectAll)
	if err != nil {
		return err
	}

	report := ValidationReport{Queries: len(result.Queries)}
	for _, e := range errs {
		report.Errors = append(report.Errors, newLoadFailure(e))
	}
	for _, q := range result.Queries {
		f.VerboseLog("Linting query: %s", q.Name)
		lint := jql.Validate(q.Statement)
		for _, w := range lint.Warnings {
			report.Warnings = append(report.Warnings, LintFinding{
				Code:    ErrCodeLint,
				Query:   q.Name,
				Source:  q.Source,
				Message: w,
			})
		}
	}

	failed := len(report.Errors) > 0 || (strict && len(report.Warnings) > 0)
	report.Valid = !failed

	if f.JSON() {
		resp := CLIResponse{Status: "ok", Data: report}
		if failed {
			resp.Status = "error"
			resp.Error = firstProblem(report)
		}
		if err := f.encode(resp); err != nil {
			return err
		}
	} else {
		writeValidationText(f, report)
	}

	if failed {
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s) and %d warning(s)",
			len(report.Errors), len(report.Warnings)))
	}
	return nil
}

func firstProblem(r ValidationReport) *CLIError {
	if len(r.Errors) > 0 {
		return &CLIError{Code: r.Errors[0].Code, Message: r.Errors[0].Message}
	}
	w := r.Warnings[0]
	return &CLIError{Code: w.Code, Message: fmt.Sprintf("query %q: %s", w.Query, w.Message)}
}

func writeValidationText(f *OutputFormatter, r ValidationReport) {
	if r.Valid {
		f.Textf("✓ %d queries valid", r.Queries)
	} else {
		f.Textf("✗ Validation failed")
	}

	for _, e := range r.Errors {
		f.Textf("")
		if e.Source != "" && e.Line > 0 {
			f.Textf("%s:%d:%d", e.Source, e.Line, e.Column)
		} else if e.Source != "" {
			f.Textf("%s", e.Source)
		}
		switch {
		case e.Query != "" && e.Path != "":
			f.Textf("  %s: query %q: %s: %s", e.Code, e.Query, e.Path, e.Message)
		case e.Query != "":
			f.Textf("  %s: query %q: %s", e.Code, e.Query, e.Message)
		default:
			f.Textf("  %s: %s", e.Code, e.Message)
		}
	}
	for _, w := range r.Warnings {
		f.Textf("  %s: query %q: %s", w.Code, w.Query, w.Message)
	}
}
