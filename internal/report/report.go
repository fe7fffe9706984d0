// Package report accumulates recoverable problems found while importing
// and assembling a budget, so one bad row never aborts an otherwise-good
// operation. Fatal conditions are plain Go errors, not report issues.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Kind identifies the class of problem.
type Kind string

const (
	KindDuplicateCode  Kind = "duplicate-code"
	KindDanglingParent Kind = "dangling-parent"
	KindMalformedCode  Kind = "malformed-code"
	KindFieldCoercion  Kind = "field-coercion"
	KindSkippedRow     Kind = "skipped-row"
)

// Severity separates row-dropping errors from degraded-but-kept warnings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one recoverable problem with enough context to show a user
// where it happened.
type Issue struct {
	Severity Severity // set by the Reporter helpers
	Kind     Kind
	Code     string // account code, if known
	Row      int    // 1-based spreadsheet row, 0 if not applicable
	Column   string // column label, "" if not applicable
	Message  string
}

func (i Issue) Error() string {
	if i.Row > 0 {
		return fmt.Sprintf("%s (row %d): %s", i.Kind, i.Row, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.Kind, i.Message)
}

// Reporter collects issues across a pipeline run. Diagnostics go through
// the injected logger, never a package-level one.
type Reporter struct {
	logger *log.Logger
	issues []Issue
}

// New creates a Reporter. A nil logger disables diagnostic output.
func New(logger *log.Logger) *Reporter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Reporter{logger: logger}
}

// Errorf records an error-severity issue.
func (r *Reporter) Errorf(issue Issue, format string, args ...any) {
	issue.Severity = SeverityError
	issue.Message = fmt.Sprintf(format, args...)
	r.issues = append(r.issues, issue)
	r.logger.Error(issue.Message, "kind", issue.Kind, "code", issue.Code, "row", issue.Row)
}

// Warnf records a warning-severity issue.
func (r *Reporter) Warnf(issue Issue, format string, args ...any) {
	issue.Severity = SeverityWarning
	issue.Message = fmt.Sprintf(format, args...)
	r.issues = append(r.issues, issue)
	r.logger.Warn(issue.Message, "kind", issue.Kind, "code", issue.Code, "row", issue.Row)
}

// Issues returns everything recorded, in order.
func (r *Reporter) Issues() []Issue {
	return r.issues
}

// Errors returns only error-severity issues.
func (r *Reporter) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns only warning-severity issues.
func (r *Reporter) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

func (r *Reporter) filter(sev Severity) []Issue {
	var out []Issue
	for _, i := range r.issues {
		if i.Severity == sev {
			out = append(out, i)
		}
	}
	return out
}

// Empty reports whether nothing was recorded.
func (r *Reporter) Empty() bool {
	return len(r.issues) == 0
}

// Summary returns a one-line count suitable for CLI output.
func (r *Reporter) Summary() string {
	return fmt.Sprintf("%d error(s), %d warning(s)", len(r.Errors()), len(r.Warnings()))
}
