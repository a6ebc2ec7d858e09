// Package output groups, sorts and renders check responses for people and machines.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/namelens/handlescan/internal/core"
)

// Format represents an output format.
type Format string

const (
	FormatText     Format = "text"
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatText):
		return FormatText, nil
	case string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatYAML), "yml":
		return FormatYAML, nil
	case string(FormatMarkdown), "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// Options control how a batch is presented.
type Options struct {
	Format        Format
	ViewBy        ViewBy
	AvailableOnly bool
	ShowURLs      bool
	NoColor       bool
}

// Report is a grouped, sorted and filtered batch ready for rendering.
type Report struct {
	ViewBy  ViewBy       `json:"view_by" yaml:"view_by"`
	Groups  []Group      `json:"groups" yaml:"groups"`
	Summary core.Summary `json:"summary" yaml:"summary"`
}

// NewReport groups responses by the requested view and applies the available-only filter.
func NewReport(responses []*core.Response, summary core.Summary, opts Options) *Report {
	groups := GroupResponses(responses, opts.ViewBy)
	if opts.AvailableOnly {
		groups = AvailableOnly(groups)
	}
	return &Report{
		ViewBy:  normalizeView(opts.ViewBy),
		Groups:  groups,
		Summary: summary,
	}
}

// Formatter renders a report.
type Formatter interface {
	FormatReport(report *Report) (string, error)
}

// NewFormatter returns a formatter for the requested format.
func NewFormatter(opts Options) Formatter {
	switch opts.Format {
	case FormatTable:
		return &TableFormatter{ShowURLs: opts.ShowURLs}
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatMarkdown:
		return &MarkdownFormatter{ShowURLs: opts.ShowURLs}
	default:
		return &TextFormatter{ShowURLs: opts.ShowURLs, NoColor: opts.NoColor}
	}
}

// Render writes the batch to out. In text format, failed responses go to errOut
// so they never mix with verdicts.
func Render(out, errOut io.Writer, responses []*core.Response, summary core.Summary, opts Options) error {
	report := NewReport(responses, summary, opts)

	if opts.Format == FormatText || opts.Format == "" {
		formatter := &TextFormatter{ShowURLs: opts.ShowURLs, NoColor: opts.NoColor}
		if errOut == nil {
			errOut = out
		}
		if _, err := io.WriteString(out, formatter.FormatVerdicts(report)); err != nil {
			return err
		}
		if failures := formatter.FormatFailures(report); failures != "" {
			if _, err := io.WriteString(errOut, failures); err != nil {
				return err
			}
		}
		_, err := io.WriteString(out, formatter.Legend())
		return err
	}

	rendered, err := NewFormatter(opts).FormatReport(report)
	if err != nil {
		return err
	}
	if !strings.HasSuffix(rendered, "\n") {
		rendered += "\n"
	}
	_, err = io.WriteString(out, rendered)
	return err
}

// statusLabel names the class of a response for tabular formats.
func statusLabel(response *core.Response) string {
	switch response.Class() {
	case core.ClassAvailable:
		return "available"
	case core.ClassUnavailable:
		return "taken"
	case core.ClassInvalid:
		return "invalid"
	default:
		return "error"
	}
}

func summaryLine(summary core.Summary) string {
	return fmt.Sprintf("%d available, %d taken, %d invalid, %d errors",
		summary.Available, summary.Unavailable, summary.Invalid, summary.Failed)
}
