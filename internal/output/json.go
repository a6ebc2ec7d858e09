package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/namelens/handlescan/internal/core"
)

// Record is the export shape of a response: the platform by display name and no empty link.
type Record struct {
	Platform  string `json:"platform" yaml:"platform"`
	Query     string `json:"query" yaml:"query"`
	Available bool   `json:"available" yaml:"available"`
	Valid     bool   `json:"valid" yaml:"valid"`
	Success   bool   `json:"success" yaml:"success"`
	Message   string `json:"message" yaml:"message"`
	Link      string `json:"link,omitempty" yaml:"link,omitempty"`
}

// NewRecord converts a response into its export shape.
func NewRecord(response *core.Response) Record {
	return Record{
		Platform:  response.Platform.DisplayName(),
		Query:     response.Query,
		Available: response.Available,
		Valid:     response.Valid,
		Success:   response.Success,
		Message:   response.Message,
		Link:      response.Link,
	}
}

type exportGroup struct {
	Key     string   `json:"key" yaml:"key"`
	Results []Record `json:"results" yaml:"results"`
}

type exportReport struct {
	ViewBy  ViewBy        `json:"view_by" yaml:"view_by"`
	Groups  []exportGroup `json:"groups" yaml:"groups"`
	Summary exportSummary `json:"summary" yaml:"summary"`
}

type exportSummary struct {
	Queries     int     `json:"queries" yaml:"queries"`
	Responses   int     `json:"responses" yaml:"responses"`
	Available   int     `json:"available" yaml:"available"`
	Unavailable int     `json:"unavailable" yaml:"unavailable"`
	Invalid     int     `json:"invalid" yaml:"invalid"`
	Failed      int     `json:"failed" yaml:"failed"`
	ElapsedSecs float64 `json:"elapsed_seconds" yaml:"elapsed_seconds"`
}

func newExportReport(report *Report) exportReport {
	out := exportReport{
		ViewBy: report.ViewBy,
		Groups: make([]exportGroup, 0, len(report.Groups)),
		Summary: exportSummary{
			Queries:     report.Summary.Queries,
			Responses:   report.Summary.Responses,
			Available:   report.Summary.Available,
			Unavailable: report.Summary.Unavailable,
			Invalid:     report.Summary.Invalid,
			Failed:      report.Summary.Failed,
			ElapsedSecs: report.Summary.Elapsed.Seconds(),
		},
	}
	for _, group := range report.Groups {
		records := make([]Record, 0, len(group.Responses))
		for _, response := range group.Responses {
			records = append(records, NewRecord(response))
		}
		out.Groups = append(out.Groups, exportGroup{Key: group.Key, Results: records})
	}
	return out
}

// JSONFormatter renders results as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatReport renders a report as JSON.
func (f *JSONFormatter) FormatReport(report *Report) (string, error) {
	if report == nil {
		return "", nil
	}

	var (
		data []byte
		err  error
	)

	export := newExportReport(report)
	if f.Indent {
		data, err = json.MarshalIndent(export, "", "  ")
	} else {
		data, err = json.Marshal(export)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// ExportJSON writes the report to path as an object keyed by group, each
// holding that group's records.
func ExportJSON(path string, report *Report) error {
	grouped := make(map[string][]Record, len(report.Groups))
	for _, group := range report.Groups {
		records := make([]Record, 0, len(group.Responses))
		for _, response := range group.Responses {
			records = append(records, NewRecord(response))
		}
		grouped[group.Key] = records
	}

	data, err := json.MarshalIndent(grouped, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
