package output

import (
	"github.com/jedib0t/go-pretty/v6/table"
)

// TableFormatter renders results as an ASCII table.
type TableFormatter struct {
	ShowURLs bool
}

// FormatReport renders one row per response, groups separated by rules.
func (f *TableFormatter) FormatReport(report *Report) (string, error) {
	if report == nil {
		return "", nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)

	header := table.Row{"Query", "Platform", "Status", "Message"}
	if f.ShowURLs {
		header = append(header, "URL")
	}
	t.AppendHeader(header)

	for i, group := range report.Groups {
		if i > 0 {
			t.AppendSeparator()
		}
		for _, r := range group.Responses {
			row := table.Row{r.Query, r.Platform.DisplayName(), statusLabel(r), r.Message}
			if f.ShowURLs {
				row = append(row, r.Link)
			}
			t.AppendRow(row)
		}
	}

	if report.Summary.Responses > 0 {
		footer := table.Row{"", "", summaryLine(report.Summary), ""}
		if f.ShowURLs {
			footer = append(footer, "")
		}
		t.AppendFooter(footer)
	}

	return t.Render(), nil
}
