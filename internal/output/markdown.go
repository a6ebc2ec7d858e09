package output

import (
	"fmt"
	"strings"
)

// MarkdownFormatter renders each group as a markdown table.
type MarkdownFormatter struct {
	ShowURLs bool
}

// FormatReport renders a report as Markdown.
func (f *MarkdownFormatter) FormatReport(report *Report) (string, error) {
	if report == nil {
		return "", nil
	}

	label := "Platform"
	if report.ViewBy == ViewByPlatform {
		label = "Query"
	}

	var sb strings.Builder
	for i, group := range report.Groups {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("## %s\n\n", escapeMarkdownCell(group.Key)))
		if f.ShowURLs {
			sb.WriteString(fmt.Sprintf("| %s | Status | Message | URL |\n", label))
			sb.WriteString("|------|--------|---------|-----|\n")
		} else {
			sb.WriteString(fmt.Sprintf("| %s | Status | Message |\n", label))
			sb.WriteString("|------|--------|---------|\n")
		}

		for _, r := range group.Responses {
			cells := []string{
				escapeMarkdownCell(itemLabel(r, report.ViewBy)),
				escapeMarkdownCell(statusLabel(r)),
				escapeMarkdownCell(r.Message),
			}
			if f.ShowURLs {
				cells = append(cells, escapeMarkdownCell(r.Link))
			}
			sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
		}
	}

	if report.Summary.Responses > 0 {
		sb.WriteString(fmt.Sprintf("\n**Summary**: %s\n", summaryLine(report.Summary)))
	}
	return sb.String(), nil
}

func escapeMarkdownCell(value string) string {
	return strings.ReplaceAll(value, "|", "\\|")
}
