package output

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/namelens/handlescan/internal/core"
)

const dividerLength = 40

type palette struct {
	primary   *color.Color
	secondary *color.Color
}

// TextFormatter renders grouped verdicts as coloured console text.
type TextFormatter struct {
	ShowURLs bool
	NoColor  bool
}

// FormatReport renders verdicts, failures and the legend in one string.
func (f *TextFormatter) FormatReport(report *Report) (string, error) {
	return f.FormatVerdicts(report) + f.FormatFailures(report) + f.Legend(), nil
}

// FormatVerdicts renders every group's available, taken and invalid responses.
func (f *TextFormatter) FormatVerdicts(report *Report) string {
	if report == nil {
		return ""
	}

	var sb strings.Builder
	bold := f.color(color.Bold)
	for _, group := range report.Groups {
		lines := make([]string, 0, len(group.Responses))
		for _, response := range group.Responses {
			if response.Class() == core.ClassFailed {
				continue
			}
			lines = append(lines, f.verdictLine(response, report.ViewBy))
		}
		if len(lines) == 0 {
			continue
		}

		divider := strings.Repeat("-", dividerLength)
		pad := dividerLength/2 - len(group.Key)/2
		if pad < 0 {
			pad = 0
		}
		sb.WriteString(divider + "\n")
		sb.WriteString(strings.Repeat(" ", pad) + bold.Sprint(group.Key) + "\n")
		sb.WriteString(divider + "\n")
		for _, line := range lines {
			sb.WriteString(line + "\n")
		}
	}
	return sb.String()
}

// FormatFailures renders failed responses, one per line, naming their group.
func (f *TextFormatter) FormatFailures(report *Report) string {
	if report == nil {
		return ""
	}

	errs := f.errorPalette()
	var sb strings.Builder
	for _, group := range report.Groups {
		for _, response := range group.Responses {
			if response.Class() != core.ClassFailed {
				continue
			}
			sb.WriteString(errs.primary.Sprintf("[%s] %s: %s", group.Key, itemLabel(response, report.ViewBy), response.Message))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Legend explains the colours used by FormatVerdicts.
func (f *TextFormatter) Legend() string {
	return fmt.Sprintf("\n%s, %s, %s, %s\n",
		f.availablePalette().primary.Sprint("Available"),
		f.unavailablePalette().primary.Sprint("Taken/Reserved"),
		f.invalidPalette().primary.Sprint("Invalid"),
		f.errorPalette().primary.Sprint("Error"),
	)
}

func (f *TextFormatter) verdictLine(response *core.Response, view ViewBy) string {
	label := itemLabel(response, view)
	switch response.Class() {
	case core.ClassInvalid:
		p := f.invalidPalette()
		return p.primary.Sprint(label+": ") + p.secondary.Sprint(response.Message)
	case core.ClassAvailable:
		return f.withLink(f.availablePalette(), label, response.Link)
	default:
		return f.withLink(f.unavailablePalette(), label, response.Link)
	}
}

func (f *TextFormatter) withLink(p palette, label, link string) string {
	line := p.primary.Sprint(label)
	if f.ShowURLs && link != "" {
		line += p.secondary.Sprint(" - " + link)
	}
	return line
}

func (f *TextFormatter) availablePalette() palette {
	return palette{f.color(color.FgHiGreen), f.color(color.FgHiGreen)}
}

func (f *TextFormatter) unavailablePalette() palette {
	return palette{f.color(color.FgYellow), f.color(color.FgWhite)}
}

func (f *TextFormatter) invalidPalette() palette {
	return palette{f.color(color.FgCyan), f.color(color.FgWhite)}
}

func (f *TextFormatter) errorPalette() palette {
	return palette{f.color(color.FgRed), f.color(color.FgRed)}
}

func (f *TextFormatter) color(attr color.Attribute) *color.Color {
	c := color.New(attr)
	if f.NoColor {
		c.DisableColor()
	}
	return c
}
