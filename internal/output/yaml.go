package output

import (
	"gopkg.in/yaml.v3"
)

// YAMLFormatter renders results as YAML.
type YAMLFormatter struct{}

// FormatReport renders a report as YAML, using the same shape as JSON.
func (f *YAMLFormatter) FormatReport(report *Report) (string, error) {
	if report == nil {
		return "", nil
	}
	data, err := yaml.Marshal(newExportReport(report))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
