package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/namelens/handlescan/internal/output"
	"github.com/namelens/handlescan/internal/server/handlers"
)

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List supported platforms and what they can check",
	RunE: func(cmd *cobra.Command, args []string) error {
		formatRaw, _ := cmd.Flags().GetString("output")
		format, err := output.ParseFormat(formatRaw)
		if err != nil {
			return &ConfigError{Err: err}
		}
		return writePlatforms(cmd.OutOrStdout(), format, handlers.DescribePlatforms())
	},
}

func init() {
	rootCmd.AddCommand(platformsCmd)
	platformsCmd.Flags().StringP("output", "o", "table", "output format: table, json, yaml")
}

func writePlatforms(w io.Writer, format output.Format, infos []handlers.PlatformInfo) error {
	switch format {
	case output.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(infos)
	case output.FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer func() { _ = encoder.Close() }()
		return encoder.Encode(infos)
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Platform", "Name", "Username", "Email", "Token"})
	for _, info := range infos {
		t.AppendRow(table.Row{info.DisplayName, info.Name, mark(info.Username), mark(info.Email), mark(info.Token)})
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func mark(ok bool) string {
	if ok {
		return "yes"
	}
	return "-"
}
