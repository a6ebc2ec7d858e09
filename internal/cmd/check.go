package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/namelens/handlescan/internal/core"
	"github.com/namelens/handlescan/internal/core/checker"
	"github.com/namelens/handlescan/internal/core/engine"
	"github.com/namelens/handlescan/internal/observability"
	"github.com/namelens/handlescan/internal/output"
)

var checkCmd = &cobra.Command{
	Use:   "check [query...]",
	Short: "Check username and email availability",
	Long: `Check whether each query is available on every selected platform.

Queries matching an email address format are checked as emails, all others
as usernames. Platforms that cannot check a query's kind are skipped.`,
	Example: `  handlescan check alice bob@example.com
  handlescan check -i names.txt -p github,reddit --view-by platform
  handlescan check alice --output json --prime-tokens`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	flags := checkCmd.Flags()
	flags.StringP("input", "i", "", "file containing queries, one per line (- for stdin)")
	flags.StringSliceP("platforms", "p", nil, "platforms to query (default: all platforms)")
	flags.String("view-by", "query", "group results by query or platform")
	flags.BoolP("available-only", "a", false, "only show available usernames and email addresses")
	flags.BoolP("prime-tokens", "c", false, "fetch platform tokens once before querying (alias: --cache-tokens)")
	flags.String("proxy-list", "", "file containing HTTP proxies to rotate requests through")
	flags.Bool("show-urls", false, "show profile URLs for taken usernames where known")
	flags.String("json", "", "write results as JSON to this file instead of printing them")
	flags.StringP("output", "o", "text", "output format: text, table, json, yaml, markdown")
	flags.String("out", "", "write rendered output to this file (default stdout)")
	flags.Bool("no-color", false, "disable coloured output")
	flags.Int("concurrency", 0, "maximum checks in flight (0 = unbounded)")
	flags.Duration("timeout", checker.DefaultTimeout, "per-request timeout")

	flags.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "cache-tokens" {
			name = "prime-tokens"
		}
		return pflag.NormalizedName(name)
	})

	_ = viper.BindPFlag("platforms", flags.Lookup("platforms"))
	_ = viper.BindPFlag("prime_tokens", flags.Lookup("prime-tokens"))
	_ = viper.BindPFlag("proxy_file", flags.Lookup("proxy-list"))
	_ = viper.BindPFlag("concurrency", flags.Lookup("concurrency"))
	_ = viper.BindPFlag("http.timeout", flags.Lookup("timeout"))
}

func runCheck(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	inputFile, _ := flags.GetString("input")
	viewRaw, _ := flags.GetString("view-by")
	availableOnly, _ := flags.GetBool("available-only")
	showURLs, _ := flags.GetBool("show-urls")
	jsonPath, _ := flags.GetString("json")
	formatRaw, _ := flags.GetString("output")
	outPath, _ := flags.GetString("out")
	noColor, _ := flags.GetBool("no-color")

	format, err := output.ParseFormat(formatRaw)
	if err != nil {
		return &ConfigError{Err: err}
	}
	view, err := output.ParseViewBy(viewRaw)
	if err != nil {
		return &ConfigError{Err: err}
	}

	queries, err := resolveQueries(args, inputFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	platforms, err := cfg.SelectedPlatforms()
	if err != nil {
		return &ConfigError{Err: err}
	}

	logger := observability.CLILogger
	session, err := cfg.Session(logger)
	if err != nil {
		return &ConfigError{Err: err}
	}
	registry, err := checker.NewRegistry(session, platforms)
	if err != nil {
		return err
	}

	orchestrator := &engine.Orchestrator{
		Dispatcher:  &engine.Dispatcher{Registry: registry, Logger: logger},
		Concurrency: cfg.Concurrency,
		PrimeTokens: cfg.PrimeTokens,
		Logger:      logger,
	}
	tasks, err := orchestrator.Plan(queries, platforms)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger.Debug("Starting checks",
		zap.Int("queries", len(queries)),
		zap.Int("platforms", len(platforms)),
		zap.Int("proxies", len(session.Proxies)),
		zap.Bool("prime_tokens", cfg.PrimeTokens))

	start := time.Now()
	responses, err := stream(ctx, cmd, orchestrator, queries, platforms, orchestrator.Expected(tasks))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	opts := output.Options{
		Format:        format,
		ViewBy:        view,
		AvailableOnly: availableOnly,
		ShowURLs:      showURLs,
		NoColor:       noColor,
	}
	summary := core.Summarize(responses, elapsed)

	if jsonPath != "" {
		if err := output.ExportJSON(jsonPath, output.NewReport(responses, summary, opts)); err != nil {
			return err
		}
		logger.Debug("Wrote JSON results", zap.String("path", jsonPath))
	} else {
		sink, err := openSink(outPath, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		renderErr := output.Render(sink.writer, cmd.ErrOrStderr(), responses, summary, opts)
		if closeErr := sink.close(); renderErr == nil {
			renderErr = closeErr
		}
		if renderErr != nil {
			return renderErr
		}
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Completed %d queries in %.2fs\n", len(tasks), elapsed.Seconds())
	return err
}

// stream runs the batch, showing a progress bar (or, when verbose, each response
// as it arrives), and returns responses in query-major order.
func stream(ctx context.Context, cmd *cobra.Command, o *engine.Orchestrator, queries []string, platforms []core.Platform, expected int) ([]*core.Response, error) {
	var bar *progressbar.ProgressBar
	if !verbose {
		bar = progressbar.NewOptions(expected,
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("Checking"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionShowIts(),
			progressbar.OptionClearOnFinish(),
		)
	}

	var responses []*core.Response
	err := o.Stream(ctx, queries, platforms, func(response *core.Response) {
		responses = append(responses, response)
		if bar != nil {
			_ = bar.Add(1)
			return
		}
		printProgress(cmd.ErrOrStderr(), response)
	})
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return nil, err
	}
	return orderResponses(responses, queries, platforms), nil
}

func printProgress(w io.Writer, response *core.Response) {
	_, _ = fmt.Fprintf(w, "Checked %-25s on %-10s: %s\n", response.Query, response.Platform.DisplayName(), response.Message)
}

// orderResponses sorts completion-ordered responses by query, then platform.
func orderResponses(responses []*core.Response, queries []string, platforms []core.Platform) []*core.Response {
	queryIndex := make(map[string]int, len(queries))
	for i, q := range queries {
		queryIndex[q] = i
	}
	platformIndex := make(map[core.Platform]int, len(platforms))
	for i, p := range platforms {
		platformIndex[p] = i
	}

	slots := make([]*core.Response, len(queries)*len(platforms))
	var extra []*core.Response
	for _, response := range responses {
		qi, okQ := queryIndex[response.Query]
		pi, okP := platformIndex[response.Platform]
		if !okQ || !okP || slots[qi*len(platforms)+pi] != nil {
			extra = append(extra, response)
			continue
		}
		slots[qi*len(platforms)+pi] = response
	}

	ordered := make([]*core.Response, 0, len(responses))
	for _, response := range slots {
		if response != nil {
			ordered = append(ordered, response)
		}
	}
	return append(ordered, extra...)
}
