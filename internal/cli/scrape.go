// internal/cli/scrape.go
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/law-makers/holdings/internal/app"
	"github.com/law-makers/holdings/internal/config"
	"github.com/law-makers/holdings/internal/ui"
	"github.com/law-makers/holdings/internal/utils/output"
	"github.com/law-makers/holdings/pkg/models"
)

func newScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape every fund's holdings table into a CSV file",
		Long: `Collects fund links from the listing page, fetches each fund's portfolio
holdings page with a bounded pool of workers and appends the rows of its
holdings table to the output CSV.

A fund page that is missing or has no holdings table is skipped with a
warning. Only a failure on the listing page aborts the run, and in that
case no output file is created.`,
		Example: `  # Scrape the default small-cap listing into data.csv
  holdings scrape

  # Another listing, more workers, custom output
  holdings scrape --listing-url https://example.com/funds.html -w 10 -o funds.csv

  # Render pages in headless Chrome
  holdings scrape --mode=spa`,
		Args: cobra.NoArgs,
		RunE: withApp(runScrape),
	}
	config.RegisterScrapeFlags(cmd)
	return cmd
}

func runScrape(cmd *cobra.Command, a *app.Application) error {
	d := a.NewDriver()

	var bar *progressbar.ProgressBar
	if showProgress(a.Config) {
		d.OnLinksCollected = func(n int) {
			bar = newProgressBar(cmd.ErrOrStderr(), n)
		}
		d.OnLinkDone = func(string, int, error) {
			_ = bar.Add(1)
		}
	}

	summary, err := d.Run(cmd.Context())
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	if a.Config.JSONLog {
		return output.WriteJSON(cmd.OutOrStdout(), summary)
	}
	printSummary(cmd.OutOrStdout(), summary)
	return nil
}

func showProgress(cfg *config.Config) bool {
	return !cfg.JSONLog && cfg.LogLevel != "error"
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Fetching tables"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
	)
}

func printSummary(w io.Writer, s *models.Summary) {
	if s.Links == 0 {
		fmt.Fprintln(w, ui.Warning("No fund links found, nothing written"))
		return
	}

	fmt.Fprintln(w, ui.Success("✓ Saved to "+s.OutputPath))
	fmt.Fprintln(w, ui.Field("Links", s.Links))
	fmt.Fprintln(w, ui.Field("Processed", s.Processed))
	if s.Skipped > 0 {
		fmt.Fprintln(w, ui.Field("Skipped", ui.Warning(fmt.Sprint(s.Skipped))))
	}
	if s.Failed > 0 {
		fmt.Fprintln(w, ui.Field("Failed", ui.Error(fmt.Sprint(s.Failed))))
	}
	fmt.Fprintln(w, ui.Field("Rows", ui.Bold(fmt.Sprint(s.Rows))))
	fmt.Fprintln(w, ui.Field("Duration", s.Duration.Round(time.Millisecond)))
}
