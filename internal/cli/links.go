// internal/cli/links.go
package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/holdings/internal/app"
	"github.com/law-makers/holdings/internal/holdings"
	"github.com/law-makers/holdings/internal/utils/output"
)

func newLinksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "links",
		Short: "List the holdings page URLs found on the listing page",
		Long: `Fetches only the listing page and prints the portfolio holdings URL
derived from every matched fund link, one per line. Useful for checking
selectors before a full scrape.`,
		Example: `  holdings links
  holdings links --listing-url https://example.com/funds.html --json`,
		Args: cobra.NoArgs,
		RunE: withApp(runLinks),
	}
}

func runLinks(cmd *cobra.Command, a *app.Application) error {
	links, err := holdings.CollectLinks(cmd.Context(), a.Fetcher, a.Config.ListingURL, a.Config.LinkSelector, holdings.LinkOptions{
		SkipMissingHref: a.Config.SkipMissingHref,
	})
	if err != nil {
		return err
	}

	pages := make([]string, 0, len(links))
	for _, link := range links {
		if link == "" {
			log.Debug().Msg("Skipping empty link")
			continue
		}
		pages = append(pages, holdings.PageURL(link))
	}

	out := cmd.OutOrStdout()
	if a.Config.JSONLog {
		return output.WriteJSON(out, pages)
	}
	for _, p := range pages {
		fmt.Fprintln(out, p)
	}
	log.Info().Int("links", len(pages)).Msg("Links collected")
	return nil
}
