// internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/law-makers/holdings/internal/app"
	"github.com/law-makers/holdings/internal/config"
	"github.com/law-makers/holdings/internal/ui"
)

// Version is reported by --version
var Version = "0.1.0"

// NewRootCmd builds the command tree. A fresh tree is built per execution so
// flag state never leaks between runs.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "holdings",
		Short: "Scrape mutual fund portfolio holdings into CSV",
		Long: `Holdings reads a fund listing page, follows every fund link to its
portfolio holdings page and writes the holdings table rows of all funds
into a single CSV file.

Configuration is read from flags, HOLDINGS_* environment variables and an
optional holdings.yaml in the working directory, in that order of precedence.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		// Application is initialized here rather than at startup so -h/--version never build it
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if GetAppFromCmd(cmd) != nil {
				return nil
			}
			cfg, err := config.Load(cmd)
			if err != nil {
				return err
			}
			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			SetApp(cmd, a)
			return nil
		},
	}

	root.CompletionOptions.DisableDefaultCmd = true
	config.RegisterFlags(root)

	root.AddCommand(newScrapeCmd(), newLinksCmd())
	return root
}

// Execute runs the CLI and returns the process exit code
func Execute(ctx context.Context) int {
	return execute(ctx, NewRootCmd(), os.Args[1:])
}

func execute(ctx context.Context, root *cobra.Command, args []string) int {
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), ui.Error("Error: "+err.Error()))
		return 1
	}
	return 0
}
