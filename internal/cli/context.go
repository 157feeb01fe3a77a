// Package cli provides the command-line interface for the holdings scraper.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/law-makers/holdings/internal/app"
)

// ctxKey is used for storing the application in a command's context
type ctxKey string

const appKey ctxKey = "app"

// SetApp stores the Application in the command's context
func SetApp(cmd *cobra.Command, a *app.Application) {
	if cmd == nil {
		return
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, appKey, a))
}

// GetAppFromCmd retrieves the Application stored by SetApp, or nil
func GetAppFromCmd(cmd *cobra.Command) *app.Application {
	if cmd == nil || cmd.Context() == nil {
		return nil
	}
	a, _ := cmd.Context().Value(appKey).(*app.Application)
	return a
}

// withApp adapts a command body that needs the Application and closes it afterwards
func withApp(run func(cmd *cobra.Command, a *app.Application) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		a := GetAppFromCmd(cmd)
		if a == nil {
			return fmt.Errorf("application not initialized")
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = a.Close(ctx)
		}()
		return run(cmd, a)
	}
}
