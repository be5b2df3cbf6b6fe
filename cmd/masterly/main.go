package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/masterly-ai/masterly/internal/interfaces/cli/migrate"
	"github.com/masterly-ai/masterly/internal/interfaces/cli/review"
	"github.com/masterly-ai/masterly/internal/interfaces/cli/server"
	"github.com/masterly-ai/masterly/internal/shared/version"
)

// @title						Masterly API
// @version					1.0
// @description				Subscription billing and question review API.
// @BasePath					/
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
// @description				Supabase access token, as "Bearer <token>"
func main() {
	rootCmd := &cobra.Command{
		Use:     "masterly",
		Short:   "Masterly - spaced repetition study backend",
		Long:    `Masterly serves the study API, reconciles Lemon Squeezy subscriptions, and runs review sessions from the terminal.`,
		Version: version.String(),
	}
	rootCmd.SetVersionTemplate(fmt.Sprintf("masterly %s\n", version.String()))

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		review.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
