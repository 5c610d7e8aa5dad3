// Package main is the entry point for the scholar-search CLI, a terminal
// front-end over the same OpenAlex client the HTTP server uses.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/scholarseek/scholar-search-service/internal/scholarly/openalex"
)

// rootCmd is the base command for the scholar-search CLI.
var rootCmd = &cobra.Command{
	Use:   "scholar-search",
	Short: "Search OpenAlex for scholarly works and authors",
	Long: `scholar-search queries the OpenAlex catalog of scholarly metadata from the
terminal. Works and authors are separate subcommands; both accept a free-text
query with per-page and page flags and print either a readable listing or JSON.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("email", "", "contact email for OpenAlex polite-pool access")
	rootCmd.PersistentFlags().String("base-url", openalex.DefaultBaseURL, "OpenAlex API base URL")
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "request timeout")
}

// clientFromFlags builds an OpenAlex client from the persistent flags.
func clientFromFlags(cmd *cobra.Command) *openalex.Client {
	email, _ := cmd.Flags().GetString("email")
	baseURL, _ := cmd.Flags().GetString("base-url")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	return openalex.New(openalex.Config{
		BaseURL: baseURL,
		Email:   email,
		Timeout: timeout,
		Enabled: true,
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
