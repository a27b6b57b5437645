// Package main provides the meapi CLI, a terminal view of a running me-api server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/khoahotran/meapi/pkg/client"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	baseURL     string
	jsonOutput  bool
	maxAttempts int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "meapi",
	Short: "Read a me-api profile from the terminal",
	Long: `meapi fetches the profile, skills, projects and search results from a
me-api server. Requests are retried with bounded exponential backoff.

The server address comes from --base-url, then MEAPI_URL, then
` + client.DefaultBaseURL + `.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	defaultURL := client.DefaultBaseURL
	if env := os.Getenv("MEAPI_URL"); env != "" {
		defaultURL = env
	}
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", defaultURL, "me-api server address")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print raw JSON instead of a human-readable view")
	rootCmd.PersistentFlags().IntVar(&maxAttempts, "attempts", client.DefaultMaxAttempts, "Maximum tries per request")
	rootCmd.Version = Version
}

func newClient() *client.Client {
	return client.NewClient(
		client.WithBaseURL(baseURL),
		client.WithMaxAttempts(maxAttempts),
	)
}
