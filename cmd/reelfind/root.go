package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	serverURL  string
	authToken  string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "reelfind",
	Short: "CLI client for the reelfind movie discovery server",
	Long: `reelfind - CLI client for the reelfind movie discovery server

Search OMDB through the server's cache, inspect movie details,
and manage your saved favorites.

Run 'reelfindd' to start the server daemon.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8486", "Server URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", os.Getenv("REELFIND_TOKEN"), "Bearer token (defaults to $REELFIND_TOKEN)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("reelfind {{.Version}}\n")
}
