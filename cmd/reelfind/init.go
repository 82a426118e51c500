package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/reelfind/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config.toml for the server",
	Long: `Write a default config.toml for the server.

The generated config reads the OMDB API key from $OMDB_API_KEY and the
token signing secret from $REELFIND_AUTH_SECRET.`,
	Args: cobra.NoArgs,
	RunE: runInitCmd,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Overwrite an existing config.toml")
	initCmd.Flags().String("path", "config.toml", "Where to write the config")
}

func runInitCmd(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path, _ := cmd.Flags().GetString("path")

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}

	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}
