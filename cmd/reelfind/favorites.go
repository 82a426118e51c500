package main

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/vmunix/reelfind/internal/favorites"
)

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav"},
	Short:   "Manage saved favorites",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved favorites",
	Args:  cobra.NoArgs,
	RunE:  runFavoritesListCmd,
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <imdb-id>",
	Short: "Save a movie to favorites",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesAddCmd,
}

var favoritesRemoveCmd = &cobra.Command{
	Use:     "remove <imdb-id>",
	Aliases: []string{"rm"},
	Short:   "Remove a movie from favorites",
	Args:    cobra.ExactArgs(1),
	RunE:    runFavoritesRemoveCmd,
}

func init() {
	rootCmd.AddCommand(favoritesCmd)
	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesAddCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
}

func runFavoritesListCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, authToken)

	var list []favorites.Favorite
	if err := client.get("/api/v1/favorites", &list); err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	if jsonOutput {
		printJSON(list)
		return nil
	}

	if len(list) == 0 {
		fmt.Println("No favorites saved")
		return nil
	}
	for _, f := range list {
		fmt.Printf("  %-10s %s (%s)\n", f.IMDBID, f.Title, f.Year)
	}
	return nil
}

func runFavoritesAddCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, authToken)

	// Resolve the title first so the saved favorite can be listed
	// without re-contacting OMDB.
	var movie struct {
		Title  string `json:"Title"`
		Year   string `json:"Year"`
		Type   string `json:"Type"`
		Poster string `json:"Poster"`
	}
	if err := client.get("/api/v1/movies/"+url.PathEscape(args[0]), &movie); err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	var saved favorites.Favorite
	err := client.post("/api/v1/favorites", map[string]string{
		"imdbID": args[0],
		"title":  movie.Title,
		"year":   movie.Year,
		"type":   movie.Type,
		"poster": movie.Poster,
	}, &saved)
	if err != nil {
		return fmt.Errorf("save failed: %w", err)
	}

	if jsonOutput {
		printJSON(saved)
		return nil
	}
	fmt.Printf("Saved %s (%s)\n", saved.Title, saved.Year)
	return nil
}

func runFavoritesRemoveCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, authToken)

	if err := client.delete("/api/v1/favorites/" + url.PathEscape(args[0])); err != nil {
		return fmt.Errorf("remove failed: %w", err)
	}

	if !jsonOutput {
		fmt.Println("Removed")
	}
	return nil
}
