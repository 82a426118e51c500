package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/reelfind/internal/omdb"
)

var searchCmd = &cobra.Command{
	Use:   "search [flags] <query>...",
	Short: "Search for movies and series",
	Long: `Search for movies and series.

Examples:
  reelfind search "The Matrix"
  reelfind search batman --type movie --year 2005`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearchCmd,
}

var movieCmd = &cobra.Command{
	Use:   "movie <imdb-id>",
	Short: "Show full details for a movie",
	Args:  cobra.ExactArgs(1),
	RunE:  runMovieCmd,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(movieCmd)

	searchCmd.Flags().String("type", "", "Result type (movie, series, episode)")
	searchCmd.Flags().String("year", "", "Year of release")
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	mediaType, _ := cmd.Flags().GetString("type")
	year, _ := cmd.Flags().GetString("year")

	params := url.Values{}
	params.Set("q", query)
	if mediaType != "" {
		params.Set("type", mediaType)
	}
	if year != "" {
		params.Set("year", year)
	}

	client := NewClient(serverURL, authToken)
	var results omdb.SearchResponse
	if err := client.get("/api/v1/search?"+params.Encode(), &results); err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOutput {
		printJSON(results)
		return nil
	}

	if len(results.Search) == 0 {
		fmt.Println("No results found")
		return nil
	}

	fmt.Printf("Results for %q (%s total):\n\n", query, results.TotalResults)
	for _, r := range results.Search {
		fmt.Printf("  %-10s %-7s %s (%s)\n", r.IMDBID, r.Type, r.Title, r.Year)
	}
	return nil
}

func runMovieCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, authToken)

	var movie omdb.Movie
	if err := client.get("/api/v1/movies/"+url.PathEscape(args[0]), &movie); err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	if jsonOutput {
		printJSON(movie)
		return nil
	}

	fmt.Printf("%s (%s)\n", movie.Title, movie.Year)
	fmt.Printf("  %s · %s · %s\n", movie.Rated, movie.Runtime, movie.Genre)
	fmt.Printf("  Director: %s\n", movie.Director)
	fmt.Printf("  Actors:   %s\n", movie.Actors)
	if movie.IMDBRating != "" {
		fmt.Printf("  IMDB:     %s (%s votes)\n", movie.IMDBRating, movie.IMDBVotes)
	}
	if movie.Plot != "" {
		fmt.Printf("\n%s\n", movie.Plot)
	}
	return nil
}
