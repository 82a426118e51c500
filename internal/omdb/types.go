// Package omdb provides a read-through cached client for the OMDB API.
package omdb

import "strconv"

// SearchResponse is the OMDB payload for a search query.
type SearchResponse struct {
	Search       []SearchResult `json:"Search"`
	TotalResults string         `json:"totalResults"`
	Response     string         `json:"Response"`
	Error        string         `json:"Error,omitempty"`
}

// SearchResult is a single entry in a search response.
type SearchResult struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"` // "1999" or "2008–2013" for series
	IMDBID string `json:"imdbID"`
	Type   string `json:"Type"` // movie, series, episode
	Poster string `json:"Poster"`
}

// Movie is a full OMDB detail record.
type Movie struct {
	Title      string   `json:"Title"`
	Year       string   `json:"Year"`
	Rated      string   `json:"Rated"`
	Released   string   `json:"Released"`
	Runtime    string   `json:"Runtime"` // "139 min"
	Genre      string   `json:"Genre"`
	Director   string   `json:"Director"`
	Writer     string   `json:"Writer"`
	Actors     string   `json:"Actors"`
	Plot       string   `json:"Plot"`
	Language   string   `json:"Language"`
	Country    string   `json:"Country"`
	Awards     string   `json:"Awards"`
	Poster     string   `json:"Poster"`
	Ratings    []Rating `json:"Ratings"`
	Metascore  string   `json:"Metascore"`
	IMDBRating string   `json:"imdbRating"`
	IMDBVotes  string   `json:"imdbVotes"`
	IMDBID     string   `json:"imdbID"`
	Type       string   `json:"Type"`
	Response   string   `json:"Response"`
	ErrorMsg   string   `json:"Error,omitempty"`
}

// Rating is one review-source score, e.g. {"Internet Movie Database", "8.8/10"}.
type Rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// YearInt extracts the first year from the Year field.
func (m *Movie) YearInt() int {
	if len(m.Year) < 4 {
		return 0
	}
	year, err := strconv.Atoi(m.Year[:4])
	if err != nil {
		return 0
	}
	return year
}
