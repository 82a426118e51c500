// Package v1 implements the native REST API.
package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vmunix/reelfind/internal/favorites"
	"github.com/vmunix/reelfind/internal/omdb"
	"github.com/vmunix/reelfind/internal/session"
)

// Version is stamped at build time.
var Version = "dev"

// Server is the v1 API server.
type Server struct {
	sessions  *session.Manager
	movies    *omdb.Client
	favorites *favorites.Store
}

// New creates a new v1 API server.
func New(sessions *session.Manager, movies *omdb.Client, favs *favorites.Store) *Server {
	return &Server{
		sessions:  sessions,
		movies:    movies,
		favorites: favs,
	}
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Auth
	mux.HandleFunc("POST /api/v1/auth/register", s.register)
	mux.HandleFunc("POST /api/v1/auth/login", s.login)
	mux.HandleFunc("POST /api/v1/auth/logout", s.logout)
	mux.HandleFunc("GET /api/v1/auth/me", s.requireAuth(s.me))

	// Movies
	mux.HandleFunc("GET /api/v1/search", s.requireAuth(s.search))
	mux.HandleFunc("GET /api/v1/movies/{id}", s.requireAuth(s.getMovie))

	// Favorites
	mux.HandleFunc("GET /api/v1/favorites", s.requireAuth(s.listFavorites))
	mux.HandleFunc("POST /api/v1/favorites", s.requireAuth(s.addFavorite))
	mux.HandleFunc("DELETE /api/v1/favorites/{id}", s.requireAuth(s.removeFavorite))

	// System
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// Auth handlers. Credential failures come back as the session layer's
// structured result, with an HTTP status to match.

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	res := s.sessions.Register(r.Context(), req.Email, req.DisplayName, req.Password)
	if !res.Success {
		writeJSON(w, http.StatusBadRequest, res)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	res := s.sessions.Login(r.Context(), req.Email, req.Password)
	if !res.Success {
		writeJSON(w, http.StatusUnauthorized, res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, requestUser(r))
}

// Movie handlers

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	term := q.Get("q")
	if term == "" {
		writeError(w, http.StatusBadRequest, "MISSING_QUERY", "q parameter is required")
		return
	}

	resp, err := s.movies.Search(r.Context(), term, q.Get("type"), q.Get("year"))
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getMovie(w http.ResponseWriter, r *http.Request) {
	movie, err := s.movies.GetMovie(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movie)
}

// writeUpstreamError maps OMDB client errors onto HTTP statuses.
func writeUpstreamError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, omdb.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "No results")
	case errors.Is(err, omdb.ErrInvalidAPIKey):
		writeError(w, http.StatusBadGateway, "UPSTREAM_AUTH", "OMDB rejected the API key")
	default:
		writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
	}
}

// Favorites handlers

func (s *Server) listFavorites(w http.ResponseWriter, r *http.Request) {
	list, err := s.favorites.List(r.Context(), requestUser(r).ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	if list == nil {
		list = []favorites.Favorite{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) addFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if req.IMDBID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "imdbID is required")
		return
	}

	fav := favorites.Favorite{
		UserID: requestUser(r).ID,
		IMDBID: req.IMDBID,
		Title:  req.Title,
		Year:   req.Year,
		Type:   req.Type,
		Poster: req.Poster,
	}
	if err := s.favorites.Add(r.Context(), &fav); err != nil {
		if errors.Is(err, favorites.ErrDuplicate) {
			writeError(w, http.StatusConflict, "DUPLICATE", "Already saved")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, fav)
}

func (s *Server) removeFavorite(w http.ResponseWriter, r *http.Request) {
	err := s.favorites.Remove(r.Context(), requestUser(r).ID, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, favorites.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Favorite not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// System handlers

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Version: Version, Status: "ok"})
}
