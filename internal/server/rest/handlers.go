package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/reelist/reelist/internal/common"
	"github.com/reelist/reelist/internal/server/omdb"
)

// MovieFinder is the movie catalog the search and detail handlers proxy to.
// *omdb.Client implements it; tests substitute a stub.
type MovieFinder interface {
	Search(ctx context.Context, query string) (*omdb.SearchResult, error)
	Detail(ctx context.Context, imdbID string) (*omdb.MovieDetail, error)
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type addWatchedRequest struct {
	ImdbID string `json:"imdbID"`
	Title  string `json:"title"`
	Year   string `json:"year"`
	Poster string `json:"poster"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", common.ErrValidation))
		return
	}

	user, err := s.userService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		s.logger.Info(r.Context(), "registration rejected", "error", err)
		writeError(w, err)
		return
	}

	s.logger.Info(r.Context(), "user registered", "userID", user.ID)
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", common.ErrValidation))
		return
	}

	token, err := s.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.logger.Info(r.Context(), "login rejected", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, fmt.Errorf("%w: missing search query", common.ErrValidation))
		return
	}
	if s.omdbKeyMissing {
		writeError(w, fmt.Errorf("%w: OMDb API key is not set", common.ErrConfig))
		return
	}

	result, err := s.finder.Search(r.Context(), query)
	if err != nil {
		s.logger.Error(r.Context(), "movie search failed", "query", query, "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleMovieDetail(w http.ResponseWriter, r *http.Request) {
	imdbID := chi.URLParam(r, "id")
	if s.omdbKeyMissing {
		writeError(w, fmt.Errorf("%w: OMDb API key is not set", common.ErrConfig))
		return
	}

	detail, err := s.finder.Detail(r.Context(), imdbID)
	if err != nil {
		s.logger.Error(r.Context(), "movie lookup failed", "imdbID", imdbID, "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleWatchedList(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	list, err := s.watchedService.List(r.Context(), userID)
	if err != nil {
		s.logger.Error(r.Context(), "watched list failed", "userID", userID, "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleWatchedAdd(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	var req addWatchedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", common.ErrValidation))
		return
	}

	movie, err := s.watchedService.Add(r.Context(), userID, req.ImdbID, req.Title, req.Year, req.Poster)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, movie)
}

func (s *Server) handleWatchedRemove(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	imdbID := chi.URLParam(r, "id")

	if err := s.watchedService.Remove(r.Context(), userID, imdbID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
