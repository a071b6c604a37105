package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelist/reelist/internal/common"
	"github.com/reelist/reelist/internal/logging"
	"github.com/reelist/reelist/internal/server/auth"
	"github.com/reelist/reelist/internal/server/config"
	"github.com/reelist/reelist/internal/server/omdb"
	"github.com/reelist/reelist/internal/server/repositories/repomanager"
	"github.com/reelist/reelist/internal/server/services"
)

type stubFinder struct {
	searchResult *omdb.SearchResult
	detailResult *omdb.MovieDetail
	err          error
}

func (f *stubFinder) Search(ctx context.Context, query string) (*omdb.SearchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.searchResult, nil
}

func (f *stubFinder) Detail(ctx context.Context, imdbID string) (*omdb.MovieDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.detailResult, nil
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	cfg.OMDbAPIKey = "test-omdb-key"
	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config, finder MovieFinder) *Server {
	t.Helper()

	rm := repomanager.NewMemoryRepositoryManager()
	us := services.NewUserService(rm.Users(), cfg)
	ws := services.NewWatchedService(rm.Watched())
	logger := logging.NewSlogLogger(newDiscardLogger())

	if finder == nil {
		finder = &stubFinder{}
	}

	return NewServer(cfg, logger, us, ws, finder)
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func registerAndLogin(t *testing.T, h http.Handler, email string) string {
	t.Helper()

	creds := map[string]string{"email": email, "password": "correcthorse"}

	rr := doJSON(t, h, http.MethodPost, "/api/auth/register", "", creds)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(t, h, http.MethodPost, "/api/auth/login", "", creds)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp tokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, newTestConfig(), nil).Router()

	rr := doJSON(t, h, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestRegisterValidation(t *testing.T) {
	h := newTestServer(t, newTestConfig(), nil).Router()

	tests := []struct {
		name string
		body map[string]string
		want int
	}{
		{"missing email", map[string]string{"password": "correcthorse"}, http.StatusBadRequest},
		{"missing password", map[string]string{"email": "a@b.c"}, http.StatusBadRequest},
		{"short password", map[string]string{"email": "a@b.c", "password": "short"}, http.StatusBadRequest},
		{"valid", map[string]string{"email": "a@b.c", "password": "correcthorse"}, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doJSON(t, h, http.MethodPost, "/api/auth/register", "", tt.body)
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

func TestRegisterResponseOmitsPassword(t *testing.T) {
	h := newTestServer(t, newTestConfig(), nil).Router()

	rr := doJSON(t, h, http.MethodPost, "/api/auth/register", "",
		map[string]string{"email": "a@b.c", "password": "correcthorse"})
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["id"])
	assert.Equal(t, "a@b.c", resp["email"])
	assert.NotEmpty(t, resp["createdAt"])
	assert.NotContains(t, rr.Body.String(), "correcthorse")
	assert.NotContains(t, rr.Body.String(), "passwordHash")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h := newTestServer(t, newTestConfig(), nil).Router()
	creds := map[string]string{"email": "a@b.c", "password": "correcthorse"}

	rr := doJSON(t, h, http.MethodPost, "/api/auth/register", "", creds)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(t, h, http.MethodPost, "/api/auth/register", "", creds)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	h := newTestServer(t, newTestConfig(), nil).Router()

	rr := doJSON(t, h, http.MethodPost, "/api/auth/register", "",
		map[string]string{"email": "a@b.c", "password": "correcthorse"})
	require.Equal(t, http.StatusCreated, rr.Code)

	unknown := doJSON(t, h, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "nobody@b.c", "password": "correcthorse"})
	wrongPass := doJSON(t, h, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "a@b.c", "password": "wrongpassword"})

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, unknown.Body.String(), wrongPass.Body.String())
}

func TestLoginWithoutSecretFails(t *testing.T) {
	cfg := newTestConfig()
	cfg.SecretKey = ""
	h := newTestServer(t, cfg, nil).Router()
	creds := map[string]string{"email": "a@b.c", "password": "correcthorse"}

	rr := doJSON(t, h, http.MethodPost, "/api/auth/register", "", creds)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(t, h, http.MethodPost, "/api/auth/login", "", creds)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "misconfigured")
}

func TestSearch(t *testing.T) {
	finder := &stubFinder{searchResult: &omdb.SearchResult{
		Search: []omdb.MovieSummary{
			{Title: "Heat", Year: "1995", ImdbID: "tt0113277", Type: "movie"},
		},
		TotalResults: "1",
		Response:     "True",
	}}
	h := newTestServer(t, newTestConfig(), finder).Router()

	rr := doJSON(t, h, http.MethodGet, "/api/search?q=heat", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "tt0113277")
}

func TestSearchMissingQuery(t *testing.T) {
	h := newTestServer(t, newTestConfig(), nil).Router()

	rr := doJSON(t, h, http.MethodGet, "/api/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSearchWithoutAPIKey(t *testing.T) {
	cfg := newTestConfig()
	cfg.OMDbAPIKey = ""
	h := newTestServer(t, cfg, nil).Router()

	rr := doJSON(t, h, http.MethodGet, "/api/search?q=heat", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "misconfigured")
}

func TestMovieDetailNotFound(t *testing.T) {
	finder := &stubFinder{err: fmt.Errorf("%w: Incorrect IMDb ID.", common.ErrNotFound)}
	h := newTestServer(t, newTestConfig(), finder).Router()

	rr := doJSON(t, h, http.MethodGet, "/api/movie/tt0000000", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestWatchedRequiresToken(t *testing.T) {
	h := newTestServer(t, newTestConfig(), nil).Router()

	tests := []struct {
		name  string
		token string
	}{
		{"no token", ""},
		{"garbage token", "not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doJSON(t, h, http.MethodGet, "/api/watched", tt.token, nil)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestWatchedRejectsExpiredToken(t *testing.T) {
	cfg := newTestConfig()
	h := newTestServer(t, cfg, nil).Router()

	expired, err := auth.GenerateToken("user-1", []byte(cfg.SecretKey), -time.Minute)
	require.NoError(t, err)

	rr := doJSON(t, h, http.MethodGet, "/api/watched", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestWatchedRejectsTokenSignedWithOtherSecret(t *testing.T) {
	cfg := newTestConfig()
	h := newTestServer(t, cfg, nil).Router()

	forged, err := auth.GenerateToken("user-1", []byte("other-secret"), time.Hour)
	require.NoError(t, err)

	rr := doJSON(t, h, http.MethodGet, "/api/watched", forged, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestWatchedLifecycle(t *testing.T) {
	h := newTestServer(t, newTestConfig(), nil).Router()
	token := registerAndLogin(t, h, "a@b.c")

	// Empty list to start with.
	rr := doJSON(t, h, http.MethodGet, "/api/watched", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	movie := map[string]string{
		"imdbID": "tt0113277", "title": "Heat", "year": "1995", "poster": "https://img/heat.jpg",
	}

	rr = doJSON(t, h, http.MethodPost, "/api/watched", token, movie)
	require.Equal(t, http.StatusCreated, rr.Code)

	// Adding the same movie again conflicts.
	rr = doJSON(t, h, http.MethodPost, "/api/watched", token, movie)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = doJSON(t, h, http.MethodGet, "/api/watched", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "tt0113277", list[0]["id"])
	assert.Equal(t, "Heat", list[0]["title"])

	rr = doJSON(t, h, http.MethodDelete, "/api/watched/tt0113277", token, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// Second delete finds nothing.
	rr = doJSON(t, h, http.MethodDelete, "/api/watched/tt0113277", token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, h, http.MethodGet, "/api/watched", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestWatchedAddValidation(t *testing.T) {
	h := newTestServer(t, newTestConfig(), nil).Router()
	token := registerAndLogin(t, h, "a@b.c")

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing imdbID", map[string]string{"title": "Heat"}},
		{"missing title", map[string]string{"imdbID": "tt0113277"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doJSON(t, h, http.MethodPost, "/api/watched", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestWatchedIsolatedPerUser(t *testing.T) {
	h := newTestServer(t, newTestConfig(), nil).Router()
	tokenA := registerAndLogin(t, h, "alice@b.c")
	tokenB := registerAndLogin(t, h, "bob@b.c")

	rr := doJSON(t, h, http.MethodPost, "/api/watched", tokenA,
		map[string]string{"imdbID": "tt0113277", "title": "Heat"})
	require.Equal(t, http.StatusCreated, rr.Code)

	// Bob does not see Alice's list and cannot delete her entry.
	rr = doJSON(t, h, http.MethodGet, "/api/watched", tokenB, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = doJSON(t, h, http.MethodDelete, "/api/watched/tt0113277", tokenB, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, h, http.MethodGet, "/api/watched", tokenA, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "tt0113277")
}
