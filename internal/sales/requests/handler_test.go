package requests

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestHandlers(t *testing.T) {
	env := newTestEnv(t)
	clientID := env.client(t)
	r := chi.NewRouter()
	NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), env.requests).MountRoutes(r)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(method, path, reader))
		return rr
	}

	rr := do(http.MethodPost, "/requests", `{"client_id":"`+clientID+`","title":"Porch light","preferred_dates":{"primary":"2024-07-08"},"preferred_times":["morning"]}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = do(http.MethodPost, "/requests", `{"client_id":"c_1","title":"Bad","preferred_dates":{"primary":"next week"}}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(http.MethodPost, "/requests/r_1/notes", `{"content":"call first","importance":"high"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"synced":true`)

	rr = do(http.MethodPost, "/requests/r_1/notes", `{"content":"x","importance":"urgent"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(http.MethodPatch, "/requests/r_1", `{"status":"archived"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(http.MethodGet, "/requests?status=new", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"total":1`)

	rr = do(http.MethodGet, "/requests/r_9", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
