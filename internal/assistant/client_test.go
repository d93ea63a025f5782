package assistant

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handydesk/handydesk/internal/settings"
	"github.com/handydesk/handydesk/internal/shared"
)

type fakeCreds struct {
	mu      sync.Mutex
	key     string
	offline bool
}

func (f *fakeCreds) Credentials(context.Context) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.key, f.offline, nil
}

func (f *fakeCreds) SetOfflineMode(_ context.Context, offline bool) (settings.AIStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offline = offline
	return settings.AIStatus{Offline: offline}, nil
}

func (f *fakeCreds) isOffline() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.offline
}

func newTestService(t *testing.T, url string, creds *fakeCreds) *Service {
	t.Helper()
	svc := NewService(Config{BaseURL: url, Model: "gpt-test", MaxTokens: 256, Temperature: 0.7, RetryAttempts: 2, RetryDelay: time.Millisecond},
		creds, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.sleep = func(context.Context, time.Duration) error { return nil }
	return svc
}

var history = []Message{{Role: "user", Content: "How should I price a deck repair?"}}

func TestChatSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		var req chatRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			return
		}
		assert.Equal(t, "gpt-test", req.Model)
		if assert.Len(t, req.Messages, 2) {
			assert.Equal(t, "system", req.Messages[0].Role)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Charge per board."}}]}`))
	}))
	defer srv.Close()

	creds := &fakeCreds{key: "sk-test"}
	reply, err := newTestService(t, srv.URL+"/v1/", creds).Chat(context.Background(), "quote-assistant", history)
	require.NoError(t, err)
	assert.Equal(t, "Charge per board.", reply.Content)
	assert.False(t, reply.Offline)
	assert.False(t, creds.isOffline())
}

func TestChatOfflineSkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	for _, creds := range []*fakeCreds{{key: "sk-test", offline: true}, {}} {
		reply, err := newTestService(t, srv.URL, creds).Chat(context.Background(), "schedule-optimizer", history)
		require.NoError(t, err)
		assert.True(t, reply.Offline)
		assert.Equal(t, NoticeOffline, reply.Notice)
		assert.True(t, strings.HasPrefix(reply.Content, NoticeOffline))
	}
	assert.Zero(t, calls.Load())
}

func TestChatQuotaSwitchesOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":"insufficient_quota","message":"You exceeded your quota"}}`))
	}))
	defer srv.Close()

	creds := &fakeCreds{key: "sk-test"}
	reply, err := newTestService(t, srv.URL, creds).Chat(context.Background(), "customer-support", history)
	require.NoError(t, err)
	assert.Equal(t, NoticeQuota, reply.Notice)
	assert.True(t, creds.isOffline())
}

func TestChatRetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	reply, err := newTestService(t, srv.URL, &fakeCreds{key: "sk-test"}).Chat(context.Background(), "bidgpt", history)
	require.NoError(t, err)
	assert.Equal(t, "ok", reply.Content)
	assert.Equal(t, int32(3), calls.Load())
}

func TestChatRateLimitExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	creds := &fakeCreds{key: "sk-test"}
	reply, err := newTestService(t, srv.URL, creds).Chat(context.Background(), "quick-reply", history)
	require.NoError(t, err)
	assert.Equal(t, NoticeFailure, reply.Notice)
	assert.Equal(t, int32(3), calls.Load())
	assert.True(t, creds.isOffline())
}

func TestChatServerErrorAndGarbage(t *testing.T) {
	for _, handler := range []http.HandlerFunc{
		func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
		func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`not json`)) },
		func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{"choices":[]}`)) },
	} {
		srv := httptest.NewServer(handler)
		creds := &fakeCreds{key: "sk-test"}
		reply, err := newTestService(t, srv.URL, creds).Chat(context.Background(), "marketing-assistant", history)
		srv.Close()
		require.NoError(t, err)
		assert.Equal(t, NoticeFailure, reply.Notice)
		assert.True(t, creds.isOffline())
	}
}

func TestChatUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	reply, err := newTestService(t, url, &fakeCreds{key: "sk-test"}).Chat(context.Background(), "quote-assistant", history)
	require.NoError(t, err)
	assert.Equal(t, NoticeFailure, reply.Notice)
}

func TestChatUnknownPersona(t *testing.T) {
	_, err := newTestService(t, "http://unused", &fakeCreds{}).Chat(context.Background(), "nobody", history)
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestEveryPersonaHasFallbacks(t *testing.T) {
	for _, p := range Personas() {
		assert.NotEmpty(t, p.SystemPrompt, p.ID)
		assert.NotEmpty(t, cannedReply(p, 7), p.ID)
	}
	assert.Len(t, Personas(), 6)
}

func TestAssistantHandlers(t *testing.T) {
	r := chi.NewRouter()
	NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), newTestService(t, "http://unused", &fakeCreds{})).MountRoutes(r)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/assistant/personas", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "BidGPT")
	assert.NotContains(t, rr.Body.String(), "system_prompt")

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/assistant/chat", strings.NewReader(`{"persona":"quick-reply","messages":[{"role":"user","content":"hi"}]}`)))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"offline":true`)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/assistant/chat", strings.NewReader(`{"persona":"quick-reply","messages":[]}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
