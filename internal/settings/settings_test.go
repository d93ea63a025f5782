package settings

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handydesk/handydesk/internal/platform/kv"
	"github.com/handydesk/handydesk/internal/shared"
)

const validKey = "sk-abcdefghijklmnopqrstuvwxyz012345"

func newTestService(t *testing.T) (*Service, *kv.Memory) {
	t.Helper()
	sealer, err := NewSealer("test-secret")
	require.NoError(t, err)
	store := kv.NewMemory()
	return NewService(store, sealer), store
}

func TestValidateAPIKey(t *testing.T) {
	tests := map[string]string{
		"":               "API key is required",
		"pk-" + validKey: "Invalid API key format",
		"sk-short":       "API key is too short",
	}
	for key, msg := range tests {
		err := ValidateAPIKey(key)
		var keyErr *APIKeyError
		require.True(t, errors.As(err, &keyErr), key)
		assert.Equal(t, msg, keyErr.Message)
	}
	assert.NoError(t, ValidateAPIKey(validKey))
}

func TestSealerRoundTrip(t *testing.T) {
	a, err := NewSealer("one")
	require.NoError(t, err)
	b, err := NewSealer("two")
	require.NoError(t, err)

	sealed, err := a.Seal([]byte(validKey))
	require.NoError(t, err)
	assert.NotContains(t, sealed, "sk-")

	plain, err := a.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, validKey, string(plain))

	_, err = b.Open(sealed)
	require.ErrorIs(t, err, ErrSealed)

	_, err = NewSealer("")
	require.Error(t, err)
}

func TestAPIKeyLifecycle(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.SetOfflineMode(ctx, true)
	require.NoError(t, err)

	st, err := svc.SetAPIKey(ctx, "  "+validKey+" ")
	require.NoError(t, err)
	assert.True(t, st.HasKey)
	assert.False(t, st.Offline)
	assert.Equal(t, "sk-...2345", st.KeyHint)

	raw, err := store.Get(ctx, KeyAI)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), validKey)

	key, offline, err := svc.Credentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, validKey, key)
	assert.False(t, offline)

	_, err = svc.SetAPIKey(ctx, "bad")
	require.Error(t, err)
	key, _, err = svc.Credentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, validKey, key)

	st, err = svc.ClearAPIKey(ctx)
	require.NoError(t, err)
	assert.False(t, st.HasKey)
	assert.True(t, st.Offline)
	key, offline, err = svc.Credentials(ctx)
	require.NoError(t, err)
	assert.Empty(t, key)
	assert.True(t, offline)
}

func TestLogoValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	logo, err := svc.Logo(ctx)
	require.NoError(t, err)
	assert.True(t, logo.ShowText)
	assert.Nil(t, logo.Logo)

	png := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("\x89PNG fake"))
	saved, err := svc.SetLogo(ctx, Logo{Logo: &png})
	require.NoError(t, err)
	assert.Equal(t, png, *saved.Logo)

	bad := "https://example.com/logo.png"
	_, err = svc.SetLogo(ctx, Logo{CollapsedLogo: &bad})
	require.ErrorIs(t, err, shared.ErrValidation)

	huge := "data:image/png;base64," + base64.StdEncoding.EncodeToString(make([]byte, maxLogoBytes+1))
	_, err = svc.SetLogo(ctx, Logo{Logo: &huge})
	require.ErrorIs(t, err, shared.ErrValidation)

	cleared, err := svc.SetLogo(ctx, Logo{})
	require.NoError(t, err)
	assert.Nil(t, cleared.Logo)
}

func TestNotificationDefaults(t *testing.T) {
	svc, _ := newTestService(t)
	prefs, err := svc.Notifications(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultNotificationPrefs(), prefs)
	assert.False(t, prefs.SMS)
}

func TestSettingsHandlers(t *testing.T) {
	svc, _ := newTestService(t)
	r := chi.NewRouter()
	NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), svc).MountRoutes(r)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(method, path, strings.NewReader(body)))
		return rr
	}

	rr := do(http.MethodPut, "/settings/ai/key", `{"api_key":"sk-1"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "API key is too short")

	rr = do(http.MethodPut, "/settings/ai/key", `{"api_key":"`+validKey+`"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), validKey)

	rr = do(http.MethodPut, "/settings/business", `{"name":"Fix-It Co","email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(http.MethodPut, "/settings/business", `{"name":"Fix-It Co","city":"Rapid City"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = do(http.MethodGet, "/settings/business", "")
	assert.Contains(t, rr.Body.String(), "Rapid City")
}
