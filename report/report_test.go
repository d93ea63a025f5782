package report

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handydesk/handydesk/internal/shared"
)

func sampleQuote() QuoteDocument {
	return QuoteDocument{
		Number:     "q_1",
		Title:      "Deck repair",
		Status:     "sent",
		Date:       time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
		Business:   Party{Name: "Fix-It Co", Address: []string{"12 Main St", "Rapid City, SD 57701"}},
		Customer:   Party{Name: "Ann <Lee>"},
		Lines:      []QuoteLine{{Name: "Boards", Quantity: 2, UnitPrice: 50, Amount: 100}},
		Subtotal:   100,
		Discount:   10,
		TaxEnabled: true,
		TaxPercent: 4.5,
		TaxAmount:  4.05,
		Total:      94.05,
	}
}

func TestRenderQuoteHTML(t *testing.T) {
	html, err := RenderQuoteHTML(sampleQuote())
	require.NoError(t, err)
	assert.Contains(t, html, "Fix-It Co")
	assert.Contains(t, html, "Tax (4.5%)")
	assert.Contains(t, html, "$4.05")
	assert.Contains(t, html, "$94.05")
	assert.Contains(t, html, "-$10.00")
	assert.Contains(t, html, "Ann &lt;Lee&gt;")
	assert.NotContains(t, html, "Required deposit")
}

func TestRenderHTMLPostsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forms/chromium/convert/html" {
			http.NotFound(w, r)
			return
		}
		file, _, err := r.FormFile("files")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		body, _ := io.ReadAll(file)
		if !strings.Contains(string(body), "<h1>") {
			http.Error(w, "missing html", http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte("%PDF-1.7"))
	}))
	defer srv.Close()

	pdf, err := NewClient(srv.URL).RenderHTML(context.Background(), "<h1>hi</h1>")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(pdf))
}

func TestRenderHTMLUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).RenderHTML(context.Background(), "<p/>")
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrUpstream))
	assert.ErrorIs(t, NewClient(srv.URL).Ping(context.Background()), shared.ErrUpstream)
}
