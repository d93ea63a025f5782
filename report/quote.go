package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/handydesk/handydesk/internal/shared"
)

//go:embed templates/quote.html.tmpl
var quoteSource string

var quoteTemplate = template.Must(template.New("quote").Funcs(template.FuncMap{
	"money": shared.FormatMoney,
	"qty":   func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
	"date":  func(t time.Time) string { return t.Format("January 2, 2006") },
}).Parse(quoteSource))

// Party is a name and address block on a document.
type Party struct {
	Name    string
	Address []string
	Phone   string
	Email   string
}

type QuoteLine struct {
	Name        string
	Description string
	Quantity    float64
	UnitPrice   float64
	Amount      float64
}

// QuoteDocument is everything printed on a quote. Amounts are unrounded; the template
// formats them to cents.
type QuoteDocument struct {
	Number        string
	Title         string
	Status        string
	Date          time.Time
	Business      Party
	Customer      Party
	Lines         []QuoteLine
	Subtotal      float64
	Discount      float64
	TaxEnabled    bool
	TaxPercent    float64
	TaxAmount     float64
	Total         float64
	Deposit       float64
	ClientMessage string
	Disclaimer    string
}

// RenderQuoteHTML executes the quote template.
func RenderQuoteHTML(doc QuoteDocument) (string, error) {
	var buf bytes.Buffer
	if err := quoteTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("report: render quote %s: %w", doc.Number, err)
	}
	return buf.String(), nil
}
