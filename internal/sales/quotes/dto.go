package quotes

type LineItemInput struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description,omitempty" validate:"max=1000"`
	Quantity    float64 `json:"quantity" validate:"gte=0"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
}

type CreateQuoteRequest struct {
	CustomerID      string          `json:"customer_id,omitempty" validate:"required_without=RequestID"`
	RequestID       string          `json:"request_id,omitempty"`
	Title           string          `json:"title,omitempty" validate:"max=200"`
	Status          Status          `json:"status,omitempty" validate:"omitempty,oneof=draft sent"`
	LineItems       []LineItemInput `json:"line_items" validate:"dive"`
	Discount        float64         `json:"discount" validate:"gte=0"`
	TaxEnabled      *bool           `json:"tax_enabled,omitempty"`
	RequiredDeposit float64         `json:"required_deposit" validate:"gte=0"`
	ClientMessage   string          `json:"client_message,omitempty" validate:"max=4000"`
	Disclaimer      string          `json:"disclaimer,omitempty" validate:"max=4000"`
	InternalNotes   string          `json:"internal_notes,omitempty"`
}

type UpdateQuoteRequest struct {
	Title           *string          `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Status          *Status          `json:"status,omitempty" validate:"omitempty,oneof=draft sent approved rejected"`
	LineItems       *[]LineItemInput `json:"line_items,omitempty" validate:"omitempty,dive"`
	Discount        *float64         `json:"discount,omitempty" validate:"omitempty,gte=0"`
	TaxEnabled      *bool            `json:"tax_enabled,omitempty"`
	RequiredDeposit *float64         `json:"required_deposit,omitempty" validate:"omitempty,gte=0"`
	ClientMessage   *string          `json:"client_message,omitempty" validate:"omitempty,max=4000"`
	Disclaimer      *string          `json:"disclaimer,omitempty" validate:"omitempty,max=4000"`
	InternalNotes   *string          `json:"internal_notes,omitempty"`
}

// PreviewRequest computes totals for an unsaved quote.
type PreviewRequest struct {
	LineItems       []LineItemInput `json:"line_items" validate:"dive"`
	Discount        float64         `json:"discount" validate:"gte=0"`
	TaxEnabled      bool            `json:"tax_enabled"`
	RequiredDeposit float64         `json:"required_deposit" validate:"gte=0"`
}

type ListQuotesRequest struct {
	Status     *Status
	CustomerID string
}
