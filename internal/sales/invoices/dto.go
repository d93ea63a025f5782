package invoices

type ItemInput struct {
	Description string  `json:"description" validate:"required,max=500"`
	Quantity    float64 `json:"quantity" validate:"gte=0"`
	Rate        float64 `json:"rate" validate:"gte=0"`
}

type CreateInvoiceRequest struct {
	JobID      string      `json:"job_id" validate:"required"`
	Items      []ItemInput `json:"items" validate:"required,min=1,dive"`
	Notes      string      `json:"notes,omitempty" validate:"max=4000"`
	Terms      string      `json:"terms,omitempty" validate:"max=50"`
	IssuedDate string      `json:"issued_date,omitempty"`
	DueDate    string      `json:"due_date,omitempty"`
}

type UpdateInvoiceRequest struct {
	Items   *[]ItemInput `json:"items,omitempty" validate:"omitempty,min=1,dive"`
	Notes   *string      `json:"notes,omitempty" validate:"omitempty,max=4000"`
	Terms   *string      `json:"terms,omitempty" validate:"omitempty,max=50"`
	DueDate *string      `json:"due_date,omitempty"`
	Status  *Status      `json:"status,omitempty" validate:"omitempty,oneof=pending paid"`
}

type ListInvoicesRequest struct {
	Status     *Status
	JobID      string
	CustomerID string
}
