package jobs

import "github.com/handydesk/handydesk/internal/sales/customers"

type CreateJobRequest struct {
	CustomerID     string                           `json:"customer_id,omitempty" validate:"required_without=NewCustomer"`
	NewCustomer    *customers.CreateCustomerRequest `json:"new_customer,omitempty"`
	Title          string                           `json:"title" validate:"required,max=200"`
	Description    string                           `json:"description,omitempty" validate:"max=4000"`
	Status         *Status                          `json:"status,omitempty"`
	ScheduledDate  string                           `json:"scheduled_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartDate      string                           `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate        string                           `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EstimatedHours float64                          `json:"estimated_hours,omitempty" validate:"gte=0"`
	Priority       Priority                         `json:"priority,omitempty" validate:"omitempty,oneof=low normal high urgent"`
	LeadSource     string                           `json:"lead_source,omitempty" validate:"max=100"`
	Location       string                           `json:"location,omitempty" validate:"max=500"`
	Price          float64                          `json:"price" validate:"gte=0"`
	Notes          string                           `json:"notes,omitempty"`
}

type UpdateJobRequest struct {
	Title          *string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description    *string   `json:"description,omitempty" validate:"omitempty,max=4000"`
	CustomerID     *string   `json:"customer_id,omitempty" validate:"omitempty,min=1"`
	Status         *Status   `json:"status,omitempty"`
	ScheduledDate  *string   `json:"scheduled_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartDate      *string   `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate        *string   `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EstimatedHours *float64  `json:"estimated_hours,omitempty" validate:"omitempty,gte=0"`
	Priority       *Priority `json:"priority,omitempty" validate:"omitempty,oneof=low normal high urgent"`
	LeadSource     *string   `json:"lead_source,omitempty" validate:"omitempty,max=100"`
	Location       *string   `json:"location,omitempty" validate:"omitempty,max=500"`
	Price          *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Notes          *string   `json:"notes,omitempty"`
}

type ListJobsRequest struct {
	Status     *Status
	CustomerID string
}
