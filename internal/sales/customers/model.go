package customers

import (
	"strings"
	"time"
)

// StoreName is the snapshot key of the customer collection.
const StoreName = "customers"

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusLead     Status = "lead"
)

// Address is a structured postal address.
type Address struct {
	Street1 string `json:"street1" validate:"required,max=200"`
	Street2 string `json:"street2,omitempty" validate:"max=200"`
	City    string `json:"city" validate:"required,max=100"`
	State   string `json:"state" validate:"required,max=50"`
	ZipCode string `json:"zip_code" validate:"required,max=20"`
	Country string `json:"country,omitempty" validate:"max=60"`
}

// Flatten renders "street1[, street2], city, state zip".
func (a Address) Flatten() string {
	parts := make([]string, 0, 4)
	if s := strings.TrimSpace(a.Street1); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(a.Street2); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(a.City); s != "" {
		parts = append(parts, s)
	}
	stateZip := strings.TrimSpace(strings.TrimSpace(a.State) + " " + strings.TrimSpace(a.ZipCode))
	if stateZip != "" {
		parts = append(parts, stateZip)
	}
	return strings.Join(parts, ", ")
}

// ParseAddress splits a flat "street, city, state zip" string. Segments that cannot be
// identified are left empty.
func ParseAddress(flat string) Address {
	segs := strings.Split(flat, ",")
	for i := range segs {
		segs[i] = strings.TrimSpace(segs[i])
	}
	var a Address
	switch len(segs) {
	case 0:
		return a
	case 1:
		a.Street1 = segs[0]
		return a
	case 2:
		a.Street1 = segs[0]
		a.City = segs[1]
		return a
	}
	last := segs[len(segs)-1]
	if fields := strings.Fields(last); len(fields) >= 2 {
		a.ZipCode = fields[len(fields)-1]
		a.State = strings.Join(fields[:len(fields)-1], " ")
	} else {
		a.State = last
	}
	a.City = segs[len(segs)-2]
	a.Street1 = segs[0]
	if len(segs) > 3 {
		a.Street2 = strings.Join(segs[1:len(segs)-2], ", ")
	}
	return a
}

type BillingKind string

const (
	BillingSameAsProperty BillingKind = "same_as_property"
	BillingDistinct       BillingKind = "distinct"
)

// Billing is either the property address or a separate address. Address is set only
// for BillingDistinct.
type Billing struct {
	Kind    BillingKind `json:"kind"`
	Address *Address    `json:"address,omitempty"`
}

// SameAsProperty returns the billing variant that reuses the property address.
func SameAsProperty() Billing { return Billing{Kind: BillingSameAsProperty} }

// Distinct returns the billing variant with its own address.
func Distinct(a Address) Billing { return Billing{Kind: BillingDistinct, Address: &a} }

// Resolve returns the effective billing address for the given property.
func (b Billing) Resolve(property *Address) *Address {
	if b.Kind == BillingDistinct && b.Address != nil {
		return b.Address
	}
	return property
}

type Phone struct {
	Type         string `json:"type" validate:"omitempty,oneof=main mobile home work other"`
	Number       string `json:"number" validate:"required,max=50"`
	ReceivesText bool   `json:"receives_text"`
}

type Email struct {
	Type    string `json:"type" validate:"omitempty,oneof=main personal work other"`
	Address string `json:"address" validate:"required,email"`
}

type Customer struct {
	ID                     string     `json:"id"`
	Name                   string     `json:"name"`
	Title                  string     `json:"title,omitempty"`
	FirstName              string     `json:"first_name,omitempty"`
	LastName               string     `json:"last_name,omitempty"`
	CompanyName            string     `json:"company_name,omitempty"`
	UseCompanyName         bool       `json:"use_company_name"`
	Email                  string     `json:"email"`
	Phone                  string     `json:"phone"`
	Emails                 []Email    `json:"emails,omitempty"`
	Phones                 []Phone    `json:"phones,omitempty"`
	Address                string     `json:"address"`
	Property               *Address   `json:"property,omitempty"`
	Billing                Billing    `json:"billing"`
	Notes                  string     `json:"notes"`
	Status                 Status     `json:"status,omitempty"`
	LeadSource             string     `json:"lead_source,omitempty"`
	AutomatedNotifications bool       `json:"automated_notifications"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
	LastContactDate        *time.Time `json:"last_contact_date,omitempty"`
}
