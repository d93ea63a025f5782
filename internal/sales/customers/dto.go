package customers

type CreateCustomerRequest struct {
	Title                        string   `json:"title,omitempty" validate:"max=20"`
	FirstName                    string   `json:"first_name,omitempty" validate:"max=100"`
	LastName                     string   `json:"last_name,omitempty" validate:"max=100"`
	CompanyName                  string   `json:"company_name,omitempty" validate:"required_if=UseCompanyName true,max=200"`
	UseCompanyName               bool     `json:"use_company_name"`
	Name                         string   `json:"name,omitempty" validate:"max=200"`
	Phones                       []Phone  `json:"phones,omitempty" validate:"dive"`
	Emails                       []Email  `json:"emails,omitempty" validate:"dive"`
	Property                     *Address `json:"property,omitempty"`
	Address                      string   `json:"address,omitempty" validate:"max=500"`
	BillingAddressSameAsProperty *bool    `json:"billing_address_same_as_property,omitempty"`
	BillingAddress               *Address `json:"billing_address,omitempty"`
	Status                       Status   `json:"status,omitempty" validate:"omitempty,oneof=active inactive lead"`
	LeadSource                   string   `json:"lead_source,omitempty" validate:"max=100"`
	AutomatedNotifications       bool     `json:"automated_notifications"`
	Notes                        string   `json:"notes,omitempty"`
}

type UpdateCustomerRequest struct {
	Name                   *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email                  *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone                  *string  `json:"phone,omitempty" validate:"omitempty,max=50"`
	Property               *Address `json:"property,omitempty"`
	Address                *string  `json:"address,omitempty" validate:"omitempty,max=500"`
	Billing                *Billing `json:"billing,omitempty"`
	Status                 *Status  `json:"status,omitempty" validate:"omitempty,oneof=active inactive lead"`
	LeadSource             *string  `json:"lead_source,omitempty" validate:"omitempty,max=100"`
	AutomatedNotifications *bool    `json:"automated_notifications,omitempty"`
}

type AddNoteRequest struct {
	Content    string `json:"content" validate:"required"`
	Importance string `json:"importance,omitempty" validate:"omitempty,oneof=low medium high"`
}

type ListCustomersRequest struct {
	Status *Status
	Search string
}
