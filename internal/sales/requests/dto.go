package requests

type CreateRequestRequest struct {
	ClientID           string         `json:"client_id" validate:"required"`
	Title              string         `json:"title" validate:"required,max=200"`
	Details            string         `json:"details,omitempty" validate:"max=4000"`
	PreferredDates     PreferredDates `json:"preferred_dates"`
	PreferredTimes     TimeSlots      `json:"preferred_times,omitempty"`
	RequiresAssessment bool           `json:"requires_assessment"`
	InternalNotes      string         `json:"internal_notes,omitempty"`
}

type UpdateRequestRequest struct {
	Title              *string         `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Details            *string         `json:"details,omitempty" validate:"omitempty,max=4000"`
	PreferredDates     *PreferredDates `json:"preferred_dates,omitempty"`
	PreferredTimes     *TimeSlots      `json:"preferred_times,omitempty"`
	RequiresAssessment *bool           `json:"requires_assessment,omitempty"`
	Status             *Status         `json:"status,omitempty" validate:"omitempty,oneof=new in-progress completed cancelled"`
}

type AddNoteRequest struct {
	Content    string `json:"content" validate:"required"`
	Importance string `json:"importance,omitempty" validate:"omitempty,oneof=low medium high"`
}

type ListRequestsRequest struct {
	Status   *Status
	ClientID string
}
