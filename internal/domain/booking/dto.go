package booking

// PetRequest is one pet line item in a booking request
type PetRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=100"`
	PetType     string   `json:"pet_type" validate:"required,pet_type"`
	Weight      *float64 `json:"weight" validate:"omitempty,gt=0"`
	ServiceName string   `json:"service_name" validate:"max=200"`
	Notes       string   `json:"notes" validate:"max=1000"`
}

// CreateRequest for POST /bookings
type CreateRequest struct {
	ProviderID string       `json:"provider_id" validate:"required,uuid"`
	ServiceID  string       `json:"service_id" validate:"required,uuid"`
	PetType    string       `json:"pet_type" validate:"required,pet_type"`
	SizeKey    string       `json:"size_key" validate:"required,size_key"`
	Date       string       `json:"date" validate:"required,booking_date"`
	TimeSlot   string       `json:"time_slot" validate:"required,time_slot"`
	Pets       []PetRequest `json:"pets" validate:"omitempty,dive"`
}

// ReasonRequest carries the mandatory reason for decline and void
type ReasonRequest struct {
	Reason string `json:"reason" validate:"required,min=2,max=1000"`
}

// RescheduleRequest for POST /bookings/{id}/reschedule
type RescheduleRequest struct {
	Date     string `json:"date" validate:"required,booking_date"`
	TimeSlot string `json:"time_slot" validate:"required,time_slot"`
}
