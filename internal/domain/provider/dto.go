package provider

// ApplyRequest for POST /providers/apply (multipart form fields)
type ApplyRequest struct {
	BusinessName string `json:"business_name" validate:"required,min=2,max=200"`
	Description  string `json:"description" validate:"max=2000"`
	City         string `json:"city" validate:"required,min=2,max=100"`
	Address      string `json:"address" validate:"max=300"`
	Phone        string `json:"phone" validate:"omitempty,max=32"`
}

// UpdateRequest for PATCH /providers/me
type UpdateRequest struct {
	BusinessName *string `json:"business_name" validate:"omitempty,min=2,max=200"`
	Description  *string `json:"description" validate:"omitempty,max=2000"`
	City         *string `json:"city" validate:"omitempty,min=2,max=100"`
	Address      *string `json:"address" validate:"omitempty,max=300"`
	Phone        *string `json:"phone" validate:"omitempty,max=32"`
}

// ReviewRequest for admin approve/reject
type ReviewRequest struct {
	Reason string `json:"reason" validate:"max=1000"`
}
