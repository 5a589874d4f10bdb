package schedule

// WindowRequest is one open window in a day update
type WindowRequest struct {
	Start string `json:"start" validate:"required,time_slot"`
	End   string `json:"end" validate:"required,time_slot"`
}

// SetDayRequest replaces all windows of one weekday; an empty windows
// list closes the day
type SetDayRequest struct {
	Weekday int             `json:"weekday" validate:"min=0,max=6"`
	Windows []WindowRequest `json:"windows" validate:"dive"`
}

// WeekResponse groups a provider's hours by weekday
type WeekResponse struct {
	Days map[int][]Window `json:"days"`
}

// CheckSlotResponse reports a slot check outcome
type CheckSlotResponse struct {
	Available bool     `json:"available"`
	Reason    string   `json:"reason,omitempty"`
	Windows   []Window `json:"windows,omitempty"`
}
