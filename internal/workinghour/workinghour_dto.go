package workinghour

type CreateWorkingHourRequest struct {
	ProfileID     string   `json:"profile_id" binding:"required,uuid"`
	ClientID      string   `json:"client_id" binding:"required,uuid"`
	ProjectID     string   `json:"project_id" binding:"required,uuid"`
	RosterEntryID *string  `json:"roster_entry_id" binding:"omitempty,uuid"`
	Date          string   `json:"date" binding:"required"`
	StartTime     string   `json:"start_time" binding:"required"`
	EndTime       string   `json:"end_time" binding:"required"`
	ActualHours   *float64 `json:"actual_hours" binding:"omitempty,gte=0"`
	HourlyRate    *float64 `json:"hourly_rate" binding:"omitempty,gte=0"`
	Notes         *string  `json:"notes"`
}

type UpdateWorkingHourRequest struct {
	Date        string   `json:"date" binding:"required"`
	StartTime   string   `json:"start_time" binding:"required"`
	EndTime     string   `json:"end_time" binding:"required"`
	ActualHours *float64 `json:"actual_hours" binding:"omitempty,gte=0"`
	HourlyRate  *float64 `json:"hourly_rate" binding:"omitempty,gte=0"`
	Notes       *string  `json:"notes"`
}

type ReviewRequest struct {
	Notes *string `json:"notes"`
}

type WorkingHourResponse struct {
	ID            string  `json:"id"`
	ProfileID     string  `json:"profile_id"`
	ProfileName   string  `json:"profile_name,omitempty"`
	ClientID      string  `json:"client_id"`
	ProjectID     string  `json:"project_id"`
	RosterEntryID *string `json:"roster_entry_id,omitempty"`
	Date          string  `json:"date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	TotalHours    float64 `json:"total_hours"`
	ActualHours   float64 `json:"actual_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	HourlyRate    float64 `json:"hourly_rate"`
	PayableAmount float64 `json:"payable_amount"`
	Status        string  `json:"status"`
	Notes         *string `json:"notes,omitempty"`
	IsLocked      bool    `json:"is_locked"`
	IsEditable    bool    `json:"is_editable"`
}

// ProfileSummary aggregates one employee's entries over a date range.
// Entries with zero actual hours are counted but excluded from the rate mean.
type ProfileSummary struct {
	ProfileID     string  `json:"profile_id"`
	ProfileName   string  `json:"profile_name"`
	Entries       int     `json:"entries"`
	TotalHours    float64 `json:"total_hours"`
	RegularHours  float64 `json:"regular_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	AvgHourlyRate float64 `json:"avg_hourly_rate"`
	TotalPayable  float64 `json:"total_payable"`
}

type SummaryResponse struct {
	DateFrom string           `json:"date_from"`
	DateTo   string           `json:"date_to"`
	Profiles []ProfileSummary `json:"profiles"`
}
