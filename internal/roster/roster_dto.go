package roster

type GenerateRosterRequest struct {
	ProfileIDs       []string `json:"profile_ids" binding:"required,dive,uuid"`
	ClientID         string   `json:"client_id" binding:"required,uuid"`
	ProjectID        string   `json:"project_id" binding:"required,uuid"`
	StartDate        string   `json:"start_date" binding:"required"`
	EndDate          string   `json:"end_date"` // defaults to start_date
	StartTime        string   `json:"start_time" binding:"required"`
	EndTime          string   `json:"end_time" binding:"required"`
	Name             *string  `json:"name"`
	ExpectedProfiles int      `json:"expected_profiles" binding:"omitempty,gte=1"`
	PerHourRate      *float64 `json:"per_hour_rate" binding:"omitempty,gte=0"`
	Notes            *string  `json:"notes"`
}

type UpdateRosterRequest struct {
	Date        string   `json:"date" binding:"required"`
	StartTime   string   `json:"start_time" binding:"required"`
	EndTime     string   `json:"end_time" binding:"required"`
	Status      string   `json:"status" binding:"required,oneof=pending confirmed cancelled"`
	Name        *string  `json:"name"`
	PerHourRate *float64 `json:"per_hour_rate" binding:"omitempty,gte=0"`
	Notes       *string  `json:"notes"`
}

type RosterResponse struct {
	ID               string   `json:"id"`
	ProfileID        string   `json:"profile_id"`
	ProfileName      string   `json:"profile_name,omitempty"`
	ClientID         string   `json:"client_id"`
	ProjectID        string   `json:"project_id"`
	Date             string   `json:"date"`
	EndDate          *string  `json:"end_date,omitempty"`
	StartTime        string   `json:"start_time"`
	EndTime          string   `json:"end_time"`
	TotalHours       float64  `json:"total_hours"`
	Status           string   `json:"status"`
	Name             *string  `json:"name,omitempty"`
	ExpectedProfiles int      `json:"expected_profiles"`
	PerHourRate      *float64 `json:"per_hour_rate,omitempty"`
	Notes            *string  `json:"notes,omitempty"`
	IsLocked         bool     `json:"is_locked"`
	IsEditable       bool     `json:"is_editable"`
}

type GenerateRosterResponse struct {
	Generated int              `json:"generated"`
	Entries   []RosterResponse `json:"entries"`
}
