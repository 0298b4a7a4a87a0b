package payroll

type CreatePayrollRequest struct {
	ProfileID       string  `json:"profile_id" binding:"required,uuid"`
	PayPeriodStart  string  `json:"pay_period_start" binding:"required"`
	PayPeriodEnd    string  `json:"pay_period_end" binding:"required"`
	TotalHours      float64 `json:"total_hours" binding:"gte=0"`
	OvertimeHours   float64 `json:"overtime_hours" binding:"gte=0"`
	HourlyRate      float64 `json:"hourly_rate" binding:"gte=0"`
	Bonus           float64 `json:"bonus" binding:"gte=0"`
	Tax             float64 `json:"tax" binding:"gte=0"`
	Superannuation  float64 `json:"superannuation" binding:"gte=0"`
	OtherDeductions float64 `json:"other_deductions" binding:"gte=0"`
	Deductions      float64 `json:"deductions" binding:"gte=0"`
	BankAccountID   *string `json:"bank_account_id" binding:"omitempty,uuid"`
}

type UpdatePayrollRequest struct {
	PayPeriodStart string  `json:"pay_period_start" binding:"required"`
	PayPeriodEnd   string  `json:"pay_period_end" binding:"required"`
	TotalHours     float64 `json:"total_hours" binding:"gte=0"`
	OvertimeHours  float64 `json:"overtime_hours" binding:"gte=0"`
	HourlyRate     float64 `json:"hourly_rate" binding:"gte=0"`
	// GrossPay, when present, overrides the hours-derived gross; net_pay
	// still follows gross minus deductions.
	GrossPay        *float64 `json:"gross_pay" binding:"omitempty,gte=0"`
	Bonus           float64  `json:"bonus" binding:"gte=0"`
	Tax             float64  `json:"tax" binding:"gte=0"`
	Superannuation  float64  `json:"superannuation" binding:"gte=0"`
	OtherDeductions float64  `json:"other_deductions" binding:"gte=0"`
	Deductions      float64  `json:"deductions" binding:"gte=0"`
	Status          string   `json:"status" binding:"required,oneof=pending approved paid"`
	BankAccountID   *string  `json:"bank_account_id" binding:"omitempty,uuid"`
	PaidAt          *string  `json:"paid_at"`
}

type PayrollResponse struct {
	ID              string  `json:"id"`
	ProfileID       string  `json:"profile_id"`
	ProfileName     string  `json:"profile_name,omitempty"`
	PayPeriodStart  string  `json:"pay_period_start"`
	PayPeriodEnd    string  `json:"pay_period_end"`
	TotalHours      float64 `json:"total_hours"`
	OvertimeHours   float64 `json:"overtime_hours"`
	HourlyRate      float64 `json:"hourly_rate"`
	GrossPay        float64 `json:"gross_pay"`
	OvertimePay     float64 `json:"overtime_pay"`
	Bonus           float64 `json:"bonus"`
	Tax             float64 `json:"tax"`
	Superannuation  float64 `json:"superannuation"`
	OtherDeductions float64 `json:"other_deductions"`
	Deductions      float64 `json:"deductions"`
	NetPay          float64 `json:"net_pay"`
	Status          string  `json:"status"`
	BankAccountID   *string `json:"bank_account_id,omitempty"`
	PaidAt          *string `json:"paid_at,omitempty"`
	LinkedHours     int     `json:"linked_hours,omitempty"`
}

// Wizard stage 1+2: pick employees and a window, get the computed preview.
type PreviewRequest struct {
	ProfileIDs     []string `json:"profile_ids" binding:"required,min=1,dive,uuid"`
	PayPeriodStart string   `json:"pay_period_start" binding:"required"`
	PayPeriodEnd   string   `json:"pay_period_end" binding:"required"`
}

type PreviewRow struct {
	ProfileID      string   `json:"profile_id"`
	ProfileName    string   `json:"profile_name,omitempty"`
	TotalHours     float64  `json:"total_hours"`
	RegularHours   float64  `json:"regular_hours"`
	OvertimeHours  float64  `json:"overtime_hours"`
	AvgHourlyRate  float64  `json:"avg_hourly_rate"`
	RegularPay     float64  `json:"regular_pay"`
	OvertimePay    float64  `json:"overtime_pay"`
	GrossPay       float64  `json:"gross_pay"`
	Deductions     float64  `json:"deductions"`
	NetPay         float64  `json:"net_pay"`
	WorkingHourIDs []string `json:"working_hour_ids"`
}

type PreviewResponse struct {
	PayPeriodStart string       `json:"pay_period_start"`
	PayPeriodEnd   string       `json:"pay_period_end"`
	Rows           []PreviewRow `json:"rows"`
}

// Wizard stage 3.
type CommitRequest struct {
	ProfileIDs     []string `json:"profile_ids" binding:"required,min=1,dive,uuid"`
	PayPeriodStart string   `json:"pay_period_start" binding:"required"`
	PayPeriodEnd   string   `json:"pay_period_end" binding:"required"`
	BankAccountID  *string  `json:"bank_account_id" binding:"omitempty,uuid"`
}

const (
	CommitCreated = "created"
	CommitSkipped = "skipped"
	CommitFailed  = "failed"
)

// CommitResult reports one employee's outcome. Each employee's payroll and
// links commit atomically, but there is no cross-employee rollback: a failure
// mid-batch leaves earlier results standing and is reported here.
type CommitResult struct {
	ProfileID   string  `json:"profile_id"`
	PayrollID   *string `json:"payroll_id,omitempty"`
	LinkedHours int     `json:"linked_hours"`
	Status      string  `json:"status"`
	Reason      *string `json:"reason,omitempty"`
}

type CommitResponse struct {
	PayPeriodStart string         `json:"pay_period_start"`
	PayPeriodEnd   string         `json:"pay_period_end"`
	Created        int            `json:"created"`
	Results        []CommitResult `json:"results"`
}
