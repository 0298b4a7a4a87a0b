package events

import "time"

const PayrollCreatedTopic = "ops.payroll.lifecycle.v1"

type PayrollCreatedEvent struct {
	EventType      string    `json:"event_type"`
	PayrollID      string    `json:"payroll_id"`
	ProfileID      string    `json:"profile_id"`
	PayPeriodStart string    `json:"pay_period_start"`
	PayPeriodEnd   string    `json:"pay_period_end"`
	NetPay         float64   `json:"net_pay"`
	OccurredAt     time.Time `json:"occurred_at"`
}
