package events

import "time"

const PeriodApprovedTopic = "payroll.period.approved.v1"

type PeriodApprovedEvent struct {
	EventType   string    `json:"event_type"`
	PeriodID    string    `json:"period_id"`
	CompanyID   string    `json:"company_id"`
	PeriodStart string    `json:"period_start"`
	PeriodEnd   string    `json:"period_end"`
	ApprovedBy  string    `json:"approved_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
