package events

import "time"

const PeriodProcessedTopic = "payroll.period.processed.v1"

type PeriodProcessedEvent struct {
	EventType       string    `json:"event_type"`
	PeriodID        string    `json:"period_id"`
	CompanyID       string    `json:"company_id"`
	TotalEmployees  int       `json:"total_employees"`
	ProcessedCount  int       `json:"processed_count"`
	SkippedCount    int       `json:"skipped_count"`
	TotalGross      int64     `json:"total_gross"`
	TotalDeductions int64     `json:"total_deductions"`
	TotalNet        int64     `json:"total_net"`
	OccurredAt      time.Time `json:"occurred_at"`
}
