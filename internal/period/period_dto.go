package period

type CreatePeriodRequest struct {
	Name        string `json:"name" binding:"required"`
	PeriodType  string `json:"period_type" binding:"omitempty,oneof=monthly biweekly weekly"`
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
	PayDate     string `json:"pay_date" binding:"required"`
}

type UpdatePeriodRequest struct {
	Name        string `json:"name" binding:"required"`
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
	PayDate     string `json:"pay_date" binding:"required"`
}

type PeriodTotals struct {
	Employees  int   `json:"employees"`
	Gross      int64 `json:"gross"`
	Deductions int64 `json:"deductions"`
	Net        int64 `json:"net"`
}

type PeriodResponse struct {
	ID             string       `json:"id"`
	CompanyID      string       `json:"company_id"`
	Name           string       `json:"name"`
	PeriodType     string       `json:"period_type"`
	PeriodStart    string       `json:"period_start"`
	PeriodEnd      string       `json:"period_end"`
	PayDate        string       `json:"pay_date"`
	Status         string       `json:"status"`
	Totals         PeriodTotals `json:"totals"`
	ProcessedCount int          `json:"processed_count"`
	SkippedCount   int          `json:"skipped_count"`
	ProcessedAt    *string      `json:"processed_at,omitempty"`
	ApprovedAt     *string      `json:"approved_at,omitempty"`
	LockedAt       *string      `json:"locked_at,omitempty"`
}
