package period

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusDraft           = "draft"
	StatusProcessing      = "processing"
	StatusPendingApproval = "pending_approval"
	StatusApproved        = "approved"
	StatusLocked          = "locked"
	StatusPaid            = "paid"

	PeriodTypeMonthly  = "monthly"
	PeriodTypeBiweekly = "biweekly"
	PeriodTypeWeekly   = "weekly"
)

// PayrollPeriod walks draft -> processing -> pending_approval -> approved
// -> locked. The paid status is set by an external payment confirmation.
// Totals are written by the run orchestrator only.
type PayrollPeriod struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Name            string    `gorm:"type:varchar(100);not null"`
	PeriodType      string    `gorm:"type:varchar(20);not null;default:'monthly'"`
	PeriodStart     time.Time `gorm:"type:date;not null"`
	PeriodEnd       time.Time `gorm:"type:date;not null"`
	PayDate         time.Time `gorm:"type:date;not null"`
	Status          string    `gorm:"type:varchar(20);not null;default:'draft';index"`
	TotalEmployees  int       `gorm:"not null;default:0"`
	ProcessedCount  int       `gorm:"not null;default:0"`
	SkippedCount    int       `gorm:"not null;default:0"`
	TotalGross      int64     `gorm:"type:bigint;not null;default:0"`
	TotalDeductions int64     `gorm:"type:bigint;not null;default:0"`
	TotalNet        int64     `gorm:"type:bigint;not null;default:0"`
	ProcessedAt     *time.Time
	ProcessedBy     *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	LockedAt        *time.Time
	LockedBy        *uuid.UUID `gorm:"type:uuid"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (PayrollPeriod) TableName() string {
	return "payroll_periods"
}

// CanProcess reports whether the run orchestrator may take the period
// into processing.
func (p PayrollPeriod) CanProcess() bool {
	return p.Status == StatusDraft || p.Status == StatusPendingApproval
}

func (p PayrollPeriod) IsLocked() bool {
	return p.Status == StatusLocked || p.Status == StatusPaid
}
