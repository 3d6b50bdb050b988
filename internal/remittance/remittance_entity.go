package remittance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusRemitted = "remitted"

	// DefaultRemittanceDays is the statutory filing window: due on the
	// ninth day of the month after the period ends.
	DefaultRemittanceDays = 9
)

// TaxRemittance is one statutory obligation for one period. The unique
// index on (period_id, tax_type) makes scheduling idempotent.
type TaxRemittance struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	PeriodID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_remittance_period_tax"`
	TaxType    string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_remittance_period_tax"`
	Amount     int64     `gorm:"type:bigint;not null"`
	DueDate    time.Time `gorm:"type:date;not null"`
	Status     string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	Reference  *string   `gorm:"type:varchar(100)"`
	RemittedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (TaxRemittance) TableName() string {
	return "tax_remittances"
}

// DueDateFor computes the due date from the period end: the first day
// of the following month plus (remittanceDays - 1).
func DueDateFor(periodEnd time.Time, remittanceDays int) time.Time {
	if remittanceDays <= 0 {
		remittanceDays = DefaultRemittanceDays
	}
	firstOfNext := time.Date(periodEnd.Year(), periodEnd.Month(), 1, 0, 0, 0, 0, periodEnd.Location()).
		AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, remittanceDays-1)
}
