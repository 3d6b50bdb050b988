package payroll

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusCalculated = "calculated"
	StatusError      = "error"

	LineTypeEarning   = "earning"
	LineTypeDeduction = "deduction"
	LineTypeStatutory = "statutory"
	LineTypeLoan      = "loan"
)

// Payroll is one employee's result for one period. The unique index on
// (period_id, employee_id) means a re-run updates rather than duplicates.
// Rows under a locked period are never mutated again.
type Payroll struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID          uuid.UUID `gorm:"type:uuid;not null;index"`
	PeriodID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_payroll_period_employee"`
	EmployeeID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_payroll_period_employee"`
	GrossPay           int64     `gorm:"type:bigint;not null;default:0"`
	TotalEarnings      int64     `gorm:"type:bigint;not null;default:0"`
	TaxableIncome      int64     `gorm:"type:bigint;not null;default:0"`
	PayeAmount         int64     `gorm:"type:bigint;not null;default:0"`
	NssfAmount         int64     `gorm:"type:bigint;not null;default:0"`
	NhifAmount         int64     `gorm:"type:bigint;not null;default:0"`
	InternalDeductions int64     `gorm:"type:bigint;not null;default:0"`
	LoanDeduction      int64     `gorm:"type:bigint;not null;default:0"`
	TotalDeductions    int64     `gorm:"type:bigint;not null;default:0"`
	NetPay             int64     `gorm:"type:bigint;not null;default:0"`
	Status             string    `gorm:"type:varchar(20);not null;default:'calculated';index"`
	ErrorMessage       *string   `gorm:"type:varchar(500)"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Payroll) TableName() string {
	return "payrolls"
}

// PayrollLineItem is the per-component snapshot behind one payroll row.
// A re-run replaces the whole set for the row.
type PayrollLineItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	PayrollID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(120);not null"`
	Type      string    `gorm:"type:varchar(20);not null"`
	Amount    int64     `gorm:"type:bigint;not null"`
	IsTaxable bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
}

func (PayrollLineItem) TableName() string {
	return "payroll_line_items"
}
