package loan

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending    = "pending"
	StatusActive     = "active"
	StatusCompleted  = "completed"
	StatusWrittenOff = "written_off"

	PaymentTypeManual  = "manual"
	PaymentTypePayroll = "payroll"
)

type Loan struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID          uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Principal          int64     `gorm:"type:bigint;not null"`
	MonthlyDeduction   int64     `gorm:"type:bigint;not null"`
	RemainingBalance   int64     `gorm:"type:bigint;not null"`
	TotalPaid          int64     `gorm:"type:bigint;not null;default:0"`
	RepaymentStartDate time.Time `gorm:"type:date;not null"`
	Status             string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// LoanRepayment is an append-only ledger row; loans are only ever mutated by
// creating one of these.
type LoanRepayment struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	LoanID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	PayrollID     *uuid.UUID `gorm:"type:uuid;index"`
	Amount        int64      `gorm:"type:bigint;not null"`
	RepaymentDate time.Time  `gorm:"type:date;not null"`
	PaymentType   string     `gorm:"type:varchar(20);not null"`
	BalanceAfter  int64      `gorm:"type:bigint;not null"`
	CreatedAt     time.Time
}
