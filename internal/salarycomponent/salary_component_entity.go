package salarycomponent

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeEarning   = "earning"
	TypeDeduction = "deduction"

	CalcFixed      = "fixed"
	CalcPercentage = "percentage"
)

// SalaryComponent is a catalog entry. Amounts are stored in minor units and
// percentages in basis points to keep all payroll arithmetic in int64.
type SalaryComponent struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Name            string    `gorm:"type:varchar(120);not null"`
	Type            string    `gorm:"type:varchar(20);not null;index"`
	CalculationType string    `gorm:"type:varchar(20);not null;default:'fixed'"`
	PercentageBps   int64     `gorm:"type:bigint;not null;default:0"`
	IsTaxable       bool      `gorm:"not null;default:true"`
	IsStatutory     bool      `gorm:"not null;default:false"`
	StatutoryType   *string   `gorm:"type:varchar(20)"`
	IsActive        bool      `gorm:"not null;default:true;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CompensationAssignment links an employee to a catalog component for a
// validity interval. EffectiveTo nil means open-ended. For percentage
// components Amount is the base the percentage applies to.
type CompensationAssignment struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	EmployeeID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_assignment_employee_component"`
	ComponentID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_assignment_employee_component"`
	Amount        int64      `gorm:"type:bigint;not null;default:0"`
	EffectiveFrom time.Time  `gorm:"type:date;not null"`
	EffectiveTo   *time.Time `gorm:"type:date"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AssignedComponent is the joined row the compensation resolver returns:
// the assignment plus the catalog fields the calculator needs.
type AssignedComponent struct {
	AssignmentID    uuid.UUID
	ComponentID     uuid.UUID
	Name            string
	Type            string
	CalculationType string
	PercentageBps   int64
	IsTaxable       bool
	IsStatutory     bool
	Amount          int64
}

// AppliedAmount resolves the money value of one assigned component.
// Percentage components apply their rate to the assignment's own stored
// amount; there is no chained percentage-of-component resolution.
func (a AssignedComponent) AppliedAmount() int64 {
	if a.CalculationType == CalcPercentage {
		return a.Amount * a.PercentageBps / 10000
	}
	return a.Amount
}
