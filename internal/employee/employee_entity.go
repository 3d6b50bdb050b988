package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive     = "active"
	StatusOnLeave    = "on_leave"
	StatusTerminated = "terminated"
)

// Employee is a read-only snapshot of the employee directory. CRUD lives in
// the HR service; the payroll engine only filters and reads.
type Employee struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	DepartmentID    *uuid.UUID `gorm:"type:uuid"`
	FullName        string     `gorm:"column:full_name"`
	Status          string     `gorm:"type:varchar(20);not null;default:'active';index"`
	HireDate        time.Time  `gorm:"type:date"`
	TerminationDate *time.Time `gorm:"type:date"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
