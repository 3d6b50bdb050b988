package salarycomponent

import (
	"context"
	"database/sql"
	"go-payroll/internal/tenant"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_component_repo.go -destination=mock/salary_component_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateComponent(ctx context.Context, component *SalaryComponent) error
	FindAllComponents(ctx context.Context, companyID string) ([]SalaryComponent, error)
	FindComponentByID(ctx context.Context, companyID string, id string) (*SalaryComponent, error)
	UpdateComponent(ctx context.Context, component *SalaryComponent) error
	CreateAssignment(ctx context.Context, assignment *CompensationAssignment) error
	FindAssignmentsByEmployee(ctx context.Context, companyID, employeeID string) ([]CompensationAssignment, error)
	HasOverlappingAssignment(ctx context.Context, companyID, employeeID, componentID string, from time.Time, to *time.Time) (bool, error)
	FindActiveForRange(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]AssignedComponent, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository whose queries execute on the caller's
// transaction instead of the pool. gorm sees the tx ConnPool is already a
// committer and does not open its own transaction around writes.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) CreateComponent(ctx context.Context, component *SalaryComponent) error {
	return r.db.WithContext(ctx).Create(component).Error
}

func (r *repository) FindAllComponents(ctx context.Context, companyID string) ([]SalaryComponent, error) {
	var components []SalaryComponent
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("name ASC").
		Find(&components).Error
	return components, err
}

func (r *repository) FindComponentByID(ctx context.Context, companyID string, id string) (*SalaryComponent, error) {
	var component SalaryComponent
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&component, "id = ?", id).Error
	return &component, err
}

func (r *repository) UpdateComponent(ctx context.Context, component *SalaryComponent) error {
	return r.db.WithContext(ctx).Save(component).Error
}

func (r *repository) CreateAssignment(ctx context.Context, assignment *CompensationAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *repository) FindAssignmentsByEmployee(ctx context.Context, companyID, employeeID string) ([]CompensationAssignment, error) {
	var assignments []CompensationAssignment
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Order("effective_from DESC").
		Find(&assignments).Error
	return assignments, err
}

func (r *repository) HasOverlappingAssignment(
	ctx context.Context,
	companyID, employeeID, componentID string,
	from time.Time,
	to *time.Time,
) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&CompensationAssignment{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("component_id = ?", componentID).
		Where("effective_from <= ?", endOrMax(to)).
		Where("(effective_to IS NULL OR effective_to >= ?)", from)

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

// FindActiveForRange is the compensation resolver: every assignment whose
// validity interval overlaps [start, end], joined to an active catalog
// component. Overlap, not containment.
func (r *repository) FindActiveForRange(
	ctx context.Context,
	companyID, employeeID string,
	start, end time.Time,
) ([]AssignedComponent, error) {
	var rows []AssignedComponent
	err := r.db.WithContext(ctx).
		Table("compensation_assignments AS ca").
		Select(`ca.id AS assignment_id, ca.component_id, ca.amount,
			sc.name, sc.type, sc.calculation_type, sc.percentage_bps,
			sc.is_taxable, sc.is_statutory`).
		Joins("JOIN salary_components sc ON sc.id = ca.component_id").
		Where("ca.company_id = ?", companyID).
		Where("ca.employee_id = ?", employeeID).
		Where("ca.effective_from <= ?", end).
		Where("(ca.effective_to IS NULL OR ca.effective_to >= ?)", start).
		Where("sc.is_active = ?", true).
		Scan(&rows).Error
	return rows, err
}

// endOrMax substitutes an effectively unbounded date for open-ended intervals
func endOrMax(to *time.Time) time.Time {
	if to != nil {
		return *to
	}
	return time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
}
