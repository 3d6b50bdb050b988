package payroll

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-payroll/internal/tenant"
)

// StatutoryTotals folds the statutory columns of a period's calculated
// rows, for the remittance scheduler.
type StatutoryTotals struct {
	Paye int64
	Nssf int64
	Nhif int64
}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	UpsertByPeriodEmployee(ctx context.Context, p *Payroll) error
	ReplaceLineItems(ctx context.Context, payrollID uuid.UUID, items []PayrollLineItem) error
	FindAllByPeriod(ctx context.Context, companyID, periodID string) ([]Payroll, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Payroll, error)
	FindLineItems(ctx context.Context, companyID, payrollID string) ([]PayrollLineItem, error)
	SumStatutoryByPeriod(ctx context.Context, companyID, periodID string) (StatutoryTotals, error)
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

// UpsertByPeriodEmployee finds-or-creates by (period_id, employee_id).
// An existing row keeps its id so line items and loan repayments stay
// attached across re-runs.
func (r *repository) UpsertByPeriodEmployee(ctx context.Context, p *Payroll) error {
	var existing Payroll
	err := r.db.WithContext(ctx).
		Where("period_id = ? AND employee_id = ?", p.PeriodID, p.EmployeeID).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if p.ID == uuid.Nil {
				p.ID = uuid.New()
			}
			return r.db.WithContext(ctx).Create(p).Error
		}
		return err
	}

	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) ReplaceLineItems(ctx context.Context, payrollID uuid.UUID, items []PayrollLineItem) error {
	if err := r.db.WithContext(ctx).
		Where("payroll_id = ?", payrollID).
		Delete(&PayrollLineItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].PayrollID = payrollID
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) FindAllByPeriod(ctx context.Context, companyID, periodID string) ([]Payroll, error) {
	var payrolls []Payroll
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("period_id = ?", periodID).
		Order("created_at ASC").
		Find(&payrolls).Error
	return payrolls, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindLineItems(ctx context.Context, companyID, payrollID string) ([]PayrollLineItem, error) {
	var items []PayrollLineItem
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("payroll_id = ?", payrollID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) SumStatutoryByPeriod(ctx context.Context, companyID, periodID string) (StatutoryTotals, error) {
	var totals StatutoryTotals
	err := r.db.WithContext(ctx).
		Model(&Payroll{}).
		Scopes(tenant.Scope(companyID)).
		Where("period_id = ?", periodID).
		Where("status = ?", StatusCalculated).
		Select(
			"COALESCE(SUM(paye_amount), 0) AS paye",
			"COALESCE(SUM(nssf_amount), 0) AS nssf",
			"COALESCE(SUM(nhif_amount), 0) AS nhif",
		).
		Scan(&totals).Error
	return totals, err
}
