package loan

import (
	"context"
	"database/sql"
	"go-payroll/internal/tenant"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=loan_repo.go -destination=mock/loan_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, loan *Loan) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Loan, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Loan, error)
	FindActiveByEmployee(ctx context.Context, companyID, employeeID string, asOf time.Time) ([]Loan, error)
	Update(ctx context.Context, loan *Loan) error
	CreateRepayment(ctx context.Context, repayment *LoanRepayment) error
	FindRepaymentsByLoan(ctx context.Context, companyID, loanID string) ([]LoanRepayment, error)
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

func (r *repository) Create(ctx context.Context, loan *Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Loan, error) {
	var loans []Loan
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at DESC").
		Find(&loans).Error
	return loans, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Loan, error) {
	var loan Loan
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&loan, "id = ?", id).Error
	return &loan, err
}

func (r *repository) FindActiveByEmployee(ctx context.Context, companyID, employeeID string, asOf time.Time) ([]Loan, error) {
	var loans []Loan
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusActive).
		Where("repayment_start_date <= ?", asOf).
		Where("remaining_balance > 0").
		Find(&loans).Error
	return loans, err
}

func (r *repository) Update(ctx context.Context, loan *Loan) error {
	return r.db.WithContext(ctx).Save(loan).Error
}

func (r *repository) CreateRepayment(ctx context.Context, repayment *LoanRepayment) error {
	return r.db.WithContext(ctx).Create(repayment).Error
}

func (r *repository) FindRepaymentsByLoan(ctx context.Context, companyID, loanID string) ([]LoanRepayment, error) {
	var repayments []LoanRepayment
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("loan_id = ?", loanID).
		Order("repayment_date ASC, created_at ASC").
		Find(&repayments).Error
	return repayments, err
}
