package remittance

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"go-payroll/internal/tenant"
)

//go:generate mockgen -source=remittance_repo.go -destination=mock/remittance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *TaxRemittance) error
	ExistsForPeriodAndType(ctx context.Context, companyID, periodID, taxType string) (bool, error)
	FindAllByPeriod(ctx context.Context, companyID, periodID string) ([]TaxRemittance, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]TaxRemittance, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*TaxRemittance, error)
	Update(ctx context.Context, r *TaxRemittance) error
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

func (r *repository) Create(ctx context.Context, remittance *TaxRemittance) error {
	return r.db.WithContext(ctx).Create(remittance).Error
}

func (r *repository) ExistsForPeriodAndType(ctx context.Context, companyID, periodID, taxType string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&TaxRemittance{}).
		Scopes(tenant.Scope(companyID)).
		Where("period_id = ? AND tax_type = ?", periodID, taxType).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindAllByPeriod(ctx context.Context, companyID, periodID string) ([]TaxRemittance, error) {
	var remittances []TaxRemittance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("period_id = ?", periodID).
		Order("tax_type ASC").
		Find(&remittances).Error
	return remittances, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]TaxRemittance, error) {
	var remittances []TaxRemittance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("due_date ASC").
		Find(&remittances).Error
	return remittances, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*TaxRemittance, error) {
	var remittance TaxRemittance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&remittance, "id = ?", id).Error
	return &remittance, err
}

func (r *repository) Update(ctx context.Context, remittance *TaxRemittance) error {
	return r.db.WithContext(ctx).Save(remittance).Error
}
