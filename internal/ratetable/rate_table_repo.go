package ratetable

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=rate_table_repo.go -destination=mock/rate_table_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, table *RateTable) error
	FindByCountryAndType(ctx context.Context, country, rateType string) ([]RateTable, error)
	FindAll(ctx context.Context, country string) ([]RateTable, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, table *RateTable) error {
	return r.db.WithContext(ctx).Create(table).Error
}

func (r *repository) FindByCountryAndType(ctx context.Context, country, rateType string) ([]RateTable, error) {
	var tables []RateTable
	err := r.db.WithContext(ctx).
		Where("country = ?", country).
		Where("rate_type = ?", rateType).
		Order("effective_from DESC").
		Find(&tables).Error
	return tables, err
}

func (r *repository) FindAll(ctx context.Context, country string) ([]RateTable, error) {
	var tables []RateTable
	err := r.db.WithContext(ctx).
		Where("country = ?", country).
		Order("rate_type ASC, effective_from DESC").
		Find(&tables).Error
	return tables, err
}
