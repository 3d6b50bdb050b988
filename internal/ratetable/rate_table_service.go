package ratetable

import (
	"context"
	"time"

	"github.com/google/uuid"

	ratetableerrors "go-payroll/internal/ratetable/errors"
	"go-payroll/internal/shared/apperror"
)

//go:generate mockgen -source=rate_table_service.go -destination=mock/rate_table_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateRateTableRequest) (RateTableResponse, error)
	GetAll(ctx context.Context, country string) ([]RateTableResponse, error)
}

type service struct {
	repo     Repository
	resolver *Resolver
}

func NewService(repo Repository, resolver *Resolver) Service {
	return &service{repo: repo, resolver: resolver}
}

func (s *service) Create(ctx context.Context, req CreateRateTableRequest) (RateTableResponse, error) {
	if err := req.Config.Validate(); err != nil {
		return RateTableResponse{}, apperror.Wrap(err,
			ratetableerrors.ErrInvalidRateConfig.Code,
			ratetableerrors.ErrInvalidRateConfig.Message,
			ratetableerrors.ErrInvalidRateConfig.HTTPStatus,
		)
	}

	from, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		return RateTableResponse{}, ratetableerrors.ErrInvalidDateFormat
	}
	var to *time.Time
	if req.EffectiveTo != "" {
		parsed, err := time.Parse("2006-01-02", req.EffectiveTo)
		if err != nil {
			return RateTableResponse{}, ratetableerrors.ErrInvalidDateFormat
		}
		to = &parsed
	}

	table := &RateTable{
		ID:            uuid.New(),
		Country:       req.Country,
		RateType:      req.RateType,
		EffectiveFrom: from,
		EffectiveTo:   to,
		Config:        req.Config,
	}

	if err := s.repo.Create(ctx, table); err != nil {
		return RateTableResponse{}, err
	}

	// New version published: callers must see it on the next calculation
	if s.resolver != nil {
		s.resolver.Invalidate(table.Country, table.RateType)
	}

	return mapResponse(*table), nil
}

func (s *service) GetAll(ctx context.Context, country string) ([]RateTableResponse, error) {
	tables, err := s.repo.FindAll(ctx, country)
	if err != nil {
		return nil, err
	}

	resp := make([]RateTableResponse, len(tables))
	for i, table := range tables {
		resp[i] = mapResponse(table)
	}
	return resp, nil
}

func mapResponse(table RateTable) RateTableResponse {
	resp := RateTableResponse{
		ID:            table.ID.String(),
		Country:       table.Country,
		RateType:      table.RateType,
		EffectiveFrom: table.EffectiveFrom.Format("2006-01-02"),
		Config:        table.Config,
	}
	if table.EffectiveTo != nil {
		v := table.EffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &v
	}
	return resp
}
