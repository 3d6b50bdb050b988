package remittance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-payroll/internal/payroll"
	"go-payroll/internal/period"
	perioderrors "go-payroll/internal/period/errors"
	"go-payroll/internal/ratetable"
	remittanceerrors "go-payroll/internal/remittance/errors"
	"go-payroll/internal/shared/contextutil"
)

//go:generate mockgen -source=remittance_service.go -destination=mock/remittance_service_mock.go -package=mock
type Service interface {
	SchedulePeriod(ctx context.Context, companyID, periodID string) ([]RemittanceResponse, error)
	GetAll(ctx context.Context, companyID string) ([]RemittanceResponse, error)
	GetAllByPeriod(ctx context.Context, companyID, periodID string) ([]RemittanceResponse, error)
	MarkAsRemitted(ctx context.Context, companyID, id string, req MarkRemittedRequest) (RemittanceResponse, error)
}

type service struct {
	db             *sql.DB
	repo           Repository
	periods        period.Repository
	payrolls       payroll.Repository
	remittanceDays int
}

func NewService(
	db *sql.DB,
	repo Repository,
	periods period.Repository,
	payrolls payroll.Repository,
	remittanceDays int,
) Service {
	if remittanceDays <= 0 {
		remittanceDays = DefaultRemittanceDays
	}
	return &service{
		db:             db,
		repo:           repo,
		periods:        periods,
		payrolls:       payrolls,
		remittanceDays: remittanceDays,
	}
}

// SchedulePeriod creates one pending remittance per tax type with a
// non-zero period total. A (period, tax type) pair that already exists
// is skipped, so re-invocation is a no-op.
func (s *service) SchedulePeriod(ctx context.Context, companyID, periodID string) ([]RemittanceResponse, error) {
	logger := contextutil.GetLogger(ctx, zap.L()).Named("remittance")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := s.periods.WithTx(tx).FindByIDAndCompany(ctx, companyID, periodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, perioderrors.ErrPeriodNotFound
		}
		return nil, err
	}

	totals, err := s.payrolls.WithTx(tx).SumStatutoryByPeriod(ctx, companyID, periodID)
	if err != nil {
		return nil, err
	}

	dueDate := DueDateFor(p.PeriodEnd, s.remittanceDays)
	byType := []struct {
		taxType string
		amount  int64
	}{
		{ratetable.RateTypePAYE, totals.Paye},
		{ratetable.RateTypeNSSF, totals.Nssf},
		{ratetable.RateTypeNHIF, totals.Nhif},
	}

	created := 0
	for _, entry := range byType {
		if entry.amount == 0 {
			continue
		}

		exists, err := qtx.ExistsForPeriodAndType(ctx, companyID, periodID, entry.taxType)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		remittance := &TaxRemittance{
			ID:        uuid.New(),
			CompanyID: p.CompanyID,
			PeriodID:  p.ID,
			TaxType:   entry.taxType,
			Amount:    entry.amount,
			DueDate:   dueDate,
			Status:    StatusPending,
		}
		if err := qtx.Create(ctx, remittance); err != nil {
			return nil, err
		}
		created++
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	logger.Info("remittances scheduled",
		zap.String("period_id", periodID),
		zap.Int("created", created),
		zap.Time("due_date", dueDate),
	)

	return s.GetAllByPeriod(ctx, companyID, periodID)
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]RemittanceResponse, error) {
	remittances, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(remittances), nil
}

func (s *service) GetAllByPeriod(ctx context.Context, companyID, periodID string) ([]RemittanceResponse, error) {
	remittances, err := s.repo.FindAllByPeriod(ctx, companyID, periodID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(remittances), nil
}

func (s *service) MarkAsRemitted(
	ctx context.Context,
	companyID, id string,
	req MarkRemittedRequest,
) (RemittanceResponse, error) {
	if req.Reference == "" {
		return RemittanceResponse{}, remittanceerrors.ErrReferenceRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RemittanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	remittance, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RemittanceResponse{}, remittanceerrors.ErrRemittanceNotFound
		}
		return RemittanceResponse{}, err
	}

	if remittance.Status == StatusRemitted {
		return RemittanceResponse{}, remittanceerrors.ErrAlreadyRemitted
	}

	now := time.Now().UTC()
	remittance.Status = StatusRemitted
	remittance.Reference = &req.Reference
	remittance.RemittedAt = &now

	if err := qtx.Update(ctx, remittance); err != nil {
		return RemittanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RemittanceResponse{}, err
	}

	return mapToResponse(*remittance), nil
}

func mapToListResponse(remittances []TaxRemittance) []RemittanceResponse {
	resp := make([]RemittanceResponse, len(remittances))
	for i, remittance := range remittances {
		resp[i] = mapToResponse(remittance)
	}
	return resp
}

func mapToResponse(r TaxRemittance) RemittanceResponse {
	resp := RemittanceResponse{
		ID:        r.ID.String(),
		PeriodID:  r.PeriodID.String(),
		TaxType:   r.TaxType,
		Amount:    r.Amount,
		DueDate:   r.DueDate.Format("2006-01-02"),
		Status:    r.Status,
		Reference: r.Reference,
	}
	if r.RemittedAt != nil {
		v := r.RemittedAt.UTC().Format(time.RFC3339)
		resp.RemittedAt = &v
	}
	return resp
}
