package period

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	perioderrors "go-payroll/internal/period/errors"
	"go-payroll/internal/shared/contextutil"
)

//go:generate mockgen -source=period_service.go -destination=mock/period_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreatePeriodRequest) (PeriodResponse, error)
	GetAll(ctx context.Context, companyID string) ([]PeriodResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PeriodResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdatePeriodRequest) (PeriodResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	Approve(ctx context.Context, companyID, actorID, id string) (PeriodResponse, error)
	Lock(ctx context.Context, companyID, actorID, id string) (PeriodResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository) Service {
	return &service{db: db, repo: repo, outbox: outbox}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreatePeriodRequest,
) (PeriodResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return PeriodResponse{}, perioderrors.ErrInvalidCompanyID
	}

	start, end, payDate, err := parsePeriodDates(req.PeriodStart, req.PeriodEnd, req.PayDate)
	if err != nil {
		return PeriodResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PeriodResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingPeriod(ctx, companyID, start, end, nil)
	if err != nil {
		return PeriodResponse{}, err
	}
	if overlap {
		return PeriodResponse{}, perioderrors.ErrOverlappingPeriod
	}

	periodType := req.PeriodType
	if periodType == "" {
		periodType = PeriodTypeMonthly
	}

	p := &PayrollPeriod{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		Name:        req.Name,
		PeriodType:  periodType,
		PeriodStart: start,
		PeriodEnd:   end,
		PayDate:     payDate,
		Status:      StatusDraft,
	}

	if err := qtx.Create(ctx, p); err != nil {
		return PeriodResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PeriodResponse{}, err
	}

	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]PeriodResponse, error) {
	periods, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]PeriodResponse, len(periods))
	for i, p := range periods {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (PeriodResponse, error) {
	p, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PeriodResponse{}, perioderrors.ErrPeriodNotFound
		}
		return PeriodResponse{}, err
	}

	return mapToResponse(*p), nil
}

// Update rewrites the schedule fields of a draft period. Anything past
// draft already has payroll rows derived from these dates.
func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdatePeriodRequest,
) (PeriodResponse, error) {
	start, end, payDate, err := parsePeriodDates(req.PeriodStart, req.PeriodEnd, req.PayDate)
	if err != nil {
		return PeriodResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PeriodResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PeriodResponse{}, perioderrors.ErrPeriodNotFound
		}
		return PeriodResponse{}, err
	}

	if p.IsLocked() {
		return PeriodResponse{}, perioderrors.ErrPeriodLocked
	}
	if p.Status != StatusDraft {
		return PeriodResponse{}, perioderrors.ErrInvalidState
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, companyID, start, end, &id)
	if err != nil {
		return PeriodResponse{}, err
	}
	if overlap {
		return PeriodResponse{}, perioderrors.ErrOverlappingPeriod
	}

	p.Name = req.Name
	p.PeriodStart = start
	p.PeriodEnd = end
	p.PayDate = payDate

	if err := qtx.Update(ctx, p); err != nil {
		return PeriodResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PeriodResponse{}, err
	}

	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return perioderrors.ErrPeriodNotFound
		}
		return err
	}

	if p.IsLocked() {
		return perioderrors.ErrPeriodLocked
	}
	if p.Status != StatusDraft {
		return perioderrors.ErrInvalidState
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) Approve(
	ctx context.Context,
	companyID, actorID, id string,
) (PeriodResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PeriodResponse{}, perioderrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PeriodResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PeriodResponse{}, perioderrors.ErrPeriodNotFound
		}
		return PeriodResponse{}, err
	}

	if p.Status != StatusPendingApproval {
		return PeriodResponse{}, perioderrors.ErrInvalidState
	}

	now := time.Now().UTC()
	p.Status = StatusApproved
	p.ApprovedAt = &now
	p.ApprovedBy = &actorUUID

	if err := qtx.Update(ctx, p); err != nil {
		return PeriodResponse{}, err
	}

	if err := s.enqueueApprovedEvent(ctx, tx, *p, actorID); err != nil {
		return PeriodResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PeriodResponse{}, err
	}

	return mapToResponse(*p), nil
}

func (s *service) Lock(
	ctx context.Context,
	companyID, actorID, id string,
) (PeriodResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PeriodResponse{}, perioderrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PeriodResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PeriodResponse{}, perioderrors.ErrPeriodNotFound
		}
		return PeriodResponse{}, err
	}

	if p.Status != StatusApproved {
		return PeriodResponse{}, perioderrors.ErrInvalidState
	}

	now := time.Now().UTC()
	p.Status = StatusLocked
	p.LockedAt = &now
	p.LockedBy = &actorUUID

	if err := qtx.Update(ctx, p); err != nil {
		return PeriodResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PeriodResponse{}, err
	}

	return mapToResponse(*p), nil
}

// enqueueApprovedEvent writes the approval fact to the outbox inside the
// same transaction so the remittance consumer sees it exactly once.
func (s *service) enqueueApprovedEvent(
	ctx context.Context,
	tx *sql.Tx,
	p PayrollPeriod,
	actorID string,
) error {
	event := events.PeriodApprovedEvent{
		EventType:   "period.approved",
		PeriodID:    p.ID.String(),
		CompanyID:   p.CompanyID.String(),
		PeriodStart: p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   p.PeriodEnd.Format("2006-01-02"),
		ApprovedBy:  actorID,
		OccurredAt:  time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll_period",
		AggregateID:   p.ID.String(),
		EventType:     event.EventType,
		Topic:         events.PeriodApprovedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func parsePeriodDates(startStr, endStr, payDateStr string) (time.Time, time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, perioderrors.ErrInvalidDateFormat
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, perioderrors.ErrInvalidDateFormat
	}
	payDate, err := time.Parse("2006-01-02", payDateStr)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, perioderrors.ErrInvalidDateFormat
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, time.Time{}, perioderrors.ErrInvalidDateRange
	}
	return start, end, payDate, nil
}

func mapToResponse(p PayrollPeriod) PeriodResponse {
	resp := PeriodResponse{
		ID:          p.ID.String(),
		CompanyID:   p.CompanyID.String(),
		Name:        p.Name,
		PeriodType:  p.PeriodType,
		PeriodStart: p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   p.PeriodEnd.Format("2006-01-02"),
		PayDate:     p.PayDate.Format("2006-01-02"),
		Status:      p.Status,
		Totals: PeriodTotals{
			Employees:  p.TotalEmployees,
			Gross:      p.TotalGross,
			Deductions: p.TotalDeductions,
			Net:        p.TotalNet,
		},
		ProcessedCount: p.ProcessedCount,
		SkippedCount:   p.SkippedCount,
	}
	resp.ProcessedAt = formatTimePtr(p.ProcessedAt)
	resp.ApprovedAt = formatTimePtr(p.ApprovedAt)
	resp.LockedAt = formatTimePtr(p.LockedAt)
	return resp
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.UTC().Format(time.RFC3339)
	return &v
}
