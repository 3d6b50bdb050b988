package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/loan"
	"go-payroll/internal/messaging/kafka"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/period"
	perioderrors "go-payroll/internal/period/errors"
	"go-payroll/internal/shared/contextutil"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	ProcessPeriod(ctx context.Context, companyID, actorID, periodID string) (RunSummary, error)
	GetAllByPeriod(ctx context.Context, companyID, periodID string) ([]PayrollResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PayrollResponse, error)
	GetBreakdown(ctx context.Context, companyID, id string) (BreakdownResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	periods    period.Repository
	employees  employee.Repository
	loans      loan.Repository
	calculator *Calculator
	outbox     kafka.OutboxRepository
}

func NewService(
	db *sql.DB,
	repo Repository,
	periods period.Repository,
	employees employee.Repository,
	loans loan.Repository,
	calculator *Calculator,
	outbox kafka.OutboxRepository,
) Service {
	return &service{
		db:         db,
		repo:       repo,
		periods:    periods,
		employees:  employees,
		loans:      loans,
		calculator: calculator,
		outbox:     outbox,
	}
}

// ProcessPeriod runs the whole period inside one transaction. One
// employee's calculation failure becomes an error row and never aborts
// the run; anything outside the per-employee boundary rolls everything
// back and leaves the period untouched.
func (s *service) ProcessPeriod(
	ctx context.Context,
	companyID, actorID, periodID string,
) (RunSummary, error) {
	logger := contextutil.GetLogger(ctx, zap.L()).Named("payroll.run")

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RunSummary{}, perioderrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RunSummary{}, err
	}
	defer tx.Rollback()

	qPeriods := s.periods.WithTx(tx)
	qPayrolls := s.repo.WithTx(tx)
	qLoans := s.loans.WithTx(tx)

	p, err := qPeriods.FindByIDAndCompany(ctx, companyID, periodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RunSummary{}, perioderrors.ErrPeriodNotFound
		}
		return RunSummary{}, err
	}

	if p.IsLocked() {
		return RunSummary{}, perioderrors.ErrPeriodLocked
	}
	if !p.CanProcess() {
		return RunSummary{}, perioderrors.ErrInvalidState
	}

	p.Status = period.StatusProcessing
	if err := qPeriods.Update(ctx, p); err != nil {
		return RunSummary{}, err
	}

	// Zero active employees is a valid run: the loop is empty and the
	// period lands in pending_approval with zero totals.
	employees, err := s.employees.WithTx(tx).FindActiveByCompany(ctx, companyID)
	if err != nil {
		return RunSummary{}, err
	}

	outcomes := make([]Calculation, 0, len(employees))
	skipped := 0

	for _, emp := range employees {
		calc, err := s.calculator.Calculate(ctx, companyID, emp, p.PeriodStart, p.PeriodEnd)
		if err != nil {
			var calcErr *CalculationError
			if !errors.As(err, &calcErr) {
				return RunSummary{}, err
			}
			if persistErr := s.persistErrorRow(ctx, qPayrolls, *p, emp, calcErr); persistErr != nil {
				return RunSummary{}, persistErr
			}
			skipped++
			logger.Warn("employee skipped",
				zap.String("period_id", periodID),
				zap.String("employee_id", emp.ID.String()),
				zap.Error(calcErr.Err),
			)
			continue
		}

		if err := s.persistCalculation(ctx, qPayrolls, qLoans, *p, calc); err != nil {
			return RunSummary{}, err
		}
		outcomes = append(outcomes, calc)
	}

	// Totals fold over the successful outcomes only, in one place, so a
	// future parallel calculation loop cannot race the counters.
	var totalGross, totalDeductions, totalNet int64
	for _, calc := range outcomes {
		totalGross += calc.GrossPay
		totalDeductions += calc.TotalDeductions
		totalNet += calc.NetPay
	}

	now := time.Now().UTC()
	p.Status = period.StatusPendingApproval
	p.TotalEmployees = len(outcomes)
	p.ProcessedCount = len(outcomes)
	p.SkippedCount = skipped
	p.TotalGross = totalGross
	p.TotalDeductions = totalDeductions
	p.TotalNet = totalNet
	p.ProcessedAt = &now
	p.ProcessedBy = &actorUUID

	if err := qPeriods.Update(ctx, p); err != nil {
		return RunSummary{}, err
	}

	summary := RunSummary{
		PeriodID:        periodID,
		PeriodStatus:    p.Status,
		TotalEmployees:  p.TotalEmployees,
		ProcessedCount:  p.ProcessedCount,
		SkippedCount:    p.SkippedCount,
		TotalGross:      p.TotalGross,
		TotalDeductions: p.TotalDeductions,
		TotalNet:        p.TotalNet,
	}

	if err := s.enqueueProcessedEvent(ctx, tx, *p, summary); err != nil {
		return RunSummary{}, err
	}

	if err := tx.Commit(); err != nil {
		return RunSummary{}, err
	}

	logger.Info("period processed",
		zap.String("period_id", periodID),
		zap.String("actor_id", actorID),
		zap.Int("processed", summary.ProcessedCount),
		zap.Int("skipped", summary.SkippedCount),
		zap.Int64("total_net", summary.TotalNet),
	)

	return summary, nil
}

func (s *service) persistCalculation(
	ctx context.Context,
	payrolls Repository,
	loans loan.Repository,
	p period.PayrollPeriod,
	calc Calculation,
) error {
	row := &Payroll{
		CompanyID:          p.CompanyID,
		PeriodID:           p.ID,
		EmployeeID:         calc.EmployeeID,
		GrossPay:           calc.GrossPay,
		TotalEarnings:      calc.TotalEarnings,
		TaxableIncome:      calc.TaxableIncome,
		PayeAmount:         calc.Statutory.PAYE,
		NssfAmount:         calc.Statutory.NSSF,
		NhifAmount:         calc.Statutory.NHIF,
		InternalDeductions: calc.InternalDeductions,
		LoanDeduction:      calc.LoanDeduction,
		TotalDeductions:    calc.TotalDeductions,
		NetPay:             calc.NetPay,
		Status:             StatusCalculated,
	}

	if err := payrolls.UpsertByPeriodEmployee(ctx, row); err != nil {
		return err
	}
	if err := payrolls.ReplaceLineItems(ctx, row.ID, calc.LineItems); err != nil {
		return err
	}

	loansByID := make(map[string]*loan.Loan, len(calc.Loans))
	for i := range calc.Loans {
		loansByID[calc.Loans[i].ID.String()] = &calc.Loans[i]
	}
	for _, plan := range calc.Plans {
		l, ok := loansByID[plan.LoanID]
		if !ok {
			continue
		}
		payrollID := row.ID
		if _, err := loan.CommitRepayment(ctx, loans, l, plan.Amount, &payrollID, loan.PaymentTypePayroll, p.PeriodEnd); err != nil {
			return err
		}
	}

	return nil
}

func (s *service) persistErrorRow(
	ctx context.Context,
	payrolls Repository,
	p period.PayrollPeriod,
	emp employee.Employee,
	calcErr *CalculationError,
) error {
	message := calcErr.Err.Error()
	if len(message) > 500 {
		message = message[:500]
	}

	row := &Payroll{
		CompanyID:    p.CompanyID,
		PeriodID:     p.ID,
		EmployeeID:   emp.ID,
		Status:       StatusError,
		ErrorMessage: &message,
	}

	if err := payrolls.UpsertByPeriodEmployee(ctx, row); err != nil {
		return err
	}
	return payrolls.ReplaceLineItems(ctx, row.ID, nil)
}

func (s *service) enqueueProcessedEvent(
	ctx context.Context,
	tx *sql.Tx,
	p period.PayrollPeriod,
	summary RunSummary,
) error {
	event := events.PeriodProcessedEvent{
		EventType:       "period.processed",
		PeriodID:        p.ID.String(),
		CompanyID:       p.CompanyID.String(),
		TotalEmployees:  summary.TotalEmployees,
		ProcessedCount:  summary.ProcessedCount,
		SkippedCount:    summary.SkippedCount,
		TotalGross:      summary.TotalGross,
		TotalDeductions: summary.TotalDeductions,
		TotalNet:        summary.TotalNet,
		OccurredAt:      time.Now().UTC(),
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
		Topic:         events.PeriodProcessedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetAllByPeriod(ctx context.Context, companyID, periodID string) ([]PayrollResponse, error) {
	payrolls, err := s.repo.FindAllByPeriod(ctx, companyID, periodID)
	if err != nil {
		return nil, err
	}

	resp := make([]PayrollResponse, len(payrolls))
	for i, p := range payrolls {
		resp[i] = mapPayrollResponse(p)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (PayrollResponse, error) {
	p, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}

	return mapPayrollResponse(*p), nil
}

func (s *service) GetBreakdown(ctx context.Context, companyID, id string) (BreakdownResponse, error) {
	p, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BreakdownResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return BreakdownResponse{}, err
	}

	items, err := s.repo.FindLineItems(ctx, companyID, id)
	if err != nil {
		return BreakdownResponse{}, err
	}

	resp := BreakdownResponse{Payroll: mapPayrollResponse(*p)}
	resp.LineItems = make([]LineItemResponse, len(items))
	for i, item := range items {
		resp.LineItems[i] = LineItemResponse{
			Name:      item.Name,
			Type:      item.Type,
			Amount:    item.Amount,
			IsTaxable: item.IsTaxable,
		}
	}
	return resp, nil
}

func mapPayrollResponse(p Payroll) PayrollResponse {
	return PayrollResponse{
		ID:                 p.ID.String(),
		PeriodID:           p.PeriodID.String(),
		EmployeeID:         p.EmployeeID.String(),
		GrossPay:           p.GrossPay,
		TotalEarnings:      p.TotalEarnings,
		TaxableIncome:      p.TaxableIncome,
		PayeAmount:         p.PayeAmount,
		NssfAmount:         p.NssfAmount,
		NhifAmount:         p.NhifAmount,
		InternalDeductions: p.InternalDeductions,
		LoanDeduction:      p.LoanDeduction,
		TotalDeductions:    p.TotalDeductions,
		NetPay:             p.NetPay,
		Status:             p.Status,
		ErrorMessage:       p.ErrorMessage,
	}
}
