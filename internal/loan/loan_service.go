package loan

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	loanerrors "go-payroll/internal/loan/errors"
)

//go:generate mockgen -source=loan_service.go -destination=mock/loan_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateLoanRequest) (LoanResponse, error)
	GetAll(ctx context.Context, companyID string) ([]LoanResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LoanResponse, error)
	CreateManualRepayment(ctx context.Context, companyID, loanID string, req CreateRepaymentRequest) (RepaymentResponse, error)
	GetRepayments(ctx context.Context, companyID, loanID string) ([]RepaymentResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

// CommitRepayment applies one repayment against a loan and appends the
// ledger row. The ledger invariants live here: 0 < amount <= previous
// balance, balanceAfter = previousBalance - amount, completion at zero.
func CommitRepayment(
	ctx context.Context,
	repo Repository,
	l *Loan,
	amount int64,
	payrollID *uuid.UUID,
	paymentType string,
	repaymentDate time.Time,
) (*LoanRepayment, error) {
	if l.Status != StatusActive {
		return nil, loanerrors.ErrLoanNotActive
	}
	if amount <= 0 {
		return nil, loanerrors.ErrInvalidAmount
	}
	if amount > l.RemainingBalance {
		return nil, loanerrors.ErrRepaymentExceedsBalance
	}

	l.RemainingBalance -= amount
	l.TotalPaid += amount
	if l.RemainingBalance <= 0 {
		l.Status = StatusCompleted
	}

	if err := repo.Update(ctx, l); err != nil {
		return nil, err
	}

	repayment := &LoanRepayment{
		ID:            uuid.New(),
		CompanyID:     l.CompanyID,
		LoanID:        l.ID,
		PayrollID:     payrollID,
		Amount:        amount,
		RepaymentDate: repaymentDate,
		PaymentType:   paymentType,
		BalanceAfter:  l.RemainingBalance,
	}
	if err := repo.CreateRepayment(ctx, repayment); err != nil {
		return nil, err
	}

	return repayment, nil
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateLoanRequest,
) (LoanResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LoanResponse{}, loanerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LoanResponse{}, loanerrors.ErrInvalidEmployeeID
	}
	if req.Principal <= 0 || req.MonthlyDeduction <= 0 {
		return LoanResponse{}, loanerrors.ErrInvalidAmount
	}

	startDate, err := time.Parse("2006-01-02", req.RepaymentStartDate)
	if err != nil {
		return LoanResponse{}, loanerrors.ErrInvalidDateFormat
	}

	status := StatusPending
	if req.Activate {
		status = StatusActive
	}

	l := &Loan{
		ID:                 uuid.New(),
		CompanyID:          companyUUID,
		EmployeeID:         employeeUUID,
		Principal:          req.Principal,
		MonthlyDeduction:   req.MonthlyDeduction,
		RemainingBalance:   req.Principal,
		RepaymentStartDate: startDate,
		Status:             status,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return LoanResponse{}, err
	}

	return mapLoanResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]LoanResponse, error) {
	loans, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]LoanResponse, len(loans))
	for i, l := range loans {
		resp[i] = mapLoanResponse(l)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LoanResponse, error) {
	l, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoanResponse{}, loanerrors.ErrLoanNotFound
		}
		return LoanResponse{}, err
	}

	return mapLoanResponse(*l), nil
}

func (s *service) CreateManualRepayment(
	ctx context.Context,
	companyID, loanID string,
	req CreateRepaymentRequest,
) (RepaymentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RepaymentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndCompany(ctx, companyID, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RepaymentResponse{}, loanerrors.ErrLoanNotFound
		}
		return RepaymentResponse{}, err
	}

	repaymentDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.RepaymentDate != "" {
		repaymentDate, err = time.Parse("2006-01-02", req.RepaymentDate)
		if err != nil {
			return RepaymentResponse{}, loanerrors.ErrInvalidDateFormat
		}
	}

	repayment, err := CommitRepayment(ctx, qtx, l, req.Amount, nil, PaymentTypeManual, repaymentDate)
	if err != nil {
		return RepaymentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RepaymentResponse{}, err
	}

	return mapRepaymentResponse(*repayment), nil
}

func (s *service) GetRepayments(ctx context.Context, companyID, loanID string) ([]RepaymentResponse, error) {
	repayments, err := s.repo.FindRepaymentsByLoan(ctx, companyID, loanID)
	if err != nil {
		return nil, err
	}

	resp := make([]RepaymentResponse, len(repayments))
	for i, repayment := range repayments {
		resp[i] = mapRepaymentResponse(repayment)
	}
	return resp, nil
}

func mapLoanResponse(l Loan) LoanResponse {
	return LoanResponse{
		ID:                 l.ID.String(),
		CompanyID:          l.CompanyID.String(),
		EmployeeID:         l.EmployeeID.String(),
		Principal:          l.Principal,
		MonthlyDeduction:   l.MonthlyDeduction,
		RemainingBalance:   l.RemainingBalance,
		TotalPaid:          l.TotalPaid,
		RepaymentStartDate: l.RepaymentStartDate.Format("2006-01-02"),
		Status:             l.Status,
	}
}

func mapRepaymentResponse(repayment LoanRepayment) RepaymentResponse {
	resp := RepaymentResponse{
		ID:            repayment.ID.String(),
		LoanID:        repayment.LoanID.String(),
		Amount:        repayment.Amount,
		RepaymentDate: repayment.RepaymentDate.Format("2006-01-02"),
		PaymentType:   repayment.PaymentType,
		BalanceAfter:  repayment.BalanceAfter,
	}
	if repayment.PayrollID != nil {
		v := repayment.PayrollID.String()
		resp.PayrollID = &v
	}
	return resp
}
