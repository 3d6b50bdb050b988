package loan_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-payroll/internal/loan"
	loanerrors "go-payroll/internal/loan/errors"
)

type fakeLoanRepo struct {
	createFn               func(ctx context.Context, l *loan.Loan) error
	findAllByCompanyFn     func(ctx context.Context, companyID string) ([]loan.Loan, error)
	findByIDAndCompanyFn   func(ctx context.Context, companyID, id string) (*loan.Loan, error)
	findActiveByEmployeeFn func(ctx context.Context, companyID, employeeID string, asOf time.Time) ([]loan.Loan, error)
	updateFn               func(ctx context.Context, l *loan.Loan) error
	createRepaymentFn      func(ctx context.Context, r *loan.LoanRepayment) error
	findRepaymentsFn       func(ctx context.Context, companyID, loanID string) ([]loan.LoanRepayment, error)
}

func (f *fakeLoanRepo) WithTx(tx *sql.Tx) loan.Repository { return f }

func (f *fakeLoanRepo) Create(ctx context.Context, l *loan.Loan) error {
	return f.createFn(ctx, l)
}

func (f *fakeLoanRepo) FindAllByCompany(ctx context.Context, companyID string) ([]loan.Loan, error) {
	return f.findAllByCompanyFn(ctx, companyID)
}

func (f *fakeLoanRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*loan.Loan, error) {
	return f.findByIDAndCompanyFn(ctx, companyID, id)
}

func (f *fakeLoanRepo) FindActiveByEmployee(ctx context.Context, companyID, employeeID string, asOf time.Time) ([]loan.Loan, error) {
	return f.findActiveByEmployeeFn(ctx, companyID, employeeID, asOf)
}

func (f *fakeLoanRepo) Update(ctx context.Context, l *loan.Loan) error {
	return f.updateFn(ctx, l)
}

func (f *fakeLoanRepo) CreateRepayment(ctx context.Context, r *loan.LoanRepayment) error {
	return f.createRepaymentFn(ctx, r)
}

func (f *fakeLoanRepo) FindRepaymentsByLoan(ctx context.Context, companyID, loanID string) ([]loan.LoanRepayment, error) {
	return f.findRepaymentsFn(ctx, companyID, loanID)
}

func TestCreateLoan_Success(t *testing.T) {
	var created *loan.Loan
	repo := &fakeLoanRepo{
		createFn: func(ctx context.Context, l *loan.Loan) error {
			created = l
			return nil
		},
	}
	svc := loan.NewService(nil, repo)

	resp, err := svc.Create(context.Background(), uuid.NewString(), loan.CreateLoanRequest{
		EmployeeID:         uuid.NewString(),
		Principal:          120000,
		MonthlyDeduction:   10000,
		RepaymentStartDate: "2025-02-01",
		Activate:           true,
	})

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, int64(120000), created.RemainingBalance)
	assert.Equal(t, loan.StatusActive, created.Status)
	assert.Equal(t, loan.StatusActive, resp.Status)
}

func TestCreateLoan_RejectsNonPositiveAmounts(t *testing.T) {
	svc := loan.NewService(nil, &fakeLoanRepo{})

	_, err := svc.Create(context.Background(), uuid.NewString(), loan.CreateLoanRequest{
		EmployeeID:         uuid.NewString(),
		Principal:          0,
		MonthlyDeduction:   10000,
		RepaymentStartDate: "2025-02-01",
	})

	assert.ErrorIs(t, err, loanerrors.ErrInvalidAmount)
}

func TestCreateManualRepayment_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	l := &loan.Loan{
		ID:               uuid.New(),
		CompanyID:        uuid.New(),
		EmployeeID:       uuid.New(),
		Principal:        120000,
		MonthlyDeduction: 10000,
		RemainingBalance: 30000,
		TotalPaid:        90000,
		Status:           loan.StatusActive,
	}

	var updated *loan.Loan
	var ledgerRow *loan.LoanRepayment
	repo := &fakeLoanRepo{
		findByIDAndCompanyFn: func(ctx context.Context, companyID, id string) (*loan.Loan, error) {
			return l, nil
		},
		updateFn: func(ctx context.Context, l *loan.Loan) error {
			updated = l
			return nil
		},
		createRepaymentFn: func(ctx context.Context, r *loan.LoanRepayment) error {
			ledgerRow = r
			return nil
		},
	}
	svc := loan.NewService(db, repo)

	resp, err := svc.CreateManualRepayment(context.Background(), l.CompanyID.String(), l.ID.String(), loan.CreateRepaymentRequest{
		Amount:        10000,
		RepaymentDate: "2025-01-31",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(20000), updated.RemainingBalance)
	assert.Equal(t, int64(100000), updated.TotalPaid)
	assert.Equal(t, loan.StatusActive, updated.Status)
	assert.Equal(t, int64(20000), ledgerRow.BalanceAfter)
	assert.Equal(t, loan.PaymentTypeManual, ledgerRow.PaymentType)
	assert.Nil(t, ledgerRow.PayrollID)
	assert.Equal(t, int64(20000), resp.BalanceAfter)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateManualRepayment_CompletesLoanAtZeroBalance(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	l := &loan.Loan{
		ID:               uuid.New(),
		CompanyID:        uuid.New(),
		RemainingBalance: 4000,
		Status:           loan.StatusActive,
	}

	repo := &fakeLoanRepo{
		findByIDAndCompanyFn: func(ctx context.Context, companyID, id string) (*loan.Loan, error) {
			return l, nil
		},
		updateFn:          func(ctx context.Context, l *loan.Loan) error { return nil },
		createRepaymentFn: func(ctx context.Context, r *loan.LoanRepayment) error { return nil },
	}
	svc := loan.NewService(db, repo)

	resp, err := svc.CreateManualRepayment(context.Background(), l.CompanyID.String(), l.ID.String(), loan.CreateRepaymentRequest{
		Amount: 4000,
	})

	assert.NoError(t, err)
	assert.Equal(t, loan.StatusCompleted, l.Status)
	assert.Equal(t, int64(0), resp.BalanceAfter)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateManualRepayment_ExceedsBalance(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	l := &loan.Loan{
		ID:               uuid.New(),
		CompanyID:        uuid.New(),
		RemainingBalance: 4000,
		Status:           loan.StatusActive,
	}

	repo := &fakeLoanRepo{
		findByIDAndCompanyFn: func(ctx context.Context, companyID, id string) (*loan.Loan, error) {
			return l, nil
		},
	}
	svc := loan.NewService(db, repo)

	_, err = svc.CreateManualRepayment(context.Background(), l.CompanyID.String(), l.ID.String(), loan.CreateRepaymentRequest{
		Amount: 5000,
	})

	assert.ErrorIs(t, err, loanerrors.ErrRepaymentExceedsBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}
