package remittance_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-payroll/internal/payroll"
	"go-payroll/internal/period"
	"go-payroll/internal/remittance"
	remittanceerrors "go-payroll/internal/remittance/errors"
)

type stubPeriodRepo struct {
	period *period.PayrollPeriod
}

func (s *stubPeriodRepo) WithTx(tx *sql.Tx) period.Repository { return s }

func (s *stubPeriodRepo) Create(ctx context.Context, p *period.PayrollPeriod) error { return nil }

func (s *stubPeriodRepo) FindAllByCompany(ctx context.Context, companyID string) ([]period.PayrollPeriod, error) {
	return nil, nil
}

func (s *stubPeriodRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*period.PayrollPeriod, error) {
	return s.period, nil
}

func (s *stubPeriodRepo) HasOverlappingPeriod(ctx context.Context, companyID string, start, end time.Time, excludeID *string) (bool, error) {
	return false, nil
}

func (s *stubPeriodRepo) Update(ctx context.Context, p *period.PayrollPeriod) error { return nil }

func (s *stubPeriodRepo) Delete(ctx context.Context, companyID, id string) error { return nil }

type stubPayrollRepo struct {
	totals payroll.StatutoryTotals
}

func (s *stubPayrollRepo) WithTx(tx *sql.Tx) payroll.Repository { return s }

func (s *stubPayrollRepo) UpsertByPeriodEmployee(ctx context.Context, p *payroll.Payroll) error {
	return nil
}

func (s *stubPayrollRepo) ReplaceLineItems(ctx context.Context, payrollID uuid.UUID, items []payroll.PayrollLineItem) error {
	return nil
}

func (s *stubPayrollRepo) FindAllByPeriod(ctx context.Context, companyID, periodID string) ([]payroll.Payroll, error) {
	return nil, nil
}

func (s *stubPayrollRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*payroll.Payroll, error) {
	return nil, nil
}

func (s *stubPayrollRepo) FindLineItems(ctx context.Context, companyID, payrollID string) ([]payroll.PayrollLineItem, error) {
	return nil, nil
}

func (s *stubPayrollRepo) SumStatutoryByPeriod(ctx context.Context, companyID, periodID string) (payroll.StatutoryTotals, error) {
	return s.totals, nil
}

type fakeRemittanceRepo struct {
	existing map[string]bool
	created  []*remittance.TaxRemittance
	row      *remittance.TaxRemittance
	updated  *remittance.TaxRemittance
}

func newFakeRemittanceRepo() *fakeRemittanceRepo {
	return &fakeRemittanceRepo{existing: make(map[string]bool)}
}

func (f *fakeRemittanceRepo) WithTx(tx *sql.Tx) remittance.Repository { return f }

func (f *fakeRemittanceRepo) Create(ctx context.Context, r *remittance.TaxRemittance) error {
	f.created = append(f.created, r)
	f.existing[r.TaxType] = true
	return nil
}

func (f *fakeRemittanceRepo) ExistsForPeriodAndType(ctx context.Context, companyID, periodID, taxType string) (bool, error) {
	return f.existing[taxType], nil
}

func (f *fakeRemittanceRepo) FindAllByPeriod(ctx context.Context, companyID, periodID string) ([]remittance.TaxRemittance, error) {
	out := make([]remittance.TaxRemittance, len(f.created))
	for i, r := range f.created {
		out[i] = *r
	}
	return out, nil
}

func (f *fakeRemittanceRepo) FindAllByCompany(ctx context.Context, companyID string) ([]remittance.TaxRemittance, error) {
	return f.FindAllByPeriod(ctx, companyID, "")
}

func (f *fakeRemittanceRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*remittance.TaxRemittance, error) {
	return f.row, nil
}

func (f *fakeRemittanceRepo) Update(ctx context.Context, r *remittance.TaxRemittance) error {
	f.updated = r
	return nil
}

func januaryPeriod() *period.PayrollPeriod {
	return &period.PayrollPeriod{
		ID:          uuid.New(),
		CompanyID:   uuid.New(),
		PeriodStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		Status:      period.StatusApproved,
	}
}

func TestDueDateFor_NinthOfNextMonth(t *testing.T) {
	periodEnd := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	due := remittance.DueDateFor(periodEnd, remittance.DefaultRemittanceDays)

	assert.Equal(t, time.Date(2025, 2, 9, 0, 0, 0, 0, time.UTC), due)
}

func TestDueDateFor_DecemberRollsIntoNextYear(t *testing.T) {
	periodEnd := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	due := remittance.DueDateFor(periodEnd, remittance.DefaultRemittanceDays)

	assert.Equal(t, time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC), due)
}

func TestSchedulePeriod_CreatesPendingRowsPerTaxType(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	p := januaryPeriod()
	repo := newFakeRemittanceRepo()
	payrolls := &stubPayrollRepo{totals: payroll.StatutoryTotals{Paye: 65000, Nssf: 10800, Nhif: 12000}}

	svc := remittance.NewService(db, repo, &stubPeriodRepo{period: p}, payrolls, 0)

	resp, err := svc.SchedulePeriod(context.Background(), p.CompanyID.String(), p.ID.String())

	assert.NoError(t, err)
	assert.Len(t, resp, 3)
	assert.Len(t, repo.created, 3)
	for _, r := range repo.created {
		assert.Equal(t, remittance.StatusPending, r.Status)
		assert.Equal(t, time.Date(2025, 2, 9, 0, 0, 0, 0, time.UTC), r.DueDate)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchedulePeriod_SkipsZeroTotals(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	p := januaryPeriod()
	repo := newFakeRemittanceRepo()
	payrolls := &stubPayrollRepo{totals: payroll.StatutoryTotals{Paye: 65000}}

	svc := remittance.NewService(db, repo, &stubPeriodRepo{period: p}, payrolls, 0)

	_, err = svc.SchedulePeriod(context.Background(), p.CompanyID.String(), p.ID.String())

	assert.NoError(t, err)
	assert.Len(t, repo.created, 1)
	assert.Equal(t, "PAYE", repo.created[0].TaxType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchedulePeriod_ReinvocationIsNoOp(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()

	p := januaryPeriod()
	repo := newFakeRemittanceRepo()
	payrolls := &stubPayrollRepo{totals: payroll.StatutoryTotals{Paye: 65000, Nssf: 10800, Nhif: 12000}}

	svc := remittance.NewService(db, repo, &stubPeriodRepo{period: p}, payrolls, 0)

	_, err = svc.SchedulePeriod(context.Background(), p.CompanyID.String(), p.ID.String())
	assert.NoError(t, err)

	resp, err := svc.SchedulePeriod(context.Background(), p.CompanyID.String(), p.ID.String())
	assert.NoError(t, err)

	assert.Len(t, repo.created, 3)
	assert.Len(t, resp, 3)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAsRemitted_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := newFakeRemittanceRepo()
	repo.row = &remittance.TaxRemittance{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		PeriodID:  uuid.New(),
		TaxType:   "PAYE",
		Amount:    65000,
		Status:    remittance.StatusPending,
	}

	svc := remittance.NewService(db, repo, &stubPeriodRepo{}, &stubPayrollRepo{}, 0)

	resp, err := svc.MarkAsRemitted(context.Background(), repo.row.CompanyID.String(), repo.row.ID.String(), remittance.MarkRemittedRequest{
		Reference: "KRA-2025-000123",
	})

	assert.NoError(t, err)
	assert.Equal(t, remittance.StatusRemitted, resp.Status)
	assert.Equal(t, "KRA-2025-000123", *resp.Reference)
	assert.NotNil(t, repo.updated.RemittedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAsRemitted_RejectsSecondAttempt(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := newFakeRemittanceRepo()
	repo.row = &remittance.TaxRemittance{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		Status:    remittance.StatusRemitted,
	}

	svc := remittance.NewService(db, repo, &stubPeriodRepo{}, &stubPayrollRepo{}, 0)

	_, err = svc.MarkAsRemitted(context.Background(), repo.row.CompanyID.String(), repo.row.ID.String(), remittance.MarkRemittedRequest{
		Reference: "KRA-2025-000123",
	})

	assert.ErrorIs(t, err, remittanceerrors.ErrAlreadyRemitted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
