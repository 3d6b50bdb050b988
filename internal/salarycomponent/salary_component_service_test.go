package salarycomponent_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-payroll/internal/salarycomponent"
	salarycomponenterrors "go-payroll/internal/salarycomponent/errors"
)

type fakeComponentRepo struct {
	createComponentFn   func(ctx context.Context, c *salarycomponent.SalaryComponent) error
	findAllFn           func(ctx context.Context, companyID string) ([]salarycomponent.SalaryComponent, error)
	findComponentFn     func(ctx context.Context, companyID, id string) (*salarycomponent.SalaryComponent, error)
	updateComponentFn   func(ctx context.Context, c *salarycomponent.SalaryComponent) error
	createAssignmentFn  func(ctx context.Context, a *salarycomponent.CompensationAssignment) error
	findAssignmentsFn   func(ctx context.Context, companyID, employeeID string) ([]salarycomponent.CompensationAssignment, error)
	hasOverlapFn        func(ctx context.Context, companyID, employeeID, componentID string, from time.Time, to *time.Time) (bool, error)
	findActiveForRange  func(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]salarycomponent.AssignedComponent, error)
}

func (f *fakeComponentRepo) WithTx(tx *sql.Tx) salarycomponent.Repository { return f }

func (f *fakeComponentRepo) CreateComponent(ctx context.Context, c *salarycomponent.SalaryComponent) error {
	return f.createComponentFn(ctx, c)
}

func (f *fakeComponentRepo) FindAllComponents(ctx context.Context, companyID string) ([]salarycomponent.SalaryComponent, error) {
	return f.findAllFn(ctx, companyID)
}

func (f *fakeComponentRepo) FindComponentByID(ctx context.Context, companyID, id string) (*salarycomponent.SalaryComponent, error) {
	return f.findComponentFn(ctx, companyID, id)
}

func (f *fakeComponentRepo) UpdateComponent(ctx context.Context, c *salarycomponent.SalaryComponent) error {
	return f.updateComponentFn(ctx, c)
}

func (f *fakeComponentRepo) CreateAssignment(ctx context.Context, a *salarycomponent.CompensationAssignment) error {
	return f.createAssignmentFn(ctx, a)
}

func (f *fakeComponentRepo) FindAssignmentsByEmployee(ctx context.Context, companyID, employeeID string) ([]salarycomponent.CompensationAssignment, error) {
	return f.findAssignmentsFn(ctx, companyID, employeeID)
}

func (f *fakeComponentRepo) HasOverlappingAssignment(ctx context.Context, companyID, employeeID, componentID string, from time.Time, to *time.Time) (bool, error) {
	return f.hasOverlapFn(ctx, companyID, employeeID, componentID, from, to)
}

func (f *fakeComponentRepo) FindActiveForRange(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]salarycomponent.AssignedComponent, error) {
	return f.findActiveForRange(ctx, companyID, employeeID, start, end)
}

func activeComponent() *salarycomponent.SalaryComponent {
	return &salarycomponent.SalaryComponent{
		ID:              uuid.New(),
		CompanyID:       uuid.New(),
		Name:            "Basic Salary",
		Type:            salarycomponent.TypeEarning,
		CalculationType: salarycomponent.CalcFixed,
		IsTaxable:       true,
		IsActive:        true,
	}
}

func TestCreateComponent_DefaultsToFixedTaxable(t *testing.T) {
	var created *salarycomponent.SalaryComponent
	repo := &fakeComponentRepo{
		createComponentFn: func(ctx context.Context, c *salarycomponent.SalaryComponent) error {
			created = c
			return nil
		},
	}
	svc := salarycomponent.NewService(nil, repo)

	resp, err := svc.CreateComponent(context.Background(), uuid.NewString(), salarycomponent.CreateComponentRequest{
		Name: "Basic Salary",
		Type: salarycomponent.TypeEarning,
	})

	assert.NoError(t, err)
	assert.Equal(t, salarycomponent.CalcFixed, created.CalculationType)
	assert.True(t, created.IsTaxable)
	assert.True(t, created.IsActive)
	assert.Equal(t, salarycomponent.CalcFixed, resp.CalculationType)
}

func TestCreateComponent_PercentageRequiresRate(t *testing.T) {
	svc := salarycomponent.NewService(nil, &fakeComponentRepo{})

	_, err := svc.CreateComponent(context.Background(), uuid.NewString(), salarycomponent.CreateComponentRequest{
		Name:            "House Allowance",
		Type:            salarycomponent.TypeEarning,
		CalculationType: salarycomponent.CalcPercentage,
	})

	assert.ErrorIs(t, err, salarycomponenterrors.ErrInvalidCalculationType)
}

func TestAssignComponent_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	component := activeComponent()
	var created *salarycomponent.CompensationAssignment
	repo := &fakeComponentRepo{
		findComponentFn: func(ctx context.Context, companyID, id string) (*salarycomponent.SalaryComponent, error) {
			return component, nil
		},
		hasOverlapFn: func(ctx context.Context, companyID, employeeID, componentID string, from time.Time, to *time.Time) (bool, error) {
			return false, nil
		},
		createAssignmentFn: func(ctx context.Context, a *salarycomponent.CompensationAssignment) error {
			created = a
			return nil
		},
	}
	svc := salarycomponent.NewService(db, repo)

	resp, err := svc.AssignComponent(context.Background(), component.CompanyID.String(), component.ID.String(), salarycomponent.CreateAssignmentRequest{
		EmployeeID:    uuid.NewString(),
		Amount:        50000,
		EffectiveFrom: "2025-01-01",
	})

	assert.NoError(t, err)
	assert.Equal(t, component.ID, created.ComponentID)
	assert.Nil(t, created.EffectiveTo)
	assert.Equal(t, int64(50000), resp.Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignComponent_RejectsOverlap(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	component := activeComponent()
	repo := &fakeComponentRepo{
		findComponentFn: func(ctx context.Context, companyID, id string) (*salarycomponent.SalaryComponent, error) {
			return component, nil
		},
		hasOverlapFn: func(ctx context.Context, companyID, employeeID, componentID string, from time.Time, to *time.Time) (bool, error) {
			return true, nil
		},
	}
	svc := salarycomponent.NewService(db, repo)

	_, err = svc.AssignComponent(context.Background(), component.CompanyID.String(), component.ID.String(), salarycomponent.CreateAssignmentRequest{
		EmployeeID:    uuid.NewString(),
		Amount:        50000,
		EffectiveFrom: "2025-01-01",
		EffectiveTo:   "2025-06-30",
	})

	assert.ErrorIs(t, err, salarycomponenterrors.ErrAssignmentOverlap)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignComponent_RejectsInactiveComponent(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	component := activeComponent()
	component.IsActive = false
	repo := &fakeComponentRepo{
		findComponentFn: func(ctx context.Context, companyID, id string) (*salarycomponent.SalaryComponent, error) {
			return component, nil
		},
	}
	svc := salarycomponent.NewService(db, repo)

	_, err = svc.AssignComponent(context.Background(), component.CompanyID.String(), component.ID.String(), salarycomponent.CreateAssignmentRequest{
		EmployeeID:    uuid.NewString(),
		Amount:        50000,
		EffectiveFrom: "2025-01-01",
	})

	assert.ErrorIs(t, err, salarycomponenterrors.ErrComponentInactive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignComponent_RejectsInvertedInterval(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	svc := salarycomponent.NewService(db, &fakeComponentRepo{})

	_, err = svc.AssignComponent(context.Background(), uuid.NewString(), uuid.NewString(), salarycomponent.CreateAssignmentRequest{
		EmployeeID:    uuid.NewString(),
		Amount:        50000,
		EffectiveFrom: "2025-06-30",
		EffectiveTo:   "2025-01-01",
	})

	assert.ErrorIs(t, err, salarycomponenterrors.ErrInvalidDateRange)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppliedAmount(t *testing.T) {
	fixed := salarycomponent.AssignedComponent{CalculationType: salarycomponent.CalcFixed, Amount: 50000}
	assert.Equal(t, int64(50000), fixed.AppliedAmount())

	percentage := salarycomponent.AssignedComponent{CalculationType: salarycomponent.CalcPercentage, Amount: 40000, PercentageBps: 1500}
	assert.Equal(t, int64(6000), percentage.AppliedAmount())
}
