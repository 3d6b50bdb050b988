package salarycomponent

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	salarycomponenterrors "go-payroll/internal/salarycomponent/errors"
)

//go:generate mockgen -source=salary_component_service.go -destination=mock/salary_component_service_mock.go -package=mock
type Service interface {
	CreateComponent(ctx context.Context, companyID string, req CreateComponentRequest) (ComponentResponse, error)
	GetAllComponents(ctx context.Context, companyID string) ([]ComponentResponse, error)
	UpdateComponent(ctx context.Context, companyID, id string, req UpdateComponentRequest) (ComponentResponse, error)
	AssignComponent(ctx context.Context, companyID, componentID string, req CreateAssignmentRequest) (AssignmentResponse, error)
	GetEmployeeAssignments(ctx context.Context, companyID, employeeID string) ([]AssignmentResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) CreateComponent(
	ctx context.Context,
	companyID string,
	req CreateComponentRequest,
) (ComponentResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return ComponentResponse{}, salarycomponenterrors.ErrInvalidCompanyID
	}

	calcType := req.CalculationType
	if calcType == "" {
		calcType = CalcFixed
	}
	if calcType == CalcPercentage && req.PercentageBps <= 0 {
		return ComponentResponse{}, salarycomponenterrors.ErrInvalidCalculationType
	}

	taxable := true
	if req.IsTaxable != nil {
		taxable = *req.IsTaxable
	}

	component := &SalaryComponent{
		ID:              uuid.New(),
		CompanyID:       companyUUID,
		Name:            req.Name,
		Type:            req.Type,
		CalculationType: calcType,
		PercentageBps:   req.PercentageBps,
		IsTaxable:       taxable,
		IsStatutory:     req.IsStatutory,
		IsActive:        true,
	}
	if req.StatutoryType != "" {
		component.StatutoryType = &req.StatutoryType
	}

	if err := s.repo.CreateComponent(ctx, component); err != nil {
		return ComponentResponse{}, err
	}

	return mapComponentResponse(*component), nil
}

func (s *service) GetAllComponents(
	ctx context.Context,
	companyID string,
) ([]ComponentResponse, error) {
	components, err := s.repo.FindAllComponents(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]ComponentResponse, len(components))
	for i, component := range components {
		resp[i] = mapComponentResponse(component)
	}
	return resp, nil
}

func (s *service) UpdateComponent(
	ctx context.Context,
	companyID, id string,
	req UpdateComponentRequest,
) (ComponentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ComponentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	component, err := qtx.FindComponentByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ComponentResponse{}, salarycomponenterrors.ErrComponentNotFound
		}
		return ComponentResponse{}, err
	}

	if req.Name != nil {
		component.Name = *req.Name
	}
	if req.PercentageBps != nil {
		component.PercentageBps = *req.PercentageBps
	}
	if req.IsTaxable != nil {
		component.IsTaxable = *req.IsTaxable
	}
	if req.IsActive != nil {
		component.IsActive = *req.IsActive
	}

	if err := qtx.UpdateComponent(ctx, component); err != nil {
		return ComponentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ComponentResponse{}, err
	}

	return mapComponentResponse(*component), nil
}

func (s *service) AssignComponent(
	ctx context.Context,
	companyID, componentID string,
	req CreateAssignmentRequest,
) (AssignmentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AssignmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return AssignmentResponse{}, salarycomponenterrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AssignmentResponse{}, salarycomponenterrors.ErrInvalidEmployeeID
	}

	if req.Amount < 0 {
		return AssignmentResponse{}, salarycomponenterrors.ErrNegativeAmount
	}

	from, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		return AssignmentResponse{}, salarycomponenterrors.ErrInvalidDateFormat
	}
	var to *time.Time
	if req.EffectiveTo != "" {
		parsed, err := time.Parse("2006-01-02", req.EffectiveTo)
		if err != nil {
			return AssignmentResponse{}, salarycomponenterrors.ErrInvalidDateFormat
		}
		if parsed.Before(from) {
			return AssignmentResponse{}, salarycomponenterrors.ErrInvalidDateRange
		}
		to = &parsed
	}

	component, err := qtx.FindComponentByID(ctx, companyID, componentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AssignmentResponse{}, salarycomponenterrors.ErrComponentNotFound
		}
		return AssignmentResponse{}, err
	}
	if !component.IsActive {
		return AssignmentResponse{}, salarycomponenterrors.ErrComponentInactive
	}

	// Validity intervals per (employee, component) must not overlap
	overlap, err := qtx.HasOverlappingAssignment(ctx, companyID, req.EmployeeID, componentID, from, to)
	if err != nil {
		return AssignmentResponse{}, err
	}
	if overlap {
		return AssignmentResponse{}, salarycomponenterrors.ErrAssignmentOverlap
	}

	assignment := &CompensationAssignment{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		EmployeeID:    employeeUUID,
		ComponentID:   component.ID,
		Amount:        req.Amount,
		EffectiveFrom: from,
		EffectiveTo:   to,
	}

	if err := qtx.CreateAssignment(ctx, assignment); err != nil {
		return AssignmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AssignmentResponse{}, err
	}

	return mapAssignmentResponse(*assignment), nil
}

func (s *service) GetEmployeeAssignments(
	ctx context.Context,
	companyID, employeeID string,
) ([]AssignmentResponse, error) {
	assignments, err := s.repo.FindAssignmentsByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]AssignmentResponse, len(assignments))
	for i, assignment := range assignments {
		resp[i] = mapAssignmentResponse(assignment)
	}
	return resp, nil
}

func mapComponentResponse(component SalaryComponent) ComponentResponse {
	return ComponentResponse{
		ID:              component.ID.String(),
		CompanyID:       component.CompanyID.String(),
		Name:            component.Name,
		Type:            component.Type,
		CalculationType: component.CalculationType,
		PercentageBps:   component.PercentageBps,
		IsTaxable:       component.IsTaxable,
		IsStatutory:     component.IsStatutory,
		StatutoryType:   component.StatutoryType,
		IsActive:        component.IsActive,
	}
}

func mapAssignmentResponse(assignment CompensationAssignment) AssignmentResponse {
	resp := AssignmentResponse{
		ID:            assignment.ID.String(),
		EmployeeID:    assignment.EmployeeID.String(),
		ComponentID:   assignment.ComponentID.String(),
		Amount:        assignment.Amount,
		EffectiveFrom: assignment.EffectiveFrom.Format("2006-01-02"),
	}
	if assignment.EffectiveTo != nil {
		v := assignment.EffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &v
	}
	return resp
}
