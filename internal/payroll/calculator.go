package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"go-payroll/internal/employee"
	"go-payroll/internal/loan"
	"go-payroll/internal/salarycomponent"
	"go-payroll/internal/statutory"
)

// CalculationError marks a per-employee failure. The orchestrator turns
// it into an error row and keeps going; any other error aborts the run.
type CalculationError struct {
	EmployeeID string
	Err        error
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("calculate payroll for employee %s: %v", e.EmployeeID, e.Err)
}

func (e *CalculationError) Unwrap() error {
	return e.Err
}

type CompensationSource interface {
	FindActiveForRange(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]salarycomponent.AssignedComponent, error)
}

type StatutorySource interface {
	Compute(ctx context.Context, country string, gross, taxable int64, on time.Time) (statutory.Amounts, error)
}

type LoanSource interface {
	FindActiveByEmployee(ctx context.Context, companyID, employeeID string, asOf time.Time) ([]loan.Loan, error)
}

// Calculation is one employee's computed result before persistence.
// Loans and Plans travel together so the orchestrator can commit the
// repayments against the rows the plans were computed from.
type Calculation struct {
	EmployeeID         uuid.UUID
	GrossPay           int64
	TotalEarnings      int64
	TaxableIncome      int64
	Statutory          statutory.Amounts
	InternalDeductions int64
	LoanDeduction      int64
	TotalDeductions    int64
	NetPay             int64
	Loans              []loan.Loan
	Plans              []loan.RepaymentPlan
	LineItems          []PayrollLineItem
}

type Calculator struct {
	country      string
	compensation CompensationSource
	statutory    StatutorySource
	loans        LoanSource
}

func NewCalculator(
	country string,
	compensation CompensationSource,
	statutorySource StatutorySource,
	loans LoanSource,
) *Calculator {
	return &Calculator{
		country:      country,
		compensation: compensation,
		statutory:    statutorySource,
		loans:        loans,
	}
}

// Calculate computes one employee's payroll for the period. Every
// failure is returned as *CalculationError so callers can isolate it.
func (c *Calculator) Calculate(
	ctx context.Context,
	companyID string,
	emp employee.Employee,
	periodStart, periodEnd time.Time,
) (Calculation, error) {
	employeeID := emp.ID.String()

	components, err := c.compensation.FindActiveForRange(ctx, companyID, employeeID, periodStart, periodEnd)
	if err != nil {
		return Calculation{}, &CalculationError{EmployeeID: employeeID, Err: fmt.Errorf("resolve compensation: %w", err)}
	}

	calc := Calculation{EmployeeID: emp.ID}

	for _, component := range components {
		amount := component.AppliedAmount()

		switch component.Type {
		case salarycomponent.TypeEarning:
			calc.GrossPay += amount
			calc.TotalEarnings += amount
			if component.IsTaxable {
				calc.TaxableIncome += amount
			}
			calc.LineItems = append(calc.LineItems, PayrollLineItem{
				CompanyID: emp.CompanyID,
				Name:      component.Name,
				Type:      LineTypeEarning,
				Amount:    amount,
				IsTaxable: component.IsTaxable,
			})
		case salarycomponent.TypeDeduction:
			// Statutory deductions are computed from rate tables below,
			// never from the component catalog.
			if component.IsStatutory {
				continue
			}
			calc.InternalDeductions += amount
			calc.LineItems = append(calc.LineItems, PayrollLineItem{
				CompanyID: emp.CompanyID,
				Name:      component.Name,
				Type:      LineTypeDeduction,
				Amount:    amount,
			})
		}
	}

	amounts, err := c.statutory.Compute(ctx, c.country, calc.GrossPay, calc.TaxableIncome, periodEnd)
	if err != nil {
		return Calculation{}, &CalculationError{EmployeeID: employeeID, Err: err}
	}
	calc.Statutory = amounts
	calc.LineItems = append(calc.LineItems,
		PayrollLineItem{CompanyID: emp.CompanyID, Name: "PAYE", Type: LineTypeStatutory, Amount: amounts.PAYE},
		PayrollLineItem{CompanyID: emp.CompanyID, Name: "NSSF", Type: LineTypeStatutory, Amount: amounts.NSSF},
		PayrollLineItem{CompanyID: emp.CompanyID, Name: "NHIF", Type: LineTypeStatutory, Amount: amounts.NHIF},
	)

	loans, err := c.loans.FindActiveByEmployee(ctx, companyID, employeeID, periodEnd)
	if err != nil {
		return Calculation{}, &CalculationError{EmployeeID: employeeID, Err: fmt.Errorf("load active loans: %w", err)}
	}
	calc.Loans = loans
	calc.Plans, calc.LoanDeduction = loan.PlanAll(loans, periodEnd)
	for _, plan := range calc.Plans {
		calc.LineItems = append(calc.LineItems, PayrollLineItem{
			CompanyID: emp.CompanyID,
			Name:      "Loan repayment",
			Type:      LineTypeLoan,
			Amount:    plan.Amount,
		})
	}

	calc.TotalDeductions = calc.InternalDeductions + calc.Statutory.Total() + calc.LoanDeduction
	calc.NetPay = calc.GrossPay - calc.TotalDeductions
	if calc.NetPay < 0 {
		calc.NetPay = 0
	}

	return calc, nil
}
