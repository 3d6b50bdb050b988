package loan_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-payroll/internal/loan"
)

func activeLoan(balance, monthly int64, start time.Time) loan.Loan {
	return loan.Loan{
		ID:                 uuid.New(),
		CompanyID:          uuid.New(),
		EmployeeID:         uuid.New(),
		Principal:          balance,
		MonthlyDeduction:   monthly,
		RemainingBalance:   balance,
		RepaymentStartDate: start,
		Status:             loan.StatusActive,
	}
}

func TestPlanRepayment_FullInstallment(t *testing.T) {
	periodEnd := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	l := activeLoan(100000, 10000, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	plan, ok := loan.PlanRepayment(l, periodEnd)

	assert.True(t, ok)
	assert.Equal(t, int64(10000), plan.Amount)
	assert.Equal(t, int64(90000), plan.BalanceAfter)
	assert.False(t, plan.Completed)
}

func TestPlanRepayment_FinalPartialInstallment(t *testing.T) {
	periodEnd := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	l := activeLoan(100000, 10000, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	l.RemainingBalance = 4000

	plan, ok := loan.PlanRepayment(l, periodEnd)

	assert.True(t, ok)
	assert.Equal(t, int64(4000), plan.Amount)
	assert.Equal(t, int64(0), plan.BalanceAfter)
	assert.True(t, plan.Completed)
}

func TestPlanRepayment_SkipsIneligible(t *testing.T) {
	periodEnd := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	notStarted := activeLoan(100000, 10000, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	_, ok := loan.PlanRepayment(notStarted, periodEnd)
	assert.False(t, ok)

	pending := activeLoan(100000, 10000, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	pending.Status = loan.StatusPending
	_, ok = loan.PlanRepayment(pending, periodEnd)
	assert.False(t, ok)

	settled := activeLoan(100000, 10000, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	settled.RemainingBalance = 0
	_, ok = loan.PlanRepayment(settled, periodEnd)
	assert.False(t, ok)
}

func TestPlanAll_TotalsEligibleLoans(t *testing.T) {
	periodEnd := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	a := activeLoan(100000, 10000, start)
	b := activeLoan(5000, 8000, start)
	c := activeLoan(100000, 10000, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	plans, total := loan.PlanAll([]loan.Loan{a, b, c}, periodEnd)

	assert.Len(t, plans, 2)
	assert.Equal(t, int64(18000), total)
	assert.Equal(t, int64(5000), plans[1].Amount)
	assert.True(t, plans[1].Completed)
}
