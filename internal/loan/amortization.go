package loan

import "time"

// RepaymentPlan is the computed-but-uncommitted deduction for one loan in
// one period. Planning is pure so a calculation-only preview never touches
// loan balances; the orchestrator commits plans after persisting payrolls.
type RepaymentPlan struct {
	LoanID       string
	Amount       int64
	BalanceAfter int64
	Completed    bool
}

// PlanRepayment computes the period deduction for one loan:
// min(monthlyDeduction, remainingBalance). The second return reports
// eligibility: active, repayment started by period end, balance left.
func PlanRepayment(l Loan, periodEnd time.Time) (RepaymentPlan, bool) {
	if l.Status != StatusActive {
		return RepaymentPlan{}, false
	}
	if l.RepaymentStartDate.After(periodEnd) {
		return RepaymentPlan{}, false
	}
	if l.RemainingBalance <= 0 {
		return RepaymentPlan{}, false
	}

	amount := l.MonthlyDeduction
	if amount > l.RemainingBalance {
		amount = l.RemainingBalance
	}

	balanceAfter := l.RemainingBalance - amount
	return RepaymentPlan{
		LoanID:       l.ID.String(),
		Amount:       amount,
		BalanceAfter: balanceAfter,
		Completed:    balanceAfter <= 0,
	}, true
}

// PlanAll plans every eligible loan and totals the deduction
func PlanAll(loans []Loan, periodEnd time.Time) ([]RepaymentPlan, int64) {
	var plans []RepaymentPlan
	var total int64
	for _, l := range loans {
		plan, ok := PlanRepayment(l, periodEnd)
		if !ok {
			continue
		}
		plans = append(plans, plan)
		total += plan.Amount
	}
	return plans, total
}
