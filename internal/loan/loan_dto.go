package loan

type CreateLoanRequest struct {
	EmployeeID         string `json:"employee_id" binding:"required,uuid"`
	Principal          int64  `json:"principal" binding:"required"`
	MonthlyDeduction   int64  `json:"monthly_deduction" binding:"required"`
	RepaymentStartDate string `json:"repayment_start_date" binding:"required"`
	Activate           bool   `json:"activate"`
}

type CreateRepaymentRequest struct {
	Amount        int64  `json:"amount" binding:"required"`
	RepaymentDate string `json:"repayment_date"`
}

type LoanResponse struct {
	ID                 string `json:"id"`
	CompanyID          string `json:"company_id"`
	EmployeeID         string `json:"employee_id"`
	Principal          int64  `json:"principal"`
	MonthlyDeduction   int64  `json:"monthly_deduction"`
	RemainingBalance   int64  `json:"remaining_balance"`
	TotalPaid          int64  `json:"total_paid"`
	RepaymentStartDate string `json:"repayment_start_date"`
	Status             string `json:"status"`
}

type RepaymentResponse struct {
	ID            string  `json:"id"`
	LoanID        string  `json:"loan_id"`
	PayrollID     *string `json:"payroll_id,omitempty"`
	Amount        int64   `json:"amount"`
	RepaymentDate string  `json:"repayment_date"`
	PaymentType   string  `json:"payment_type"`
	BalanceAfter  int64   `json:"balance_after"`
}
