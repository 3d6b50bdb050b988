package payroll

// RunSummary is what a period run returns to the caller. TotalEmployees
// counts only successfully processed employees; skipped employees appear
// in SkippedCount alone.
type RunSummary struct {
	PeriodID        string `json:"period_id"`
	PeriodStatus    string `json:"period_status"`
	TotalEmployees  int    `json:"total_employees"`
	ProcessedCount  int    `json:"processed_count"`
	SkippedCount    int    `json:"skipped_count"`
	TotalGross      int64  `json:"total_gross"`
	TotalDeductions int64  `json:"total_deductions"`
	TotalNet        int64  `json:"total_net"`
}

type PayrollResponse struct {
	ID                 string  `json:"id"`
	PeriodID           string  `json:"period_id"`
	EmployeeID         string  `json:"employee_id"`
	GrossPay           int64   `json:"gross_pay"`
	TotalEarnings      int64   `json:"total_earnings"`
	TaxableIncome      int64   `json:"taxable_income"`
	PayeAmount         int64   `json:"paye_amount"`
	NssfAmount         int64   `json:"nssf_amount"`
	NhifAmount         int64   `json:"nhif_amount"`
	InternalDeductions int64   `json:"internal_deductions"`
	LoanDeduction      int64   `json:"loan_deduction"`
	TotalDeductions    int64   `json:"total_deductions"`
	NetPay             int64   `json:"net_pay"`
	Status             string  `json:"status"`
	ErrorMessage       *string `json:"error_message,omitempty"`
}

type LineItemResponse struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Amount    int64  `json:"amount"`
	IsTaxable bool   `json:"is_taxable"`
}

type BreakdownResponse struct {
	Payroll   PayrollResponse    `json:"payroll"`
	LineItems []LineItemResponse `json:"line_items"`
}
