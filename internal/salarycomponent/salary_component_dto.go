package salarycomponent

type CreateComponentRequest struct {
	Name            string `json:"name" binding:"required"`
	Type            string `json:"type" binding:"required,oneof=earning deduction"`
	CalculationType string `json:"calculation_type" binding:"omitempty,oneof=fixed percentage"`
	PercentageBps   int64  `json:"percentage_bps"`
	IsTaxable       *bool  `json:"is_taxable"`
	IsStatutory     bool   `json:"is_statutory"`
	StatutoryType   string `json:"statutory_type" binding:"omitempty,oneof=PAYE NSSF NHIF"`
}

type UpdateComponentRequest struct {
	Name          *string `json:"name"`
	PercentageBps *int64  `json:"percentage_bps"`
	IsTaxable     *bool   `json:"is_taxable"`
	IsActive      *bool   `json:"is_active"`
}

type ComponentResponse struct {
	ID              string  `json:"id"`
	CompanyID       string  `json:"company_id"`
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	CalculationType string  `json:"calculation_type"`
	PercentageBps   int64   `json:"percentage_bps"`
	IsTaxable       bool    `json:"is_taxable"`
	IsStatutory     bool    `json:"is_statutory"`
	StatutoryType   *string `json:"statutory_type,omitempty"`
	IsActive        bool    `json:"is_active"`
}

type CreateAssignmentRequest struct {
	EmployeeID    string `json:"employee_id" binding:"required,uuid"`
	Amount        int64  `json:"amount" binding:"required"`
	EffectiveFrom string `json:"effective_from" binding:"required"`
	EffectiveTo   string `json:"effective_to"`
}

type AssignmentResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	ComponentID   string  `json:"component_id"`
	Amount        int64   `json:"amount"`
	EffectiveFrom string  `json:"effective_from"`
	EffectiveTo   *string `json:"effective_to,omitempty"`
}
