package remittance

type MarkRemittedRequest struct {
	Reference string `json:"reference" binding:"required"`
}

type RemittanceResponse struct {
	ID         string  `json:"id"`
	PeriodID   string  `json:"period_id"`
	TaxType    string  `json:"tax_type"`
	Amount     int64   `json:"amount"`
	DueDate    string  `json:"due_date"`
	Status     string  `json:"status"`
	Reference  *string `json:"reference,omitempty"`
	RemittedAt *string `json:"remitted_at,omitempty"`
}
