package ratetable

type CreateRateTableRequest struct {
	Country       string     `json:"country" binding:"required,len=2"`
	RateType      string     `json:"rate_type" binding:"required,oneof=PAYE NSSF NHIF"`
	EffectiveFrom string     `json:"effective_from" binding:"required"`
	EffectiveTo   string     `json:"effective_to"`
	Config        RateConfig `json:"config" binding:"required"`
}

type RateTableResponse struct {
	ID            string     `json:"id"`
	Country       string     `json:"country"`
	RateType      string     `json:"rate_type"`
	EffectiveFrom string     `json:"effective_from"`
	EffectiveTo   *string    `json:"effective_to,omitempty"`
	Config        RateConfig `json:"config"`
}
