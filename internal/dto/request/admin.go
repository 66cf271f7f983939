package request

type BlockDateRequest struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type ServiceRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=200"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Duration string  `json:"duration" validate:"required,max=100"`
	Active   bool    `json:"active"`
	Featured bool    `json:"featured"`
}
