package transport

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Language string `json:"language"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SubmitApplicationRequest struct {
	ApplicationType string   `json:"application_type"`
	PlotID          string   `json:"plot_id"`
	Documents       []string `json:"documents"`
	Reason          string   `json:"reason"`
}

type UpdateStatusRequest struct {
	Status  string `json:"status"`
	Remarks string `json:"remarks"`
}

type PaymentRequest struct {
	Amount float64 `json:"amount"`
}
