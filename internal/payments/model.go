package payments

import "time"

// Record is a completed (simulated) plan purchase. Card data is never kept.
type Record struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	PlanID    string    `json:"planId"`
	PlanName  string    `json:"planName"`
	Amount    string    `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

// Checkout is the purchase form.
type Checkout struct {
	PlanID     string `json:"planId"`
	CardName   string `json:"cardName"`
	CardNumber string `json:"cardNumber"`
	CardExpiry string `json:"cardExpiry"`
	CardCVC    string `json:"cardCvc"`
}
