package dto

import "github.com/google/uuid"

type CheckoutRequest struct {
	Plan string `json:"plan" validate:"required"`
}

type CheckoutResponse struct {
	OrderId     uuid.UUID `json:"order_id"`
	PlanId      string    `json:"plan_id"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	SnapToken   string    `json:"snap_token,omitempty"`
	RedirectUrl string    `json:"redirect_url,omitempty"`
}

// MidtransNotificationRequest is the subset of the Midtrans HTTP
// notification the webhook acts on.
type MidtransNotificationRequest struct {
	TransactionStatus string `json:"transaction_status"`
	OrderId           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	StatusCode        string `json:"status_code"`
	FraudStatus       string `json:"fraud_status"`
	TransactionId     string `json:"transaction_id"`
	PaymentType       string `json:"payment_type"`
}
