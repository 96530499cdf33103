package domain

import "time"

const (
	PaymentMethodCard = "card"
	PaymentMethodCash = "cash"
	PaymentMethodUPI  = "upi"

	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

type Payment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrderID        uint      `gorm:"column:order_id;not null" json:"order_id"`
	UserID         uint      `gorm:"column:user_id;not null" json:"user_id"`
	Amount         float64   `gorm:"column:amount;type:numeric" json:"amount"`
	Method         string    `gorm:"column:method" json:"method"`
	Status         string    `gorm:"column:status;default:pending" json:"status"`
	TransactionID  string    `gorm:"column:transaction_id" json:"transaction_id,omitempty"`
	GatewayOrderID string    `gorm:"column:gateway_order_id" json:"gateway_order_id,omitempty"`
	Receipt        string    `gorm:"column:receipt" json:"receipt,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Payment) TableName() string {
	return "payments"
}

// PaymentIntent pairs the pending payment row with the gateway order the
// client completes the payment against. Amount is in paise, as returned by
// the gateway.
type PaymentIntent struct {
	Payment        Payment `json:"payment"`
	GatewayOrderID string  `json:"gateway_order_id"`
	Amount         int64   `json:"amount"`
	Currency       string  `json:"currency"`
}
