package domain

import "time"

// Order statuses. An order starts at pending and normally walks the flow
// below until delivered; cancelled is reachable from any non-terminal state.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

var orderStatusFlow = map[string][]string{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {OrderDelivered, OrderCancelled},
	OrderDelivered: {},
	OrderCancelled: {},
}

func KnownOrderStatus(status string) bool {
	_, ok := orderStatusFlow[status]
	return ok
}

func TerminalOrderStatus(status string) bool {
	next, ok := orderStatusFlow[status]
	return ok && len(next) == 0
}

// NextOrderStatuses returns the statuses reachable from the given one.
func NextOrderStatuses(status string) []string {
	return orderStatusFlow[status]
}

// CanTransitionOrder reports whether from -> to is part of the normal flow.
// The status update endpoint overwrites regardless; this only drives the
// warning log and documentation endpoints.
func CanTransitionOrder(from, to string) bool {
	for _, next := range orderStatusFlow[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	UserID          uint        `gorm:"column:user_id;not null" json:"user_id"`
	Items           []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	TotalAmount     float64     `gorm:"column:total_amount;type:numeric" json:"total_amount"`
	Status          string      `gorm:"column:status;default:pending" json:"status"`
	DeliveryAddress string      `gorm:"column:delivery_address;type:text;not null" json:"delivery_address"`
	ContactNumber   string      `gorm:"column:contact_number;type:text" json:"contact_number"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem keeps the unit price as a snapshot taken at order time. The Food
// reference is only populated on admin reads and reflects the CURRENT catalog
// row, which may have diverged from the snapshot since.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"column:order_id;not null" json:"order_id"`
	FoodID    uint    `gorm:"column:food_id;not null" json:"food_id"`
	Food      *Food   `gorm:"foreignKey:FoodID" json:"food,omitempty"`
	Quantity  int     `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice float64 `gorm:"column:unit_price;type:numeric" json:"unit_price"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
