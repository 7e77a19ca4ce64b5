package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order status constants
const (
	OrderStatusPending         = "Pending"
	OrderStatusAwaitingPayment = "Awaiting Payment"
	OrderStatusPaid            = "Paid"
	OrderStatusShipped         = "Shipped"
	OrderStatusCompleted       = "Completed"
	OrderStatusCancelled       = "Cancelled"
	OrderStatusExpired         = "Expired"
)

// Payment status constants. PaymentStatus is the authoritative signal for
// payment detection; Status is the coarser display label.
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Payment method constants
const (
	PaymentMethodCOD          = "cod"
	PaymentMethodBankTransfer = "bank_transfer"
)

type Order struct {
	ID               string      `gorm:"primaryKey;size:36" json:"id"`
	UserID           uint        `json:"user_id"`
	User             User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Subtotal         float64     `json:"subtotal"`
	ShippingFee      float64     `json:"shipping_fee"`
	Total            float64     `json:"total"`
	PaymentMethod    string      `json:"payment_method"`
	PaymentStatus    string      `json:"payment_status"`
	PaymentDeadline  *time.Time  `json:"payment_deadline,omitempty"`
	Status           string      `json:"status"`
	ShippingName     string      `json:"shipping_name"`
	ShippingPhone    string      `json:"shipping_phone"`
	ShippingAddress  string      `json:"shipping_address"`
	ShippingWard     string      `json:"shipping_ward"`
	ShippingDistrict string      `json:"shipping_district"`
	ShippingProvince string      `json:"shipping_province"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
	OrderItems       []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   string  `gorm:"size:36" json:"order_id"`
	ProductID uint    `json:"product_id"`
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
}

// BeforeCreate assigns an opaque order id. The id doubles as the bank
// transfer memo, so it must exist before the order is ever rendered.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

// IsPaid reports whether the order has been paid. Anything other than an
// explicit "paid" counts as not-yet-paid.
func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentStatusPaid
}
