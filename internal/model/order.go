package model

import "github.com/shopspring/decimal"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPaid, OrderCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PayOnline PaymentMethod = "online"
	PayCash   PaymentMethod = "cash"
	PayWechat PaymentMethod = "wechat"
	PayAlipay PaymentMethod = "alipay"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PayOnline, PayCash, PayWechat, PayAlipay:
		return true
	}
	return false
}

type Order struct {
	Model
	UserID        uint            `gorm:"column:user_id;not null;uniqueIndex:idx_order_user_activity;index" json:"userId"`
	ActivityID    uint            `gorm:"column:activity_id;not null;uniqueIndex:idx_order_user_activity;index" json:"activityId"`
	Quantity      int             `gorm:"column:quantity;not null;default:1" json:"quantity"`
	TotalPrice    decimal.Decimal `gorm:"column:total_price;type:decimal(10,2);not null" json:"totalPrice"`
	PaymentMethod *PaymentMethod  `gorm:"column:payment_method;type:varchar(10)" json:"paymentMethod"`
	Status        OrderStatus     `gorm:"column:status;type:varchar(10);not null;default:pending;index" json:"status"`
}

func (Order) TableName() string {
	return "orders"
}
