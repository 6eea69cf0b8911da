package order

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"sportify/internal/model"
)

// ActivityBrief 订单里携带的活动摘要
type ActivityBrief struct {
	ID       uint                 `json:"id"`
	Title    string               `json:"title"`
	Date     string               `json:"date"`
	Location string               `json:"location"`
	Price    decimal.Decimal      `json:"price"`
	Status   model.ActivityStatus `json:"status"`
}

func (ActivityBrief) TableName() string {
	return "activities"
}

// UserBrief 管理员查看订单时的下单人信息
type UserBrief struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
}

func (UserBrief) TableName() string {
	return "users"
}

type OrderView struct {
	model.Order
	Activity *ActivityBrief `gorm:"foreignKey:ActivityID" json:"activity"`
	User     *UserBrief     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (OrderView) TableName() string {
	return "orders"
}

func withActivity(db *gorm.DB) *gorm.DB {
	return db.Preload("Activity", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "title", "date", "location", "price", "status")
	})
}

func withUser(db *gorm.DB) *gorm.DB {
	return db.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "username", "email", "phone")
	})
}

func newest(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}

func loadView(db *gorm.DB, id uint) (*OrderView, error) {
	var view OrderView
	if err := db.Scopes(withActivity).First(&view, id).Error; err != nil {
		return nil, err
	}
	return &view, nil
}
