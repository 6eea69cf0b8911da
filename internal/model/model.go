package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// 金额以数字而非字符串输出
	decimal.MarshalJSONWithoutQuotes = true
}

// Model 所有表的公共字段，删除均为物理删除
type Model struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Model) CreateTime() int64 {
	return m.CreatedAt.UnixMilli()
}

func (m *Model) UpdateTime() int64 {
	return m.UpdatedAt.UnixMilli()
}

// Tables 需要自动迁移的模型
func Tables() []any {
	return []any{
		&User{},
		&Activity{},
		&Order{},
		&Comment{},
	}
}
