package test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"sportify/internal/global/database"
	"sportify/internal/model"
)

// CreateActivity 默认 10 人、25.50 元的进行中活动，opts 可覆盖字段
func CreateActivity(t *testing.T, opts ...func(a *model.Activity)) model.Activity {
	a := model.Activity{
		Title:           "周末篮球",
		Description:     "半场 3v3",
		Type:            model.TypeBasketball,
		Location:        "东区体育馆",
		Date:            "2026-11-01",
		StartTime:       "09:00",
		EndTime:         "11:00",
		MaxParticipants: 10,
		Price:           decimal.RequireFromString("25.50"),
		Status:          model.ActivityActive,
	}
	for _, opt := range opts {
		opt(&a)
	}
	require.NoError(t, database.DB.Create(&a).Error)
	return a
}

// ReloadActivity 重新读取活动，用于检查人数计数
func ReloadActivity(t *testing.T, id uint) model.Activity {
	var a model.Activity
	require.NoError(t, database.DB.First(&a, id).Error)
	return a
}
