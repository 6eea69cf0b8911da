package stats

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"sportify/internal/model"
)

type statusRow struct {
	Status model.OrderStatus
	Count  int64
	Seats  int64
	Amount decimal.Decimal
}

func selectOrderStats(db *gorm.DB, activityID uint) ([]statusRow, error) {
	var rows []statusRow
	err := db.Model(&model.Order{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(quantity), 0) AS seats, COALESCE(SUM(total_price), 0) AS amount").
		Where("activity_id = ?", activityID).
		Group("status").
		Scan(&rows).Error
	return rows, err
}

type ratingRow struct {
	Count   int64
	Average float64
}

func selectRating(db *gorm.DB, activityID uint) (ratingRow, error) {
	var row ratingRow
	err := db.Model(&model.Comment{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
		Where("activity_id = ?", activityID).
		Scan(&row).Error
	return row, err
}

type rank struct {
	Rank                uint   `gorm:"column:ranks" json:"rank"`
	ID                  uint   `json:"activityId"`
	Title               string `json:"title"`
	Date                string `json:"date"`
	MaxParticipants     int    `json:"maxParticipants"`
	CurrentParticipants int    `json:"currentParticipants"`
}

func selectRank(db *gorm.DB, offset, limit int) ([]rank, int64, error) {
	ranks := make([]rank, 0)
	var total int64
	if err := db.Model(&model.Activity{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.Model(&model.Activity{}).
		Select(`
            id, title, date, max_participants, current_participants,
            RANK() OVER (ORDER BY current_participants DESC) AS ranks
        `).
		Order("ranks ASC").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Scan(&ranks).Error
	return ranks, total, err
}
