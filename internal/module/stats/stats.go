package stats

import (
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"sportify/internal/global/database"
	"sportify/internal/global/response"
	"sportify/internal/model"
	"sportify/tools"
)

type OrderCount struct {
	Pending   int64 `json:"pending"`
	Paid      int64 `json:"paid"`
	Cancelled int64 `json:"cancelled"`
}

type BriefResponse struct {
	ActivityID          uint            `json:"activityId"`
	Title               string          `json:"title"`
	Status              string          `json:"status"`
	MaxParticipants     int             `json:"maxParticipants"`
	CurrentParticipants int             `json:"currentParticipants"`
	Orders              OrderCount      `json:"orders"`
	SeatsBooked         int64           `json:"seatsBooked"` // 全部订单的人数合计
	Revenue             decimal.Decimal `json:"revenue"`     // 已支付订单金额
	Comments            int64           `json:"comments"`
	AverageRating       float64         `json:"averageRating"`
}

// Brief 单个活动的报名、收入与评分概况
func Brief(c *gin.Context) {
	id, err := tools.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("活动ID无效"))
		return
	}
	db := database.DB.WithContext(c.Request.Context())

	var activity model.Activity
	err = db.First(&activity, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("活动不存在"))
		return
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	rows, err := selectOrderStats(db, id)
	if err != nil {
		log.Error("数据库 统计订单失败", "error", err, "activity_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	rating, err := selectRating(db, id)
	if err != nil {
		log.Error("数据库 统计评分失败", "error", err, "activity_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	resp := BriefResponse{
		ActivityID:          activity.ID,
		Title:               activity.Title,
		Status:              string(activity.Status),
		MaxParticipants:     activity.MaxParticipants,
		CurrentParticipants: activity.CurrentParticipants,
		Revenue:             decimal.Zero,
		Comments:            rating.Count,
		AverageRating:       decimal.NewFromFloat(rating.Average).Round(2).InexactFloat64(),
	}
	for _, row := range rows {
		switch row.Status {
		case model.OrderPending:
			resp.Orders.Pending = row.Count
		case model.OrderPaid:
			resp.Orders.Paid = row.Count
			resp.Revenue = row.Amount.Round(2)
		case model.OrderCancelled:
			resp.Orders.Cancelled = row.Count
		}
		resp.SeatsBooked += row.Seats
	}
	response.Success(c, resp)
}

// Rank 按当前报名人数排名，人数相同名次并列
func Rank(c *gin.Context) {
	offset, limit := tools.GetPage(c)
	result, total, err := selectRank(database.DB.WithContext(c.Request.Context()), offset, limit)
	if err != nil {
		log.Error("数据库 查询活动排名失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{
		"total": total,
		"list":  result,
	})
}
