package order

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"sportify/internal/global/database"
	"sportify/internal/global/jwt"
	"sportify/internal/global/logger"
	"sportify/internal/global/metrics"
	"sportify/internal/global/response"
	"sportify/internal/model"
	"sportify/tools"
)

type CreateOrderReq struct {
	ActivityID    uint                 `json:"activityId"`
	Quantity      *int                 `json:"quantity"` // 默认 1
	PaymentMethod *model.PaymentMethod `json:"paymentMethod"`
}

type UpdateStatusReq struct {
	Status model.OrderStatus `json:"status"`
}

// fail 业务错误原样返回，其余按数据库错误处理
func fail(c *gin.Context, err error) {
	var e *response.Error
	if errors.As(err, &e) {
		response.Fail(c, e)
		return
	}
	response.Fail(c, response.ErrDatabase.WithOrigin(err))
}

func countOrder(result string) {
	metrics.OrderTotal.WithLabelValues(result).Inc()
}

// CreateOrder 报名活动，名额在同一事务内以条件更新占用
func CreateOrder(c *gin.Context) {
	log := logger.WithContext(log, c)
	payload, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if req.PaymentMethod != nil && strings.TrimSpace(string(*req.PaymentMethod)) == "" {
		req.PaymentMethod = nil
	}
	switch {
	case req.ActivityID == 0:
		response.Fail(c, response.ErrInvalidRequest.WithTips("活动ID不能为空"))
		return
	case quantity < 1:
		response.Fail(c, response.ErrInvalidRequest.WithTips("报名人数至少为 1"))
		return
	case req.PaymentMethod != nil && !req.PaymentMethod.Valid():
		response.Fail(c, response.ErrInvalidRequest.WithTips("支付方式无效"))
		return
	}

	db := database.DB.WithContext(c.Request.Context())
	var activity model.Activity
	err := db.First(&activity, req.ActivityID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("活动不存在"))
		return
	case err != nil:
		log.Error("查询活动失败", "error", err, "activity_id", req.ActivityID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var count int64
	if err = db.Model(&model.Order{}).
		Where("user_id = ? AND activity_id = ?", payload.UserID, activity.ID).
		Count(&count).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if count > 0 {
		countOrder("duplicate")
		response.Fail(c, response.ErrAlreadyExists.WithTips("您已报名该活动"))
		return
	}
	if activity.IsFull(quantity) {
		countOrder("capacity")
		response.Fail(c, response.ErrCapacityFull)
		return
	}

	order := model.Order{
		UserID:        payload.UserID,
		ActivityID:    activity.ID,
		Quantity:      quantity,
		TotalPrice:    activity.Price.Mul(decimal.NewFromInt(int64(quantity))).Round(2),
		PaymentMethod: req.PaymentMethod,
		Status:        model.OrderPending,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			if database.IsDuplicateKey(err) {
				return response.ErrAlreadyExists.WithTips("您已报名该活动")
			}
			return err
		}
		result := tx.Model(&model.Activity{}).
			Where("id = ? AND current_participants + ? <= max_participants", activity.ID, quantity).
			Updates(map[string]any{
				"current_participants": gorm.Expr("current_participants + ?", quantity),
				"updated_at":           time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return response.ErrCapacityFull
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, response.ErrCapacityFull):
			countOrder("capacity")
		case errors.Is(err, response.ErrAlreadyExists):
			countOrder("duplicate")
		default:
			countOrder("error")
			log.Error("创建订单失败", "error", err, "user_id", payload.UserID, "activity_id", activity.ID)
		}
		fail(c, err)
		return
	}

	countOrder("created")
	log.Info("订单创建成功", "order_id", order.ID, "user_id", payload.UserID, "activity_id", activity.ID, "quantity", quantity)
	view, err := loadView(db, order.ID)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Created(c, view)
}

// releaseSeats 归还名额，不会减到负数
func releaseSeats(tx *gorm.DB, activityID uint, quantity int) error {
	err := tx.Model(&model.Activity{}).
		Where("id = ?", activityID).
		Updates(map[string]any{
			"current_participants": gorm.Expr(
				"CASE WHEN current_participants > ? THEN current_participants - ? ELSE 0 END", quantity, quantity),
			"updated_at": time.Now(),
		}).Error
	if err == nil {
		metrics.SeatsReleased.Add(float64(quantity))
	}
	return err
}

// loadOwnedOrder 只有下单人或管理员可以操作，失败时已写入响应
func loadOwnedOrder(c *gin.Context, db *gorm.DB) (*model.Order, bool) {
	payload, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return nil, false
	}
	id, err := tools.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("订单ID无效"))
		return nil, false
	}

	var order model.Order
	err = db.First(&order, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("订单不存在"))
		return nil, false
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return nil, false
	}
	if order.UserID != payload.UserID && !payload.IsAdmin() {
		response.Fail(c, response.ErrForbidden.WithTips("无权操作该订单"))
		return nil, false
	}
	return &order, true
}

// CancelOrder 删除订单并按订单人数归还名额，与订单状态无关
func CancelOrder(c *gin.Context) {
	db := database.DB.WithContext(c.Request.Context())
	order, ok := loadOwnedOrder(c, db)
	if !ok {
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Order{}, order.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return response.ErrNotFound.WithTips("订单不存在")
		}
		return releaseSeats(tx, order.ActivityID, order.Quantity)
	})
	if err != nil {
		log.Error("取消订单失败", "error", err, "order_id", order.ID)
		fail(c, err)
		return
	}
	log.Info("订单已取消", "order_id", order.ID, "activity_id", order.ActivityID)
	response.Success(c, gin.H{
		"message": "订单已取消",
		"orderId": order.ID,
	})
}

// UpdateOrderStatus 状态可在三个取值之间任意设置，不影响活动名额
func UpdateOrderStatus(c *gin.Context) {
	var req UpdateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if !req.Status.Valid() {
		response.Fail(c, response.ErrInvalidRequest.WithTips("订单状态无效"))
		return
	}
	db := database.DB.WithContext(c.Request.Context())
	order, ok := loadOwnedOrder(c, db)
	if !ok {
		return
	}

	if order.Status != req.Status {
		err := db.Model(&model.Order{}).
			Where("id = ?", order.ID).
			Updates(map[string]any{"status": req.Status, "updated_at": time.Now()}).Error
		if err != nil {
			log.Error("更新订单状态失败", "error", err, "order_id", order.ID)
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
		log.Info("订单状态已更新", "order_id", order.ID, "from", order.Status, "to", req.Status)
	}

	view, err := loadView(db, order.ID)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{
		"message": "订单状态已更新",
		"order":   view,
	})
}
