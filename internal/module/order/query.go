package order

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"sportify/internal/global/database"
	"sportify/internal/global/jwt"
	"sportify/internal/global/response"
	"sportify/internal/model"
)

// MyOrders 当前用户的订单，最新的在前
func MyOrders(c *gin.Context) {
	payload, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	orders := make([]OrderView, 0)
	err := database.DB.WithContext(c.Request.Context()).
		Scopes(withActivity, newest).
		Where("user_id = ?", payload.UserID).
		Find(&orders).Error
	if err != nil {
		log.Error("获取我的订单失败", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, orders)
}

type ListOrdersReq struct {
	ActivityID uint              `form:"activityId"`
	UserID     uint              `form:"userId"`
	Status     model.OrderStatus `form:"status"`
}

func (req *ListOrdersReq) scope(db *gorm.DB) *gorm.DB {
	if req.ActivityID != 0 {
		db = db.Where("activity_id = ?", req.ActivityID)
	}
	if req.UserID != 0 {
		db = db.Where("user_id = ?", req.UserID)
	}
	if req.Status != "" {
		db = db.Where("status = ?", req.Status)
	}
	return db
}

// bindFilter 失败时已写入响应
func bindFilter(c *gin.Context) (*ListOrdersReq, bool) {
	var req ListOrdersReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return nil, false
	}
	if req.Status != "" && !req.Status.Valid() {
		response.Fail(c, response.ErrInvalidRequest.WithTips("订单状态无效"))
		return nil, false
	}
	return &req, true
}

func findOrders(db *gorm.DB, req *ListOrdersReq) ([]OrderView, error) {
	orders := make([]OrderView, 0)
	err := db.Scopes(withActivity, withUser, newest, req.scope).Find(&orders).Error
	return orders, err
}

// ListOrders 管理员查看全部订单，可按活动、用户、状态筛选
func ListOrders(c *gin.Context) {
	req, ok := bindFilter(c)
	if !ok {
		return
	}
	orders, err := findOrders(database.DB.WithContext(c.Request.Context()), req)
	if err != nil {
		log.Error("获取订单列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, orders)
}
