package activity

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"sportify/internal/global/database"
	"sportify/internal/global/response"
	"sportify/internal/model"
	"sportify/tools"
)

// ActivityCreateReq 人数与状态由服务端维护
type ActivityCreateReq struct {
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Type            model.ActivityType `json:"type"`
	Location        string             `json:"location"`
	Date            string             `json:"date"`
	StartTime       string             `json:"startTime"`
	EndTime         string             `json:"endTime"`
	MaxParticipants int                `json:"maxParticipants"`
	Price           *decimal.Decimal   `json:"price"`
	CoverURL        string             `json:"coverUrl"`
}

// ActivityUpdateReq 指针字段支持部分更新，currentParticipants 不可修改
type ActivityUpdateReq struct {
	Title           *string               `json:"title"`
	Description     *string               `json:"description"`
	Type            *model.ActivityType   `json:"type"`
	Location        *string               `json:"location"`
	Date            *string               `json:"date"`
	StartTime       *string               `json:"startTime"`
	EndTime         *string               `json:"endTime"`
	MaxParticipants *int                  `json:"maxParticipants"`
	Price           *decimal.Decimal      `json:"price"`
	Status          *model.ActivityStatus `json:"status"`
	CoverURL        *string               `json:"coverUrl"`
}

type ListActivitiesReq struct {
	Type   string `form:"type"`
	Status string `form:"status"`
}

// loadActivity 失败时已写入响应
func loadActivity(c *gin.Context, db *gorm.DB) (*model.Activity, bool) {
	id, err := tools.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("活动ID无效"))
		return nil, false
	}
	var activity model.Activity
	err = db.First(&activity, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("活动不存在"))
		return nil, false
	case err != nil:
		log.Error("查询活动失败", "error", err, "activity_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return nil, false
	}
	return &activity, true
}

// ListActivities 按日期、开始时间升序
func ListActivities(c *gin.Context) {
	var req ListActivitiesReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	query := database.DB.WithContext(c.Request.Context()).Model(&model.Activity{})
	if req.Type != "" {
		query = query.Where("type = ?", req.Type)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	activities := make([]model.Activity, 0)
	if err := query.Order("date ASC").Order("start_time ASC").Order("id ASC").Find(&activities).Error; err != nil {
		log.Error("获取活动列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, activities)
}

func GetActivity(c *gin.Context) {
	activity, ok := loadActivity(c, database.DB.WithContext(c.Request.Context()))
	if !ok {
		return
	}
	response.Success(c, activity)
}

func CreateActivity(c *gin.Context) {
	var req ActivityCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.Price == nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("价格不能为空"))
		return
	}

	activity := model.Activity{
		Title:           strings.TrimSpace(req.Title),
		Description:     strings.TrimSpace(req.Description),
		Type:            req.Type,
		Location:        strings.TrimSpace(req.Location),
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		MaxParticipants: req.MaxParticipants,
		Price:           *req.Price,
		Status:          model.ActivityActive,
		CoverURL:        strings.TrimSpace(req.CoverURL),
	}
	if problems := activity.Validate(); len(problems) > 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips(problems...))
		return
	}

	if err := database.DB.WithContext(c.Request.Context()).Create(&activity).Error; err != nil {
		log.Error("创建活动失败", "error", err, "title", activity.Title)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("活动创建成功", "activity_id", activity.ID, "title", activity.Title)
	response.Created(c, activity)
}

// apply 把补丁写到 a 上，返回需要更新的列
func (req *ActivityUpdateReq) apply(a *model.Activity) map[string]any {
	cols := map[string]any{}
	set := func(col string, v any) { cols[col] = v }
	if req.Title != nil {
		a.Title = strings.TrimSpace(*req.Title)
		set("title", a.Title)
	}
	if req.Description != nil {
		a.Description = strings.TrimSpace(*req.Description)
		set("description", a.Description)
	}
	if req.Type != nil {
		a.Type = *req.Type
		set("type", a.Type)
	}
	if req.Location != nil {
		a.Location = strings.TrimSpace(*req.Location)
		set("location", a.Location)
	}
	if req.Date != nil {
		a.Date = *req.Date
		set("date", a.Date)
	}
	if req.StartTime != nil {
		a.StartTime = *req.StartTime
		set("start_time", a.StartTime)
	}
	if req.EndTime != nil {
		a.EndTime = *req.EndTime
		set("end_time", a.EndTime)
	}
	if req.MaxParticipants != nil {
		a.MaxParticipants = *req.MaxParticipants
		set("max_participants", a.MaxParticipants)
	}
	if req.Price != nil {
		a.Price = *req.Price
		set("price", a.Price)
	}
	if req.Status != nil {
		a.Status = *req.Status
		set("status", a.Status)
	}
	if req.CoverURL != nil {
		a.CoverURL = strings.TrimSpace(*req.CoverURL)
		set("cover_url", a.CoverURL)
	}
	return cols
}

// UpdateActivity 部分更新后整体校验，上限不能低于实时报名人数
func UpdateActivity(c *gin.Context) {
	var req ActivityUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	db := database.DB.WithContext(c.Request.Context())
	activity, ok := loadActivity(c, db)
	if !ok {
		return
	}

	cols := req.apply(activity)
	if problems := activity.Validate(); len(problems) > 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips(problems...))
		return
	}
	if len(cols) == 0 {
		response.Success(c, activity)
		return
	}
	cols["updated_at"] = time.Now()

	result := db.Model(&model.Activity{}).
		Where("id = ? AND current_participants <= ?", activity.ID, activity.MaxParticipants).
		Updates(cols)
	if result.Error != nil {
		log.Error("更新活动失败", "error", result.Error, "activity_id", activity.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(result.Error))
		return
	}
	if result.RowsAffected == 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("最大人数不能小于当前参与人数"))
		return
	}

	if err := db.First(activity, activity.ID).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("活动更新成功", "activity_id", activity.ID)
	response.Success(c, activity)
}

// CloseActivity 关闭报名，已有订单不受影响
func CloseActivity(c *gin.Context) {
	db := database.DB.WithContext(c.Request.Context())
	activity, ok := loadActivity(c, db)
	if !ok {
		return
	}
	if err := db.Model(activity).Update("status", model.ActivityClosed).Error; err != nil {
		log.Error("关闭活动失败", "error", err, "activity_id", activity.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	activity.Status = model.ActivityClosed
	log.Info("活动已关闭", "activity_id", activity.ID)
	response.Success(c, gin.H{
		"message":  "活动已关闭",
		"activity": activity,
	})
}
