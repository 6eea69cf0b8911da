package comment

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"sportify/internal/global/database"
	"sportify/internal/global/jwt"
	"sportify/internal/global/logger"
	"sportify/internal/global/response"
	"sportify/internal/model"
	"sportify/tools"
)

// Author 评论只公开作者用户名
type Author struct {
	ID       uint   `json:"-"`
	Username string `json:"username"`
}

func (Author) TableName() string {
	return "users"
}

type CommentView struct {
	model.Comment
	User *Author `gorm:"foreignKey:UserID" json:"user"`
}

func (CommentView) TableName() string {
	return "comments"
}

func withAuthor(db *gorm.DB) *gorm.DB {
	return db.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "username")
	})
}

type CreateCommentReq struct {
	ActivityID uint   `json:"activityId"`
	Content    string `json:"content"`
	Rating     *int   `json:"rating"`
}

// activityExists 活动不存在或查询失败时已写入响应
func activityExists(c *gin.Context, db *gorm.DB, id uint) bool {
	var count int64
	if err := db.Model(&model.Activity{}).Where("id = ?", id).Count(&count).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return false
	}
	if count == 0 {
		response.Fail(c, response.ErrNotFound.WithTips("活动不存在"))
		return false
	}
	return true
}

func CreateComment(c *gin.Context) {
	log := logger.WithContext(log, c)
	payload, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req CreateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	rating := model.DefaultRating
	if req.Rating != nil {
		rating = *req.Rating
	}
	switch {
	case req.ActivityID == 0:
		response.Fail(c, response.ErrInvalidRequest.WithTips("活动ID不能为空"))
		return
	case req.Content == "":
		response.Fail(c, response.ErrInvalidRequest.WithTips("评论内容不能为空"))
		return
	case !model.ValidRating(rating):
		response.Fail(c, response.ErrInvalidRequest.WithTips("评分需在 1 到 5 之间"))
		return
	}

	db := database.DB.WithContext(c.Request.Context())
	if !activityExists(c, db, req.ActivityID) {
		return
	}

	comment := model.Comment{
		UserID:     payload.UserID,
		ActivityID: req.ActivityID,
		Content:    req.Content,
		Rating:     rating,
	}
	if err := db.Create(&comment).Error; err != nil {
		log.Error("创建评论失败", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var view CommentView
	if err := db.Scopes(withAuthor).First(&view, comment.ID).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("发表评论", "comment_id", comment.ID, "activity_id", comment.ActivityID)
	response.Created(c, view)
}

// ListComments 某个活动下的评论，最新的在前
func ListComments(c *gin.Context) {
	id, err := tools.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("活动ID无效"))
		return
	}
	db := database.DB.WithContext(c.Request.Context())
	if !activityExists(c, db, id) {
		return
	}

	comments := make([]CommentView, 0)
	err = db.Scopes(withAuthor).
		Where("activity_id = ?", id).
		Order("created_at DESC").Order("id DESC").
		Find(&comments).Error
	if err != nil {
		log.Error("获取评论失败", "error", err, "activity_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, comments)
}

// DeleteComment 作者或管理员可删除
func DeleteComment(c *gin.Context) {
	payload, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	id, err := tools.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("评论ID无效"))
		return
	}

	db := database.DB.WithContext(c.Request.Context())
	var comment model.Comment
	err = db.First(&comment, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("评论不存在"))
		return
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if comment.UserID != payload.UserID && !payload.IsAdmin() {
		response.Fail(c, response.ErrForbidden.WithTips("只能删除自己的评论"))
		return
	}

	if err = db.Delete(&comment).Error; err != nil {
		log.Error("删除评论失败", "error", err, "comment_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("删除评论", "comment_id", id, "operator", payload.UserID)
	response.Success(c, gin.H{"message": "评论已删除"})
}
