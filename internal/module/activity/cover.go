package activity

import (
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"sportify/internal/global/database"
	"sportify/internal/global/pictureBed"
	"sportify/internal/global/response"
)

const maxCoverSize = 5 << 20

var coverExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true}

type PresignCoverReq struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"contentType"`
}

// PresignCover 返回直传对象存储的地址，上传完成后前端用 PUT 写回 coverUrl
func PresignCover(c *gin.Context) {
	var req PresignCoverReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if !coverExts[strings.ToLower(filepath.Ext(req.Filename))] {
		response.Fail(c, response.ErrInvalidRequest.WithTips("仅支持 jpg、png、webp、gif 图片"))
		return
	}
	if req.ContentType != "" && !strings.HasPrefix(req.ContentType, "image/") {
		response.Fail(c, response.ErrInvalidRequest.WithTips("文件类型必须为图片"))
		return
	}

	resp, err := pb.GeneratePresignedUploadURL(c.Request.Context(), pictureBed.PresignedUploadRequest{
		Filename:    req.Filename,
		ContentType: req.ContentType,
	})
	if errors.Is(err, pictureBed.ErrS3Disabled) {
		response.Fail(c, response.ErrStorageUnavailable.WithTips("对象存储未配置"))
		return
	}
	if err != nil {
		log.Error("生成封面上传地址失败", "error", err)
		response.Fail(c, response.ErrStorageUnavailable.WithOrigin(err))
		return
	}
	response.Success(c, resp)
}

// UploadCover 表单字段 cover
func UploadCover(c *gin.Context) {
	db := database.DB.WithContext(c.Request.Context())
	activity, ok := loadActivity(c, db)
	if !ok {
		return
	}

	file, err := c.FormFile("cover")
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("请上传封面图片"))
		return
	}
	if file.Size > maxCoverSize {
		response.Fail(c, response.ErrInvalidRequest.WithTips("图片不能超过 5MB"))
		return
	}
	if !coverExts[strings.ToLower(filepath.Ext(file.Filename))] {
		response.Fail(c, response.ErrInvalidRequest.WithTips("仅支持 jpg、png、webp、gif 图片"))
		return
	}

	url, err := pb.Upload(c.Request.Context(), file)
	if err != nil {
		log.Error("保存封面失败", "error", err, "activity_id", activity.ID)
		response.Fail(c, response.ErrStorageUnavailable.WithOrigin(err))
		return
	}
	if err = db.Model(activity).Update("cover_url", url).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	activity.CoverURL = url
	log.Info("活动封面已更新", "activity_id", activity.ID, "url", url)
	response.Success(c, activity)
}
