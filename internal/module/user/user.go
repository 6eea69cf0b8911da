package user

import (
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"sportify/internal/global/database"
	"sportify/internal/global/jwt"
	"sportify/internal/global/logger"
	"sportify/internal/global/metrics"
	"sportify/internal/global/response"
	"sportify/internal/model"
	"sportify/tools"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 20
	minPasswordLen = 6
)

type RegisterRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
}

type LoginRequest struct {
	Username string `json:"username"` // 用户名或邮箱
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// optional 去掉首尾空白，空串视为未填写
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func issue(u *model.User) (*AuthResponse, error) {
	token, err := jwt.CreateToken(jwt.Payload{UserID: u.ID, Username: u.Username, Role: u.Role})
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: u}, nil
}

// Register 注册普通用户，角色不可由客户端指定
func Register(c *gin.Context) {
	log := logger.WithContext(log, c)
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = optional(req.Email)
	req.Phone = optional(req.Phone)
	switch {
	case req.Username == "" || req.Password == "":
		response.Fail(c, response.ErrInvalidRequest.WithTips("用户名和密码不能为空"))
		return
	case utf8.RuneCountInString(req.Username) < minUsernameLen || utf8.RuneCountInString(req.Username) > maxUsernameLen:
		response.Fail(c, response.ErrInvalidRequest.WithTips("用户名长度需在 3 到 20 个字符之间"))
		return
	case len(req.Password) < minPasswordLen:
		response.Fail(c, response.ErrInvalidRequest.WithTips("密码长度至少为 6 位"))
		return
	case req.Email != nil && !tools.ValidEmail(*req.Email):
		response.Fail(c, response.ErrInvalidRequest.WithTips("邮箱格式不正确"))
		return
	}

	db := database.DB.WithContext(c.Request.Context())
	var count int64
	if err := db.Model(&model.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		log.Error("查询用户名失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if count > 0 {
		response.Fail(c, response.ErrAlreadyExists.WithTips("用户名已被注册"))
		return
	}
	if req.Email != nil {
		if err := db.Model(&model.User{}).Where("email = ?", *req.Email).Count(&count).Error; err != nil {
			log.Error("查询邮箱失败", "error", err)
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
		if count > 0 {
			response.Fail(c, response.ErrAlreadyExists.WithTips("邮箱已被注册"))
			return
		}
	}

	hash, err := tools.PasswordEncrypt(req.Password)
	if err != nil {
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	user := model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
		Phone:    req.Phone,
		Role:     model.RoleUser,
	}
	if err = db.Create(&user).Error; err != nil {
		if database.IsDuplicateKey(err) {
			response.Fail(c, response.ErrAlreadyExists.WithTips("用户名或邮箱已被注册"))
			return
		}
		log.Error("创建用户失败", "error", err, "username", req.Username)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	resp, err := issue(&user)
	if err != nil {
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	log.Info("用户注册成功", "user_id", user.ID, "username", user.Username)
	response.Created(c, resp)
}

// Login 支持用户名或邮箱登录，用户不存在与密码错误返回同一错误
func Login(c *gin.Context) {
	log := logger.WithContext(log, c)
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	identifier := strings.TrimSpace(req.Username)
	if identifier == "" {
		identifier = strings.TrimSpace(req.Email)
	}
	if identifier == "" || req.Password == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("用户名和密码不能为空"))
		return
	}

	ctx := c.Request.Context()
	if guard.Locked(ctx, identifier) {
		metrics.LoginTotal.WithLabelValues("locked").Inc()
		response.Fail(c, response.ErrTooManyRequests)
		return
	}

	column := "username"
	if strings.Contains(identifier, "@") {
		column = "email"
	}
	var user model.User
	err := database.DB.WithContext(ctx).Where(column+" = ?", identifier).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
	case err != nil:
		log.Error("查询用户失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if err != nil || !tools.PasswordCompare(req.Password, user.Password) {
		guard.Fail(ctx, identifier)
		metrics.LoginTotal.WithLabelValues("failed").Inc()
		log.Warn("登录失败", "identifier", identifier)
		response.Fail(c, response.ErrBadCredentials)
		return
	}

	guard.Reset(ctx, identifier)
	resp, err := issue(&user)
	if err != nil {
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	metrics.LoginTotal.WithLabelValues("success").Inc()
	log.Info("用户登录成功", "user_id", user.ID, "role", user.Role)
	response.Success(c, resp)
}

// currentUser 读取令牌对应的用户，失败时已写入响应
func currentUser(c *gin.Context) (*model.User, bool) {
	payload, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return nil, false
	}
	var user model.User
	err := database.DB.WithContext(c.Request.Context()).First(&user, payload.UserID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
		return nil, false
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return nil, false
	}
	return &user, true
}

func Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	response.Success(c, user)
}

type UpdateContactRequest struct {
	Email *string `json:"email"` // 传空串表示清除
	Phone *string `json:"phone"`
}

func UpdateContact(c *gin.Context) {
	var req UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := database.DB.WithContext(c.Request.Context())
	updates := map[string]any{}
	if req.Email != nil {
		email := optional(req.Email)
		if email != nil {
			if !tools.ValidEmail(*email) {
				response.Fail(c, response.ErrInvalidRequest.WithTips("邮箱格式不正确"))
				return
			}
			var count int64
			if err := db.Model(&model.User{}).Where("email = ? AND id <> ?", *email, user.ID).Count(&count).Error; err != nil {
				response.Fail(c, response.ErrDatabase.WithOrigin(err))
				return
			}
			if count > 0 {
				response.Fail(c, response.ErrAlreadyExists.WithTips("邮箱已被注册"))
				return
			}
		}
		updates["email"] = email
	}
	if req.Phone != nil {
		updates["phone"] = optional(req.Phone)
	}
	if len(updates) == 0 {
		response.Success(c, user)
		return
	}

	if err := db.Model(user).Updates(updates).Error; err != nil {
		if database.IsDuplicateKey(err) {
			response.Fail(c, response.ErrAlreadyExists.WithTips("邮箱已被注册"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if err := db.First(user, user.ID).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, user)
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("原密码和新密码不能为空"))
		return
	}
	if len(req.NewPassword) < minPasswordLen {
		response.Fail(c, response.ErrInvalidRequest.WithTips("密码长度至少为 6 位"))
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !tools.PasswordCompare(req.OldPassword, user.Password) {
		response.Fail(c, response.ErrInvalidRequest.WithTips("原密码错误"))
		return
	}

	hash, err := tools.PasswordEncrypt(req.NewPassword)
	if err != nil {
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	if err = database.DB.WithContext(c.Request.Context()).Model(user).Update("password", hash).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("用户修改密码", "user_id", user.ID)
	response.Success(c, gin.H{"message": "密码已更新"})
}
