package user

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"sportify/config"
	"sportify/internal/global/database"
	"sportify/internal/model"
	"sportify/tools"
)

// SeedAdmin 配置了管理员账号且库中不存在时创建
func SeedAdmin(admin config.Admin) error {
	username := strings.TrimSpace(admin.Username)
	if username == "" || admin.Password == "" {
		return nil
	}

	var existing model.User
	err := database.DB.Where("username = ?", username).First(&existing).Error
	if err == nil {
		if !existing.Role.IsAdmin() {
			log.Warn("管理员用户名已被普通用户占用", "username", username)
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := tools.PasswordEncrypt(admin.Password)
	if err != nil {
		return err
	}
	user := model.User{Username: username, Password: hash, Role: model.RoleAdmin}
	if email := strings.TrimSpace(admin.Email); email != "" {
		user.Email = &email
	}
	if err = database.DB.Create(&user).Error; err != nil {
		return errors.Wrap(err, "创建管理员失败")
	}
	log.Info("已创建管理员账号", "username", username)
	return nil
}
