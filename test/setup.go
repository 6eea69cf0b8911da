package test

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"sportify/config"
	"sportify/internal/global/database"
	"sportify/internal/global/jwt"
	"sportify/internal/global/middleware"
	"sportify/internal/model"
	"sportify/tools"
)

// Config 测试用配置，sqlite 内存库
func Config(t *testing.T) *config.Config {
	return &config.Config{
		Prefix:   "api",
		Mode:     config.ModeDebug,
		Database: config.Database{Driver: config.DriverSQLite, SQLitePath: ":memory:"},
		JWT:      config.JWT{AccessSecret: "test-secret", AccessExpire: 3600},
		Auth:     config.Auth{MaxLoginAttempts: 3, LockoutSeconds: 60},
		Storage:  config.Storage{Home: t.TempDir(), BaseURL: "/static"},
	}
}

// SetupDB 每个测试一个全新的内存库，并替换 database.DB
func SetupDB(t *testing.T) *gorm.DB {
	gin.SetMode(gin.TestMode)
	cfg := Config(t)
	config.Set(cfg)

	db, err := database.Open(cfg)
	require.NoError(t, err)
	database.DB = db
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewRouter 挂好 Recovery 的测试路由，mount 在 /api 下注册路由
func NewRouter(mount func(r *gin.RouterGroup)) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Recovery())
	mount(r.Group("/api"))
	return r
}

func CreateUser(t *testing.T, username string, role model.Role) model.User {
	hash, err := tools.PasswordEncrypt("password123")
	require.NoError(t, err)
	u := model.User{Username: username, Password: hash, Role: role}
	require.NoError(t, database.DB.Create(&u).Error)
	return u
}

func Token(t *testing.T, u model.User) string {
	tok, err := jwt.CreateToken(jwt.Payload{UserID: u.ID, Username: u.Username, Role: u.Role})
	require.NoError(t, err)
	return tok
}
