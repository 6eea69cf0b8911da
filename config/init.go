package config

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，例如 SPORTIFY_JWT_ACCESS_SECRET
const EnvPrefix = "SPORTIFY"

// devSecret 仅在 debug 模式下未配置密钥时使用
const devSecret = "sportify-dev-secret"

var current atomic.Pointer[Config]

// Init 读取配置文件并叠加环境变量，失败直接 panic
func Init() {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	Set(cfg)
}

// Load 按 默认值 -> config.yaml -> 环境变量 的顺序加载配置
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("读取环境变量失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", "5000")
	v.SetDefault("prefix", "api")
	v.SetDefault("mode", string(ModeDebug))
	v.SetDefault("database.driver", string(DriverSQLite))
	v.SetDefault("database.sqlite_path", "sportify.db")
	v.SetDefault("mysql.host", "127.0.0.1")
	v.SetDefault("mysql.port", "3306")
	v.SetDefault("mysql.db_name", "sportify")
	v.SetDefault("jwt.access_expire", 7*24*3600)
	v.SetDefault("auth.max_login_attempts", 5)
	v.SetDefault("auth.lockout_seconds", 15*60)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age", 30)
	v.SetDefault("storage.home", "./upload")
	v.SetDefault("storage.base_url", "/static")
}

// Validate 校验配置，debug 模式下补齐开发用密钥
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeDebug, ModeRelease:
	default:
		return fmt.Errorf("未知的运行模式: %q", c.Mode)
	}
	c.Database.Driver = Driver(strings.ToLower(string(c.Database.Driver)))
	switch c.Database.Driver {
	case DriverMySQL:
		if c.Mysql.DBName == "" {
			return errors.New("mysql 数据库名不能为空")
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return errors.New("sqlite 文件路径不能为空")
		}
	default:
		return fmt.Errorf("不支持的数据库驱动: %q", c.Database.Driver)
	}
	if c.JWT.AccessSecret == "" {
		if c.Mode == ModeRelease {
			return errors.New("release 模式必须配置 JWT 签名密钥 (SPORTIFY_JWT_ACCESS_SECRET)")
		}
		c.JWT.AccessSecret = devSecret
	}
	if c.JWT.AccessExpire <= 0 {
		return errors.New("JWT 过期时间必须大于 0")
	}
	return nil
}

// UsingDevSecret 是否使用了内置的开发密钥
func (c *Config) UsingDevSecret() bool {
	return c.JWT.AccessSecret == devSecret
}

func Get() *Config {
	return current.Load()
}

// Set 替换全局配置，测试中也用它注入配置
func Set(cfg *Config) {
	current.Store(cfg)
}
