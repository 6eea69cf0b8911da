package database

import (
	"errors"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"sportify/config"
	"sportify/internal/global/sentry/tracing"
	"sportify/internal/model"
	"sportify/tools"
)

var DB *gorm.DB

func Init() {
	db, err := Open(config.Get())
	tools.PanicOnErr(err)
	DB = db
}

// Open 按配置连接数据库并自动迁移
func Open(cfg *config.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{TranslateError: true}
	switch cfg.Mode {
	case config.ModeDebug:
		gormConfig.Logger = logger.Default.LogMode(logger.Warn)
	case config.ModeRelease:
		gormConfig.Logger = logger.Discard
	}

	var (
		dialector gorm.Dialector
		system    string
	)
	switch cfg.Database.Driver {
	case config.DriverMySQL:
		dialector, system = mysql.Open(mysqlDSN(cfg.Mysql)), "mysql"
	default:
		dialector, system = sqlite.Open(sqliteDSN(cfg.Database.SQLitePath)), "sqlite"
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if system == "sqlite" {
		// sqlite 只允许单写者，内存库每个连接都是独立的库
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err = db.Use(tracing.NewGormPlugin(system)); err != nil {
		return nil, err
	}
	if err = db.AutoMigrate(model.Tables()...); err != nil {
		return nil, err
	}
	return db, nil
}

func mysqlDSN(m config.Mysql) string {
	c := mysqldriver.NewConfig()
	c.User = m.Username
	c.Passwd = m.Password
	c.Net = "tcp"
	c.Addr = m.Host + ":" + m.Port
	c.DBName = m.DBName
	c.ParseTime = true
	c.ClientFoundRows = true // 条件更新按匹配行数判断
	c.Loc = time.Local
	c.Params = map[string]string{"charset": "utf8mb4"}
	return c.FormatDSN()
}

func sqliteDSN(path string) string {
	if path == ":memory:" || strings.Contains(path, "?") {
		return path
	}
	return path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
}

// IsDuplicateKey 唯一索引冲突
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var me *mysqldriver.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
