package database

import (
	"errors"
	"fmt"
	"testing"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"sportify/config"
	"sportify/internal/model"
)

func TestIsDuplicateKey(t *testing.T) {
	assert.False(t, IsDuplicateKey(nil))
	assert.False(t, IsDuplicateKey(errors.New("boom")))
	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKey(fmt.Errorf("insert: %w", &mysqldriver.MySQLError{Number: 1062})))
	assert.True(t, IsDuplicateKey(errors.New("UNIQUE constraint failed: users.username")))
}

func TestMysqlDSN(t *testing.T) {
	dsn := mysqlDSN(config.Mysql{Host: "db", Port: "3306", Username: "root", Password: "pw", DBName: "sportify"})
	assert.Contains(t, dsn, "root:pw@tcp(db:3306)/sportify")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestOpenSQLiteUniqueUsername(t *testing.T) {
	db, err := Open(&config.Config{
		Mode:     config.ModeRelease,
		Database: config.Database{Driver: config.DriverSQLite, SQLitePath: ":memory:"},
	})
	require.NoError(t, err)

	require.NoError(t, db.Create(&model.User{Username: "alice", Password: "x", Role: model.RoleUser}).Error)
	err = db.Create(&model.User{Username: "alice", Password: "y", Role: model.RoleUser}).Error
	assert.True(t, IsDuplicateKey(err))
}
