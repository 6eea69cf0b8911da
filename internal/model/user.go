package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole 大小写不敏感地解析角色，只接受 user / admin
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleUser, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("未知角色: %q", s)
	}
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

type User struct {
	Model
	Username string  `gorm:"column:username;type:varchar(20);uniqueIndex;not null" json:"username"`
	Email    *string `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email"`
	Password string  `gorm:"column:password;type:varchar(255);not null" json:"-"`
	Phone    *string `gorm:"column:phone;type:varchar(32)" json:"phone"`
	Role     Role    `gorm:"column:role;type:varchar(10);default:user;not null" json:"role"`
}

func (User) TableName() string {
	return "users"
}
