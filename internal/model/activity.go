package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ActivityType string

const (
	TypeBasketball ActivityType = "篮球"
	TypeBadminton  ActivityType = "羽毛球"
	TypeYoga       ActivityType = "瑜伽"
	TypeRunning    ActivityType = "跑步"
	TypeSwimming   ActivityType = "游泳"
	TypePingPong   ActivityType = "乒乓球"
	TypeFootball   ActivityType = "足球"
	TypeOther      ActivityType = "其他"
)

var ActivityTypes = []ActivityType{
	TypeBasketball, TypeBadminton, TypeYoga, TypeRunning,
	TypeSwimming, TypePingPong, TypeFootball, TypeOther,
}

func (t ActivityType) Valid() bool {
	for _, v := range ActivityTypes {
		if t == v {
			return true
		}
	}
	return false
}

type ActivityStatus string

const (
	ActivityActive ActivityStatus = "active" // 可报名
	ActivityClosed ActivityStatus = "closed" // 已结束
)

func (s ActivityStatus) Valid() bool {
	return s == ActivityActive || s == ActivityClosed
}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Activity struct {
	Model
	Title               string          `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description         string          `gorm:"column:description;type:text;not null" json:"description"`
	Type                ActivityType    `gorm:"column:type;type:varchar(20);not null" json:"type"`
	Location            string          `gorm:"column:location;type:varchar(255);not null" json:"location"`
	Date                string          `gorm:"column:date;type:varchar(10);not null;index" json:"date"`    // YYYY-MM-DD
	StartTime           string          `gorm:"column:start_time;type:varchar(5);not null" json:"startTime"` // HH:MM
	EndTime             string          `gorm:"column:end_time;type:varchar(5);not null" json:"endTime"`     // HH:MM
	MaxParticipants     int             `gorm:"column:max_participants;not null" json:"maxParticipants"`
	CurrentParticipants int             `gorm:"column:current_participants;not null;default:0" json:"currentParticipants"`
	Price               decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	Status              ActivityStatus  `gorm:"column:status;type:varchar(10);not null;default:active" json:"status"`
	CoverURL            string          `gorm:"column:cover_url;type:varchar(512)" json:"coverUrl"`
}

func (Activity) TableName() string {
	return "activities"
}

// IsFull 当前人数加上 quantity 是否会超出上限
func (a *Activity) IsFull(quantity int) bool {
	return a.CurrentParticipants+quantity > a.MaxParticipants
}

// Validate 校验整条活动记录，返回所有不满足的约束
func (a *Activity) Validate() []string {
	var problems []string
	if strings.TrimSpace(a.Title) == "" {
		problems = append(problems, "活动标题不能为空")
	}
	if strings.TrimSpace(a.Description) == "" {
		problems = append(problems, "活动描述不能为空")
	}
	if !a.Type.Valid() {
		problems = append(problems, "活动类型无效")
	}
	if strings.TrimSpace(a.Location) == "" {
		problems = append(problems, "活动地点不能为空")
	}
	if _, err := time.Parse(DateLayout, a.Date); err != nil {
		problems = append(problems, "活动日期格式应为 YYYY-MM-DD")
	}
	if _, err := time.Parse(TimeLayout, a.StartTime); err != nil {
		problems = append(problems, "开始时间格式应为 HH:MM")
	}
	if _, err := time.Parse(TimeLayout, a.EndTime); err != nil {
		problems = append(problems, "结束时间格式应为 HH:MM")
	}
	if a.MaxParticipants < 1 {
		problems = append(problems, "最大人数至少为 1")
	}
	if a.CurrentParticipants < 0 || a.CurrentParticipants > a.MaxParticipants {
		problems = append(problems, "当前参与人数不能超过最大限制")
	}
	if a.Price.IsNegative() {
		problems = append(problems, "价格不能为负数")
	} else if !a.Price.Equal(a.Price.Round(2)) {
		problems = append(problems, "价格最多保留两位小数")
	}
	if !a.Status.Valid() {
		problems = append(problems, "活动状态无效")
	}
	return problems
}
