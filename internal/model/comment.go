package model

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
)

type Comment struct {
	Model
	UserID     uint   `gorm:"column:user_id;not null;index" json:"userId"`
	ActivityID uint   `gorm:"column:activity_id;not null;index" json:"activityId"`
	Content    string `gorm:"column:content;type:text;not null" json:"content"`
	Rating     int    `gorm:"column:rating;not null;default:5" json:"rating"`
}

func (Comment) TableName() string {
	return "comments"
}

func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
