package model

import (
	"time"
)

// swagger:model
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Migratables AutoMigrate 使用的模型列表
func Migratables() []interface{} {
	return []interface{}{
		&User{},
		&Notification{},
		&LevelHistory{},
		&Course{},
		&Form{},
		&Question{},
		&Option{},
		&Enrollment{},
		&QuizResult{},
		&Achievement{},
		&UserAchievement{},
	}
}
