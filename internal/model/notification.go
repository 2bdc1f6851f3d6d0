package model

import "time"

// Notification 用户消息，创建后不再修改
type Notification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Message   string    `gorm:"size:255;not null" json:"message"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// LevelHistory 每次升级记录一条
type LevelHistory struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	Level      int       `gorm:"not null" json:"level"`
	AchievedAt time.Time `gorm:"autoCreateTime" json:"achieved_at"`
}

func (LevelHistory) TableName() string {
	return "level_history"
}
