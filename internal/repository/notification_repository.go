package repository

import (
	"course_quest_backend/internal/model"

	"gorm.io/gorm"
)

// NotificationRepository 通知与升级历史，均为追加写
type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) WithTx(tx *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: tx}
}

func (r *NotificationRepository) Create(n *model.Notification) error {
	return r.DB.Create(n).Error
}

func (r *NotificationRepository) ListByUser(userID uint) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepository) CreateLevelHistory(h *model.LevelHistory) error {
	return r.DB.Create(h).Error
}

func (r *NotificationRepository) ListLevelHistory(userID uint) ([]model.LevelHistory, error) {
	var history []model.LevelHistory
	err := r.DB.Where("user_id = ?", userID).
		Order("achieved_at DESC").
		Order("id DESC").
		Find(&history).Error
	return history, err
}
