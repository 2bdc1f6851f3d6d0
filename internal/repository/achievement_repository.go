package repository

import (
	"course_quest_backend/internal/model"
	"course_quest_backend/internal/util"

	"gorm.io/gorm"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) FindByCondition(condition string) (*model.Achievement, error) {
	var achievement model.Achievement
	err := r.DB.Where(&model.Achievement{Condition: condition}).First(&achievement).Error
	if err != nil {
		return nil, notFound(err, util.ErrAchievementNotFound)
	}
	return &achievement, nil
}

func (r *AchievementRepository) List() ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.DB.Order("id ASC").Find(&achievements).Error
	return achievements, err
}

func (r *AchievementRepository) HasGrant(userID, achievementID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.UserAchievement{}).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		Count(&count).Error
	return count > 0, err
}

func (r *AchievementRepository) Grant(userID, achievementID uint) (*model.UserAchievement, error) {
	grant := &model.UserAchievement{
		UserID:        userID,
		AchievementID: achievementID,
	}
	if err := r.DB.Create(grant).Error; err != nil {
		return nil, err
	}
	return grant, nil
}

// FindGrantsByUserID 按获得时间排序
func (r *AchievementRepository) FindGrantsByUserID(userID uint) ([]model.UserAchievement, error) {
	var grants []model.UserAchievement
	err := r.DB.Preload("Achievement").
		Where("user_id = ?", userID).
		Order("date_earned ASC").
		Order("id ASC").
		Find(&grants).Error
	return grants, err
}
