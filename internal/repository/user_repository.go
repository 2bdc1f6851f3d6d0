package repository

import (
	"course_quest_backend/internal/model"
	"course_quest_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// WithTx 返回绑定到事务的仓库
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{DB: tx}
}

func (r *UserRepository) Create(user *model.User) error {
	if user.Level < 1 {
		user.Level = 1
	}
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, notFound(err, util.ErrUserNotFound)
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err, util.ErrUserNotFound)
	}
	return &user, nil
}

// ExistsByUsername excludeID 非 0 时排除该用户自身
func (r *UserRepository) ExistsByUsername(username string, excludeID uint) (bool, error) {
	var count int64
	q := r.DB.Model(&model.User{}).Where("username = ?", username)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ExistsByEmail(email string, excludeID uint) (bool, error) {
	var count int64
	q := r.DB.Model(&model.User{}).Where("email = ?", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// UpdateProfile 只更新资料字段，不触碰等级和经验
func (r *UserRepository) UpdateProfile(user *model.User) error {
	return r.DB.Model(user).
		Select("username", "email", "profile_photo").
		Updates(user).Error
}

// CompareAndSwapProgress 仅当计数器仍为旧值时写入新值，返回是否写入成功
func (r *UserRepository) CompareAndSwapProgress(userID uint, oldLevel, oldExperience, newLevel, newExperience int) (bool, error) {
	res := r.DB.Model(&model.User{}).
		Where("id = ? AND level = ? AND experience = ?", userID, oldLevel, oldExperience).
		Updates(map[string]interface{}{
			"level":      newLevel,
			"experience": newExperience,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Delete 删除用户及其拥有的记录，课程保留但作者置空
func (r *UserRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, id).Error; err != nil {
			return notFound(err, util.ErrUserNotFound)
		}

		owned := []interface{}{
			&model.Notification{},
			&model.LevelHistory{},
			&model.Enrollment{},
			&model.QuizResult{},
			&model.UserAchievement{},
		}
		for _, m := range owned {
			if err := tx.Where("user_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&model.Course{}).
			Where("author_id = ?", id).
			Update("author_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&user).Error
	})
}

func notFound(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}
