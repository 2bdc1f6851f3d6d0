package service

import (
	"course_quest_backend/internal/model"
	"course_quest_backend/internal/repository"
	"course_quest_backend/internal/util"
	"course_quest_backend/pkg/logger"
	"course_quest_backend/pkg/monitoring"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProgressService 发放经验并持久化升级事件
type ProgressService struct {
	UserRepo         *repository.UserRepository
	NotificationRepo *repository.NotificationRepository
	DB               *gorm.DB
	MaxAttempts      int
}

func NewProgressService(
	userRepo *repository.UserRepository,
	notificationRepo *repository.NotificationRepository,
	db *gorm.DB,
	maxAttempts int,
) *ProgressService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &ProgressService{
		UserRepo:         userRepo,
		NotificationRepo: notificationRepo,
		DB:               db,
		MaxAttempts:      maxAttempts,
	}
}

// AwardExperience 读取-计算-CAS 写入，计数器被并发修改时重新读取后重试
func (s *ProgressService) AwardExperience(userID uint, points int) (*model.User, []LevelUpEvent, error) {
	var (
		user   *model.User
		events []LevelUpEvent
	)
	err := s.InTransaction(func(tx *gorm.DB) error {
		var err error
		user, events, err = s.AwardExperienceTx(tx, userID, points)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	s.RecordAward(points, events)
	return user, events, nil
}

// AwardExperienceTx 在调用方的事务中发放，计数器已过期时返回 ErrProgressConflict
func (s *ProgressService) AwardExperienceTx(tx *gorm.DB, userID uint, points int) (*model.User, []LevelUpEvent, error) {
	return s.awardOnce(tx, userID, points)
}

// InTransaction 执行 fn，遇到 ErrProgressConflict 时回滚并整体重试
func (s *ProgressService) InTransaction(fn func(tx *gorm.DB) error) error {
	for attempt := 1; attempt <= s.MaxAttempts; attempt++ {
		err := s.DB.Transaction(fn)
		if !errors.Is(err, util.ErrProgressConflict) {
			return err
		}

		monitoring.ProgressConflicts.Inc()
		logger.Log.Debug("Level counters changed concurrently, retrying",
			zap.Int("attempt", attempt),
		)
	}
	return util.ErrProgressConflict
}

// RecordAward 事务提交后更新指标
func (s *ProgressService) RecordAward(points int, events []LevelUpEvent) {
	monitoring.ExperienceAwarded.Add(float64(points))
	monitoring.LevelUps.Add(float64(len(events)))
}

func (s *ProgressService) awardOnce(tx *gorm.DB, userID uint, points int) (*model.User, []LevelUpEvent, error) {
	users := s.UserRepo.WithTx(tx)
	user, err := users.FindByID(userID)
	if err != nil {
		return nil, nil, err
	}

	current := LevelProgress{Level: user.Level, Experience: user.Experience}
	next, events, err := AwardExperience(current, points)
	if err != nil {
		return nil, nil, err
	}
	if next == current {
		return user, nil, nil
	}

	swapped, err := users.CompareAndSwapProgress(user.ID, current.Level, current.Experience, next.Level, next.Experience)
	if err != nil {
		return nil, nil, err
	}
	if !swapped {
		return nil, nil, util.ErrProgressConflict
	}

	notifications := s.NotificationRepo.WithTx(tx)
	for _, event := range events {
		if err := notifications.Create(&model.Notification{
			UserID:  user.ID,
			Message: LevelUpMessage(event.Level),
		}); err != nil {
			return nil, nil, err
		}
		if err := notifications.CreateLevelHistory(&model.LevelHistory{
			UserID: user.ID,
			Level:  event.Level,
		}); err != nil {
			return nil, nil, err
		}
	}

	user.Level = next.Level
	user.Experience = next.Experience
	return user, events, nil
}
