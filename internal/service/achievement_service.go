package service

import (
	"course_quest_backend/internal/model"
	"course_quest_backend/internal/repository"
	"course_quest_backend/pkg/database"
	"course_quest_backend/pkg/logger"
	"course_quest_backend/pkg/monitoring"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AchievementRule 按成就 condition 注册的判定函数
type AchievementRule struct {
	Condition string
	Qualifies func(userID uint) (bool, error)
}

type AchievementService struct {
	AchievementRepo *repository.AchievementRepository
	UserRepo        *repository.UserRepository
	QuizResultRepo  *repository.QuizResultRepository
	EnrollmentRepo  *repository.EnrollmentRepository
	CourseRepo      *repository.CourseRepository
	rules           []AchievementRule
}

func NewAchievementService(
	achievementRepo *repository.AchievementRepository,
	userRepo *repository.UserRepository,
	quizResultRepo *repository.QuizResultRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
) *AchievementService {
	s := &AchievementService{
		AchievementRepo: achievementRepo,
		UserRepo:        userRepo,
		QuizResultRepo:  quizResultRepo,
		EnrollmentRepo:  enrollmentRepo,
		CourseRepo:      courseRepo,
	}

	s.Register(AchievementRule{Condition: model.ConditionFirstCourse, Qualifies: s.hasQuizResult})
	s.Register(AchievementRule{Condition: model.ConditionTop1, Qualifies: s.isTopScorer})
	s.Register(AchievementRule{Condition: model.ConditionAllCorrect, Qualifies: s.hasPerfectCourse})
	s.Register(AchievementRule{Condition: model.ConditionThreeCourses, Qualifies: s.hasThreeCourses})

	return s
}

// Register 追加一条规则，按注册顺序判定
func (s *AchievementService) Register(rule AchievementRule) {
	s.rules = append(s.rules, rule)
}

// GrantedAchievement 用户已获得的成就
type GrantedAchievement struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DateEarned  time.Time `json:"date_earned"`
}

// Evaluate 判定全部规则并返回用户的所有成就，可重复调用。
// 成就目录缺失时整体返回错误，已经写入的成就不回滚。
func (s *AchievementService) Evaluate(userID uint) ([]GrantedAchievement, error) {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		return nil, err
	}

	for _, rule := range s.rules {
		achievement, err := s.AchievementRepo.FindByCondition(rule.Condition)
		if err != nil {
			return nil, fmt.Errorf("achievement %q: %w", rule.Condition, err)
		}

		granted, err := s.AchievementRepo.HasGrant(userID, achievement.ID)
		if err != nil {
			return nil, err
		}
		if granted {
			continue
		}

		ok, err := rule.Qualifies(userID)
		if err != nil {
			return nil, fmt.Errorf("achievement %q: %w", rule.Condition, err)
		}
		if !ok {
			continue
		}

		if _, err := s.AchievementRepo.Grant(userID, achievement.ID); err != nil {
			// 并发请求已经写入
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return nil, err
		}

		monitoring.AchievementsGranted.WithLabelValues(rule.Condition).Inc()
		logger.Log.Info("Achievement granted",
			zap.Uint("userID", userID),
			zap.String("condition", rule.Condition),
		)
	}

	return s.ListGranted(userID)
}

func (s *AchievementService) ListGranted(userID uint) ([]GrantedAchievement, error) {
	grants, err := s.AchievementRepo.FindGrantsByUserID(userID)
	if err != nil {
		return nil, err
	}

	result := make([]GrantedAchievement, 0, len(grants))
	for _, g := range grants {
		if g.Achievement == nil {
			continue
		}
		result = append(result, GrantedAchievement{
			ID:          g.Achievement.ID,
			Title:       g.Achievement.Title,
			Description: g.Achievement.Description,
			DateEarned:  g.DateEarned,
		})
	}
	return result, nil
}

// SeedDefaults 写入缺失的默认成就并返回完整目录
func (s *AchievementService) SeedDefaults() ([]model.Achievement, error) {
	if err := database.SeedAchievements(s.AchievementRepo.DB); err != nil {
		return nil, err
	}
	return s.AchievementRepo.List()
}

func (s *AchievementService) hasQuizResult(userID uint) (bool, error) {
	return s.QuizResultRepo.ExistsForUser(userID)
}

// isTopScorer 并列第一的用户都满足条件
func (s *AchievementService) isTopScorer(userID uint) (bool, error) {
	has, err := s.QuizResultRepo.ExistsForUser(userID)
	if err != nil || !has {
		return false, err
	}

	total, err := s.QuizResultRepo.SumCorrectByUser(userID)
	if err != nil {
		return false, err
	}
	top, err := s.QuizResultRepo.MaxUserTotal()
	if err != nil {
		return false, err
	}
	return total == top, nil
}

func (s *AchievementService) hasPerfectCourse(userID uint) (bool, error) {
	courseIDs, err := s.QuizResultRepo.DistinctCourseIDs(userID)
	if err != nil {
		return false, err
	}

	for _, courseID := range courseIDs {
		questions, err := s.CourseRepo.CountQuestions(courseID)
		if err != nil {
			return false, err
		}
		if questions == 0 {
			continue
		}
		correct, err := s.QuizResultRepo.SumCorrectByUserAndCourse(userID, courseID)
		if err != nil {
			return false, err
		}
		if correct == questions {
			return true, nil
		}
	}
	return false, nil
}

func (s *AchievementService) hasThreeCourses(userID uint) (bool, error) {
	count, err := s.EnrollmentRepo.CountDistinctCourses(userID)
	if err != nil {
		return false, err
	}
	return count >= 3, nil
}
