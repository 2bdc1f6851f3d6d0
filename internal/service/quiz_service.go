package service

import (
	"course_quest_backend/internal/model"
	"course_quest_backend/internal/repository"
	"course_quest_backend/internal/util"
	"course_quest_backend/pkg/monitoring"
	"fmt"
	"sort"

	"gorm.io/gorm"
)

type QuizService struct {
	CourseRepo     *repository.CourseRepository
	UserRepo       *repository.UserRepository
	QuizResultRepo *repository.QuizResultRepository
	Progress       *ProgressService
}

func NewQuizService(
	courseRepo *repository.CourseRepository,
	userRepo *repository.UserRepository,
	quizResultRepo *repository.QuizResultRepository,
	progress *ProgressService,
) *QuizService {
	return &QuizService{
		CourseRepo:     courseRepo,
		UserRepo:       userRepo,
		QuizResultRepo: quizResultRepo,
		Progress:       progress,
	}
}

// QuizOutcome 提交结果
type QuizOutcome struct {
	Correct    int            `json:"correct"`
	Total      int            `json:"total"`
	Score      string         `json:"score"`
	Level      int            `json:"level"`
	Experience int            `json:"experience"`
	LevelUps   []LevelUpEvent `json:"level_ups,omitempty"`
}

// Grade 只校验和计分，不写库。题目不存在或不属于该课程时整份答卷作废。
// total 为提交的答案数，不是课程题目总数。
func (s *QuizService) Grade(courseID uint, answers map[uint]uint) (correct, total int, err error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return 0, 0, err
	}

	questionIDs := make([]uint, 0, len(answers))
	for id := range answers {
		questionIDs = append(questionIDs, id)
	}
	sort.Slice(questionIDs, func(i, j int) bool { return questionIDs[i] < questionIDs[j] })

	for _, questionID := range questionIDs {
		question, err := s.CourseRepo.FindQuestionWithForm(questionID)
		if err != nil {
			return 0, 0, fmt.Errorf("question %d: %w", questionID, err)
		}
		total++

		if question.Form == nil || question.Form.CourseID != courseID {
			return 0, 0, fmt.Errorf("question %d: %w", questionID, util.ErrQuestionNotInCourse)
		}

		correctOptionID, err := s.CourseRepo.CorrectOptionID(questionID)
		if err != nil {
			return 0, 0, err
		}
		if correctOptionID != nil && *correctOptionID == answers[questionID] {
			correct++
		}
	}

	return correct, total, nil
}

// Submit 计分后发放经验并追加一条测验结果，两者在同一事务中
func (s *QuizService) Submit(courseID, userID uint, answers map[uint]uint) (*QuizOutcome, error) {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		return nil, err
	}

	correct, total, err := s.Grade(courseID, answers)
	if err != nil {
		monitoring.QuizSubmissions.WithLabelValues("rejected").Inc()
		return nil, err
	}

	var (
		user   *model.User
		events []LevelUpEvent
	)
	err = s.Progress.InTransaction(func(tx *gorm.DB) error {
		var err error
		user, events, err = s.Progress.AwardExperienceTx(tx, userID, correct)
		if err != nil {
			return err
		}
		return s.QuizResultRepo.WithTx(tx).Create(&model.QuizResult{
			UserID:         userID,
			CourseID:       courseID,
			CorrectAnswers: correct,
		})
	})
	if err != nil {
		return nil, err
	}

	s.Progress.RecordAward(correct, events)
	monitoring.QuizSubmissions.WithLabelValues("graded").Inc()

	return &QuizOutcome{
		Correct:    correct,
		Total:      total,
		Score:      fmt.Sprintf("Correct answers: %d of %d", correct, total),
		Level:      user.Level,
		Experience: user.Experience,
		LevelUps:   events,
	}, nil
}

// Ranking 每个用户的累计正确数
func (s *QuizService) Ranking() ([]repository.UserTotal, error) {
	return s.QuizResultRepo.TotalsPerUser()
}
