package service

import (
	"bytes"
	"context"
	"course_quest_backend/internal/config"
	"course_quest_backend/internal/model"
	"course_quest_backend/internal/repository"
	"course_quest_backend/internal/testutil"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type services struct {
	db          *gorm.DB
	cfg         *config.Config
	progress    *ProgressService
	achievement *AchievementService
	quiz        *QuizService
	course      *CourseService
	user        *UserService
	auth        *AuthService
	storage     *StorageService
}

func newServices(t *testing.T) *services {
	t.Helper()
	db := testutil.NewDB(t)

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()

	userRepo := repository.NewUserRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	quizResultRepo := repository.NewQuizResultRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)

	storage := NewStorageService(cfg)
	progress := NewProgressService(userRepo, notificationRepo, db, 5)

	return &services{
		db:          db,
		cfg:         cfg,
		progress:    progress,
		achievement: NewAchievementService(achievementRepo, userRepo, quizResultRepo, enrollmentRepo, courseRepo),
		quiz:        NewQuizService(courseRepo, userRepo, quizResultRepo, progress),
		course:      NewCourseService(courseRepo, enrollmentRepo, userRepo, storage),
		user:        NewUserService(userRepo, notificationRepo, enrollmentRepo, storage),
		auth:        NewAuthService(userRepo, storage, cfg),
		storage:     storage,
	}
}

func (s *services) createUser(t *testing.T, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		IsActive: true,
		Level:    1,
	}
	require.NoError(t, s.db.Create(user).Error)
	return user
}

// quizCourse 一门课程，每个测验一道题，每道题一个正确选项和一个错误选项
type quizCourse struct {
	course    *model.Course
	questions []uint
	correct   map[uint]uint
	wrong     map[uint]uint
}

func (s *services) createQuizCourse(t *testing.T, title string, questions int) *quizCourse {
	t.Helper()
	course, err := s.course.CreateCourse(CourseInput{Title: &title}, nil)
	require.NoError(t, err)

	qc := &quizCourse{
		course:  course,
		correct: map[uint]uint{},
		wrong:   map[uint]uint{},
	}
	form, err := s.course.CreateForm(context.Background(), course.ID, "Quiz", "", nil)
	require.NoError(t, err)

	for i := 0; i < questions; i++ {
		q, err := s.course.AddQuestion(context.Background(), form.ID, fmt.Sprintf("Q%d", i+1), nil)
		require.NoError(t, err)
		right, err := s.course.AddOption(context.Background(), q.ID, "right", true, nil)
		require.NoError(t, err)
		wrong, err := s.course.AddOption(context.Background(), q.ID, "wrong", false, nil)
		require.NoError(t, err)

		qc.questions = append(qc.questions, q.ID)
		qc.correct[q.ID] = right.ID
		qc.wrong[q.ID] = wrong.ID
	}
	return qc
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

// fileHeader 通过 multipart 表单构造上传文件
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}
