package service

import (
	"context"
	"course_quest_backend/internal/model"
	"course_quest_backend/internal/repository"
	"course_quest_backend/internal/util"
	"fmt"
	"mime/multipart"
	"strings"
)

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	UserRepo       *repository.UserRepository
	Storage        *StorageService
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	userRepo *repository.UserRepository,
	storage *StorageService,
) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		UserRepo:       userRepo,
		Storage:        storage,
	}
}

// Actor 当前操作的登录用户
type Actor struct {
	UserID      uint
	IsSuperuser bool
}

type CourseInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Tags        *string `json:"tags"`
	Content     *string `json:"content"`
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// CreateCourse authorID 为 nil 时课程无作者
func (s *CourseService) CreateCourse(in CourseInput, authorID *uint) (*model.Course, error) {
	title := strings.TrimSpace(deref(in.Title))
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", util.ErrValidation)
	}
	taken, err := s.CourseRepo.ExistsByTitle(title, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrCourseTitleTaken
	}

	course := &model.Course{
		Title:       title,
		AuthorID:    authorID,
		Description: deref(in.Description),
		Tags:        deref(in.Tags),
		Content:     deref(in.Content),
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) ListCourses() ([]model.Course, error) {
	return s.CourseRepo.List()
}

func (s *CourseService) GetCourse(id uint) (*model.Course, error) {
	return s.CourseRepo.FindByID(id)
}

func canManage(course *model.Course, actor Actor) bool {
	if actor.IsSuperuser {
		return true
	}
	return course.AuthorID != nil && *course.AuthorID == actor.UserID
}

// UpdateCourse 只有作者或超级管理员可以修改，未传的字段保持不变
func (s *CourseService) UpdateCourse(id uint, actor Actor, in CourseInput) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !canManage(course, actor) {
		return nil, util.ErrPermissionDenied
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", util.ErrValidation)
		}
		taken, err := s.CourseRepo.ExistsByTitle(title, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, util.ErrCourseTitleTaken
		}
		course.Title = title
	}
	if in.Description != nil {
		course.Description = *in.Description
	}
	if in.Tags != nil {
		course.Tags = *in.Tags
	}
	if in.Content != nil {
		course.Content = *in.Content
	}

	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) DeleteCourse(id uint, actor Actor) error {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		return err
	}
	if !canManage(course, actor) {
		return util.ErrPermissionDenied
	}
	return s.CourseRepo.Delete(id)
}

func (s *CourseService) uploadImage(ctx context.Context, prefix string, image *multipart.FileHeader) (string, error) {
	if image == nil {
		return "", nil
	}
	return s.Storage.SaveImage(ctx, prefix, image)
}

func (s *CourseService) CreateForm(ctx context.Context, courseID uint, title, description string, image *multipart.FileHeader) (*model.Form, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", util.ErrValidation)
	}

	url, err := s.uploadImage(ctx, util.PrefixFormImages, image)
	if err != nil {
		return nil, err
	}

	form := &model.Form{
		CourseID:    courseID,
		Title:       title,
		Description: description,
		Image:       url,
	}
	if err := s.CourseRepo.CreateForm(form); err != nil {
		return nil, err
	}
	return form, nil
}

// ListForms 最新的在前
func (s *CourseService) ListForms(courseID uint) ([]model.Form, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, err
	}
	return s.CourseRepo.ListForms(courseID)
}

func (s *CourseService) AddQuestion(ctx context.Context, formID uint, text string, image *multipart.FileHeader) (*model.Question, error) {
	if _, err := s.CourseRepo.FindFormByID(formID); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", util.ErrValidation)
	}

	url, err := s.uploadImage(ctx, util.PrefixQuestionImages, image)
	if err != nil {
		return nil, err
	}

	question := &model.Question{
		FormID: formID,
		Text:   text,
		Image:  url,
	}
	if err := s.CourseRepo.CreateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *CourseService) AddOption(ctx context.Context, questionID uint, text string, isCorrect bool, image *multipart.FileHeader) (*model.Option, error) {
	if _, err := s.CourseRepo.FindQuestionWithForm(questionID); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", util.ErrValidation)
	}

	url, err := s.uploadImage(ctx, util.PrefixOptionImages, image)
	if err != nil {
		return nil, err
	}

	option := &model.Option{
		QuestionID: questionID,
		Text:       text,
		IsCorrect:  isCorrect,
		Image:      url,
	}
	if err := s.CourseRepo.CreateOption(option); err != nil {
		return nil, err
	}
	return option, nil
}

// QuestionTree 测验 → 题目 → 选项
func (s *CourseService) QuestionTree(courseID uint) ([]model.Form, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, err
	}
	return s.CourseRepo.QuestionTree(courseID)
}

// Enroll 同一用户重复报名同一课程返回 ErrAlreadyEnrolled
func (s *CourseService) Enroll(courseID, userID uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		return nil, err
	}

	exists, err := s.EnrollmentRepo.Exists(courseID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrAlreadyEnrolled
	}

	if err := s.EnrollmentRepo.Create(&model.Enrollment{
		CourseID: courseID,
		UserID:   userID,
	}); err != nil {
		return nil, err
	}
	return course, nil
}
