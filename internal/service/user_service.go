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

// UserService 处理用户资料、通知和升级历史
type UserService struct {
	UserRepo         *repository.UserRepository
	NotificationRepo *repository.NotificationRepository
	EnrollmentRepo   *repository.EnrollmentRepository
	Storage          *StorageService
}

func NewUserService(
	userRepo *repository.UserRepository,
	notificationRepo *repository.NotificationRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	storage *StorageService,
) *UserService {
	return &UserService{
		UserRepo:         userRepo,
		NotificationRepo: notificationRepo,
		EnrollmentRepo:   enrollmentRepo,
		Storage:          storage,
	}
}

// UpdateUserInput 为 nil 的字段保持不变
type UpdateUserInput struct {
	Username *string
	Email    *string
	Photo    *multipart.FileHeader
}

func (s *UserService) GetUserByID(id uint) (*model.User, error) {
	return s.UserRepo.FindByID(id)
}

func (s *UserService) UpdateUser(ctx context.Context, id uint, in UpdateUserInput) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username == "" {
			return nil, fmt.Errorf("%w: username must not be empty", util.ErrValidation)
		}
		taken, err := s.UserRepo.ExistsByUsername(username, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, util.ErrUsernameTaken
		}
		user.Username = username
	}

	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" {
			return nil, fmt.Errorf("%w: email must not be empty", util.ErrValidation)
		}
		taken, err := s.UserRepo.ExistsByEmail(email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, util.ErrEmailTaken
		}
		user.Email = email
	}

	if in.Photo != nil {
		url, err := s.Storage.SaveImage(ctx, util.PrefixProfilePhotos, in.Photo)
		if err != nil {
			return nil, err
		}
		user.ProfilePhoto = url
	}

	if err := s.UserRepo.UpdateProfile(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser 删除用户及其通知、报名、测验结果和成就
func (s *UserService) DeleteUser(id uint) error {
	return s.UserRepo.Delete(id)
}

// Notifications 最新的在前
func (s *UserService) Notifications(userID uint) ([]model.Notification, error) {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		return nil, err
	}
	return s.NotificationRepo.ListByUser(userID)
}

func (s *UserService) LevelHistory(userID uint) ([]model.LevelHistory, error) {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		return nil, err
	}
	return s.NotificationRepo.ListLevelHistory(userID)
}

func (s *UserService) EnrolledCourses(userID uint) ([]model.Course, error) {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		return nil, err
	}
	return s.EnrollmentRepo.ListCoursesByUser(userID)
}
