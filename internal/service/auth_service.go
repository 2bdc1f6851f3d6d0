package service

import (
	"context"
	"course_quest_backend/internal/config"
	"course_quest_backend/internal/model"
	"course_quest_backend/internal/repository"
	"course_quest_backend/internal/util"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, storage *StorageService, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Storage:  storage,
		Cfg:      cfg,
	}
}

// RegisterInput 注册参数，头像可选
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	Password2 string
	Photo     *multipart.FileHeader
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if in.Username == "" || in.Email == "" || in.Password == "" || in.Password2 == "" {
		return nil, fmt.Errorf("%w: all fields are required", util.ErrValidation)
	}
	if in.Password != in.Password2 {
		return nil, util.ErrPasswordsMismatch
	}

	taken, err := s.UserRepo.ExistsByUsername(in.Username, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrUsernameTaken
	}
	taken, err = s.UserRepo.ExistsByEmail(in.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:   in.Username,
		Email:      in.Email,
		Password:   string(hashedPassword),
		IsActive:   true,
		Level:      1,
		Experience: 0,
	}

	if in.Photo != nil {
		url, err := s.Storage.SaveImage(ctx, util.PrefixProfilePhotos, in.Photo)
		if err != nil {
			return nil, err
		}
		user.ProfilePhoto = url
	}

	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 校验用户名密码并签发 JWT
func (s *AuthService) Login(username, password string) (*model.User, string, error) {
	if username == "" || password == "" {
		return nil, "", fmt.Errorf("%w: username and password are required", util.ErrValidation)
	}

	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			return nil, "", util.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !user.IsActive {
		return nil, "", util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
