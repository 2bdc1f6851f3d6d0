package service

import (
	"context"
	"course_quest_backend/internal/model"
	"course_quest_backend/internal/util"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	user, err := s.auth.Register(ctx, RegisterInput{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "secret",
		Password2: "secret",
		Photo:     fileHeader(t, "me.png", pngHeader),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, user.Level)
	assert.Equal(t, 0, user.Experience)
	assert.NotEqual(t, "secret", user.Password)
	assert.True(t, strings.HasPrefix(user.ProfilePhoto, "/uploads/profile_photos/"))

	logged, token, err := s.auth.Login("alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	claims, err := util.ParseJWT(token, s.cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, _, err = s.auth.Login("alice", "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	_, _, err = s.auth.Login("nobody", "secret")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	s.createUser(t, "alice")

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{"missing field", RegisterInput{Username: "bob", Password: "x", Password2: "x"}, util.ErrValidation},
		{"password mismatch", RegisterInput{Username: "bob", Email: "bob@example.com", Password: "x", Password2: "y"}, util.ErrPasswordsMismatch},
		{"username taken", RegisterInput{Username: "alice", Email: "new@example.com", Password: "x", Password2: "x"}, util.ErrUsernameTaken},
		{"email taken", RegisterInput{Username: "bob", Email: "alice@example.com", Password: "x", Password2: "x"}, util.ErrEmailTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.auth.Register(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateUser(t *testing.T) {
	s := newServices(t)
	alice := s.createUser(t, "alice")
	s.createUser(t, "bob")
	require.NoError(t, s.db.Model(alice).Updates(map[string]interface{}{"level": 3, "experience": 4}).Error)

	updated, err := s.user.UpdateUser(context.Background(), alice.ID, UpdateUserInput{Email: strPtr("new@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "new@example.com", updated.Email)
	// 资料修改不影响等级
	assert.Equal(t, 3, updated.Level)
	assert.Equal(t, 4, updated.Experience)

	_, err = s.user.UpdateUser(context.Background(), alice.ID, UpdateUserInput{Username: strPtr("bob")})
	assert.ErrorIs(t, err, util.ErrUsernameTaken)
	_, err = s.user.UpdateUser(context.Background(), alice.ID, UpdateUserInput{Email: strPtr("bob@example.com")})
	assert.ErrorIs(t, err, util.ErrEmailTaken)
	_, err = s.user.UpdateUser(context.Background(), 999, UpdateUserInput{})
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	s := newServices(t)
	alice := s.createUser(t, "alice")
	qc := s.createQuizCourse(t, "Go basics", 5)
	require.NoError(t, s.db.Model(qc.course).Update("author_id", alice.ID).Error)

	_, err := s.course.Enroll(qc.course.ID, alice.ID)
	require.NoError(t, err)
	_, err = s.quiz.Submit(qc.course.ID, alice.ID, qc.correct)
	require.NoError(t, err)
	_, err = s.achievement.Evaluate(alice.ID)
	require.NoError(t, err)

	require.NoError(t, s.user.DeleteUser(alice.ID))

	for _, m := range []interface{}{
		&model.User{}, &model.Notification{}, &model.LevelHistory{},
		&model.Enrollment{}, &model.QuizResult{}, &model.UserAchievement{},
	} {
		var count int64
		require.NoError(t, s.db.Model(m).Count(&count).Error)
		assert.Zero(t, count, "%T", m)
	}

	course, err := s.course.GetCourse(qc.course.ID)
	require.NoError(t, err)
	assert.Nil(t, course.AuthorID)

	assert.ErrorIs(t, s.user.DeleteUser(alice.ID), util.ErrUserNotFound)
}

func TestNotificationsForUnknownUser(t *testing.T) {
	s := newServices(t)

	_, err := s.user.Notifications(42)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
	_, err = s.user.LevelHistory(42)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
