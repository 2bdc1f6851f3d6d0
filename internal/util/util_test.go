package util

import (
	"bytes"
	"course_quest_backend/internal/model"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{Username: "alice", IsSuperuser: true}
	user.ID = 42

	token, err := GenerateJWT(user, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.IsSuperuser)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	user := &model.User{Username: "bob"}
	token, err := GenerateJWT(user, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret")
	assert.Error(t, err)
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrPasswordsMismatch, http.StatusBadRequest},
		{fmt.Errorf("enroll: %w", ErrAlreadyEnrolled), http.StatusBadRequest},
		{ErrQuestionNotInCourse, http.StatusBadRequest},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrPermissionDenied, http.StatusForbidden},
		{fmt.Errorf("grade: %w", ErrQuestionNotFound), http.StatusNotFound},
		{ErrAchievementNotFound, http.StatusNotFound},
		{ErrProgressConflict, http.StatusConflict},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.err), tc.err.Error())
	}
}

func TestValidateMimeType(t *testing.T) {
	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)

	mime, r, err := ValidateMimeType(bytes.NewReader(png), []string{MimeImage})
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)

	// reader 仍然包含完整内容
	body, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, png, body)

	_, _, err = ValidateMimeType(bytes.NewReader([]byte("plain text")), []string{MimeImage})
	assert.ErrorIs(t, err, ErrInvalidFileType)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("17")
	require.NoError(t, err)
	assert.Equal(t, uint(17), id)

	for _, bad := range []string{"", "0", "-3", "abc"} {
		_, err := ParseID(bad)
		assert.ErrorIs(t, err, ErrValidation, bad)
	}
}
