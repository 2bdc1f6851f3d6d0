package util

import "errors"

var (
	ErrValidation          = errors.New("invalid request")
	ErrPasswordsMismatch   = errors.New("passwords do not match")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrUserNotFound        = errors.New("user not found")
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseTitleTaken    = errors.New("course title already exists")
	ErrFormNotFound        = errors.New("form not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrQuestionNotInCourse = errors.New("question does not belong to this course")
	ErrAlreadyEnrolled     = errors.New("already enrolled in this course")
	ErrAchievementNotFound = errors.New("achievement not found")
	ErrInvalidExperience   = errors.New("experience points must not be negative")
	ErrInvalidLevel        = errors.New("level must be at least 1")
	ErrProgressConflict    = errors.New("concurrent progress update, try again")
	ErrInvalidFileType     = errors.New("invalid file type")
)
