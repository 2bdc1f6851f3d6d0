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

func strPtr(s string) *string { return &s }

func TestCreateCourse(t *testing.T) {
	s := newServices(t)
	author := s.createUser(t, "author")

	course, err := s.course.CreateCourse(CourseInput{
		Title:       strPtr("  Go basics "),
		Description: strPtr("intro"),
	}, &author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go basics", course.Title)
	require.NotNil(t, course.AuthorID)
	assert.Equal(t, author.ID, *course.AuthorID)

	_, err = s.course.CreateCourse(CourseInput{Title: strPtr("Go basics")}, nil)
	assert.ErrorIs(t, err, util.ErrCourseTitleTaken)

	_, err = s.course.CreateCourse(CourseInput{Title: strPtr(" ")}, nil)
	assert.ErrorIs(t, err, util.ErrValidation)
}

func TestUpdateCoursePermissions(t *testing.T) {
	s := newServices(t)
	author := s.createUser(t, "author")
	other := s.createUser(t, "other")

	course, err := s.course.CreateCourse(CourseInput{Title: strPtr("Go basics"), Tags: strPtr("go")}, &author.ID)
	require.NoError(t, err)

	_, err = s.course.UpdateCourse(course.ID, Actor{UserID: other.ID}, CourseInput{Title: strPtr("Hacked")})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	updated, err := s.course.UpdateCourse(course.ID, Actor{UserID: author.ID}, CourseInput{Description: strPtr("new")})
	require.NoError(t, err)
	assert.Equal(t, "Go basics", updated.Title)
	assert.Equal(t, "new", updated.Description)
	assert.Equal(t, "go", updated.Tags)

	updated, err = s.course.UpdateCourse(course.ID, Actor{UserID: other.ID, IsSuperuser: true}, CourseInput{Title: strPtr("Go advanced")})
	require.NoError(t, err)
	assert.Equal(t, "Go advanced", updated.Title)

	_, err = s.course.UpdateCourse(999, Actor{IsSuperuser: true}, CourseInput{})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestUpdateCourseTitleConflict(t *testing.T) {
	s := newServices(t)
	admin := Actor{IsSuperuser: true}

	_, err := s.course.CreateCourse(CourseInput{Title: strPtr("Go")}, nil)
	require.NoError(t, err)
	sql, err := s.course.CreateCourse(CourseInput{Title: strPtr("SQL")}, nil)
	require.NoError(t, err)

	_, err = s.course.UpdateCourse(sql.ID, admin, CourseInput{Title: strPtr("Go")})
	assert.ErrorIs(t, err, util.ErrCourseTitleTaken)

	// 保持自身标题不算冲突
	_, err = s.course.UpdateCourse(sql.ID, admin, CourseInput{Title: strPtr("SQL")})
	assert.NoError(t, err)
}

func TestDeleteCourseCascades(t *testing.T) {
	s := newServices(t)
	author := s.createUser(t, "author")
	student := s.createUser(t, "student")
	qc := s.createQuizCourse(t, "Go basics", 2)
	require.NoError(t, s.db.Model(qc.course).Update("author_id", author.ID).Error)

	_, err := s.course.Enroll(qc.course.ID, student.ID)
	require.NoError(t, err)
	_, err = s.quiz.Submit(qc.course.ID, student.ID, qc.correct)
	require.NoError(t, err)

	err = s.course.DeleteCourse(qc.course.ID, Actor{UserID: student.ID})
	require.ErrorIs(t, err, util.ErrPermissionDenied)

	require.NoError(t, s.course.DeleteCourse(qc.course.ID, Actor{UserID: author.ID}))

	for _, m := range []interface{}{
		&model.Course{}, &model.Form{}, &model.Question{}, &model.Option{},
		&model.Enrollment{}, &model.QuizResult{},
	} {
		var count int64
		require.NoError(t, s.db.Model(m).Count(&count).Error)
		assert.Zero(t, count, "%T", m)
	}

	// 已获得的经验不回收
	stored, err := s.user.GetUserByID(student.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Experience)
}

func TestEnroll(t *testing.T) {
	s := newServices(t)
	alice := s.createUser(t, "alice")
	qc := s.createQuizCourse(t, "Go basics", 0)

	course, err := s.course.Enroll(qc.course.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go basics", course.Title)

	_, err = s.course.Enroll(qc.course.ID, alice.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)

	_, err = s.course.Enroll(999, alice.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
	_, err = s.course.Enroll(qc.course.ID, 999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	courses, err := s.user.EnrolledCourses(alice.ID)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, qc.course.ID, courses[0].ID)
}

func TestQuestionTree(t *testing.T) {
	s := newServices(t)
	qc := s.createQuizCourse(t, "Go basics", 2)

	forms, err := s.course.QuestionTree(qc.course.ID)
	require.NoError(t, err)
	require.Len(t, forms, 1)
	require.Len(t, forms[0].Questions, 2)
	assert.Equal(t, "Q1", forms[0].Questions[0].Text)
	assert.Len(t, forms[0].Questions[0].Options, 2)

	_, err = s.course.QuestionTree(999)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestAuthoringValidation(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	qc := s.createQuizCourse(t, "Go basics", 1)

	_, err := s.course.CreateForm(ctx, 999, "Quiz", "", nil)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
	_, err = s.course.CreateForm(ctx, qc.course.ID, "", "", nil)
	assert.ErrorIs(t, err, util.ErrValidation)

	_, err = s.course.AddQuestion(ctx, 999, "Q", nil)
	assert.ErrorIs(t, err, util.ErrFormNotFound)
	_, err = s.course.AddOption(ctx, 999, "A", false, nil)
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
	_, err = s.course.AddOption(ctx, qc.questions[0], "", false, nil)
	assert.ErrorIs(t, err, util.ErrValidation)
}

func TestCreateFormWithImage(t *testing.T) {
	s := newServices(t)
	qc := s.createQuizCourse(t, "Go basics", 0)

	form, err := s.course.CreateForm(context.Background(), qc.course.ID, "Pictures", "", fileHeader(t, "cover.PNG", pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(form.Image, "/uploads/form_images/"))
	assert.True(t, strings.HasSuffix(form.Image, ".png"))

	forms, err := s.course.ListForms(qc.course.ID)
	require.NoError(t, err)
	require.Len(t, forms, 2)
	assert.Equal(t, "Pictures", forms[0].Title)

	_, err = s.course.CreateForm(context.Background(), qc.course.ID, "Text", "", fileHeader(t, "notes.png", []byte("plain text")))
	assert.ErrorIs(t, err, util.ErrInvalidFileType)
}
