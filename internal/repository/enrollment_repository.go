package repository

import (
	"course_quest_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Exists(courseID, userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *EnrollmentRepository) Create(e *model.Enrollment) error {
	return r.DB.Create(e).Error
}

func (r *EnrollmentRepository) ListCoursesByUser(userID uint) ([]model.Course, error) {
	var courses []model.Course
	enrolled := r.DB.Model(&model.Enrollment{}).Select("course_id").Where("user_id = ?", userID)
	err := r.DB.Where("id IN (?)", enrolled).Order("id ASC").Find(&courses).Error
	return courses, err
}

func (r *EnrollmentRepository) CountDistinctCourses(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("user_id = ?", userID).
		Distinct("course_id").
		Count(&count).Error
	return count, err
}

// QuizResultRepository 测验结果流水
type QuizResultRepository struct {
	DB *gorm.DB
}

func NewQuizResultRepository(db *gorm.DB) *QuizResultRepository {
	return &QuizResultRepository{DB: db}
}

func (r *QuizResultRepository) WithTx(tx *gorm.DB) *QuizResultRepository {
	return &QuizResultRepository{DB: tx}
}

func (r *QuizResultRepository) Create(result *model.QuizResult) error {
	return r.DB.Create(result).Error
}

func (r *QuizResultRepository) ExistsForUser(userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.QuizResult{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}

func (r *QuizResultRepository) SumCorrectByUser(userID uint) (int64, error) {
	var total int64
	err := r.DB.Model(&model.QuizResult{}).
		Select("COALESCE(SUM(correct_answers), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	return total, err
}

func (r *QuizResultRepository) SumCorrectByUserAndCourse(userID, courseID uint) (int64, error) {
	var total int64
	err := r.DB.Model(&model.QuizResult{}).
		Select("COALESCE(SUM(correct_answers), 0)").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Scan(&total).Error
	return total, err
}

// MaxUserTotal 所有用户累计正确数的最大值，无记录时为 0
func (r *QuizResultRepository) MaxUserTotal() (int64, error) {
	var row struct {
		Total int64
	}
	err := r.DB.Model(&model.QuizResult{}).
		Select("SUM(correct_answers) AS total").
		Group("user_id").
		Order("total DESC").
		Limit(1).
		Scan(&row).Error
	return row.Total, err
}

func (r *QuizResultRepository) DistinctCourseIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.QuizResult{}).
		Where("user_id = ?", userID).
		Distinct("course_id").
		Order("course_id ASC").
		Pluck("course_id", &ids).Error
	return ids, err
}

// UserTotal 排行榜条目
type UserTotal struct {
	UserID         uint   `json:"user_id"`
	Username       string `json:"username"`
	CorrectAnswers int64  `json:"correct_answers"`
}

// TotalsPerUser 每个用户的累计正确数，没有记录的用户为 0
func (r *QuizResultRepository) TotalsPerUser() ([]UserTotal, error) {
	var totals []UserTotal
	err := r.DB.Table("users").
		Select("users.id AS user_id, users.username AS username, COALESCE(SUM(quiz_results.correct_answers), 0) AS correct_answers").
		Joins("LEFT JOIN quiz_results ON quiz_results.user_id = users.id").
		Group("users.id, users.username").
		Order("users.id ASC").
		Scan(&totals).Error
	return totals, err
}
