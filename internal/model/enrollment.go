package model

import "time"

// Enrollment (course, user) 的唯一性由报名接口保证，不依赖数据库约束
type Enrollment struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID       uint      `gorm:"index;not null" json:"course_id"`
	UserID         uint      `gorm:"index;not null" json:"user_id"`
	EnrollmentDate time.Time `gorm:"autoCreateTime" json:"enrollment_date"`
	Course         *Course   `gorm:"foreignKey:CourseID" json:"-"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// QuizResult 每次提交追加一条，不覆盖历史
type QuizResult struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint      `gorm:"index;not null" json:"user_id"`
	CourseID       uint      `gorm:"index;not null" json:"course_id"`
	CorrectAnswers int       `gorm:"not null" json:"correct_answers"`
	CreatedAt      time.Time `json:"created_at"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
