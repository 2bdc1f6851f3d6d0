package model

import "time"

const (
	ConditionFirstCourse  = "first_course"
	ConditionTop1         = "top_1"
	ConditionAllCorrect   = "all_correct"
	ConditionThreeCourses = "three_courses"
)

// Achievement 成就目录
type Achievement struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Condition   string `gorm:"size:255;uniqueIndex;not null" json:"condition"`
}

func (Achievement) TableName() string {
	return "achievements"
}

type UserAchievement struct {
	ID            uint         `gorm:"primaryKey;autoIncrement"`
	UserID        uint         `gorm:"uniqueIndex:idx_user_achievement;not null"`
	AchievementID uint         `gorm:"uniqueIndex:idx_user_achievement;not null"`
	DateEarned    time.Time    `gorm:"autoCreateTime"`
	Achievement   *Achievement `gorm:"foreignKey:AchievementID"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}

// DefaultAchievements 默认成就目录
var DefaultAchievements = []Achievement{
	{
		Title:       "First course",
		Description: "Complete your first course to earn this badge.",
		Condition:   ConditionFirstCourse,
	},
	{
		Title:       "Top 1 in the ranking",
		Description: "Become the best player in the ranking.",
		Condition:   ConditionTop1,
	},
	{
		Title:       "All course tasks answered correctly",
		Description: "Answer every question of a course correctly.",
		Condition:   ConditionAllCorrect,
	},
	{
		Title:       "Three courses",
		Description: "Join three courses to earn this badge.",
		Condition:   ConditionThreeCourses,
	},
}
