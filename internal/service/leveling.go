package service

import (
	"course_quest_backend/internal/util"
	"fmt"
)

// ExperiencePerLevel 第 N 级升到 N+1 级需要 N*5 经验
const ExperiencePerLevel = 5

// LevelProgress 用户的等级计数器
type LevelProgress struct {
	Level      int `json:"level"`
	Experience int `json:"experience"`
}

// LevelUpEvent 一次升级，Level 为升级后的等级
type LevelUpEvent struct {
	Level int `json:"level"`
}

func RequiredExperience(level int) int {
	return level * ExperiencePerLevel
}

// LevelUpMessage 升级通知文案
func LevelUpMessage(level int) string {
	return fmt.Sprintf("Congratulations! You reached level %d.", level)
}

// AwardExperience 纯计算，不做任何持久化
func AwardExperience(current LevelProgress, points int) (LevelProgress, []LevelUpEvent, error) {
	if points < 0 {
		return current, nil, util.ErrInvalidExperience
	}
	if current.Level < 1 {
		return current, nil, util.ErrInvalidLevel
	}
	if current.Experience < 0 {
		return current, nil, util.ErrInvalidExperience
	}

	next := current
	next.Experience += points

	var events []LevelUpEvent
	required := RequiredExperience(next.Level)
	for next.Experience >= required {
		next.Level++
		next.Experience -= required
		required = RequiredExperience(next.Level)
		events = append(events, LevelUpEvent{Level: next.Level})
	}

	return next, events, nil
}
