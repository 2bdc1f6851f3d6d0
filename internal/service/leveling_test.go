package service

import (
	"course_quest_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredExperience(t *testing.T) {
	for level := 1; level <= 50; level++ {
		assert.Equal(t, level*5, RequiredExperience(level))
	}
}

func TestAwardExperience(t *testing.T) {
	tests := []struct {
		name       string
		start      LevelProgress
		points     int
		want       LevelProgress
		wantLevels []int
	}{
		{"exact first level", LevelProgress{1, 0}, 5, LevelProgress{2, 0}, []int{2}},
		{"level two consumes ten", LevelProgress{2, 0}, 10, LevelProgress{3, 0}, []int{3}},
		{"insufficient", LevelProgress{3, 0}, 7, LevelProgress{3, 7}, nil},
		{"zero is no-op", LevelProgress{4, 3}, 0, LevelProgress{4, 3}, nil},
		{"multiple level ups", LevelProgress{1, 0}, 16, LevelProgress{3, 1}, []int{2, 3}},
		{"carry existing experience", LevelProgress{1, 4}, 1, LevelProgress{2, 0}, []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, events, err := AwardExperience(tt.start, tt.points)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			var levels []int
			for _, e := range events {
				levels = append(levels, e.Level)
			}
			assert.Equal(t, tt.wantLevels, levels)
		})
	}
}

func TestAwardExperienceInvariant(t *testing.T) {
	progress := LevelProgress{Level: 1}
	for points := 0; points < 200; points += 7 {
		next, events, err := AwardExperience(progress, points)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, next.Experience, 0)
		assert.Less(t, next.Experience, RequiredExperience(next.Level))
		assert.Equal(t, progress.Level+len(events), next.Level)
		progress = next
	}
}

func TestAwardExperienceRejectsInvalidInput(t *testing.T) {
	_, _, err := AwardExperience(LevelProgress{1, 0}, -1)
	assert.ErrorIs(t, err, util.ErrInvalidExperience)

	_, _, err = AwardExperience(LevelProgress{0, 0}, 3)
	assert.ErrorIs(t, err, util.ErrInvalidLevel)
}

func TestLevelUpMessage(t *testing.T) {
	assert.Equal(t, "Congratulations! You reached level 2.", LevelUpMessage(2))
}
