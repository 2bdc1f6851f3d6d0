package database_test

import (
	"course_quest_backend/internal/config"
	"course_quest_backend/internal/model"
	"course_quest_backend/internal/testutil"
	"course_quest_backend/pkg/database"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func TestSeedAchievementsIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)

	require.NoError(t, database.SeedAchievements(db))
	require.NoError(t, database.SeedAchievements(db))

	var count int64
	db.Model(&model.Achievement{}).Count(&count)
	assert.Equal(t, int64(len(model.DefaultAchievements)), count)
}

func TestSeedKeepsEditedTitles(t *testing.T) {
	db := testutil.NewDB(t)

	require.NoError(t, db.Model(&model.Achievement{}).
		Where(&model.Achievement{Condition: model.ConditionTop1}).
		Update("title", "Champion").Error)
	require.NoError(t, database.SeedAchievements(db))

	var a model.Achievement
	require.NoError(t, db.Where(&model.Achievement{Condition: model.ConditionTop1}).First(&a).Error)
	assert.Equal(t, "Champion", a.Title)
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := database.Open(&config.DatabaseConfig{Driver: "oracle"}, gormlogger.Silent)
	assert.Error(t, err)
}
