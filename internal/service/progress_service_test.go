package service

import (
	"course_quest_backend/internal/model"
	"course_quest_backend/internal/util"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestProgressServiceAwardExperience(t *testing.T) {
	tests := []struct {
		name       string
		level      int
		experience int
		points     int
		wantLevel  int
		wantExp    int
		wantLevels []int
	}{
		{"exact threshold", 1, 0, 5, 2, 0, []int{2}},
		{"second level needs ten", 2, 0, 10, 3, 0, []int{3}},
		{"not enough", 3, 0, 7, 3, 7, nil},
		{"two level ups", 1, 0, 16, 3, 1, []int{2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServices(t)
			user := s.createUser(t, "alice")
			require.NoError(t, s.db.Model(user).Updates(map[string]interface{}{
				"level":      tt.level,
				"experience": tt.experience,
			}).Error)

			got, events, err := s.progress.AwardExperience(user.ID, tt.points)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, got.Level)
			assert.Equal(t, tt.wantExp, got.Experience)

			stored, err := s.user.GetUserByID(user.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, stored.Level)
			assert.Equal(t, tt.wantExp, stored.Experience)

			history, err := s.user.LevelHistory(user.ID)
			require.NoError(t, err)
			notifications, err := s.user.Notifications(user.ID)
			require.NoError(t, err)

			var eventLevels, historyLevels []int
			for _, e := range events {
				eventLevels = append(eventLevels, e.Level)
			}
			for _, h := range history {
				historyLevels = append(historyLevels, h.Level)
			}
			assert.Equal(t, tt.wantLevels, eventLevels)
			assert.ElementsMatch(t, tt.wantLevels, historyLevels)
			assert.Len(t, notifications, len(tt.wantLevels))
		})
	}
}

func TestProgressServiceNotificationMessages(t *testing.T) {
	s := newServices(t)
	user := s.createUser(t, "alice")

	_, _, err := s.progress.AwardExperience(user.ID, 16)
	require.NoError(t, err)

	notifications, err := s.user.Notifications(user.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	// 最新的在前
	assert.Equal(t, "Congratulations! You reached level 3.", notifications[0].Message)
	assert.Equal(t, "Congratulations! You reached level 2.", notifications[1].Message)
}

func TestProgressServiceZeroPointsWritesNothing(t *testing.T) {
	s := newServices(t)
	user := s.createUser(t, "alice")

	got, events, err := s.progress.AwardExperience(user.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, 1, got.Level)
	assert.Equal(t, 0, got.Experience)

	var count int64
	s.db.Model(&model.Notification{}).Count(&count)
	assert.Zero(t, count)
}

func TestProgressServiceRejectsNegativePoints(t *testing.T) {
	s := newServices(t)
	user := s.createUser(t, "alice")

	_, _, err := s.progress.AwardExperience(user.ID, -1)
	assert.ErrorIs(t, err, util.ErrInvalidExperience)
}

func TestProgressServiceUnknownUser(t *testing.T) {
	s := newServices(t)

	_, _, err := s.progress.AwardExperience(999, 3)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestProgressServiceConcurrentAwards(t *testing.T) {
	s := newServices(t)
	user := s.createUser(t, "alice")

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := s.progress.AwardExperience(user.ID, 3)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	// 30 点：1→2 用 5，2→3 用 10，3→4 用 15
	stored, err := s.user.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Level)
	assert.Equal(t, 0, stored.Experience)

	history, err := s.user.LevelHistory(user.ID)
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestInTransactionRetriesConflicts(t *testing.T) {
	s := newServices(t)

	attempts := 0
	err := s.progress.InTransaction(func(tx *gorm.DB) error {
		attempts++
		if attempts < 3 {
			return util.ErrProgressConflict
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)

	attempts = 0
	err = s.progress.InTransaction(func(tx *gorm.DB) error {
		attempts++
		return util.ErrProgressConflict
	})
	assert.ErrorIs(t, err, util.ErrProgressConflict)
	assert.Equal(t, s.progress.MaxAttempts, attempts)
}

func TestInTransactionRollsBackOnConflict(t *testing.T) {
	s := newServices(t)
	user := s.createUser(t, "alice")

	first := true
	err := s.progress.InTransaction(func(tx *gorm.DB) error {
		if _, _, err := s.progress.AwardExperienceTx(tx, user.ID, 5); err != nil {
			return err
		}
		if first {
			first = false
			return util.ErrProgressConflict
		}
		return nil
	})
	require.NoError(t, err)

	// 第一次尝试被回滚，只生效一次
	stored, err := s.user.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Level)
	assert.Equal(t, 0, stored.Experience)

	history, err := s.user.LevelHistory(user.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
