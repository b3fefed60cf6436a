package service

import (
	"fmt"
	"testing"
	"time"

	"lunacat/internal/domain"
	"lunacat/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestProgress(repo *testutil.MockUserRepository, now time.Time) *ProgressService {
	s := NewProgressService(repo, time.UTC, testutil.NewTestLogger())
	s.now = func() time.Time { return now }
	return s
}

func TestProgressService_Profile(t *testing.T) {
	tests := []struct {
		name          string
		mockUser      *domain.User
		mockError     error
		expectedError error
	}{
		{name: "found", mockUser: testutil.NewTestUser(1, domain.LevelBeginner)},
		{name: "unknown user", mockUser: nil, expectedError: ErrUserNotFound},
		{name: "database error", mockError: fmt.Errorf("db error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockUserRepository)
			repo.On("GetUser", int64(1)).Return(tt.mockUser, tt.mockError)

			user, err := newTestProgress(repo, time.Now()).Profile(1)

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			case tt.mockError != nil:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.mockUser, user)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestProgressService_SetLevel(t *testing.T) {
	repo := new(testutil.MockUserRepository)
	repo.On("SetLevel", int64(1), domain.LevelAdvanced).Return(nil)

	s := newTestProgress(repo, time.Now())

	assert.NoError(t, s.SetLevel(1, domain.LevelAdvanced))
	assert.Error(t, s.SetLevel(1, domain.Level("Expert")))
	repo.AssertExpectations(t)
	repo.AssertNumberOfCalls(t, "SetLevel", 1)
}

func TestProgressService_AwardPoints(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	user := testutil.NewTestUser(1, domain.LevelBeginner)
	user.Streak = 2
	user.LastActiveAt = &yesterday

	repo := new(testutil.MockUserRepository)
	repo.On("AddPoints", int64(1), 20).Return(120, nil)
	repo.On("GetUser", int64(1)).Return(user, nil)
	repo.On("UpdateStreak", int64(1), 3, now).Return(nil)

	total, err := newTestProgress(repo, now).AwardPoints(1, 20)

	require.NoError(t, err)
	assert.Equal(t, 120, total)
	repo.AssertExpectations(t)
}

func TestProgressService_AwardPoints_StreakFailureIgnored(t *testing.T) {
	repo := new(testutil.MockUserRepository)
	repo.On("AddPoints", int64(1), 10).Return(10, nil)
	repo.On("GetUser", int64(1)).Return(nil, fmt.Errorf("db error"))

	total, err := newTestProgress(repo, time.Now()).AwardPoints(1, 10)

	assert.NoError(t, err)
	assert.Equal(t, 10, total)
	repo.AssertNotCalled(t, "UpdateStreak", mock.Anything, mock.Anything, mock.Anything)
}

func TestProgressService_AwardPoints_Invalid(t *testing.T) {
	repo := new(testutil.MockUserRepository)

	_, err := newTestProgress(repo, time.Now()).AwardPoints(1, 0)

	assert.Error(t, err)
	repo.AssertNotCalled(t, "AddPoints", mock.Anything, mock.Anything)
}

func TestProgressService_TouchActivity(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	lastWeek := now.AddDate(0, 0, -7)
	earlier := now.Add(-time.Hour)

	tests := []struct {
		name       string
		lastActive *time.Time
		streak     int
		expected   int
	}{
		{name: "first activity", lastActive: nil, streak: 0, expected: 1},
		{name: "same day", lastActive: &earlier, streak: 5, expected: 5},
		{name: "broken streak", lastActive: &lastWeek, streak: 5, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := testutil.NewTestUser(1, domain.LevelBeginner)
			user.LastActiveAt = tt.lastActive
			user.Streak = tt.streak

			repo := new(testutil.MockUserRepository)
			repo.On("GetUser", int64(1)).Return(user, nil)
			repo.On("UpdateStreak", int64(1), tt.expected, now).Return(nil)

			streak, err := newTestProgress(repo, now).TouchActivity(1)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, streak)
			repo.AssertExpectations(t)
		})
	}
}

func TestProgressService_RecordWin(t *testing.T) {
	repo := new(testutil.MockUserRepository)
	repo.On("IncrementGamesWon", int64(1)).Return(nil)

	assert.NoError(t, newTestProgress(repo, time.Now()).RecordWin(1))
	repo.AssertExpectations(t)
}

func TestProgressService_Now(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)
	s := NewProgressService(new(testutil.MockUserRepository), msk, testutil.NewTestLogger())
	s.now = func() time.Time { return time.Date(2024, 6, 15, 22, 30, 0, 0, time.UTC) }

	now := s.Now()

	assert.Equal(t, msk, now.Location())
	assert.Equal(t, 16, now.Day())
}
