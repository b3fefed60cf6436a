package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"lunacat/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_IsAuthorized(t *testing.T) {
	tests := []struct {
		name          string
		userID        int64
		mockRows      *sqlmock.Rows
		mockError     error
		expectedAuth  bool
		expectedError bool
	}{
		{
			name:          "authorized user",
			userID:        123,
			mockRows:      sqlmock.NewRows([]string{"authorized"}).AddRow(true),
			expectedAuth:  true,
			expectedError: false,
		},
		{
			name:          "unauthorized user",
			userID:        456,
			mockRows:      sqlmock.NewRows([]string{"authorized"}).AddRow(false),
			expectedAuth:  false,
			expectedError: false,
		},
		{
			name:          "user not exists",
			userID:        789,
			mockError:     sql.ErrNoRows,
			expectedAuth:  false,
			expectedError: false,
		},
		{
			name:          "database error",
			userID:        789,
			mockError:     fmt.Errorf("connection reset"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewUserRepo(db)

			query := "SELECT authorized FROM users WHERE user_id = \\$1"

			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs(tt.userID).WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs(tt.userID).WillReturnRows(tt.mockRows)
			}

			authorized, err := repo.IsAuthorized(tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedAuth, authorized)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepo_AuthorizeUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	// Only userID is a parameter, TRUE is a SQL constant
	mock.ExpectExec("INSERT INTO users").
		WithArgs(int64(123)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.AuthorizeUser(123)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_EnsureUserExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users \\(user_id, name, authorized\\)").
		WithArgs(int64(123), "Mei").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.EnsureUserExists(123, "Mei")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetUser(t *testing.T) {
	columns := []string{"user_id", "name", "authorized", "onboarded", "level", "points", "streak", "games_won", "last_active_at", "created_at"}
	lastActive := time.Date(2025, 3, 9, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		mockRows      *sqlmock.Rows
		mockError     error
		expectedNil   bool
		expectedError bool
	}{
		{
			name: "user found",
			mockRows: sqlmock.NewRows(columns).
				AddRow(123, "Mei", true, true, "Intermediate", 140, 3, 2, lastActive, time.Now()),
		},
		{
			name: "never active",
			mockRows: sqlmock.NewRows(columns).
				AddRow(123, "Mei", true, false, "Beginner", 0, 0, 0, nil, time.Now()),
		},
		{
			name:        "user not exists",
			mockError:   sql.ErrNoRows,
			expectedNil: true,
		},
		{
			name:          "database error",
			mockError:     fmt.Errorf("db error"),
			expectedNil:   true,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := NewUserRepo(db)

			expect := mock.ExpectQuery("SELECT user_id, name, authorized, onboarded, level, points, streak, games_won, last_active_at, created_at FROM users WHERE user_id = \\$1").
				WithArgs(int64(123))
			if tt.mockError != nil {
				expect.WillReturnError(tt.mockError)
			} else {
				expect.WillReturnRows(tt.mockRows)
			}

			user, err := repo.GetUser(123)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectedNil {
				assert.Nil(t, user)
			} else {
				require.NotNil(t, user)
				assert.Equal(t, "Mei", user.Name)
				assert.True(t, user.Level.Valid())
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepo_GetUser_Fields(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	lastActive := time.Date(2025, 3, 9, 18, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT user_id, name").
		WithArgs(int64(123)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "name", "authorized", "onboarded", "level", "points", "streak", "games_won", "last_active_at", "created_at"}).
			AddRow(123, "Mei", true, true, "Intermediate", 140, 3, 2, lastActive, time.Now()))

	user, err := NewUserRepo(db).GetUser(123)

	require.NoError(t, err)
	assert.Equal(t, domain.LevelIntermediate, user.Level)
	assert.Equal(t, 140, user.Points)
	assert.Equal(t, 3, user.Streak)
	assert.Equal(t, 2, user.GamesWon)
	require.NotNil(t, user.LastActiveAt)
	assert.True(t, lastActive.Equal(*user.LastActiveAt))
}

func TestUserRepo_SetLevel(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE users SET level = \\$2, onboarded = TRUE WHERE user_id = \\$1").
		WithArgs(int64(123), "Advanced").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewUserRepo(db).SetLevel(123, domain.LevelAdvanced)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_AddPoints(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("UPDATE users SET points = points \\+ \\$2 WHERE user_id = \\$1 RETURNING points").
		WithArgs(int64(123), 20).
		WillReturnRows(sqlmock.NewRows([]string{"points"}).AddRow(60))

	total, err := NewUserRepo(db).AddPoints(123, 20)

	assert.NoError(t, err)
	assert.Equal(t, 60, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_IncrementGamesWon(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE users SET games_won = games_won \\+ 1 WHERE user_id = \\$1").
		WithArgs(int64(123)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewUserRepo(db).IncrementGamesWon(123)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_UpdateStreak(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE users SET streak = \\$2, last_active_at = \\$3 WHERE user_id = \\$1").
		WithArgs(int64(123), 4, at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewUserRepo(db).UpdateStreak(123, 4, at)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
