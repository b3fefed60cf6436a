package postgres

import (
	"database/sql"
	"time"

	"lunacat/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// IsAuthorized checks if user is authorized
func (r *UserRepo) IsAuthorized(userID int64) (bool, error) {
	var authorized bool
	query := `SELECT authorized FROM users WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&authorized)

	if err == sql.ErrNoRows {
		// User doesn't exist yet
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return authorized, nil
}

// AuthorizeUser marks user as authorized
func (r *UserRepo) AuthorizeUser(userID int64) error {
	query := `
		INSERT INTO users (user_id, authorized)
		VALUES ($1, TRUE)
		ON CONFLICT (user_id)
		DO UPDATE SET authorized = TRUE
	`
	_, err := r.db.Exec(query, userID)
	return err
}

// EnsureUserExists creates user if not exists
func (r *UserRepo) EnsureUserExists(userID int64, name string) error {
	query := `
		INSERT INTO users (user_id, name, authorized)
		VALUES ($1, $2, FALSE)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(query, userID, name)
	return err
}

// GetUser returns the user's profile, or nil if the user is unknown
func (r *UserRepo) GetUser(userID int64) (*domain.User, error) {
	var u domain.User
	var level string
	var lastActive sql.NullTime
	query := `
		SELECT user_id, name, authorized, onboarded, level, points, streak, games_won, last_active_at, created_at
		FROM users
		WHERE user_id = $1
	`
	err := r.db.QueryRow(query, userID).Scan(
		&u.UserID, &u.Name, &u.Authorized, &u.Onboarded, &level, &u.Points, &u.Streak, &u.GamesWon, &lastActive, &u.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	u.Level = domain.Level(level)
	if lastActive.Valid {
		u.LastActiveAt = &lastActive.Time
	}

	return &u, nil
}

// SetLevel stores the proficiency level and marks onboarding as done
func (r *UserRepo) SetLevel(userID int64, level domain.Level) error {
	query := `
		UPDATE users
		SET level = $2, onboarded = TRUE
		WHERE user_id = $1
	`
	_, err := r.db.Exec(query, userID, string(level))
	return err
}

// AddPoints adds amount to the user's points and returns the new total
func (r *UserRepo) AddPoints(userID int64, amount int) (int, error) {
	var total int
	query := `
		UPDATE users
		SET points = points + $2
		WHERE user_id = $1
		RETURNING points
	`
	err := r.db.QueryRow(query, userID, amount).Scan(&total)
	return total, err
}

// IncrementGamesWon records a finished matching game
func (r *UserRepo) IncrementGamesWon(userID int64) error {
	query := `
		UPDATE users
		SET games_won = games_won + 1
		WHERE user_id = $1
	`
	_, err := r.db.Exec(query, userID)
	return err
}

// UpdateStreak stores the daily streak and the time of the latest activity
func (r *UserRepo) UpdateStreak(userID int64, streak int, activeAt time.Time) error {
	query := `
		UPDATE users
		SET streak = $2, last_active_at = $3
		WHERE user_id = $1
	`
	_, err := r.db.Exec(query, userID, streak, activeAt)
	return err
}
