package postgres

import (
	"database/sql"
	"time"

	"lunacat/internal/domain"
)

// WordRepo implements repository.WordRepository
type WordRepo struct {
	db       *sql.DB
	timezone string
}

// NewWordRepo creates a new word repository.
// Days are grouped in timezone (an IANA name such as "Europe/Moscow").
func NewWordRepo(db *sql.DB, timezone string) *WordRepo {
	if timezone == "" {
		timezone = "UTC"
	}
	return &WordRepo{db: db, timezone: timezone}
}

// SaveWord saves a learned word
func (r *WordRepo) SaveWord(userID int64, word, pinyin, translation string) error {
	query := `
		INSERT INTO words (user_id, word, pinyin, translation)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(query, userID, word, pinyin, translation)
	return err
}

// GetRandomWord returns a random learned word for review
func (r *WordRepo) GetRandomWord(userID int64) (*domain.Word, error) {
	var w domain.Word
	query := `
		SELECT id, user_id, word, pinyin, translation, created_at
		FROM words
		WHERE user_id = $1
		ORDER BY RANDOM()
		LIMIT 1
	`
	err := r.db.QueryRow(query, userID).Scan(
		&w.ID, &w.UserID, &w.Word, &w.Pinyin, &w.Translation, &w.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &w, nil
}

// GetDaysWithWords returns days that have learned words with counts
func (r *WordRepo) GetDaysWithWords(userID int64, limit, offset int) ([]domain.Day, error) {
	query := `
		SELECT DATE(created_at AT TIME ZONE $2) AS day, COUNT(*) AS count
		FROM words
		WHERE user_id = $1
		GROUP BY DATE(created_at AT TIME ZONE $2)
		ORDER BY day DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(query, userID, r.timezone, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []domain.Day
	for rows.Next() {
		var d domain.Day
		if err := rows.Scan(&d.Date, &d.WordCount); err != nil {
			return nil, err
		}
		days = append(days, d)
	}

	return days, rows.Err()
}

// GetTotalDaysCount returns total number of days with learned words
func (r *WordRepo) GetTotalDaysCount(userID int64) (int, error) {
	query := `
		SELECT COUNT(DISTINCT DATE(created_at AT TIME ZONE $2))
		FROM words
		WHERE user_id = $1
	`

	var count int
	err := r.db.QueryRow(query, userID, r.timezone).Scan(&count)
	return count, err
}

// GetWordsByDate returns all words learned on a specific calendar date
func (r *WordRepo) GetWordsByDate(userID int64, date time.Time) ([]domain.Word, error) {
	query := `
		SELECT id, user_id, word, pinyin, translation, created_at
		FROM words
		WHERE user_id = $1
			AND DATE(created_at AT TIME ZONE $2) = $3::date
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, userID, r.timezone, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []domain.Word
	for rows.Next() {
		var w domain.Word
		if err := rows.Scan(&w.ID, &w.UserID, &w.Word, &w.Pinyin, &w.Translation, &w.CreatedAt); err != nil {
			return nil, err
		}
		words = append(words, w)
	}

	return words, rows.Err()
}

// CleanOldWords deletes words older than specified days
func (r *WordRepo) CleanOldWords(days int) error {
	query := `
		DELETE FROM words
		WHERE created_at < NOW() - INTERVAL '1 day' * $1
	`
	_, err := r.db.Exec(query, days)
	return err
}
