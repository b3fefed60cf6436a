package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"lunacat/internal/content"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken       string
	BotPassword    string
	StudentName    string
	Timezone       string
	MigrationsPath string
	RetentionDays  int
	Database       DatabaseConfig
	Gemini         GeminiConfig
	Game           GameConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// GeminiConfig holds content generation settings.
// An empty APIKey runs the bot on built-in content only.
type GeminiConfig struct {
	APIKey         string
	Model          string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	PairCount      int
	FlashcardCount int
}

// GameConfig holds scoring and pacing settings
type GameConfig struct {
	MatchPoints     int
	FlashcardPoints int
	MismatchDelay   time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	p := &parser{}
	cfg := &Config{
		BotToken:       os.Getenv("BOT_TOKEN"),
		BotPassword:    os.Getenv("BOT_PASSWORD"),
		StudentName:    getEnv("STUDENT_NAME", "Seraphim"),
		Timezone:       getEnv("TIMEZONE", "Europe/Moscow"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "file://migrations"),
		RetentionDays:  p.int("RETENTION_DAYS", 60),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "lunacat"),
			User:     getEnv("DB_USER", "lunacat"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Gemini: GeminiConfig{
			APIKey:         os.Getenv("GEMINI_API_KEY"),
			Model:          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Timeout:        p.duration("GEMINI_TIMEOUT", 15*time.Second),
			MaxRetries:     p.int("GEMINI_MAX_RETRIES", 2),
			RetryDelay:     p.duration("GEMINI_RETRY_DELAY", time.Second),
			PairCount:      p.intRange("PAIR_COUNT", 6, 1, content.MaxPairs),
			FlashcardCount: p.int("FLASHCARD_COUNT", 5),
		},
		Game: GameConfig{
			MatchPoints:     p.intRange("MATCH_POINTS", 20, 1, math.MaxInt),
			FlashcardPoints: p.intRange("FLASHCARD_POINTS", 10, 1, math.MaxInt),
			MismatchDelay:   p.duration("MISMATCH_DELAY", time.Second),
		},
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.BotPassword == "" {
		return nil, fmt.Errorf("BOT_PASSWORD is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	if p.err != nil {
		return nil, p.err
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

// Location returns the timezone used for daily streaks and word history
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parser reads typed values and keeps the first malformed one
type parser struct {
	err error
}

func (p *parser) int(key string, defaultValue int) int {
	return p.intRange(key, defaultValue, 0, math.MaxInt)
}

// intRange parses an integer that must lie within [lo, hi]
func (p *parser) intRange(key string, defaultValue, lo, hi int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < lo || n > hi {
		if hi == math.MaxInt {
			p.fail(fmt.Errorf("%s must be an integer of at least %d, got %q", key, lo, value))
		} else {
			p.fail(fmt.Errorf("%s must be an integer between %d and %d, got %q", key, lo, hi, value))
		}
		return defaultValue
	}
	return n
}

func (p *parser) duration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		p.fail(fmt.Errorf("%s must be a duration like 1s, got %q", key, value))
		return defaultValue
	}
	return d
}

func (p *parser) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}
