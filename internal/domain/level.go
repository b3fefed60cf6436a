package domain

import "strings"

// Level is the student's Mandarin proficiency
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// ParseLevel finds a level name inside free text, defaulting to Beginner
func ParseLevel(text string) Level {
	switch {
	case strings.Contains(text, string(LevelIntermediate)):
		return LevelIntermediate
	case strings.Contains(text, string(LevelAdvanced)):
		return LevelAdvanced
	default:
		return LevelBeginner
	}
}

// Valid reports whether l is a known level
func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}
