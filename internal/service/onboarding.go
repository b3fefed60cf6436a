package service

import (
	"context"
	"fmt"
	"time"

	"lunacat/internal/content"
	"lunacat/internal/domain"

	"go.uber.org/zap"
)

// Onboarding answers offered on the last step
const (
	AnswerBeginner     = "beginner"
	AnswerIntermediate = "intermediate"
)

// OnboardingOption is one answer button
type OnboardingOption struct {
	Label string
	Value string
}

// OnboardingStep is one scripted line of the mascot's introduction.
// A step has either a single Action or a list of Options.
type OnboardingStep struct {
	Text    string
	Action  string
	Options []OnboardingOption
}

var onboardingSteps = []OnboardingStep{
	{
		Text:   "Ni Hao, %s! 👋 I'm Luna, your magical Mandarin cat!",
		Action: "Hi Luna!",
	},
	{
		Text:   "I love the color purple, just like you! Ready to learn some magic words?",
		Action: "Yes, I'm ready!",
	},
	{
		Text: "Awesome! Do you already know how to say 'Cat' in Mandarin?",
		Options: []OnboardingOption{
			{Label: "No, teach me!", Value: AnswerBeginner},
			{Label: "Is it 'Māo'?", Value: AnswerIntermediate},
		},
	},
}

// OnboardingService walks new students through the introduction and
// sets their starting level
type OnboardingService struct {
	assessor content.LevelAssessor
	progress *ProgressService
	timeout  time.Duration
	logger   *zap.Logger
}

// NewOnboardingService creates a new onboarding service
func NewOnboardingService(assessor content.LevelAssessor, progress *ProgressService, logger *zap.Logger) *OnboardingService {
	return &OnboardingService{
		assessor: assessor,
		progress: progress,
		timeout:  DefaultFetchTimeout,
		logger:   logger,
	}
}

// Step returns the step at index with the student's name filled in
func (s *OnboardingService) Step(index int, name string) (OnboardingStep, bool) {
	if index < 0 || index >= len(onboardingSteps) {
		return OnboardingStep{}, false
	}
	step := onboardingSteps[index]
	if index == 0 {
		step.Text = fmt.Sprintf(step.Text, name)
	}
	return step, true
}

// IsLast reports whether index is the final, question step
func (s *OnboardingService) IsLast(index int) bool {
	return index == len(onboardingSteps)-1
}

// Complete turns the final answer into a level and stores it.
// A failed assessment falls back to Beginner.
func (s *OnboardingService) Complete(ctx context.Context, userID int64, answer string) (domain.Level, error) {
	level := domain.LevelBeginner

	if answer == AnswerIntermediate {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		assessed, err := s.assessor.AssessLevel(ctx, []string{"User knows basic words like Mao"})
		if err != nil {
			s.logger.Warn("Level assessment failed, defaulting to beginner",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		} else if assessed.Valid() {
			level = assessed
		}
	}

	if err := s.progress.SetLevel(userID, level); err != nil {
		return level, err
	}
	return level, nil
}
