package content

import (
	"lunacat/internal/domain"
	"lunacat/internal/game"
)

// Chat replies used when the mascot cannot reach the generation service
const (
	FallbackReply = "Oops! My magical connection is fuzzy. Can you say that again?"
	EmptyReply    = "Meow? I didn't catch that."
)

// FallbackPairs returns the fixed pair list used when generation fails
func FallbackPairs() []game.Pair {
	return []game.Pair{
		{PairID: "1", Item1: "猫", Item2: "Cat"},
		{PairID: "2", Item1: "狗", Item2: "Dog"},
		{PairID: "3", Item1: "鱼", Item2: "Fish"},
		{PairID: "4", Item1: "鸟", Item2: "Bird"},
		{PairID: "5", Item1: "紫色", Item2: "Purple"},
		{PairID: "6", Item1: "红色", Item2: "Red"},
	}
}

// FallbackFlashcards returns the fixed flashcards used when generation fails
func FallbackFlashcards() []domain.Flashcard {
	return []domain.Flashcard{
		{Hanzi: "猫", Pinyin: "māo", English: "Cat 🐱", Category: "Animals"},
		{Hanzi: "紫色", Pinyin: "zǐ sè", English: "Purple 🟣", Category: "Colors"},
		{Hanzi: "你好", Pinyin: "nǐ hǎo", English: "Hello 👋", Category: "Greetings"},
	}
}
