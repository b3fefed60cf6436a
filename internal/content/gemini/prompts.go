package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"lunacat/internal/content"
	"lunacat/internal/domain"
	"lunacat/internal/game"

	"google.golang.org/genai"
)

const mascotInstruction = `You are "Luna", a friendly, magical purple cat who teaches Mandarin Chinese to a 2nd-grade student named %s.
Your tone is encouraging, playful, and simple.
You love the color purple and often make cat puns.
When teaching, focus on standard Mandarin (Putonghua).
Always be supportive.
Current Student Level: %s.
Keep responses short (under 2 sentences) and include the Pinyin for any Chinese words you use.
Ask a question to keep the conversation going.`

var pairsSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"pairId": {Type: genai.TypeString},
			"item1":  {Type: genai.TypeString, Description: "The Chinese Character (Hanzi)"},
			"item2":  {Type: genai.TypeString, Description: "The English Definition"},
		},
		Required: []string{"pairId", "item1", "item2"},
	},
}

var flashcardsSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"hanzi":    {Type: genai.TypeString, Description: "Chinese Character"},
			"pinyin":   {Type: genai.TypeString, Description: "Pinyin with tone marks"},
			"english":  {Type: genai.TypeString, Description: "English translation"},
			"category": {Type: genai.TypeString, Description: "Word category (e.g., Animals, Colors)"},
		},
		Required: []string{"hanzi", "pinyin", "english", "category"},
	},
}

func jsonConfig(schema *genai.Schema) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}
}

// FetchPairs asks the model for word pairs for the matching game
func (c *Client) FetchPairs(ctx context.Context, level domain.Level) ([]game.Pair, error) {
	prompt := fmt.Sprintf("Generate %d pairs of matching Mandarin words for a %s student. Format: Hanzi and English.",
		c.cfg.PairCount, level)

	text, err := c.generate(ctx, "fetch_pairs", genai.Text(prompt), jsonConfig(pairsSchema))
	if err != nil {
		return nil, err
	}

	var pairs []game.Pair
	if err := json.Unmarshal([]byte(text), &pairs); err != nil {
		return nil, fmt.Errorf("%w: failed to parse pairs: %v", content.ErrContentUnavailable, err)
	}
	if len(pairs) > c.cfg.PairCount {
		pairs = pairs[:c.cfg.PairCount]
	}
	return content.ValidatePairs(pairs)
}

// GenerateFlashcards asks the model for vocabulary cards on a topic
func (c *Client) GenerateFlashcards(ctx context.Context, level domain.Level, topic string) ([]domain.Flashcard, error) {
	if strings.TrimSpace(topic) == "" {
		topic = "general vocabulary"
	}
	prompt := fmt.Sprintf(`Generate %d Mandarin flashcards for a %s level 2nd-grade student.
The topic is: %s.
Include Emoji where appropriate in the english definition.`, c.cfg.FlashcardCount, level, topic)

	text, err := c.generate(ctx, "generate_flashcards", genai.Text(prompt), jsonConfig(flashcardsSchema))
	if err != nil {
		return nil, err
	}

	var cards []domain.Flashcard
	if err := json.Unmarshal([]byte(text), &cards); err != nil {
		return nil, fmt.Errorf("%w: failed to parse flashcards: %v", content.ErrContentUnavailable, err)
	}
	return content.ValidateFlashcards(cards)
}

// AssessLevel estimates proficiency from onboarding answers.
// Beginner is returned alongside any error.
func (c *Client) AssessLevel(ctx context.Context, answers []string) (domain.Level, error) {
	interaction, err := json.Marshal(answers)
	if err != nil {
		return domain.LevelBeginner, fmt.Errorf("%w: %v", content.ErrContentUnavailable, err)
	}

	prompt := fmt.Sprintf(`Based on the following short interaction with a student, estimate their Mandarin proficiency level.
Interaction: %s

Return ONLY one of the following strings: "Beginner", "Intermediate", "Advanced".
If unsure, default to "Beginner".`, interaction)

	text, err := c.generate(ctx, "assess_level", genai.Text(prompt), nil)
	if err != nil {
		return domain.LevelBeginner, err
	}
	return domain.ParseLevel(text), nil
}

// Reply continues the conversation as the mascot
func (c *Client) Reply(ctx context.Context, level domain.Level, name string, history []domain.ChatMessage, message string) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		if m.Sender == domain.SenderMascot {
			contents = append(contents, genai.NewContentFromText(m.Text, genai.RoleModel))
		} else {
			contents = append(contents, genai.NewContentFromText(m.Text, genai.RoleUser))
		}
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(fmt.Sprintf(mascotInstruction, name, level), genai.RoleUser),
	}

	text, err := c.generate(ctx, "reply", contents, config)
	if errors.Is(err, errEmptyText) {
		return content.EmptyReply, nil
	}
	if err != nil {
		return "", err
	}
	return text, nil
}
