package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/J1nSakai/mindbridge/internal/models"
)

// AIService wraps the generative model behind the AI endpoints. A nil client
// means AI is disabled for this deployment; every call then fails fast with
// an UnavailableError rather than a panic or a hang.
type AIService struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewAIService builds the service. An empty API key disables AI generation
// without blocking startup.
func NewAIService(apiKey, modelName string) (*AIService, error) {
	if apiKey == "" {
		return &AIService{}, nil
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text("You are an expert educator who creates clear, engaging content for students.")},
	}

	return &AIService{client: client, model: model}, nil
}

func (s *AIService) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

// Enabled reports whether a generative model is configured.
func (s *AIService) Enabled() bool { return s.model != nil }

func (s *AIService) generate(ctx context.Context, prompt string) (string, error) {
	if s.model == nil {
		return "", &UnavailableError{Message: "AI service is not configured"}
	}

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Printf("AI generation error: %v", err)
		return "", &UnavailableError{Message: "AI service unavailable"}
	}

	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		return "", &UnavailableError{Message: "AI service returned an empty response"}
	}
	return text, nil
}

// GenerateSummary produces a structured topic summary.
func (s *AIService) GenerateSummary(ctx context.Context, req models.GenerateRequest) (*models.SummaryResponse, error) {
	prompt := fmt.Sprintf(`Create a comprehensive yet concise summary about "%s" suitable for %s level learners.

Structure the response as follows:
1. Brief overview (2-3 sentences)
2. Key concepts (3-5 main points)
3. Important details and examples
4. Practical applications or relevance

Make it engaging and easy to understand while being informative.`, req.Topic, req.Difficulty)

	summary, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &models.SummaryResponse{
		Topic:       req.Topic,
		Difficulty:  req.Difficulty,
		Summary:     summary,
		WordCount:   len(strings.Fields(summary)),
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// GenerateFlashcards produces front/back study cards for a topic.
func (s *AIService) GenerateFlashcards(ctx context.Context, req models.GenerateRequest) (*models.FlashcardsResponse, error) {
	prompt := fmt.Sprintf(`Create %d flashcards about "%s" for %s level learners.

Format each flashcard as JSON with "front" (question/term) and "back" (answer/definition).
Make questions clear and answers comprehensive but concise.
Include a mix of definitions, concepts, and application questions.
For any flashcard with a programming language markdown, or any text in markdown,
DO NOT wrap the text with backticks. Instead, just produce it as a plain text.

Return only a JSON array of flashcard objects.`, req.CardCount, req.Topic, req.Difficulty)

	raw, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var cards []models.FlashCard
	if err := parseJSONArray(raw, &cards); err != nil {
		log.Printf("AI flashcards parse error: %v", err)
		return nil, &UnavailableError{Message: "AI service returned an unparseable response"}
	}

	return &models.FlashcardsResponse{
		Topic:       req.Topic,
		Difficulty:  req.Difficulty,
		Flashcards:  cards,
		Count:       len(cards),
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// GenerateQuiz produces a multiple-choice quiz for a topic.
func (s *AIService) GenerateQuiz(ctx context.Context, req models.GenerateRequest) (*models.QuizResponse, error) {
	prompt := fmt.Sprintf(`Create %d multiple choice questions about "%s" for %s level learners.

Format each question as JSON with:
- "question": the question text
- "options": array of 4 possible answers (A, B, C, D)
- "correctAnswer": the letter of the correct answer (A, B, C, or D)
- "explanation": brief explanation of why the answer is correct
- "difficulty": question difficulty (1-5 scale)

Make questions challenging but fair, with plausible distractors.
Return only a JSON array of question objects.`, req.QuestionCount, req.Topic, req.Difficulty)

	raw, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var questions []models.QuizQuestion
	if err := parseJSONArray(raw, &questions); err != nil {
		log.Printf("AI quiz parse error: %v", err)
		return nil, &UnavailableError{Message: "AI service returned an unparseable response"}
	}

	questions = validateQuizQuestions(questions)

	return &models.QuizResponse{
		QuizID:         newQuizID(),
		Topic:          req.Topic,
		Difficulty:     req.Difficulty,
		Questions:      questions,
		TotalQuestions: len(questions),
		EstimatedTime:  len(questions) * 2, // 2 minutes per question
		GeneratedAt:    time.Now().UTC(),
	}, nil
}

// GenerateExplanation produces a detailed explanation, optionally grounded
// in caller-supplied context.
func (s *AIService) GenerateExplanation(ctx context.Context, req models.GenerateRequest) (*models.ExplanationResponse, error) {
	contextLine := ""
	if req.Context != "" {
		contextLine = fmt.Sprintf("Context: %s\n", req.Context)
	}

	prompt := fmt.Sprintf(`Provide a detailed explanation of "%s" for %s level learners.
%s
Structure your explanation with:
1. Simple definition
2. Step-by-step breakdown
3. Real-world examples
4. Common misconceptions to avoid
5. Tips for remembering/understanding

Use analogies and examples to make complex concepts accessible.`, req.Topic, req.Difficulty, contextLine)

	explanation, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var reqContext *string
	if req.Context != "" {
		reqContext = &req.Context
	}

	return &models.ExplanationResponse{
		Topic:       req.Topic,
		Difficulty:  req.Difficulty,
		Explanation: explanation,
		Context:     reqContext,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// Helper functions

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}

// parseJSONArray unmarshals a model response that should be a JSON array,
// tolerating markdown fences and surrounding prose.
func parseJSONArray(raw string, dest any) error {
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	if err := json.Unmarshal([]byte(raw), dest); err == nil {
		return nil
	}

	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start >= 0 && end > start {
		return json.Unmarshal([]byte(raw[start:end+1]), dest)
	}
	return fmt.Errorf("no JSON array in response")
}

func validateQuizQuestions(questions []models.QuizQuestion) []models.QuizQuestion {
	valid := make([]models.QuizQuestion, 0, len(questions))
	for _, q := range questions {
		if q.Question == "" || len(q.Options) != 4 {
			continue
		}
		q.CorrectAnswer = strings.ToUpper(strings.TrimSpace(q.CorrectAnswer))
		if q.CorrectAnswer != "A" && q.CorrectAnswer != "B" && q.CorrectAnswer != "C" && q.CorrectAnswer != "D" {
			q.CorrectAnswer = "A"
		}
		if q.Difficulty < 1 || q.Difficulty > 5 {
			q.Difficulty = 3
		}
		valid = append(valid, q)
	}
	return valid
}

func newQuizID() string {
	b := make([]byte, 5)
	rand.Read(b)
	return fmt.Sprintf("quiz_%d_%s", time.Now().UnixMilli(), hex.EncodeToString(b))
}
