package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/J1nSakai/mindbridge/internal/models"
)

func TestParseJSONArray_PlainArray(t *testing.T) {
	var cards []models.FlashCard
	raw := `[{"front":"What is a goroutine?","back":"A lightweight thread managed by the Go runtime."}]`

	if err := parseJSONArray(raw, &cards); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 1 || cards[0].Front != "What is a goroutine?" {
		t.Fatalf("unexpected cards: %+v", cards)
	}
}

func TestParseJSONArray_MarkdownFenced(t *testing.T) {
	var cards []models.FlashCard
	raw := "```json\n[{\"front\":\"Q\",\"back\":\"A\"}]\n```"

	if err := parseJSONArray(raw, &cards); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}
}

func TestParseJSONArray_SurroundingProse(t *testing.T) {
	var cards []models.FlashCard
	raw := `Here are your flashcards: [{"front":"Q","back":"A"}] Hope this helps!`

	if err := parseJSONArray(raw, &cards); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}
}

func TestParseJSONArray_NoArray(t *testing.T) {
	var cards []models.FlashCard
	if err := parseJSONArray("Sorry, I cannot help with that.", &cards); err == nil {
		t.Fatal("expected error for response without a JSON array")
	}
}

func TestValidateQuizQuestions(t *testing.T) {
	input := []models.QuizQuestion{
		{
			Question:      "What does CPU stand for?",
			Options:       []string{"Central Processing Unit", "Core Power Unit", "Compute Path Unit", "Central Path Unit"},
			CorrectAnswer: "a",
			Difficulty:    9,
		},
		{
			Question: "Missing options",
			Options:  []string{"only", "two"},
		},
		{
			Question:      "Valid as-is",
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: "C",
			Difficulty:    2,
		},
	}

	got := validateQuizQuestions(input)
	if len(got) != 2 {
		t.Fatalf("expected 2 valid questions, got %d", len(got))
	}

	if got[0].CorrectAnswer != "A" {
		t.Fatalf("expected lowercase answer normalized to A, got %q", got[0].CorrectAnswer)
	}
	if got[0].Difficulty != 3 {
		t.Fatalf("expected out-of-range difficulty reset to 3, got %d", got[0].Difficulty)
	}
	if got[1].CorrectAnswer != "C" {
		t.Fatalf("expected valid answer untouched, got %q", got[1].CorrectAnswer)
	}
}

func TestNewQuizID(t *testing.T) {
	id := newQuizID()
	if !strings.HasPrefix(id, "quiz_") {
		t.Fatalf("unexpected quiz id format: %q", id)
	}
	if id == newQuizID() {
		t.Fatal("expected unique quiz ids")
	}
}

func TestAIService_DisabledFailsFast(t *testing.T) {
	svc := &AIService{}

	if svc.Enabled() {
		t.Fatal("expected service without a client to report disabled")
	}

	_, err := svc.GenerateSummary(context.Background(), models.GenerateRequest{
		Topic:      "Photosynthesis",
		Difficulty: "beginner",
	})

	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected UnavailableError, got %v", err)
	}
}
