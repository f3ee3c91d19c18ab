package models

import "time"

type GenerateRequest struct {
	Topic         string `json:"topic"`
	Difficulty    string `json:"difficulty"`
	Context       string `json:"context"`
	CardCount     int    `json:"cardCount"`
	QuestionCount int    `json:"questionCount"`
}

type FlashCard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Difficulty    int      `json:"difficulty"`
}

type SummaryResponse struct {
	Topic       string    `json:"topic"`
	Difficulty  string    `json:"difficulty"`
	Summary     string    `json:"summary"`
	WordCount   int       `json:"wordCount"`
	GeneratedAt time.Time `json:"generatedAt"`
}

type FlashcardsResponse struct {
	Topic       string      `json:"topic"`
	Difficulty  string      `json:"difficulty"`
	Flashcards  []FlashCard `json:"flashcards"`
	Count       int         `json:"count"`
	GeneratedAt time.Time   `json:"generatedAt"`
}

type QuizResponse struct {
	QuizID         string         `json:"quizId"`
	Topic          string         `json:"topic"`
	Difficulty     string         `json:"difficulty"`
	Questions      []QuizQuestion `json:"questions"`
	TotalQuestions int            `json:"totalQuestions"`
	EstimatedTime  int            `json:"estimatedTime"`
	GeneratedAt    time.Time      `json:"generatedAt"`
}

type ExplanationResponse struct {
	Topic       string    `json:"topic"`
	Difficulty  string    `json:"difficulty"`
	Explanation string    `json:"explanation"`
	Context     *string   `json:"context"`
	GeneratedAt time.Time `json:"generatedAt"`
}
