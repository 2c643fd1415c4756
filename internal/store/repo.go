package store

import (
	"context"
	"time"

	"github.com/quizforge/quizforge/internal/quiz"
)

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // filter by purpose when non-empty
}

// QuizRepo provides row-level CRUD over quizzes and their questions.
type QuizRepo interface {
	// PutQuiz stores a quiz header.
	PutQuiz(ctx context.Context, q quiz.Quiz) error

	// GetQuiz returns the quiz with the given id, or sql.ErrNoRows.
	GetQuiz(ctx context.Context, id string) (quiz.Quiz, error)

	// ListQuizzes returns quizzes newest first.
	ListQuizzes(ctx context.Context, limit int) ([]quiz.Quiz, error)

	// AddQuestions appends questions to a quiz in one transaction,
	// preserving slice order as their display order.
	AddQuestions(ctx context.Context, quizID string, questions []quiz.Question) error

	// Questions returns a quiz's questions in display order.
	Questions(ctx context.Context, quizID string) ([]quiz.Question, error)
}

// ResultSummary aggregates the recorded attempts for one quiz.
type ResultSummary struct {
	Attempts int
	AvgScore float64
	MaxScore float64
}

// ResultRepo records and summarizes student attempts.
type ResultRepo interface {
	Append(ctx context.Context, r quiz.Result) error
	ListByQuiz(ctx context.Context, quizID string) ([]quiz.Result, error)
	Summary(ctx context.Context, quizID string) (ResultSummary, error)
}

// LLMRequestEventData captures one model API call for the event log.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored model API call.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// UsageRow aggregates token usage for one purpose or model.
type UsageRow struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to the LLM event log.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)
	LLMUsageByPurpose(ctx context.Context) ([]UsageRow, error)
	LLMUsageByModel(ctx context.Context) ([]UsageRow, error)
}
