package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/quizforge/quizforge/internal/quiz"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestQuizRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.QuizRepo()

	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	q := quiz.Quiz{ID: "quiz-1", Topic: "Networking", Difficulty: "medium", CreatedAt: created}
	if err := repo.PutQuiz(ctx, q); err != nil {
		t.Fatalf("put quiz: %v", err)
	}

	got, err := repo.GetQuiz(ctx, "quiz-1")
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if got.Topic != "Networking" || got.Difficulty != "medium" {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("created at = %v, want %v", got.CreatedAt, created)
	}
}

func TestGetQuiz_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.QuizRepo().GetQuiz(context.Background(), "nope")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestListQuizzes_NewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.QuizRepo()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		q := quiz.Quiz{ID: id, Topic: id, Difficulty: "easy", CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := repo.PutQuiz(ctx, q); err != nil {
			t.Fatalf("put quiz %s: %v", id, err)
		}
	}

	quizzes, err := repo.ListQuizzes(ctx, 2)
	if err != nil {
		t.Fatalf("list quizzes: %v", err)
	}
	if len(quizzes) != 2 {
		t.Fatalf("expected 2 quizzes, got %d", len(quizzes))
	}
	if quizzes[0].ID != "new" || quizzes[1].ID != "mid" {
		t.Errorf("wrong order: %s, %s", quizzes[0].ID, quizzes[1].ID)
	}
}

func TestQuestionsPreserveOrderAndOptions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.QuizRepo()

	if err := repo.PutQuiz(ctx, quiz.Quiz{ID: "quiz-1", Topic: "t", Difficulty: "easy", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("put quiz: %v", err)
	}

	first := []quiz.Question{
		{ID: "q1", QuizID: "quiz-1", QuestionText: "one", Options: []string{"b", "a", "c"}, CorrectAnswer: "a", Marks: 1, TimeLimitMinutes: 1},
		{ID: "q2", QuizID: "quiz-1", QuestionText: "two", Options: []string{"x", "y"}, CorrectAnswer: "y", Marks: 2, TimeLimitMinutes: 0.5, Explanation: "why"},
	}
	if err := repo.AddQuestions(ctx, "quiz-1", first); err != nil {
		t.Fatalf("add questions: %v", err)
	}

	// A second batch continues after the first.
	second := []quiz.Question{
		{ID: "q3", QuizID: "quiz-1", QuestionText: "three", Options: []string{"m", "n"}, CorrectAnswer: "m", Marks: 1, TimeLimitMinutes: 1},
	}
	if err := repo.AddQuestions(ctx, "quiz-1", second); err != nil {
		t.Fatalf("add second batch: %v", err)
	}

	got, err := repo.Questions(ctx, "quiz-1")
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(got))
	}
	for i, id := range []string{"q1", "q2", "q3"} {
		if got[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
	if !reflect.DeepEqual(got[0].Options, []string{"b", "a", "c"}) {
		t.Errorf("option order lost: %v", got[0].Options)
	}
	if got[1].Explanation != "why" || got[1].TimeLimitMinutes != 0.5 {
		t.Errorf("fields lost: %+v", got[1])
	}
}

func TestResultSummary(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.QuizRepo().PutQuiz(ctx, quiz.Quiz{ID: "quiz-1", Topic: "t", Difficulty: "easy", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("put quiz: %v", err)
	}

	repo := s.ResultRepo()

	empty, err := repo.Summary(ctx, "quiz-1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if empty.Attempts != 0 || empty.AvgScore != 0 || empty.MaxScore != 0 {
		t.Errorf("expected zero summary, got %+v", empty)
	}

	now := time.Now()
	for i, score := range []float64{4, 8} {
		res := quiz.Result{
			ID: fmt.Sprintf("r%d", i), QuizID: "quiz-1", StudentName: "sam",
			Score: score, TotalMarks: 10, TakenAt: now.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Append(ctx, res); err != nil {
			t.Fatalf("append result: %v", err)
		}
	}

	summary, err := repo.Summary(ctx, "quiz-1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Attempts != 2 || summary.AvgScore != 6 || summary.MaxScore != 8 {
		t.Errorf("unexpected summary: %+v", summary)
	}

	results, err := repo.ListByQuiz(ctx, "quiz-1")
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(results) != 2 || results[0].Score != 8 {
		t.Errorf("expected newest attempt first, got %+v", results)
	}
}

func TestLLMEventLog(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.EventRepo()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-haiku", Purpose: "question-gen", InputTokens: 100, OutputTokens: 200, LatencyMs: 300, Success: true, RequestBody: "[user]\nhi", ResponseBody: `{"questions":[]}`},
		{Provider: "anthropic", Model: "claude-haiku", Purpose: "question-gen", InputTokens: 50, OutputTokens: 60, LatencyMs: 100, Success: false, ErrorMessage: "rate limited"},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "other", InputTokens: 10, OutputTokens: 20, LatencyMs: 500, Success: true},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append event: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query events: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	if all[0].Purpose != "other" {
		t.Errorf("expected newest event first, got %q", all[0].Purpose)
	}

	filtered, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "question-gen", Limit: 1})
	if err != nil {
		t.Fatalf("query filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Purpose != "question-gen" {
		t.Fatalf("filter failed: %+v", filtered)
	}
	if filtered[0].Success {
		t.Error("newest question-gen event should be the failed one")
	}
	if filtered[0].ErrorMessage != "rate limited" {
		t.Errorf("error message lost: %q", filtered[0].ErrorMessage)
	}

	got, err := repo.GetLLMEvent(ctx, all[2].ID)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if got == nil || got.RequestBody != "[user]\nhi" {
		t.Errorf("request body lost: %+v", got)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing event: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing event")
	}
}

func TestLLMUsageAggregation(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.EventRepo()

	for _, e := range []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-haiku", Purpose: "question-gen", InputTokens: 100, OutputTokens: 200, LatencyMs: 100, Success: true},
		{Provider: "anthropic", Model: "claude-haiku", Purpose: "question-gen", InputTokens: 300, OutputTokens: 400, LatencyMs: 300, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "other", InputTokens: 1, OutputTokens: 2, LatencyMs: 50, Success: true},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append event: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("expected 2 purpose rows, got %d", len(byPurpose))
	}
	// Ordered by purpose: "other" then "question-gen".
	gen := byPurpose[1]
	if gen.Purpose != "question-gen" || gen.Calls != 2 || gen.InputTokens != 400 || gen.OutputTokens != 600 {
		t.Errorf("unexpected aggregation: %+v", gen)
	}
	if gen.AvgLatencyMs != 200 {
		t.Errorf("avg latency = %d, want 200", gen.AvgLatencyMs)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "claude-haiku" {
		t.Errorf("unexpected model rows: %+v", byModel)
	}
}

func TestDefaultDBPath_EnvOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom", "db.sqlite")
	t.Setenv("QUIZFORGE_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default db path: %v", err)
	}
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}
