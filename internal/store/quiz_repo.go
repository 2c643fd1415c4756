package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/quizforge/quizforge/internal/quiz"
)

type quizRepo struct {
	db *sql.DB
}

func (r *quizRepo) PutQuiz(ctx context.Context, q quiz.Quiz) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO quizzes (id, topic, difficulty, created_at) VALUES (?, ?, ?, ?)`,
		q.ID, q.Topic, q.Difficulty, q.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert quiz: %w", err)
	}
	return nil
}

func (r *quizRepo) GetQuiz(ctx context.Context, id string) (quiz.Quiz, error) {
	var q quiz.Quiz
	var createdAt int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id, topic, difficulty, created_at FROM quizzes WHERE id = ?`, id,
	).Scan(&q.ID, &q.Topic, &q.Difficulty, &createdAt)
	if err != nil {
		return quiz.Quiz{}, fmt.Errorf("get quiz %s: %w", id, err)
	}
	q.CreatedAt = time.Unix(createdAt, 0)
	return q, nil
}

func (r *quizRepo) ListQuizzes(ctx context.Context, limit int) ([]quiz.Quiz, error) {
	query := `SELECT id, topic, difficulty, created_at FROM quizzes ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []quiz.Quiz
	for rows.Next() {
		var q quiz.Quiz
		var createdAt int64
		if err := rows.Scan(&q.ID, &q.Topic, &q.Difficulty, &createdAt); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		q.CreatedAt = time.Unix(createdAt, 0)
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

func (r *quizRepo) AddQuestions(ctx context.Context, quizID string, questions []quiz.Question) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var base int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM questions WHERE quiz_id = ?`, quizID,
	).Scan(&base); err != nil {
		return fmt.Errorf("count questions: %w", err)
	}

	for i, question := range questions {
		opts, err := json.Marshal(question.Options)
		if err != nil {
			return fmt.Errorf("marshal options: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO questions
			 (id, quiz_id, position, question_text, options, correct_answer, marks, time_limit_minutes, explanation)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			question.ID, quizID, base+i, question.QuestionText, string(opts),
			question.CorrectAnswer, question.Marks, question.TimeLimitMinutes, question.Explanation,
		)
		if err != nil {
			return fmt.Errorf("insert question %s: %w", question.ID, err)
		}
	}

	return tx.Commit()
}

func (r *quizRepo) Questions(ctx context.Context, quizID string) ([]quiz.Question, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, quiz_id, question_text, options, correct_answer, marks, time_limit_minutes, explanation
		 FROM questions WHERE quiz_id = ? ORDER BY position`, quizID,
	)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var questions []quiz.Question
	for rows.Next() {
		var q quiz.Question
		var opts string
		if err := rows.Scan(&q.ID, &q.QuizID, &q.QuestionText, &opts,
			&q.CorrectAnswer, &q.Marks, &q.TimeLimitMinutes, &q.Explanation); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal([]byte(opts), &q.Options); err != nil {
			return nil, fmt.Errorf("unmarshal options for %s: %w", q.ID, err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
