package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/quizforge/quizforge/internal/quiz"
)

type resultRepo struct {
	db *sql.DB
}

func (r *resultRepo) Append(ctx context.Context, res quiz.Result) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO results (id, quiz_id, student_name, score, total_marks, taken_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		res.ID, res.QuizID, res.StudentName, res.Score, res.TotalMarks, res.TakenAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

func (r *resultRepo) ListByQuiz(ctx context.Context, quizID string) ([]quiz.Result, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, quiz_id, student_name, score, total_marks, taken_at
		 FROM results WHERE quiz_id = ? ORDER BY taken_at DESC`, quizID,
	)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var results []quiz.Result
	for rows.Next() {
		var res quiz.Result
		var takenAt int64
		if err := rows.Scan(&res.ID, &res.QuizID, &res.StudentName,
			&res.Score, &res.TotalMarks, &takenAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		res.TakenAt = time.Unix(takenAt, 0)
		results = append(results, res)
	}
	return results, rows.Err()
}

func (r *resultRepo) Summary(ctx context.Context, quizID string) (ResultSummary, error) {
	var s ResultSummary
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(score), 0), COALESCE(MAX(score), 0)
		 FROM results WHERE quiz_id = ?`, quizID,
	).Scan(&s.Attempts, &s.AvgScore, &s.MaxScore)
	if err != nil {
		return ResultSummary{}, fmt.Errorf("summarize results: %w", err)
	}
	return s, nil
}
