package quiz

import "time"

// Quiz is a generated collection of questions on one topic.
type Quiz struct {
	ID         string
	Topic      string
	Difficulty string
	CreatedAt  time.Time
}

// Question is the application's internal question representation,
// independent of origin (AI-generated or manually authored).
type Question struct {
	ID     string
	QuizID string

	// QuestionText is the prompt shown to the student.
	QuestionText string

	// Options is the ordered list of answer choices. Order is
	// semantically meaningful: CorrectAnswer is one of these values.
	Options []string

	// CorrectAnswer is the text of the correct option, not its index.
	CorrectAnswer string

	// Marks is the number of points this question is worth.
	Marks float64

	// TimeLimitMinutes is the suggested time budget for this question.
	TimeLimitMinutes float64

	// Explanation is shown after the student answers. May be empty.
	Explanation string
}

// Result records one student's completed quiz attempt.
type Result struct {
	ID          string
	QuizID      string
	StudentName string
	Score       float64
	TotalMarks  float64
	TakenAt     time.Time
}
