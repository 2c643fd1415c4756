package quizgen

import (
	"github.com/quizforge/quizforge/internal/quiz"
)

// MapParams carries the request fields every question in a batch shares.
// Marks and the time budget come from the generation request, not the
// model output; the model is never asked to assign per-question marks.
type MapParams struct {
	Marks            float64
	TimeLimitSeconds int
}

// MapQuestions converts parsed model records into domain questions.
// Length and order are preserved exactly. CorrectAnswer becomes the
// text of the option correctIndex points at; an out-of-range index
// fails the whole batch with *MappingError rather than producing an
// undefined value.
func MapQuestions(records []QuestionRecord, quizID string, params MapParams, idgen IDGenerator) ([]quiz.Question, error) {
	questions := make([]quiz.Question, 0, len(records))

	for i, rec := range records {
		if rec.CorrectIndex < 0 || rec.CorrectIndex >= len(rec.Options) {
			return nil, &MappingError{
				Index:        i,
				CorrectIndex: rec.CorrectIndex,
				OptionCount:  len(rec.Options),
			}
		}

		questions = append(questions, quiz.Question{
			ID:               idgen.NewID(),
			QuizID:           quizID,
			QuestionText:     rec.Question,
			Options:          rec.Options,
			CorrectAnswer:    rec.Options[rec.CorrectIndex],
			Marks:            params.Marks,
			TimeLimitMinutes: float64(params.TimeLimitSeconds) / 60,
			Explanation:      rec.Explanation,
		})
	}

	return questions, nil
}
