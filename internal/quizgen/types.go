package quizgen

// Difficulty is the requested difficulty level for a generation batch.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// GenerationRequest describes one batch of questions to generate.
// Callers validate fields before invoking the gateway; the pipeline
// itself does not re-check them.
type GenerationRequest struct {
	// Topic is the subject matter, e.g. "Cybersecurity". Non-empty.
	Topic string

	// Count is the number of questions requested. Positive.
	Count int

	// Difficulty is one of easy, medium, hard.
	Difficulty Difficulty

	// OptionsCount is the number of answer choices per question. >= 2.
	OptionsCount int

	// Marks is the number of points awarded per question. Positive.
	Marks float64

	// TimeLimitSeconds is the suggested time budget per question. Positive.
	TimeLimitSeconds int
}

// QuestionRecord is one question unit as emitted by the model.
// The JSON field names are the wire contract the prompt asks for;
// they must not change.
type QuestionRecord struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation,omitempty"`
}

// RootResponse is the parsed payload of one successful generation call.
type RootResponse struct {
	Topic     string           `json:"topic,omitempty"`
	Questions []QuestionRecord `json:"questions"`
}
