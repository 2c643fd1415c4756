package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert quiz author creating multiple-choice questions for an academic quiz platform.

Rules:
- Every question must have exactly the requested number of options, with exactly one correct option.
- Distractors must be plausible but clearly wrong; never reuse the correct answer's wording.
- Questions must test understanding of the topic, not trivia or memorized phrasing.
- Never give the answer away in the question text.
- The explanation should briefly state why the correct option is right.`

// BuildPrompt renders the user instruction for one generation batch.
// Pure and deterministic: identical requests produce identical text.
// The embedded output contract must stay in sync with QuestionRecord's
// JSON tags.
func BuildPrompt(req GenerationRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate exactly %d multiple-choice questions about: %s\n", req.Count, req.Topic)
	fmt.Fprintf(&b, "Difficulty: %s\n", req.Difficulty)
	fmt.Fprintf(&b, "Options per question: %d\n", req.OptionsCount)
	fmt.Fprintf(&b, "Each question is worth %g marks and has a time budget of %d seconds.\n", req.Marks, req.TimeLimitSeconds)

	b.WriteString("\nReturn ONLY a JSON object of this exact shape, with no surrounding prose, no Markdown formatting, and no code fences:\n")
	b.WriteString(`{"questions":[{"question":"...","options":["..."],"correctIndex":0,"explanation":"..."}]}`)
	b.WriteString("\n\"correctIndex\" is the 0-based index of the correct option within \"options\".\n")

	return b.String()
}
