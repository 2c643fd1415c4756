package quizgen

import "fmt"

// ParseError indicates raw model output could not be parsed as JSON
// after the bounded retry was exhausted. Raw carries the last attempt's
// output for diagnostics.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse model output: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// GenerationError is the single failure outcome the gateway surfaces to
// callers, whether the model call itself failed or parsing did.
type GenerationError struct {
	Stage string // "invoke" or "parse"
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("question generation failed (%s): %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// MappingError indicates a parsed record's correctIndex falls outside
// the bounds of its options. The whole batch fails rather than silently
// producing an undefined correct answer.
type MappingError struct {
	Index        int // position of the record in the batch
	CorrectIndex int
	OptionCount  int
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("question %d: correctIndex %d out of range for %d options",
		e.Index, e.CorrectIndex, e.OptionCount)
}
