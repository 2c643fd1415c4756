package quizgen

// Config controls the generation gateway.
type Config struct {
	// MaxTokens is the token budget for the model response.
	MaxTokens int

	// Temperature controls model output randomness (0.0-1.0).
	Temperature float64

	// UseSchema switches the providers to structured-output mode with
	// QuestionsSchema. A structurally wrong response then counts as a
	// parse failure and consumes the same single retry. Off by default:
	// the plain contract accepts any syntactically valid JSON.
	UseSchema bool
}

// DefaultConfig returns the recommended gateway configuration.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}
