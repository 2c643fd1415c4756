package quizgen

import (
	"encoding/json"
	"strings"
)

// stripFences removes the code-fence wrapping models sometimes add
// despite instructions, plus surrounding whitespace. The inner text is
// returned untouched.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// Drop the opening fence line, language tag included.
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		} else {
			s = strings.TrimPrefix(s, "```json")
			s = strings.TrimPrefix(s, "```")
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	return strings.TrimSpace(s)
}

// parseRoot normalizes and parses one model output. Validation is
// syntactic only: any JSON object with a questions array passes; field
// shapes are not checked here (the mapper defines index bounds policy).
func parseRoot(raw string) (*RootResponse, *ParseError) {
	cleaned := stripFences(raw)

	var root RootResponse
	if err := json.Unmarshal([]byte(cleaned), &root); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}

	return &root, nil
}
