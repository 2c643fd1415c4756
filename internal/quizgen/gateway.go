package quizgen

import (
	"context"
	"errors"

	"github.com/quizforge/quizforge/internal/llm"
)

// maxAttempts caps model invocations per generation call: the original
// attempt plus exactly one retry after a known parse failure. Never a
// loop — a second malformed response fails the call.
const maxAttempts = 2

// Service is the generation gateway: it turns a GenerationRequest into
// parsed question records, or a single *GenerationError. Stateless and
// safe for concurrent use; the injected provider is its only I/O.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// New creates a generation gateway over the given provider.
func New(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// GenerateQuestions runs the pipeline: build prompt, invoke the model,
// normalize the output, retrying the invocation once if the output does
// not parse. The two attempts run sequentially; the retry only happens
// after the first parse failure is known. Cancellation of ctx aborts
// both attempts.
func (s *Service) GenerateQuestions(ctx context.Context, req GenerationRequest) (*RootResponse, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)

	llmReq := llm.Request{
		System:      systemPrompt,
		Prompt:      BuildPrompt(req),
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}
	if s.cfg.UseSchema {
		llmReq.Schema = QuestionsSchema
	}

	var lastParseErr *ParseError

	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := s.provider.Generate(ctx, llmReq)
		if err != nil {
			// In schema mode a structurally wrong response is a parse
			// failure and consumes the retry like any other.
			var invResp *llm.ErrInvalidResponse
			if s.cfg.UseSchema && errors.As(err, &invResp) {
				lastParseErr = &ParseError{Raw: string(invResp.Content), Err: err}
				continue
			}
			return nil, &GenerationError{Stage: "invoke", Err: err}
		}

		root, perr := parseRoot(string(resp.Content))
		if perr != nil {
			lastParseErr = perr
			continue
		}

		if root.Topic == "" {
			root.Topic = req.Topic
		}
		return root, nil
	}

	return nil, &GenerationError{Stage: "parse", Err: lastParseErr}
}
