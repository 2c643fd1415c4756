package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/quizforge/quizforge/internal/llm"
)

func validBatchJSON() json.RawMessage {
	return json.RawMessage(`{
		"questions": [
			{
				"question": "Which protocol encrypts web traffic?",
				"options": ["HTTP", "HTTPS", "FTP", "SMTP"],
				"correctIndex": 1,
				"explanation": "HTTPS wraps HTTP in TLS."
			}
		]
	}`)
}

func TestGenerateQuestions_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validBatchJSON()})
	svc := New(mock, DefaultConfig())

	root, err := svc.GenerateQuestions(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(root.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(root.Questions))
	}
	if root.Questions[0].CorrectIndex != 1 {
		t.Errorf("unexpected correctIndex: %d", root.Questions[0].CorrectIndex)
	}
	if root.Topic != "Cybersecurity" {
		t.Errorf("topic should default to the request topic, got %q", root.Topic)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestGenerateQuestions_FencedOutputRecovered(t *testing.T) {
	fenced := "```json\n" + string(validBatchJSON()) + "\n```"
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(fenced)})
	svc := New(mock, DefaultConfig())

	root, err := svc.GenerateQuestions(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(root.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(root.Questions))
	}
	if mock.CallCount() != 1 {
		t.Fatalf("fence stripping must not consume the retry, got %d calls", mock.CallCount())
	}
}

func TestGenerateQuestions_RetryBound(t *testing.T) {
	// Three garbage responses queued; only two may ever be consumed.
	garbage := llm.MockResponse{Content: json.RawMessage(`not json at all`)}
	mock := llm.NewMockProvider(garbage, garbage, garbage)
	svc := New(mock, DefaultConfig())

	_, err := svc.GenerateQuestions(context.Background(), sampleRequest())
	if err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected exactly 2 invocations (1 original + 1 retry), got %d", mock.CallCount())
	}

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %T", err)
	}
	if genErr.Stage != "parse" {
		t.Errorf("expected parse stage, got %q", genErr.Stage)
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected wrapped *ParseError, got %v", err)
	}
	if parseErr.Raw != "not json at all" {
		t.Errorf("ParseError should carry the last raw output, got %q", parseErr.Raw)
	}
}

func TestGenerateQuestions_RetryRecovers(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`I will comply next time.`)},
		llm.MockResponse{Content: validBatchJSON()},
	)
	svc := New(mock, DefaultConfig())

	root, err := svc.GenerateQuestions(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("retry success must not surface an error, got: %v", err)
	}
	if len(root.Questions) != 1 {
		t.Fatalf("expected the second attempt's parse, got %d questions", len(root.Questions))
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 invocations, got %d", mock.CallCount())
	}
}

func TestGenerateQuestions_SamePromptOnRetry(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`garbage`)},
		llm.MockResponse{Content: validBatchJSON()},
	)
	svc := New(mock, DefaultConfig())

	if _, err := svc.GenerateQuestions(context.Background(), sampleRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.Calls[0].Prompt != mock.Calls[1].Prompt {
		t.Error("retry must reuse the identical prompt")
	}
	if mock.Calls[0].System != mock.Calls[1].System {
		t.Error("retry must reuse the identical system prompt")
	}
}

func TestGenerateQuestions_InvokeFailureNotRetried(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("503")}},
		llm.MockResponse{Content: validBatchJSON()},
	)
	svc := New(mock, DefaultConfig())

	_, err := svc.GenerateQuestions(context.Background(), sampleRequest())
	if err == nil {
		t.Fatal("expected error")
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %T", err)
	}
	if genErr.Stage != "invoke" {
		t.Errorf("expected invoke stage, got %q", genErr.Stage)
	}
	// The parse-retry budget must not be spent on transport failures.
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 invocation, got %d", mock.CallCount())
	}
}

func TestGenerateQuestions_SchemaMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UseSchema = true

	t.Run("schema attached to request", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Content: validBatchJSON()})
		svc := New(mock, cfg)

		if _, err := svc.GenerateQuestions(context.Background(), sampleRequest()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if mock.Calls[0].Schema == nil {
			t.Fatal("expected schema on the request in strict mode")
		}
		if mock.Calls[0].Schema.Name != "quiz-questions" {
			t.Errorf("unexpected schema name %q", mock.Calls[0].Schema.Name)
		}
	})

	t.Run("invalid response consumes the single retry", func(t *testing.T) {
		invalid := llm.MockResponse{Err: &llm.ErrInvalidResponse{
			Content: json.RawMessage(`{"wrong":"shape"}`),
			Err:     errors.New("schema validation failed"),
		}}
		mock := llm.NewMockProvider(invalid, llm.MockResponse{Content: validBatchJSON()})
		svc := New(mock, cfg)

		root, err := svc.GenerateQuestions(context.Background(), sampleRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(root.Questions) != 1 {
			t.Fatalf("expected recovery on retry, got %d questions", len(root.Questions))
		}
		if mock.CallCount() != 2 {
			t.Fatalf("expected 2 invocations, got %d", mock.CallCount())
		}
	})
}

// purposeCapture records the purpose label seen on each Generate call.
type purposeCapture struct {
	inner    llm.Provider
	purposes []string
}

func (p *purposeCapture) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	p.purposes = append(p.purposes, llm.PurposeFrom(ctx))
	return p.inner.Generate(ctx, req)
}

func (p *purposeCapture) ModelID() string { return p.inner.ModelID() }

func TestGenerateQuestions_PurposeLabel(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validBatchJSON()})
	capture := &purposeCapture{inner: mock}
	svc := New(capture, DefaultConfig())

	if _, err := svc.GenerateQuestions(context.Background(), sampleRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(capture.purposes) != 1 || capture.purposes[0] != llm.PurposeQuestionGen {
		t.Errorf("expected purpose question-gen on the call, got %v", capture.purposes)
	}
}
