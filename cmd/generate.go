package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/quizforge/quizforge/internal/llm"
	"github.com/quizforge/quizforge/internal/quiz"
	"github.com/quizforge/quizforge/internal/quizgen"
	"github.com/quizforge/quizforge/internal/store"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a quiz with AI-authored questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := requestFromFlags(cmd)
		if err != nil {
			return err
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
		if err != nil {
			return fmt.Errorf("configure LLM provider: %w", err)
		}

		cfg := quizgen.DefaultConfig()
		if useSchema, _ := cmd.Flags().GetBool("strict"); useSchema {
			cfg.UseSchema = true
		}
		gateway := quizgen.New(provider, cfg)

		timeout, _ := cmd.Flags().GetDuration("timeout")
		genCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		fmt.Printf("Generating %d %s questions on %q...\n", req.Count, req.Difficulty, req.Topic)
		root, err := gateway.GenerateQuestions(genCtx, req)
		if err != nil {
			return err
		}

		q := quiz.Quiz{
			ID:         uuid.NewString(),
			Topic:      req.Topic,
			Difficulty: string(req.Difficulty),
			CreatedAt:  time.Now(),
		}

		questions, err := quizgen.MapQuestions(root.Questions, q.ID, quizgen.MapParams{
			Marks:            req.Marks,
			TimeLimitSeconds: req.TimeLimitSeconds,
		}, quizgen.UUIDGenerator{})
		if err != nil {
			return fmt.Errorf("map generated questions: %w", err)
		}

		quizzes := st.QuizRepo()
		if err := quizzes.PutQuiz(ctx, q); err != nil {
			return err
		}
		if err := quizzes.AddQuestions(ctx, q.ID, questions); err != nil {
			return err
		}

		fmt.Printf("Created quiz %s with %d questions.\n", q.ID, len(questions))
		return nil
	},
}

// requestFromFlags builds and validates the generation request. The
// pipeline trusts its input, so validation happens here at the edge.
func requestFromFlags(cmd *cobra.Command) (quizgen.GenerationRequest, error) {
	topic, _ := cmd.Flags().GetString("topic")
	count, _ := cmd.Flags().GetInt("count")
	difficulty, _ := cmd.Flags().GetString("difficulty")
	options, _ := cmd.Flags().GetInt("options")
	marks, _ := cmd.Flags().GetFloat64("marks")
	timeLimit, _ := cmd.Flags().GetInt("time")

	var zero quizgen.GenerationRequest
	if topic == "" {
		return zero, fmt.Errorf("--topic is required")
	}
	if count < 1 {
		return zero, fmt.Errorf("--count must be at least 1")
	}
	switch quizgen.Difficulty(difficulty) {
	case quizgen.DifficultyEasy, quizgen.DifficultyMedium, quizgen.DifficultyHard:
	default:
		return zero, fmt.Errorf("--difficulty must be easy, medium, or hard")
	}
	if options < 2 {
		return zero, fmt.Errorf("--options must be at least 2")
	}
	if marks <= 0 {
		return zero, fmt.Errorf("--marks must be positive")
	}
	if timeLimit < 1 {
		return zero, fmt.Errorf("--time must be at least 1 second")
	}

	return quizgen.GenerationRequest{
		Topic:            topic,
		Count:            count,
		Difficulty:       quizgen.Difficulty(difficulty),
		OptionsCount:     options,
		Marks:            marks,
		TimeLimitSeconds: timeLimit,
	}, nil
}

func init() {
	generateCmd.Flags().StringP("topic", "t", "", "Subject matter for the questions")
	generateCmd.Flags().IntP("count", "n", 5, "Number of questions to generate")
	generateCmd.Flags().StringP("difficulty", "d", "medium", "Difficulty: easy, medium, or hard")
	generateCmd.Flags().Int("options", 4, "Answer choices per question")
	generateCmd.Flags().Float64("marks", 1, "Marks per question")
	generateCmd.Flags().Int("time", 60, "Time budget per question in seconds")
	generateCmd.Flags().Bool("strict", false, "Validate model output against a JSON schema")
	generateCmd.Flags().Duration("timeout", 2*time.Minute, "Overall generation timeout")
}
