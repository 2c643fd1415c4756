package cmd

import (
	"fmt"
	"strings"

	"github.com/quizforge/quizforge/internal/store"
	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Inspect stored quizzes",
}

var quizListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		quizzes, err := st.QuizRepo().ListQuizzes(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("list quizzes: %w", err)
		}

		if len(quizzes) == 0 {
			fmt.Println("No quizzes found.")
			return nil
		}

		fmt.Printf("%-36s  %-19s  %-8s  %s\n", "ID", "Created", "Level", "Topic")
		fmt.Println(strings.Repeat("─", 90))
		for _, q := range quizzes {
			fmt.Printf("%-36s  %-19s  %-8s  %s\n",
				q.ID,
				q.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				q.Difficulty,
				q.Topic,
			)
		}
		return nil
	},
}

var quizShowCmd = &cobra.Command{
	Use:   "show <quiz-id>",
	Short: "Show a quiz and its questions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		showAnswers, _ := cmd.Flags().GetBool("answers")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		q, err := st.QuizRepo().GetQuiz(ctx, args[0])
		if err != nil {
			return err
		}
		questions, err := st.QuizRepo().Questions(ctx, q.ID)
		if err != nil {
			return err
		}

		fmt.Printf("Quiz:       %s\n", q.ID)
		fmt.Printf("Topic:      %s\n", q.Topic)
		fmt.Printf("Difficulty: %s\n", q.Difficulty)
		fmt.Printf("Created:    %s\n", q.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Questions:  %d\n\n", len(questions))

		for i, question := range questions {
			fmt.Printf("%d. %s  (%g marks, %g min)\n", i+1, question.QuestionText, question.Marks, question.TimeLimitMinutes)
			for j, opt := range question.Options {
				marker := " "
				if showAnswers && opt == question.CorrectAnswer {
					marker = "*"
				}
				fmt.Printf("   %s %c) %s\n", marker, 'a'+rune(j), opt)
			}
			if showAnswers && question.Explanation != "" {
				fmt.Printf("   — %s\n", question.Explanation)
			}
			fmt.Println()
		}
		return nil
	},
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

func init() {
	quizListCmd.Flags().IntP("limit", "n", 20, "Number of quizzes to show")
	quizShowCmd.Flags().Bool("answers", false, "Include correct answers and explanations")

	quizCmd.AddCommand(quizListCmd)
	quizCmd.AddCommand(quizShowCmd)
}
