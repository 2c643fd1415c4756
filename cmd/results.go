package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/quizforge/quizforge/internal/quiz"
	"github.com/spf13/cobra"
)

var resultsCmd = &cobra.Command{
	Use:   "results <quiz-id>",
	Short: "Show recorded results for a quiz",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		results, err := st.ResultRepo().ListByQuiz(ctx, args[0])
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("No results recorded for this quiz.")
			return nil
		}

		fmt.Printf("%-19s  %-24s  %8s  %8s\n", "Taken", "Student", "Score", "Total")
		fmt.Println(strings.Repeat("─", 66))
		for _, r := range results {
			fmt.Printf("%-19s  %-24s  %8.1f  %8.1f\n",
				r.TakenAt.Local().Format("2006-01-02 15:04:05"),
				r.StudentName, r.Score, r.TotalMarks,
			)
		}

		summary, err := st.ResultRepo().Summary(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Println(strings.Repeat("─", 66))
		fmt.Printf("%d attempts, average %.1f, best %.1f\n",
			summary.Attempts, summary.AvgScore, summary.MaxScore)
		return nil
	},
}

var resultsRecordCmd = &cobra.Command{
	Use:   "record <quiz-id>",
	Short: "Record a completed quiz attempt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		student, _ := cmd.Flags().GetString("student")
		score, _ := cmd.Flags().GetFloat64("score")

		if student == "" {
			return fmt.Errorf("--student is required")
		}
		if score < 0 {
			return fmt.Errorf("--score must not be negative")
		}

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

		var total float64
		for _, question := range questions {
			total += question.Marks
		}
		if score > total {
			return fmt.Errorf("score %.1f exceeds the quiz total of %.1f", score, total)
		}

		res := quiz.Result{
			ID:          uuid.NewString(),
			QuizID:      q.ID,
			StudentName: student,
			Score:       score,
			TotalMarks:  total,
			TakenAt:     time.Now(),
		}
		if err := st.ResultRepo().Append(ctx, res); err != nil {
			return err
		}

		fmt.Printf("Recorded %.1f/%.1f for %s on quiz %s.\n", score, total, student, q.ID)
		return nil
	},
}

func init() {
	resultsRecordCmd.Flags().StringP("student", "s", "", "Name of the student")
	resultsRecordCmd.Flags().Float64("score", 0, "Achieved score")

	resultsCmd.AddCommand(resultsRecordCmd)
}
