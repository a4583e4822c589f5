package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/store"
	"github.com/abhisek/quizdeck/internal/wrongset"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show wrong answers and recent rounds",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().Int("rounds", 10, "Number of recent rounds to list")
	statsCmd.Flags().Int("missed", 5, "Number of most-missed questions to list")
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := consoleLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	rounds, _ := cmd.Flags().GetInt("rounds")
	missed, _ := cmd.Flags().GetInt("missed")

	set := wrongset.NewStore(st.KVRepo(), log).Load(cmd.Context())
	return writeStats(cmd.Context(), cmd.OutOrStdout(), set, st.EventRepo(), rounds, missed)
}

// writeStats prints the wrong-answer set, the most recent completed
// rounds and the most-missed questions.
func writeStats(ctx context.Context, w io.Writer, set wrongset.Set, repo store.EventRepo, roundLimit, missedLimit int) error {
	ids := set.IDs()
	fmt.Fprintf(w, "Wrong answers: %d\n", len(ids))
	if len(ids) > 0 {
		fmt.Fprintf(w, "  %s\n", strings.Join(ids, ", "))
	}

	summaries, err := repo.QueryRoundSummaries(ctx, store.QueryOpts{Limit: roundLimit})
	if err != nil {
		return fmt.Errorf("query rounds: %w", err)
	}
	fmt.Fprintln(w)
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No completed rounds yet.")
	} else {
		t := newTable("Date", "Mode", "Time", "Answered", "Correct", "Accuracy")
		for _, r := range summaries {
			t.Row(
				r.Timestamp.Format("2006-01-02 15:04"),
				r.Mode,
				fmt.Sprintf("%d:%02d", r.DurationSecs/60, r.DurationSecs%60),
				fmt.Sprintf("%d/%d", r.Answered, r.Total),
				strconv.Itoa(r.Correct),
				fmt.Sprintf("%d%%", session.Accuracy(r.Correct, r.Answered)),
			)
		}
		fmt.Fprintln(w, "Recent rounds")
		fmt.Fprintln(w, t.Render())
	}

	misses, err := repo.MostMissed(ctx, missedLimit)
	if err != nil {
		return fmt.Errorf("query misses: %w", err)
	}
	if len(misses) == 0 {
		return nil
	}
	t := newTable("Question", "Misses")
	for _, m := range misses {
		t.Row("#"+m.QuestionID, strconv.Itoa(m.Misses))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Most missed")
	fmt.Fprintln(w, t.Render())
	return nil
}

func newTable(headers ...string) *table.Table {
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cell.Bold(true)
			}
			return cell
		})
}
