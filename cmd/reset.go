package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/wrongset"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the wrong-answer history",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

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

	ws := wrongset.NewStore(st.KVRepo(), log)
	set := ws.Load(ctx)
	n := set.Len()
	if n == 0 {
		fmt.Fprintln(out, "Wrong-answer history is already empty.")
		return nil
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		ok, err := confirm(cmd.InOrStdin(), out, fmt.Sprintf("Clear %d wrong answers? [y/N] ", n))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	set.Clear()
	if err := ws.Save(ctx, set); err != nil {
		return fmt.Errorf("clear wrong-answer set: %w", err)
	}
	log.Info().Int("cleared", n).Msg("wrong-answer history reset")
	fmt.Fprintf(out, "Cleared %d wrong answers.\n", n)
	return nil
}

// confirm prints prompt and reports whether the reply starts with y.
// End of input counts as no.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	reply := strings.ToLower(strings.TrimSpace(line))
	return reply == "y" || reply == "yes", nil
}
