package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/bank"
)

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx|file.csv>",
	Short: "Convert a spreadsheet into a question bank",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	def := bank.DefaultImportConfig()
	f := importCmd.Flags()
	f.String("sheet", "", "Sheet to read (xlsx only, default first sheet)")
	f.String("num-col", def.NumColumn, "Column holding the question number")
	f.String("text-col", def.TextColumn, "Column holding the question text")
	f.String("answer-col", def.AnswerColumn, "Column holding the correct choice")
	f.Bool("no-header", false, "Treat the first row as data")
	f.StringP("output", "o", "questions.json", `Output file ("-" for stdout)`)
}

func runImport(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	cfg := bank.DefaultImportConfig()
	cfg.FilePath = args[0]
	cfg.SheetName, _ = f.GetString("sheet")
	cfg.NumColumn, _ = f.GetString("num-col")
	cfg.TextColumn, _ = f.GetString("text-col")
	cfg.AnswerColumn, _ = f.GetString("answer-col")
	noHeader, _ := f.GetBool("no-header")
	cfg.SkipHeader = !noHeader
	output, _ := f.GetString("output")

	questions, result, err := bank.Import(cfg)
	if err != nil {
		return fmt.Errorf("import %s: %w", cfg.FilePath, err)
	}

	if err := writeBank(cmd.OutOrStdout(), output, questions); err != nil {
		return err
	}

	report := cmd.ErrOrStderr()
	for _, e := range result.Errors {
		fmt.Fprintln(report, "skipped", e)
	}
	fmt.Fprintf(report, "Imported %d of %d rows (%d skipped)\n", result.Imported, result.TotalRows, result.Skipped)
	return nil
}

func writeBank(stdout io.Writer, output string, questions []bank.Question) error {
	if output == "-" {
		return bank.WriteJSON(stdout, questions)
	}
	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	if err := bank.WriteJSON(file, questions); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
