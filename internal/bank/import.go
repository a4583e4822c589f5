package bank

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportConfig defines how a spreadsheet maps onto question fields.
type ImportConfig struct {
	FilePath     string // Path to the .xlsx or .csv file
	SheetName    string // Sheet to read (xlsx only; "" = first sheet)
	NumColumn    string // Column with the question number
	TextColumn   string // Column with the prompt
	AnswerColumn string // Column with the correct choice
	SkipHeader   bool   // Skip the first row
}

// DefaultImportConfig returns the default import configuration.
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		NumColumn:    "A",
		TextColumn:   "B",
		AnswerColumn: "C",
		SkipHeader:   true,
	}
}

// ImportResult holds the outcome of an import.
type ImportResult struct {
	TotalRows int
	Imported  int
	Skipped   int
	Errors    []string
}

// Import reads questions from an Excel or CSV file.
func Import(cfg ImportConfig) ([]Question, *ImportResult, error) {
	cols, err := resolveColumns(cfg)
	if err != nil {
		return nil, nil, err
	}

	var rows [][]string
	if strings.EqualFold(filepath.Ext(cfg.FilePath), ".csv") {
		rows, err = readCSV(cfg.FilePath)
	} else {
		rows, err = readExcel(cfg.FilePath, cfg.SheetName)
	}
	if err != nil {
		return nil, nil, err
	}

	start := 0
	if cfg.SkipHeader && len(rows) > 0 {
		start = 1
	}

	result := &ImportResult{}
	var questions []Question
	seen := make(map[ID]bool)

	for i := start; i < len(rows); i++ {
		row := rows[i]
		line := i + 1 // 1-based, as shown by spreadsheet tools

		if isBlank(row) {
			continue
		}
		result.TotalRows++

		num := cell(row, cols[0])
		text := cell(row, cols[1])
		answer := cell(row, cols[2])

		if num == "" || answer == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing num or answer", line))
			continue
		}
		id := ID(num)
		if seen[id] {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: duplicate num %s", line, num))
			continue
		}
		seen[id] = true

		questions = append(questions, Question{Num: id, Text: text, Answer: answer})
		result.Imported++
	}

	return questions, result, nil
}

// WriteJSON writes questions in the format Loader accepts.
func WriteJSON(w io.Writer, questions []Question) error {
	if questions == nil {
		questions = []Question{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(questions); err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	return nil
}

func resolveColumns(cfg ImportConfig) ([3]int, error) {
	var cols [3]int
	for i, name := range []string{cfg.NumColumn, cfg.TextColumn, cfg.AnswerColumn} {
		n, err := excelize.ColumnNameToNumber(strings.ToUpper(strings.TrimSpace(name)))
		if err != nil {
			return cols, fmt.Errorf("invalid column %q: %w", name, err)
		}
		cols[i] = n - 1
	}
	return cols, nil
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open CSV file: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV file: %w", err)
	}
	return rows, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
