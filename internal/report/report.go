package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	v1 "github.com/jwodder/axum-hammer/api/v1"
	"github.com/jwodder/axum-hammer/internal/config"
	"github.com/jwodder/axum-hammer/internal/models"
	"github.com/jwodder/axum-hammer/internal/util"
)

const summarySheet = "Summary"

var (
	workersColor = color.New(color.FgCyan, color.Bold)
	elapsedColor = color.New(color.FgGreen)
	spreadColor  = color.New(color.Faint)
)

// Write renders run in format to the file at output, or to stdout when output is empty.
func Write(format, output string, stdout io.Writer, run *models.Run) (err error) {
	var render func(io.Writer, *models.Run) error
	switch format {
	case config.FormatText:
		render = WriteText
	case config.FormatJSON:
		render = WriteJSON
	case config.FormatCSV:
		render = WriteCSV
	case config.FormatXLSX:
		render = WriteXLSX
	default:
		return fmt.Errorf("unknown report format %q", format)
	}

	w := stdout
	if output != "" {
		f, createErr := os.Create(output)
		if createErr != nil {
			return fmt.Errorf("failed to create report file: %w", createErr)
		}
		defer multierr.AppendInvoke(&err, multierr.Close(f))
		w = f
	}

	if err = render(w, run); err != nil {
		return err
	}

	if output != "" {
		zap.S().Named("report").Infow("report written", "format", format, "path", output)
	}
	return nil
}

// WriteText prints one line per traversal.
func WriteText(w io.Writer, run *models.Run) error {
	for _, t := range run.Traversals {
		if err := WriteTraversalLine(w, t); err != nil {
			return err
		}
	}
	return nil
}

// WriteTraversalLine prints "N workers: elapsed (mean ± stddev)".
func WriteTraversalLine(w io.Writer, t models.Traversal) error {
	_, err := fmt.Fprintf(w, "%s: %s %s\n",
		workersColor.Sprintf("%d workers", t.Workers),
		elapsedColor.Sprint(t.Elapsed),
		spreadColor.Sprintf("(%s ± %s)", t.Stats.Mean, t.Stats.StdDev),
	)
	return err
}

func WriteJSON(w io.Writer, run *models.Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v1.NewReportFromModel(*run)); err != nil {
		return fmt.Errorf("failed to encode json report: %w", err)
	}
	return nil
}

// WriteCSV writes one row per request: workers, index within the traversal, seconds.
func WriteCSV(w io.Writer, run *models.Run) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"workers", "index", "seconds"}); err != nil {
		return err
	}
	for _, t := range run.Traversals {
		workers := strconv.Itoa(t.Workers)
		for i, d := range t.RequestTimes {
			row := []string{workers, strconv.Itoa(i), strconv.FormatFloat(d.Seconds(), 'f', -1, 64)}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write csv report: %w", err)
	}
	return nil
}

// WriteXLSX writes a workbook with a Summary sheet and one sheet of request times per
// traversal.
func WriteXLSX(w io.Writer, run *models.Run) (err error) {
	f := excelize.NewFile()
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}

	header := []any{"workers", "elapsed_s", "mean_s", "stddev_s", "min_s", "max_s", "p50_s", "p95_s"}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return err
	}

	for i, t := range run.Traversals {
		row := []any{
			t.Workers,
			util.Seconds(t.Elapsed),
			util.Seconds(t.Stats.Mean),
			util.Seconds(t.Stats.StdDev),
			util.Seconds(t.Stats.Min),
			util.Seconds(t.Stats.Max),
			util.Seconds(t.Stats.P50),
			util.Seconds(t.Stats.P95),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}

		if err := writeTraversalSheet(f, TraversalSheetName(i, t.Workers), t); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx report: %w", err)
	}
	return nil
}

// TraversalSheetName names the sheet of the i-th traversal. Worker counts may repeat, so
// the position is part of the name.
func TraversalSheetName(i, workers int) string {
	return fmt.Sprintf("T%d %d workers", i+1, workers)
}

func writeTraversalSheet(f *excelize.File, name string, t models.Traversal) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	if err := f.SetSheetRow(name, "A1", &[]any{"index", "seconds"}); err != nil {
		return err
	}
	for i, d := range t.RequestTimes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &[]any{i, d.Seconds()}); err != nil {
			return err
		}
	}
	return nil
}
