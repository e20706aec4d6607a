// Package report exports the per-match timing record of AI searches.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/search"
)

const (
	chartWidth = 40

	// smallest time drawn on the log axis; zero durations are clamped to it
	minSeconds = 1e-9
)

type Reporter struct {
	logger    *slog.Logger
	out       io.Writer
	algorithm string
	csvPath   string
	chart     bool
}

func NewReporter(logger *slog.Logger, out io.Writer, algorithm, csvPath string, chart bool) *Reporter {
	return &Reporter{
		logger:    logger.With("component", "report"),
		out:       out,
		algorithm: algorithm,
		csvPath:   csvPath,
		chart:     chart,
	}
}

// Report - prints the chart and/or writes the CSV for a finished match.
func (that *Reporter) Report(match *entity.Match) error {
	seconds := match.TimingSeconds()

	if that.chart {
		if err := RenderChart(that.out, Title(that.algorithm), seconds); err != nil {
			return fmt.Errorf("failed to render timings chart: %w", err)
		}
	}

	if that.csvPath != "" {
		if err := that.writeCSVFile(seconds); err != nil {
			return err
		}
		that.logger.Info("timings written", "path", that.csvPath, "match_id", match.ID, "moves", len(seconds))
	}

	return nil
}

func (that *Reporter) writeCSVFile(seconds []float64) error {
	if err := os.MkdirAll(filepath.Dir(that.csvPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(that.csvPath)
	if err != nil {
		return fmt.Errorf("failed to create timings file: %w", err)
	}
	defer f.Close()

	if err = WriteCSV(f, seconds); err != nil {
		return err
	}

	return nil
}

// WriteCSV - one row per timed AI move, 1-based.
func WriteCSV(w io.Writer, seconds []float64) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"move", "seconds"}); err != nil {
		return fmt.Errorf("failed to write timings header: %w", err)
	}

	for i, value := range seconds {
		row := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(value, 'f', 6, 64),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write timings row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush timings: %w", err)
	}

	return nil
}

// RenderChart - horizontal bars on a logarithmic time axis, labelled by move index.
func RenderChart(w io.Writer, title string, seconds []float64) error {
	var sb strings.Builder

	sb.WriteString(title + "\n")

	if len(seconds) == 0 {
		sb.WriteString("no timed moves\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	low, high := logBounds(seconds)
	for i, value := range seconds {
		bar := strings.Repeat("#", barLength(value, low, high))
		fmt.Fprintf(&sb, "%3d | %-*s %.6f\n", i+1, chartWidth, bar, value)
	}
	sb.WriteString("time (s), log scale\n")

	_, err := io.WriteString(w, sb.String())

	return err
}

// logBounds - the axis starts one decade below the fastest move.
func logBounds(seconds []float64) (float64, float64) {
	low, high := math.Inf(1), math.Inf(-1)
	for _, value := range seconds {
		exp := math.Log10(max(value, minSeconds))
		low = min(low, exp)
		high = max(high, exp)
	}

	return low - 1, high
}

func barLength(value, low, high float64) int {
	exp := math.Log10(max(value, minSeconds))
	length := int(math.Round((exp - low) / (high - low) * chartWidth))

	return max(1, min(length, chartWidth))
}

func Title(algorithm string) string {
	switch algorithm {
	case search.AlgorithmMinimax:
		return "Minimax"
	case search.AlgorithmAlphaBeta:
		return "Alpha-Beta"
	default:
		return algorithm
	}
}
