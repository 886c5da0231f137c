package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"scarecrovv/engine"
)

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped run directory under outDir and returns a
// writer rooted there.
func NewWriter(outDir string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("2006-01-02T15-04-05Z")
	baseDir := filepath.Join(outDir, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

// BaseDir reports the run directory for this writer.
func (w *Writer) BaseDir() string {
	return w.baseDir
}

func (w *Writer) WriteCardSummary(rows []CardRow) error {
	path := filepath.Join(w.baseDir, "card_summary.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create card summary file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"card", "bought", "played", "to_mat", "first_play_early", "first_play_mid", "first_play_late", "games_owned", "wins_when_owned"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write card summary header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Card,
			strconv.Itoa(row.Bought),
			strconv.Itoa(row.Played),
			strconv.Itoa(row.ToMat),
			strconv.Itoa(row.FirstPlayEarly),
			strconv.Itoa(row.FirstPlayMid),
			strconv.Itoa(row.FirstPlayLate),
			strconv.Itoa(row.GamesOwned),
			strconv.Itoa(row.WinsWhenOwned),
		}
		err = writer.Write(record)
		if err != nil {
			return fmt.Errorf("failed to write card summary row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteFieldSummary(rows []FieldRow) error {
	path := filepath.Join(w.baseDir, "field_summary.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create field summary file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"field", "visits", "initiative_claims"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write field summary header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Field,
			strconv.Itoa(row.Visits),
			strconv.Itoa(row.InitiativeClaims),
		}
		err = writer.Write(record)
		if err != nil {
			return fmt.Errorf("failed to write field summary row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteGameSummary(rows []GameRow) error {
	path := filepath.Join(w.baseDir, "game_summary.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create game summary file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"game_id", "seed", "starter", "winner", "reason", "rounds", "vps"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write game summary header: %w", err)
	}

	for _, row := range rows {
		vps := make([]string, len(row.VPs))
		for i, vp := range row.VPs {
			vps[i] = strconv.Itoa(vp)
		}
		record := []string{
			row.GameID,
			strconv.FormatUint(row.Seed, 10),
			strconv.Itoa(row.Starter),
			strconv.Itoa(row.Winner),
			row.Reason,
			strconv.Itoa(row.Rounds),
			strings.Join(vps, "|"),
		}
		err = writer.Write(record)
		if err != nil {
			return fmt.Errorf("failed to write game summary row: %w", err)
		}
	}

	return nil
}

// WriteEventLogs writes each game's event stream as a JSONL file named by
// its game id.
func (w *Writer) WriteEventLogs(results []engine.Result) error {
	logDir := filepath.Join(w.baseDir, "events")
	err := os.MkdirAll(logDir, 0755)
	if err != nil {
		return fmt.Errorf("failed to create event log directory: %w", err)
	}

	for _, res := range results {
		if res.Log == nil {
			continue
		}
		path := filepath.Join(logDir, res.GameID+".jsonl")
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create event log file: %w", err)
		}
		if err := res.Log.WriteJSONL(f); err != nil {
			f.Close()
			return fmt.Errorf("failed to write event log %s: %w", res.GameID, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close event log %s: %w", res.GameID, err)
		}
	}

	return nil
}
