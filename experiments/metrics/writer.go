package metrics

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type AgentConfig struct {
	ID            int
	Exploration   float64
	Simulations   int
	Duration      time.Duration
	DefaultPolicy bool
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID
	Agent2 int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Setup struct {
	RunID     string        `json:"runId"`
	Name      string        `json:"name"`
	NumGames  int           `json:"numGames"` // per matchup
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime"`
	Duration  time.Duration `json:"duration"`
}

var ErrMalformedSamples = errors.New("malformed sample file")

type Writer struct {
	runID   string
	baseDir string
}

// NewWriter creates root/name/<timestamp> for the files of one experiment run.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	baseDir := filepath.Join(root, name, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		runID:   uuid.NewString(),
		baseDir: baseDir,
	}, nil
}

func (w *Writer) RunID() string {
	return w.runID
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteSetup(setup Setup) error {
	setup.RunID = w.runID
	f, err := os.Create(filepath.Join(w.baseDir, "setup.json"))
	if err != nil {
		return fmt.Errorf("failed to create setup file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(setup); err != nil {
		return fmt.Errorf("failed to write setup: %w", err)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "exploration", "simulations", "duration", "default_policy"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			formatFloat(config.Exploration),
			strconv.Itoa(config.Simulations),
			config.Duration.String(),
			strconv.FormatBool(config.DefaultPolicy),
		})
	}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "starting_player", "winner", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.Itoa(record.StartingPlayer),
			strconv.Itoa(record.Winner),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "duration", "episodes", "rollouts", "max_depth"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.Rollouts),
			strconv.Itoa(record.MaxDepth),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}

// WriteSamples stores an optimiser's (point, reward) history in samples.csv
// and returns the file path.
func (w *Writer) WriteSamples(samples [][]float64, rewards []float64) (string, error) {
	path := filepath.Join(w.baseDir, "samples.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create samples file: %w", err)
	}
	defer f.Close()

	if err := EncodeSamples(f, samples, rewards); err != nil {
		return "", err
	}
	return path, nil
}

// EncodeSamples writes one row per sample: step, reward, then coordinates.
// Floats are written in shortest round-trip form.
func EncodeSamples(out io.Writer, samples [][]float64, rewards []float64) error {
	if len(samples) != len(rewards) {
		return fmt.Errorf("%w: %d samples, %d rewards", ErrMalformedSamples, len(samples), len(rewards))
	}
	dimension := 0
	if len(samples) > 0 {
		dimension = len(samples[0])
	}

	writer := csv.NewWriter(out)
	header := []string{"step", "reward"}
	for d := 0; d < dimension; d++ {
		header = append(header, "x"+strconv.Itoa(d))
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write samples header: %w", err)
	}

	for i, point := range samples {
		if len(point) != dimension {
			return fmt.Errorf("%w: sample %d has dimension %d, want %d", ErrMalformedSamples, i, len(point), dimension)
		}
		row := []string{strconv.Itoa(i), formatFloat(rewards[i])}
		for _, x := range point {
			row = append(row, formatFloat(x))
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write sample row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func ReadSamples(path string) ([][]float64, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open samples file: %w", err)
	}
	defer f.Close()
	return DecodeSamples(f)
}

func DecodeSamples(in io.Reader) ([][]float64, []float64, error) {
	records, err := csv.NewReader(in).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read samples: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%w: missing header", ErrMalformedSamples)
	}

	dimension := len(records[0]) - 2
	if dimension < 0 {
		return nil, nil, fmt.Errorf("%w: header %v", ErrMalformedSamples, records[0])
	}
	samples := make([][]float64, 0, len(records)-1)
	rewards := make([]float64, 0, len(records)-1)
	for i, record := range records[1:] {
		reward, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: row %d: %v", ErrMalformedSamples, i+1, err)
		}
		point := make([]float64, dimension)
		for d := range point {
			if point[d], err = strconv.ParseFloat(record[d+2], 64); err != nil {
				return nil, nil, fmt.Errorf("%w: row %d: %v", ErrMalformedSamples, i+1, err)
			}
		}
		samples = append(samples, point)
		rewards = append(rewards, reward)
	}
	return samples, rewards, nil
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.baseDir, name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
