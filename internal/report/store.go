package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const reportFileName = "refine.toml"

// maxHistoryEntries is the maximum number of previous run summaries kept.
const maxHistoryEntries = 10

// reportFile is the TOML layout of the report file on disk. The most
// recent run sits in the current section; older runs rotate into history.
type reportFile struct {
	Current Report           `toml:"current"`
	History []HistorySummary `toml:"history"`
}

// HistorySummary is a condensed record of a previous refinement run.
type HistorySummary struct {
	Mesh          string    `toml:"mesh"`
	Scheme        string    `toml:"scheme"`
	Adaptive      bool      `toml:"adaptive"`
	MaxLevel      int       `toml:"max_level"`
	CompletedAt   time.Time `toml:"completed_at"`
	DurationNs    int64     `toml:"duration_ns"`
	TotalVertices int       `toml:"total_vertices"`
	TotalFaces    int       `toml:"total_faces"`
}

// Save writes the report to dir, rotating any existing current run into
// the history array (capped at maxHistoryEntries most recent entries).
// The write goes through a temp file and rename so a crash never leaves
// a partial report behind.
func Save(dir string, r Report) error {
	existing, err := loadReportFile(dir)
	if err != nil {
		return fmt.Errorf("loading existing report: %w", err)
	}

	var history []HistorySummary
	if existing != nil {
		history = append(existing.History, summarize(existing.Current))
	}
	if len(history) > maxHistoryEntries {
		history = history[len(history)-maxHistoryEntries:]
	}

	data, err := toml.Marshal(reportFile{Current: r, History: history})
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	path := filepath.Join(dir, reportFileName)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing temp report file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming report file: %w", err)
	}
	return nil
}

// Load reads the most recent report from dir. Returns a nil report and
// no error when no report file exists yet.
func Load(dir string) (*Report, error) {
	file, err := loadReportFile(dir)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, nil
	}
	return &file.Current, nil
}

// LoadWithHistory reads the current report and up to maxHistoryEntries
// previous run summaries. Both return values are nil when no report file
// exists.
func LoadWithHistory(dir string) (*Report, []HistorySummary, error) {
	file, err := loadReportFile(dir)
	if err != nil {
		return nil, nil, err
	}
	if file == nil {
		return nil, nil, nil
	}
	return &file.Current, file.History, nil
}

// loadReportFile reads and parses the raw report file. Returns nil, nil
// when the file does not exist.
func loadReportFile(dir string) (*reportFile, error) {
	path := filepath.Join(dir, reportFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading report file: %w", err)
	}

	var file reportFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing report file: %w", err)
	}
	return &file, nil
}

// summarize condenses a full report into a history entry.
func summarize(r Report) HistorySummary {
	return HistorySummary{
		Mesh:          r.Mesh,
		Scheme:        r.Scheme,
		Adaptive:      r.Adaptive,
		MaxLevel:      r.MaxLevel,
		CompletedAt:   r.CompletedAt,
		DurationNs:    int64(r.Duration()),
		TotalVertices: r.TotalVertices,
		TotalFaces:    r.TotalFaces,
	}
}
