package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/isingsim/internal/config"
	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/sim"
	log "github.com/sirupsen/logrus"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
	spinsFile    = "spins.csv"
)

var (
	seriesHeader = []string{"time", "energy", "magnetization", "up_spins", "down_spins"}
	spinsHeader  = []string{"x", "y", "spin"}
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Timestamp   time.Time          `json:"timestamp"`
	Config      config.Config      `json:"config"`
	Temperature float64            `json:"temperature"`
	Seed        int64              `json:"seed"`
	Attempts    int                `json:"attempts"`
	Accepted    int                `json:"accepted"`
	Final       sim.Record         `json:"final"`
	Metrics     map[string]float64 `json:"metrics"`
	Elapsed     string             `json:"elapsed,omitempty"`
}

// Save writes metadata.json, series.csv and spins.csv into a fresh run
// directory and returns its id. In final-only runs series.csv holds the
// single final record.
func (s *Store) Save(meta RunMetadata, result *sim.Result, lat *lattice.Lattice) (string, error) {
	now := time.Now()
	name := meta.Config.Name
	if name == "" {
		name = "run"
	}
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Attempts = result.Attempts
	meta.Accepted = result.Accepted
	meta.Final = result.Final
	meta.Metrics = result.Metrics

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	records := result.Records
	if len(records) == 0 {
		records = []sim.Record{result.Final}
	}
	if err := writeSeries(filepath.Join(runDir, seriesFile), records); err != nil {
		return "", err
	}

	if lat != nil {
		if err := writeSpins(filepath.Join(runDir, spinsFile), lat); err != nil {
			return "", err
		}
	}

	log.WithFields(log.Fields{"run": runID, "records": len(records)}).Debug("saved run")
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSeries(path string, records []sim.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteSeriesCSV(f, records)
}

func writeSpins(path string, lat *lattice.Lattice) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteSpinsCSV(f, lat)
}

// List returns the metadata of every stored run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			log.WithField("dir", entry.Name()).Debug("skipping directory without metadata")
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadSeries(runID string) ([]sim.Record, error) {
	rows, err := readCSV(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, err
	}

	records := make([]sim.Record, 0, len(rows))
	for i, row := range rows {
		if len(row) < len(seriesHeader) {
			return nil, fmt.Errorf("run %s: series row %d has %d columns", runID, i+1, len(row))
		}
		var rec sim.Record
		var perr error
		parseInt := func(s string) int {
			v, err := strconv.Atoi(s)
			if err != nil && perr == nil {
				perr = err
			}
			return v
		}
		parseFloat := func(s string) float64 {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil && perr == nil {
				perr = err
			}
			return v
		}
		rec.Step = parseInt(row[0])
		rec.Energy = parseFloat(row[1])
		rec.Magnetization = parseFloat(row[2])
		rec.Up = parseInt(row[3])
		rec.Down = parseInt(row[4])
		if perr != nil {
			return nil, fmt.Errorf("run %s: series row %d: %w", runID, i+1, perr)
		}
		records = append(records, rec)
	}

	return records, nil
}

// LoadSpins rebuilds the final lattice of a run with the stored parameters.
func (s *Store) LoadSpins(runID string) (*lattice.Lattice, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	rows, err := readCSV(filepath.Join(s.baseDir, runID, spinsFile))
	if err != nil {
		return nil, err
	}

	n := meta.Config.Size
	if len(rows) != n*n {
		return nil, fmt.Errorf("run %s: expected %d spins, found %d", runID, n*n, len(rows))
	}

	lat := lattice.New(n, meta.Temperature, meta.Config.H, meta.Config.J)
	for k, row := range rows {
		if len(row) < 3 {
			return nil, fmt.Errorf("run %s: spin row %d has %d columns", runID, k+1, len(row))
		}
		i, err1 := strconv.Atoi(row[0])
		j, err2 := strconv.Atoi(row[1])
		v, err3 := strconv.Atoi(row[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("run %s: malformed spin row %d", runID, k+1)
		}
		spin := lattice.Spin(v)
		if i < 0 || i >= n || j < 0 || j >= n || !spin.Valid() {
			return nil, fmt.Errorf("run %s: invalid spin row %d: %v", runID, k+1, row)
		}
		lat.Set(i, j, spin)
	}

	return lat, nil
}

// readCSV returns every row after the header.
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return [][]string{}, nil
	}
	return records[1:], nil
}
