package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/sim"
)

type ExportData struct {
	ID          string             `json:"id"`
	Size        int                `json:"size"`
	Temperature float64            `json:"temperature"`
	H           float64            `json:"h"`
	J           float64            `json:"j"`
	Steps       int                `json:"steps"`
	Seed        int64              `json:"seed"`
	Records     []sim.Record       `json:"records"`
	Metrics     map[string]float64 `json:"metrics"`
}

// WriteSeriesCSV writes one row per record with columns
// time,energy,magnetization,up_spins,down_spins.
func WriteSeriesCSV(w io.Writer, records []sim.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(seriesHeader); err != nil {
		return err
	}

	for _, rec := range records {
		row := []string{
			strconv.Itoa(rec.Step),
			strconv.FormatFloat(rec.Energy, 'g', -1, 64),
			strconv.FormatFloat(rec.Magnetization, 'g', -1, 64),
			strconv.Itoa(rec.Up),
			strconv.Itoa(rec.Down),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteSpinsCSV writes one row per cell with columns x,y,spin.
func WriteSpinsCSV(w io.Writer, lat *lattice.Lattice) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(spinsHeader); err != nil {
		return err
	}

	var werr error
	lat.Each(func(i, j int, s lattice.Spin) {
		if werr != nil {
			return
		}
		werr = cw.Write([]string{strconv.Itoa(i), strconv.Itoa(j), strconv.Itoa(int(s))})
	})
	if werr != nil {
		return werr
	}

	cw.Flush()
	return cw.Error()
}

func ExportJSON(w io.Writer, meta *RunMetadata, records []sim.Record) error {
	data := ExportData{
		ID:          meta.ID,
		Size:        meta.Config.Size,
		Temperature: meta.Temperature,
		H:           meta.Config.H,
		J:           meta.Config.J,
		Steps:       meta.Config.Steps,
		Seed:        meta.Seed,
		Records:     records,
		Metrics:     meta.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
