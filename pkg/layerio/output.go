package layerio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/samber/lo"

	"github.com/matzehuels/pathorder/pkg/errors"
	"github.com/matzehuels/pathorder/pkg/geom"
	"github.com/matzehuels/pathorder/pkg/toolpath"
)

// Run is the wire form of one ordered run.
type Run struct {
	Label  toolpath.Label `json:"label"`
	Points []Point        `json:"points"`
}

// Stats summarizes an ordered run sequence.
type Stats struct {
	Runs         int     `json:"runs"`
	Connections  int     `json:"connections"`
	Points       int     `json:"points"`
	PrintLength  float64 `json:"print_length"`
	TravelLength float64 `json:"travel_length"`
	JumpLength   float64 `json:"jump_length"`
}

// Output is the encoded result of ordering a layer.
type Output struct {
	RunID string `json:"run_id,omitempty"`
	Runs  []Run  `json:"runs"`
	Stats Stats  `json:"stats"`
}

// NewOutput converts runs to the wire form and computes their stats.
func NewOutput(runs toolpath.Paths) *Output {
	return &Output{
		Runs: lo.Map(runs, func(r toolpath.LabeledPath, _ int) Run {
			return Run{Label: r.Label, Points: lo.Map(r.Path, fromR2)}
		}),
		Stats: ComputeStats(runs),
	}
}

// ComputeStats measures runs. PrintLength covers extruding runs,
// TravelLength covers connection runs, and JumpLength covers the gaps
// between consecutive runs that do not meet.
func ComputeStats(runs toolpath.Paths) Stats {
	travel, printing := lo.FilterReject(runs, func(r toolpath.LabeledPath, _ int) bool {
		return r.Label.IsConnection()
	})
	length := func(r toolpath.LabeledPath) float64 { return r.Path.Length() }
	return Stats{
		Runs:         len(runs),
		Connections:  len(travel),
		Points:       runs.Points(),
		PrintLength:  lo.SumBy(printing, length),
		TravelLength: lo.SumBy(travel, length),
		JumpLength:   runs.TravelLength(),
	}
}

// Paths converts the output back to runs.
func (o *Output) Paths() toolpath.Paths {
	return lo.Map(o.Runs, func(r Run, _ int) toolpath.LabeledPath {
		return toolpath.LabeledPath{Label: r.Label, Path: geom.OpenPath(lo.Map(r.Points, toR2))}
	})
}

// WriteOutput encodes o as indented JSON.
func WriteOutput(o *Output, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(o); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportOutput writes o to the file at path.
func ExportOutput(o *Output, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteOutput(o, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadOutput decodes an output document.
func ReadOutput(r io.Reader) (*Output, error) {
	var o Output
	if err := json.NewDecoder(r).Decode(&o); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode output")
	}
	return &o, nil
}
