package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/piwi3910/chipcut/internal/model"
)

// FormatVersion is written into every file this package produces.
const FormatVersion = "1.0.0"

// Job is the on-disk description of one cutting job.
type Job struct {
	Name      string       `json:"name"`
	Chipboard JobChipboard `json:"chipboard"`
	Parts     []JobPart    `json:"parts"`
	Kerf      *float64     `json:"kerf,omitempty"`     // nil means use the configured default
	Strategy  string       `json:"strategy,omitempty"` // empty means use the configured default
}

// JobChipboard is the stock sheet of a job. Margin falls back to the
// configured default when omitted.
type JobChipboard struct {
	ID        string   `json:"id,omitempty"`
	Name      string   `json:"name"`
	Width     float64  `json:"width"`
	Height    float64  `json:"height"`
	Thickness float64  `json:"thickness,omitempty"`
	Margin    *float64 `json:"margin,omitempty"`
}

// Board returns the job's chipboard, using defaultMargin if the job sets none.
func (j Job) Board(defaultMargin float64) model.Chipboard {
	id := j.Chipboard.ID
	if id == "" {
		id = "board"
	}
	margin := defaultMargin
	if j.Chipboard.Margin != nil {
		margin = *j.Chipboard.Margin
	}
	return model.Chipboard{
		ID:         id,
		Name:       j.Chipboard.Name,
		Dimensions: model.Dimensions{Width: j.Chipboard.Width, Height: j.Chipboard.Height},
		Thickness:  j.Chipboard.Thickness,
		Margin:     margin,
	}
}

// JobPart is a part spec as written by hand. CanRotate defaults to true.
type JobPart struct {
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name"`
	Width     float64         `json:"width"`
	Height    float64         `json:"height"`
	Count     int             `json:"count"`
	CanRotate *bool           `json:"can_rotate,omitempty"`
	PvcEdges  *model.PvcEdges `json:"pvc_edges,omitempty"`
}

// Specs converts the job's parts into PartSpecs. Parts without an ID get a
// stable positional one so repeated runs of the same file agree.
func (j Job) Specs() []model.PartSpec {
	specs := make([]model.PartSpec, len(j.Parts))
	for i, p := range j.Parts {
		id := p.ID
		if id == "" {
			id = fmt.Sprintf("part-%d", i+1)
		}
		canRotate := true
		if p.CanRotate != nil {
			canRotate = *p.CanRotate
		}
		specs[i] = model.PartSpec{
			ID:         id,
			Name:       p.Name,
			Dimensions: model.Dimensions{Width: p.Width, Height: p.Height},
			CanRotate:  canRotate,
			Count:      p.Count,
			PvcEdges:   p.PvcEdges,
		}
	}
	return specs
}

// KerfOr returns the job's kerf, or fallback when the job does not set one.
func (j Job) KerfOr(fallback float64) float64 {
	if j.Kerf == nil {
		return fallback
	}
	return *j.Kerf
}

// LoadJob reads a job file.
func LoadJob(path string) (Job, error) {
	var job Job
	if err := readJSON(path, &job); err != nil {
		return Job{}, fmt.Errorf("failed to load job: %w", err)
	}
	return job, nil
}

// SaveJob writes a job file, creating parent directories as needed.
func SaveJob(path string, job Job) error {
	if err := writeJSON(path, job); err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

// ResultFile wraps a placement result with the job it came from.
type ResultFile struct {
	Version   string                `json:"version"`
	CreatedAt string                `json:"created_at"`
	Job       string                `json:"job"`
	Result    model.PlacementResult `json:"result"`
	Offcuts   []model.Remainder     `json:"offcuts,omitempty"` // remainders worth keeping, largest first

	OffcutArea  float64           `json:"offcut_area"`            // mm²
	OffcutStock []model.Chipboard `json:"offcut_stock,omitempty"` // offcuts as boards for a later job
}

// NewResultFile stamps a result with the current format version and time.
func NewResultFile(jobName string, result model.PlacementResult) ResultFile {
	return ResultFile{
		Version:   FormatVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Job:       jobName,
		Result:    result,
	}
}

// SetOffcuts records the offcuts worth keeping, their total area, and the
// same offcuts as chipboards cut from source.
func (rf *ResultFile) SetOffcuts(offcuts []model.Remainder, source model.Chipboard) {
	rf.Offcuts = offcuts
	rf.OffcutArea = model.TotalRemainderArea(offcuts)
	rf.OffcutStock = nil
	for _, o := range offcuts {
		rf.OffcutStock = append(rf.OffcutStock, o.ToChipboard(source))
	}
}

// SaveResult writes a placement result file.
func SaveResult(path string, rf ResultFile) error {
	if err := writeJSON(path, rf); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

// LoadResult reads a placement result file.
func LoadResult(path string) (ResultFile, error) {
	var rf ResultFile
	if err := readJSON(path, &rf); err != nil {
		return ResultFile{}, fmt.Errorf("failed to load result: %w", err)
	}
	if rf.Version == "" {
		return ResultFile{}, fmt.Errorf("invalid result file: missing version field")
	}
	return rf, nil
}

// LayoutReport is one recomputed sheet together with its statistics.
type LayoutReport struct {
	Layout     model.SheetLayout         `json:"layout"`
	Statistics model.PlacementStatistics `json:"statistics"`
}

// LoadLayout reads a single sheet layout, typically one edited by hand.
// A LayoutReport is accepted too, so recomputed sheets can be edited again.
func LoadLayout(path string) (model.SheetLayout, error) {
	var file struct {
		Layout *model.SheetLayout `json:"layout"`
		model.SheetLayout
	}
	if err := readJSON(path, &file); err != nil {
		return model.SheetLayout{}, fmt.Errorf("failed to load layout: %w", err)
	}
	if file.Layout != nil {
		return *file.Layout, nil
	}
	return file.SheetLayout, nil
}

// SaveLayoutReport writes a recomputed sheet and its statistics.
func SaveLayoutReport(path string, report LayoutReport) error {
	if err := writeJSON(path, report); err != nil {
		return fmt.Errorf("failed to save layout: %w", err)
	}
	return nil
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}
	return expanded, nil
}

func readJSON(path string, v any) error {
	path, err := ExpandPath(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	path, err := ExpandPath(path)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
