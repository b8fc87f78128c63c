package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/chipcut/internal/engine"
	"github.com/piwi3910/chipcut/internal/model"
	"github.com/piwi3910/chipcut/internal/project"
)

const testJob = `{
  "name": "Shelf",
  "chipboard": {"name": "Oak", "width": 1000, "height": 500, "margin": 0},
  "kerf": 3,
  "parts": [
    {"id": "a", "name": "Side", "width": 400, "height": 300, "count": 1, "pvc_edges": {"top": true}}
  ]
}`

// run executes a fresh command tree inside dir and returns stdout.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(dir)

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// writeLayout stores a bare sheet layout the way a hand-edited file looks.
func writeLayout(t *testing.T, dir string, layout model.SheetLayout) string {
	t.Helper()
	data, err := json.Marshal(layout)
	require.NoError(t, err)
	return writeFile(t, dir, "sheet.json", string(data))
}

func TestVersion(t *testing.T) {
	out, err := run(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "chipcut version dev\n", out)
}

func TestPlace_Stdout(t *testing.T) {
	dir := t.TempDir()
	job := writeFile(t, dir, "job.json", testJob)

	out, err := run(t, dir, "place", "--job", job)
	require.NoError(t, err)

	var rf project.ResultFile
	require.NoError(t, json.Unmarshal([]byte(out), &rf))
	assert.Equal(t, "Shelf", rf.Job)
	require.Len(t, rf.Result.Sheets, 1)
	assert.Equal(t, 24.0, rf.Result.Statistics.Efficiency)
	assert.Equal(t, 400.0, rf.Result.Statistics.EdgeBandingLength)
	require.Len(t, rf.Offcuts, 2)
	assert.Equal(t, 1000.0*197, rf.Offcuts[0].Area)
	assert.Equal(t, 1000.0*197+597.0*297, rf.OffcutArea)
	require.Len(t, rf.OffcutStock, 2)
	assert.Equal(t, model.Dimensions{Width: 1000, Height: 197}, rf.OffcutStock[0].Dimensions)
	assert.Zero(t, rf.OffcutStock[0].Margin)
	assert.Equal(t, "Remainder Oak", rf.OffcutStock[0].Name)
}

func TestPlace_OutFileAndRecompute(t *testing.T) {
	dir := t.TempDir()
	job := writeFile(t, dir, "job.json", testJob)
	resultPath := filepath.Join(dir, "out", "result.json")

	_, err := run(t, dir, "place", "--job", job, "--out", resultPath)
	require.NoError(t, err)

	rf, err := project.LoadResult(resultPath)
	require.NoError(t, err)
	rf.Result.Sheets[0].Parts[0].X = 600
	require.NoError(t, project.SaveResult(resultPath, rf))

	out, err := run(t, dir, "recompute", "--result", resultPath, "--sheet", "0", "--kerf", "3")
	require.NoError(t, err)

	var updated project.ResultFile
	require.NoError(t, json.Unmarshal([]byte(out), &updated))
	assert.Equal(t, []model.CutLine{
		{X1: 600, Y1: 0, X2: 600, Y2: 300},
		{X1: 600, Y1: 300, X2: 1000, Y2: 300},
	}, updated.Result.Sheets[0].CutLines)
	assert.Equal(t, 24.0, updated.Result.Statistics.Efficiency)
	assert.Equal(t, 1, updated.Result.Statistics.RequestedParts)
}

func TestRecompute_RejectsOverlappingLayout(t *testing.T) {
	dir := t.TempDir()
	layout := model.SheetLayout{
		Chipboard: model.Chipboard{ID: "b", Dimensions: model.Dimensions{Width: 1000, Height: 500}},
		Parts: []model.PlacedPart{
			{ID: "p1", Dimensions: model.Dimensions{Width: 400, Height: 300}},
			{ID: "p2", X: 100, Y: 100, Dimensions: model.Dimensions{Width: 400, Height: 300}},
		},
	}
	path := writeLayout(t, dir, layout)

	_, err := run(t, dir, "recompute", "--layout", path)

	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrLayoutInconsistency))
}

func TestRecompute_Layout(t *testing.T) {
	dir := t.TempDir()
	layout := model.SheetLayout{
		Chipboard: model.Chipboard{ID: "b", Dimensions: model.Dimensions{Width: 1000, Height: 500}},
		Parts:     []model.PlacedPart{{ID: "p1", Dimensions: model.Dimensions{Width: 500, Height: 500}}},
	}
	path := writeLayout(t, dir, layout)

	out, err := run(t, dir, "recompute", "--layout", path, "--kerf", "0")
	require.NoError(t, err)

	var report project.LayoutReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Len(t, report.Layout.CutLines, 1)
	assert.Equal(t, 50.0, report.Statistics.Efficiency)
}

func TestRecompute_LayoutOutFileKeepsStatistics(t *testing.T) {
	dir := t.TempDir()
	layout := model.SheetLayout{
		Chipboard: model.Chipboard{ID: "b", Dimensions: model.Dimensions{Width: 1000, Height: 500}},
		Parts:     []model.PlacedPart{{ID: "p1", Dimensions: model.Dimensions{Width: 500, Height: 500}}},
	}
	path := writeLayout(t, dir, layout)
	outPath := filepath.Join(dir, "recomputed.json")

	stdout, err := run(t, dir, "recompute", "--layout", path, "--kerf", "0", "--out", outPath)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var report project.LayoutReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, 50.0, report.Statistics.Efficiency)
	assert.Equal(t, 1, report.Statistics.TotalParts)
	assert.Len(t, report.Layout.CutLines, 1)

	// The written report can be fed back in.
	again, err := run(t, dir, "recompute", "--layout", outPath, "--kerf", "0")
	require.NoError(t, err)
	var second project.LayoutReport
	require.NoError(t, json.Unmarshal([]byte(again), &second))
	assert.Equal(t, report, second)
}

func TestRecompute_RejectsNaNKerf(t *testing.T) {
	dir := t.TempDir()
	layout := model.SheetLayout{
		Chipboard: model.Chipboard{ID: "b", Dimensions: model.Dimensions{Width: 1000, Height: 500}},
		Parts:     []model.PlacedPart{{ID: "p1", Dimensions: model.Dimensions{Width: 400, Height: 300}}},
	}
	path := writeLayout(t, dir, layout)

	_, err := run(t, dir, "recompute", "--layout", path, "--kerf", "NaN")

	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrInvalidSpec))
}

func TestPlace_InvalidJob(t *testing.T) {
	dir := t.TempDir()
	job := writeFile(t, dir, "job.json", `{"name":"bad","chipboard":{"width":1000,"height":500},"parts":[{"name":"x","width":0,"height":10,"count":1}]}`)

	_, err := run(t, dir, "place", "--job", job)

	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrInvalidSpec))
}

func TestPlace_UnknownStrategy(t *testing.T) {
	dir := t.TempDir()
	job := writeFile(t, dir, "job.json", testJob)

	_, err := run(t, dir, "place", "--job", job, "--strategy", "genetic")

	assert.ErrorContains(t, err, "unknown strategy")
}

func TestEstimate(t *testing.T) {
	dir := t.TempDir()
	job := writeFile(t, dir, "job.json", testJob)

	out, err := run(t, dir, "estimate", "--job", job, "--waste", "0")
	require.NoError(t, err)

	var report estimateReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 1, report.Purchase.SheetsNeededMin)
	assert.Equal(t, 400.0, report.EdgeBanding.TotalLinearMM)
	require.Len(t, report.PerPart, 1)
	assert.Equal(t, "T", report.PerPart[0].Edges)
}

func TestCompare(t *testing.T) {
	dir := t.TempDir()
	job := writeFile(t, dir, "job.json", testJob)

	out, err := run(t, dir, "compare", "--job", job)
	require.NoError(t, err)

	var rows []comparisonRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "Current Settings", rows[0].Name)
	assert.Equal(t, 3.0, rows[0].Kerf)
	assert.Equal(t, 1.5, rows[2].Kerf)
	for _, r := range rows {
		assert.Equal(t, 1, r.Sheets)
	}
}

func TestConfigFileDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "chipcut.yaml", "engine:\n  margin: 20\n")
	job := writeFile(t, dir, "job.json", `{"name":"m","chipboard":{"width":1000,"height":500},"parts":[{"id":"a","name":"A","width":100,"height":100,"count":1}]}`)

	out, err := run(t, dir, "place", "--job", job)
	require.NoError(t, err)

	var rf project.ResultFile
	require.NoError(t, json.Unmarshal([]byte(out), &rf))
	require.Len(t, rf.Result.Sheets, 1)
	part := rf.Result.Sheets[0].Parts[0]
	assert.Equal(t, 20.0, part.X)
	assert.Equal(t, 20.0, part.Y)
}
