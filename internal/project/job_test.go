package project

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"

	"github.com/piwi3910/chipcut/internal/model"
)

func TestSaveAndLoadJob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs", "kitchen.json")
	kerf := 4.0
	margin := 5.0
	locked := false
	job := Job{
		Name:      "Kitchen",
		Chipboard: JobChipboard{ID: "oak", Name: "Oak", Width: 2800, Height: 2070, Thickness: 18, Margin: &margin},
		Parts: []JobPart{
			{Name: "Side", Width: 720, Height: 560, Count: 2, PvcEdges: &model.PvcEdges{Top: true}},
			{ID: "door", Name: "Door", Width: 716, Height: 396, Count: 4, CanRotate: &locked},
		},
		Kerf: &kerf,
	}

	if err := SaveJob(path, job); err != nil {
		t.Fatalf("SaveJob failed: %v", err)
	}
	loaded, err := LoadJob(path)
	if err != nil {
		t.Fatalf("LoadJob failed: %v", err)
	}

	board := loaded.Board(10)
	if loaded.Name != "Kitchen" || board.ID != "oak" || board.Margin != 5 {
		t.Errorf("unexpected job header: %+v", board)
	}
	if got := loaded.KerfOr(3.2); got != 4.0 {
		t.Errorf("expected kerf 4, got %v", got)
	}

	specs := loaded.Specs()
	if len(specs) != 2 {
		t.Fatalf("expected 2 specs, got %d", len(specs))
	}
	if specs[0].ID != "part-1" || !specs[0].CanRotate || !specs[0].Edges().Top {
		t.Errorf("unexpected first spec: %+v", specs[0])
	}
	if specs[1].ID != "door" || specs[1].CanRotate {
		t.Errorf("unexpected second spec: %+v", specs[1])
	}
}

func TestLoadJobDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.json")
	content := `{"name":"x","chipboard":{"name":"Plain","width":1000,"height":500},"parts":[]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	job, err := LoadJob(path)
	if err != nil {
		t.Fatalf("LoadJob failed: %v", err)
	}
	board := job.Board(10)
	if board.ID != "board" || board.Margin != 10 {
		t.Errorf("expected default board id and margin, got %+v", board)
	}
	if board.Dimensions.Width != 1000 || board.Dimensions.Height != 500 {
		t.Errorf("unexpected dimensions: %+v", board.Dimensions)
	}
	if got := job.KerfOr(3.2); got != 3.2 {
		t.Errorf("expected fallback kerf, got %v", got)
	}
}

func TestLoadJobMissingFile(t *testing.T) {
	_, err := LoadJob(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoadJobInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadJob(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestSaveAndLoadResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "result.json")
	result := model.PlacementResult{
		Statistics: model.PlacementStatistics{SheetCount: 1, Efficiency: 24},
		Strategy:   string(model.StrategyAlignedGuillotine),
	}

	if err := SaveResult(path, NewResultFile("Kitchen", result)); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}
	rf, err := LoadResult(path)
	if err != nil {
		t.Fatalf("LoadResult failed: %v", err)
	}

	if rf.Version != FormatVersion || rf.CreatedAt == "" || rf.Job != "Kitchen" {
		t.Errorf("unexpected header: %+v", rf)
	}
	if rf.Result.Statistics.Efficiency != 24 {
		t.Errorf("expected efficiency 24, got %v", rf.Result.Statistics.Efficiency)
	}
}

func TestResultFileSetOffcuts(t *testing.T) {
	source := model.Chipboard{ID: "b", Name: "Oak", Dimensions: model.Dimensions{Width: 1000, Height: 500}, Thickness: 18, Margin: 10}
	offcuts := []model.Remainder{
		model.NewRemainder(model.Rect{X: 10, Y: 310, Width: 980, Height: 180}, "strip 2"),
		model.NewRemainder(model.Rect{X: 413, Y: 10, Width: 577, Height: 297}, "strip 1"),
	}

	var rf ResultFile
	rf.SetOffcuts(offcuts, source)

	if rf.OffcutArea != 980*180+577*297 {
		t.Errorf("expected offcut area %v, got %v", 980*180+577*297, rf.OffcutArea)
	}
	if len(rf.OffcutStock) != 2 {
		t.Fatalf("expected 2 offcut boards, got %d", len(rf.OffcutStock))
	}
	board := rf.OffcutStock[1]
	if board.Dimensions != (model.Dimensions{Width: 577, Height: 297}) || board.Thickness != 18 || board.Margin != 0 {
		t.Errorf("unexpected offcut board: %+v", board)
	}

	rf.SetOffcuts(nil, source)
	if rf.OffcutArea != 0 || rf.OffcutStock != nil {
		t.Errorf("expected offcuts cleared, got %+v", rf)
	}
}

func TestLoadResultMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	if err := os.WriteFile(path, []byte(`{"job":"x"}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadResult(path); err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestLoadLayoutBare(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sheet.json")
	data := `{"chipboard":{"id":"b","dimensions":{"width":1000,"height":500}},` +
		`"parts":[{"id":"p1","dimensions":{"width":400,"height":300},"rotated":true}]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadLayout(path)
	if err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}
	if len(loaded.Parts) != 1 || loaded.Parts[0].ID != "p1" || !loaded.Parts[0].Rotated {
		t.Errorf("unexpected layout: %+v", loaded)
	}
}

func TestSaveLayoutReportAndLoadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "sheet.json")
	report := LayoutReport{
		Layout: model.SheetLayout{
			Chipboard: model.Chipboard{ID: "b", Dimensions: model.Dimensions{Width: 1000, Height: 500}},
			Parts: []model.PlacedPart{
				{ID: "p1", Dimensions: model.Dimensions{Width: 400, Height: 300}},
			},
			CutLines: []model.CutLine{{X1: 400, Y1: 0, X2: 400, Y2: 300}},
		},
		Statistics: model.PlacementStatistics{TotalParts: 1, SheetCount: 1, Efficiency: 24},
	}

	if err := SaveLayoutReport(path, report); err != nil {
		t.Fatalf("SaveLayoutReport failed: %v", err)
	}
	loaded, err := LoadLayout(path)
	if err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}

	if loaded.Chipboard.ID != "b" || len(loaded.Parts) != 1 || len(loaded.CutLines) != 1 {
		t.Errorf("unexpected layout: %+v", loaded)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	got, err := ExpandPath("~/jobs/kitchen.json")
	if err != nil {
		t.Fatalf("ExpandPath failed: %v", err)
	}
	if want := filepath.Join(home, "jobs", "kitchen.json"); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if got, _ := ExpandPath("plain.json"); got != "plain.json" {
		t.Errorf("plain paths should be unchanged, got %s", got)
	}
}
