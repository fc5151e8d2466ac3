package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/robopath/internal/planner"
	"github.com/vovakirdan/robopath/internal/route"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "runs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	path := []route.Coord{route.C(0, 0), route.C(1, 1), route.C(2, 2)}
	id, err := store.SaveRun(RunRecord{
		Source: "scatter", Seed: 42, Width: 3, Height: 3, Obstacles: 1,
		Facing: "East", TieBreak: "nearest-goal", Found: true,
		Cost: 2, PathLength: 3, Expanded: 3, Attempts: 1, DurationMS: 5, Path: path,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil for a saved run")
	}
	if got.Source != "scatter" || got.Seed != 42 || !got.Found || got.Cost != 2 {
		t.Errorf("RunByID() = %+v", got)
	}
	if len(got.Path) != 3 || got.Path[1] != route.C(1, 1) {
		t.Errorf("Path = %v, expected %v", got.Path, path)
	}

	missing, err := store.RunByID(id + 100)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("RunByID() of unknown ID = %+v, expected nil", missing)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.SaveRun(RunRecord{Source: "scatter", Seed: int64(i), Found: true}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := store.SaveRun(RunRecord{Source: "rooms", Seed: 99}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	all, err := store.RecentRuns("", 0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 6 {
		t.Fatalf("Expected 6 runs, got %d", len(all))
	}
	// Newest first
	if all[0].Source != "rooms" {
		t.Errorf("Expected newest run first, got %+v", all[0])
	}

	limited, err := store.RecentRuns("scatter", 2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(limited))
	}
	if limited[0].Seed != 4 || limited[1].Seed != 3 {
		t.Errorf("Expected seeds 4, 3, got %d, %d", limited[0].Seed, limited[1].Seed)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{Source: "scatter"})
	store.SaveRun(RunRecord{Source: "rooms"})

	if err := store.ClearRuns("scatter"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	runs, _ := store.RecentRuns("", 10)
	if len(runs) != 1 || runs[0].Source != "rooms" {
		t.Errorf("Expected only the rooms run to remain, got %+v", runs)
	}

	if err := store.ClearRuns(""); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	runs, _ = store.RecentRuns("", 10)
	if len(runs) != 0 {
		t.Errorf("Expected no runs, got %d", len(runs))
	}
}

func TestStoreSourceStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{Source: "scatter", Found: true, Cost: 4, PathLength: 10})
	store.SaveRun(RunRecord{Source: "scatter", Found: true, Cost: 2, PathLength: 6})
	store.SaveRun(RunRecord{Source: "scatter", Found: false})
	store.SaveRun(RunRecord{Source: "stripes", Found: false})

	stats, err := store.AllSourceStats()
	if err != nil {
		t.Fatalf("AllSourceStats() failed: %v", err)
	}

	scatter := stats["scatter"]
	if scatter == nil {
		t.Fatal("Expected stats for scatter")
	}
	if scatter.Runs != 3 || scatter.Found != 2 {
		t.Errorf("Runs/Found = %d/%d, expected 3/2", scatter.Runs, scatter.Found)
	}
	if scatter.BestCost != 2 || scatter.AvgCost != 3 || scatter.AvgLength != 8 {
		t.Errorf("Best/Avg/Length = %d/%v/%v, expected 2/3/8", scatter.BestCost, scatter.AvgCost, scatter.AvgLength)
	}
	if rate := scatter.SuccessRate(); rate < 0.66 || rate > 0.67 {
		t.Errorf("SuccessRate() = %v", rate)
	}

	stripes := stats["stripes"]
	if stripes == nil || stripes.Found != 0 || stripes.BestCost != 0 || stripes.SuccessRate() != 0 {
		t.Errorf("stripes stats = %+v", stripes)
	}
}

func TestStoreRecordsPlannerOutcomes(t *testing.T) {
	store := openTestStore(t)

	g, err := route.NewGrid(3, 3, []route.Coord{route.C(1, 0)}, route.C(0, 0), route.C(2, 2))
	if err != nil {
		t.Fatal(err)
	}
	result, err := route.Find(context.Background(), g, route.South)
	if err != nil {
		t.Fatal(err)
	}

	err = store.RecordRun(planner.Outcome{
		Source:   "empty",
		Seed:     5,
		Grid:     g,
		TieBreak: route.TieBreakLowestCost,
		Result:   result,
		Attempts: 2,
	})
	if err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	runs, err := store.RecentRuns("empty", 1)
	if err != nil || len(runs) != 1 {
		t.Fatalf("RecentRuns() = %v, %v", runs, err)
	}
	r := runs[0]
	if r.Width != 3 || r.Obstacles != 1 || r.Facing != "South" || r.TieBreak != "lowest-cost" {
		t.Errorf("recorded run = %+v", r)
	}
	if r.Found != result.Found() || r.Cost != result.Cost || r.PathLength != len(result.Path) || r.Attempts != 2 {
		t.Errorf("recorded run = %+v, result = %+v", r, result)
	}
}

func TestPathEncoding(t *testing.T) {
	path := []route.Coord{route.C(0, 0), route.C(12, 3), route.C(-1, 7)}
	encoded := EncodePath(path)
	if encoded != "0,0;12,3;-1,7" {
		t.Errorf("EncodePath() = %q", encoded)
	}

	decoded, err := DecodePath(encoded)
	if err != nil {
		t.Fatalf("DecodePath() failed: %v", err)
	}
	if len(decoded) != len(path) || decoded[1] != path[1] || decoded[2] != path[2] {
		t.Errorf("DecodePath() = %v, expected %v", decoded, path)
	}

	if p, err := DecodePath(""); err != nil || p != nil {
		t.Errorf("DecodePath(\"\") = %v, %v", p, err)
	}
	for _, bad := range []string{"1", "1,x", "a,2;3,4"} {
		if _, err := DecodePath(bad); err == nil {
			t.Errorf("DecodePath(%q) should fail", bad)
		}
	}
}
