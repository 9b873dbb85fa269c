package anthro

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/crowd-dynamics/crowdsynth/internal/testutil"
)

// writeDataset creates a sqlite dataset on disk and returns its path.
func writeDataset(t *testing.T, name string, table Table) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	store, err := Open(path)
	testutil.AssertNoError(t, err)
	defer store.Close()
	for subject, row := range table {
		testutil.AssertNoError(t, store.InsertSubject(subject, row))
	}
	return path
}

func TestCachedLoader_Memoizes(t *testing.T) {
	table := Table{1: {"weight [kg]": 70.0}}
	path := writeDataset(t, "a.db", table)

	loader := NewCachedLoader(0)

	first, err := loader.Load(path)
	testutil.AssertNoError(t, err)
	if diff := cmp.Diff(table, first); diff != "" {
		t.Fatalf("first load mismatch (-want +got):\n%s", diff)
	}

	second, err := loader.Load(path)
	testutil.AssertNoError(t, err)

	// A cache hit hands back the same table, not a re-read copy. Mutating
	// through one handle must be visible through the other.
	first[1]["weight [kg]"] = -1
	if second[1]["weight [kg]"] != -1 {
		t.Error("second load is a fresh read, expected the cached table")
	}
}

func TestCachedLoader_Evicts(t *testing.T) {
	pathA := writeDataset(t, "a.db", Table{1: {"x": 1.0}})
	pathB := writeDataset(t, "b.db", Table{2: {"x": 2.0}})

	loader := NewCachedLoader(1)

	_, err := loader.Load(pathA)
	testutil.AssertNoError(t, err)
	_, err = loader.Load(pathB)
	testutil.AssertNoError(t, err)

	if len(loader.tables) != 1 {
		t.Fatalf("cache holds %d tables, want 1", len(loader.tables))
	}
	if _, ok := loader.tables[pathA]; ok {
		t.Error("oldest entry was not evicted")
	}
	if _, ok := loader.tables[pathB]; !ok {
		t.Error("newest entry missing from cache")
	}
}

func TestCachedLoader_TouchOnHit(t *testing.T) {
	pathA := writeDataset(t, "a.db", Table{1: {"x": 1.0}})
	pathB := writeDataset(t, "b.db", Table{2: {"x": 2.0}})
	pathC := writeDataset(t, "c.db", Table{3: {"x": 3.0}})

	loader := NewCachedLoader(2)

	if _, err := loader.Load(pathA); err != nil {
		t.Fatal(err)
	}
	if _, err := loader.Load(pathB); err != nil {
		t.Fatal(err)
	}
	// Touch A so B becomes the eviction candidate.
	if _, err := loader.Load(pathA); err != nil {
		t.Fatal(err)
	}
	if _, err := loader.Load(pathC); err != nil {
		t.Fatal(err)
	}

	if _, ok := loader.tables[pathA]; !ok {
		t.Error("recently used entry was evicted")
	}
	if _, ok := loader.tables[pathB]; ok {
		t.Error("least recently used entry survived")
	}
}

func TestPathSource(t *testing.T) {
	table := Table{1: {"weight [kg]": 70.0}}
	path := writeDataset(t, "a.db", table)

	src := PathSource{Loader: NewCachedLoader(0), Path: path}
	got, err := src.Load()
	testutil.AssertNoError(t, err)
	if diff := cmp.Diff(table, got); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestCachedLoader_MissingFileStillFails(t *testing.T) {
	loader := NewCachedLoader(0)
	// sqlite will create an empty db for a new path, so loads succeed but
	// are empty; a directory path, however, must fail.
	if _, err := loader.Load(t.TempDir()); err == nil {
		t.Error("expected error loading a directory path")
	}
}
