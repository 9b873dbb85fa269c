package anthro

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/crowd-dynamics/crowdsynth/internal/testutil"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "anthro.db"))
	testutil.AssertNoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_RoundTrip(t *testing.T) {
	store := tempStore(t)

	want := Table{
		1: {"bideltoid breadth [cm]": 48.0, "chest depth [cm]": 24.5, "weight [kg]": 77.0},
		2: {"bideltoid breadth [cm]": 42.1, "chest depth [cm]": 22.0, "weight [kg]": 60.3},
	}
	for subject, row := range want {
		testutil.AssertNoError(t, store.InsertSubject(subject, row))
	}

	got, err := store.Load()
	testutil.AssertNoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}

	count, err := store.SubjectCount()
	testutil.AssertNoError(t, err)
	if count != 2 {
		t.Errorf("SubjectCount = %d, want 2", count)
	}
}

func TestStore_InsertReplaces(t *testing.T) {
	store := tempStore(t)

	testutil.AssertNoError(t, store.InsertSubject(1, Row{"weight [kg]": 70}))
	testutil.AssertNoError(t, store.InsertSubject(1, Row{"weight [kg]": 72}))

	table, err := store.Load()
	testutil.AssertNoError(t, err)
	if got := table[1]["weight [kg]"]; got != 72 {
		t.Errorf("weight = %v, want 72 (replaced)", got)
	}
}

func TestStore_LoadEmpty(t *testing.T) {
	store := tempStore(t)
	table, err := store.Load()
	testutil.AssertNoError(t, err)
	if len(table) != 0 {
		t.Errorf("empty store returned %d subjects", len(table))
	}
}

func TestStore_Migrations(t *testing.T) {
	store := tempStore(t)

	testutil.AssertNoError(t, store.MigrateUp("../../migrations"))

	version, dirty, err := store.MigrateVersion("../../migrations")
	testutil.AssertNoError(t, err)
	if dirty {
		t.Error("migration state is dirty")
	}
	if version != 1 {
		t.Errorf("version = %d, want 1", version)
	}

	// The migrated schema must accept data.
	testutil.AssertNoError(t, store.InsertSubject(1, Row{"weight [kg]": 70}))
}
