package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/orpilot/orvoice-core/core/catalog"
)

func testCatalog() catalog.Catalog {
	return catalog.Catalog{
		Procedure: "Test Procedure",
		Machines: []catalog.Machine{
			{Name: "Ventilator"},
			{Name: "Suction Pump"},
			{Name: "Anesthesia Machine"},
		},
	}
}

func newTestStore(t *testing.T, opts ...StoreOption) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "machine_states.json")
	store, err := NewStore(testCatalog(), append([]StoreOption{WithPath(path)}, opts...)...)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store, path
}

func assertPartition(t *testing.T, snapshot Snapshot, cat catalog.Catalog) {
	t.Helper()
	seen := map[string]int{}
	for _, name := range snapshot.On() {
		seen[name]++
	}
	for _, name := range snapshot.Off() {
		seen[name]++
	}
	if len(seen) != len(cat.Machines) {
		t.Fatalf("snapshot covers %d machines, catalog has %d", len(seen), len(cat.Machines))
	}
	for _, machine := range cat.Machines {
		if seen[machine.Name] != 1 {
			t.Fatalf("machine %q appears %d times across on/off", machine.Name, seen[machine.Name])
		}
	}
}

func TestNewStoreStartsAllOff(t *testing.T) {
	store, path := newTestStore(t)

	snapshot := store.Snapshot()
	if len(snapshot.On()) != 0 {
		t.Fatalf("expected no machines on, got %v", snapshot.On())
	}
	if len(snapshot.Off()) != 3 {
		t.Fatalf("expected 3 machines off, got %v", snapshot.Off())
	}
	assertPartition(t, snapshot, testCatalog())

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected initial state persisted: %v", err)
	}
	var persisted Snapshot
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("persisted state is not valid JSON: %v", err)
	}
	if persisted.Surgery != "Test Procedure" {
		t.Fatalf("expected surgery 'Test Procedure', got %q", persisted.Surgery)
	}
	if persisted.Timestamp == "" {
		t.Fatal("expected a timestamp in the persisted state")
	}
	if persisted.UnavailableMachines == nil {
		t.Fatal("expected unavailable_machines to be an empty list, not null")
	}
}

func TestApplyTransitionsAndKeepsCatalogOrder(t *testing.T) {
	store, _ := newTestStore(t)

	snapshot, err := store.Apply(
		[]string{"Suction Pump", "Ventilator"}, nil, nil,
		"turn on the ventilator and the suction pump", "Both requested.",
	)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	assertPartition(t, snapshot, testCatalog())

	on := snapshot.On()
	if len(on) != 2 || on[0] != "Ventilator" || on[1] != "Suction Pump" {
		t.Fatalf("expected on list in catalog order, got %v", on)
	}
	if snapshot.Transcription != "turn on the ventilator and the suction pump" {
		t.Fatalf("unexpected transcription %q", snapshot.Transcription)
	}

	snapshot, err = store.Apply(nil, []string{"Ventilator"}, nil, "turn off the ventilator", "Off requested.")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if on := snapshot.On(); len(on) != 1 || on[0] != "Suction Pump" {
		t.Fatalf("expected only the suction pump on, got %v", on)
	}
}

func TestApplyTurnOnWinsOverTurnOff(t *testing.T) {
	store, _ := newTestStore(t)

	snapshot, err := store.Apply([]string{"Ventilator"}, []string{"Ventilator"}, nil, "", "")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if on := snapshot.On(); len(on) != 1 || on[0] != "Ventilator" {
		t.Fatalf("expected the ventilator on when both were requested, got %v", on)
	}
}

func TestApplySkipsUnknownMachines(t *testing.T) {
	store, _ := newTestStore(t)

	snapshot, err := store.Apply([]string{"Coffee Machine"}, nil, nil, "", "")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if len(snapshot.On()) != 0 {
		t.Fatalf("unknown machine must not change state, got %v", snapshot.On())
	}
	assertPartition(t, snapshot, testCatalog())
}

func TestApplyRecordsUnavailableMachines(t *testing.T) {
	store, _ := newTestStore(t)

	snapshot, err := store.Apply(nil, nil, []string{"gamma probe"}, "turn on the gamma probe", "Not in this procedure.")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if len(snapshot.UnavailableMachines) != 1 || snapshot.UnavailableMachines[0] != "gamma probe" {
		t.Fatalf("expected the gamma probe recorded as unavailable, got %v", snapshot.UnavailableMachines)
	}
	if len(snapshot.On()) != 0 {
		t.Fatalf("unavailable machines must not change state, got %v", snapshot.On())
	}
}

func TestObserversSeePersistedState(t *testing.T) {
	var notified []Snapshot
	path := filepath.Join(t.TempDir(), "machine_states.json")
	store, err := NewStore(testCatalog(), WithPath(path), WithObserver(func(s Snapshot) {
		// The file must already hold this snapshot when observers run.
		data, err := os.ReadFile(path)
		if err != nil {
			t.Errorf("state not persisted before notification: %v", err)
			return
		}
		var persisted Snapshot
		if err := json.Unmarshal(data, &persisted); err != nil {
			t.Errorf("persisted state unreadable: %v", err)
			return
		}
		if persisted.Reasoning != s.Reasoning {
			t.Errorf("observer saw %q, file holds %q", s.Reasoning, persisted.Reasoning)
		}
		notified = append(notified, s)
	}))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if _, err := store.Apply([]string{"Ventilator"}, nil, nil, "t", "r"); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	// Observers passed as options also see the initial all-off commit.
	if len(notified) != 2 {
		t.Fatalf("expected 2 notifications (initial + apply), got %d", len(notified))
	}
}

func TestSubscribeReceivesLaterChanges(t *testing.T) {
	store, _ := newTestStore(t)

	var got []string
	store.Subscribe(func(s Snapshot) { got = append(got, s.Reasoning) })

	if _, err := store.Apply(nil, nil, nil, "", "first"); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if _, err := store.Reset(); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if len(got) != 2 || got[0] != "first" {
		t.Fatalf("expected notifications for apply and reset, got %v", got)
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	store, _ := newTestStore(t)

	first := store.Snapshot()
	first.MachineStates[StateOn] = append(first.MachineStates[StateOn], "Ventilator")

	if on := store.Snapshot().On(); len(on) != 0 {
		t.Fatalf("mutating a snapshot leaked into the store: %v", on)
	}
}

func TestApplyLeavesNoPartialFiles(t *testing.T) {
	store, path := newTestStore(t)

	if _, err := store.Apply([]string{"Ventilator"}, nil, nil, "", ""); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("temp file left behind after apply")
	}
}

func TestApplyFailsWhenPersistenceFails(t *testing.T) {
	store, path := newTestStore(t)

	// Replace the snapshot file with a directory so the rename fails.
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove snapshot: %v", err)
	}
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create blocking directory: %v", err)
	}

	if _, err := store.Apply([]string{"Ventilator"}, nil, nil, "", ""); err == nil {
		t.Fatal("expected an error when persistence fails")
	}
}

func TestResetTurnsEverythingOff(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.Apply([]string{"Ventilator", "Suction Pump"}, nil, nil, "", ""); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	snapshot, err := store.Reset()
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if len(snapshot.On()) != 0 {
		t.Fatalf("expected all machines off after reset, got %v", snapshot.On())
	}
}
