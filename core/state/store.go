// Package state tracks which operating room machines are on or off and
// persists every change atomically.
package state

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jinzhu/copier"
	"go.opentelemetry.io/otel/metric"

	"github.com/orpilot/orvoice-core/core/catalog"
)

const defaultPath = "output/machine_states.json"

type StoreOptions struct {
	// Path is where snapshots are persisted.
	Path string
	// Observers are notified after every persisted change.
	Observers []func(Snapshot)
}

type StoreOption func(*StoreOptions)

func WithPath(path string) StoreOption {
	return func(o *StoreOptions) { o.Path = path }
}

func WithObserver(observer func(Snapshot)) StoreOption {
	return func(o *StoreOptions) { o.Observers = append(o.Observers, observer) }
}

// Store holds the authoritative equipment state for one procedure. All
// mutation goes through Apply and Reset, which serialize on an internal
// lock, persist the snapshot, and only then notify observers. The observer
// list shares that lock, so a subscriber never misses a change between
// subscribing and the next apply.
type Store struct {
	mu        sync.Mutex
	catalog   catalog.Catalog
	isOn      map[string]bool
	current   Snapshot
	path      string
	observers []func(Snapshot)

	appliedInstructions metric.Int64Counter
}

// NewStore initializes an all-off state for the procedure and persists it.
func NewStore(cat catalog.Catalog, opts ...StoreOption) (*Store, error) {
	options := StoreOptions{Path: defaultPath}
	for _, opt := range opts {
		opt(&options)
	}
	if len(cat.Machines) == 0 {
		return nil, fmt.Errorf("catalog for %q has no machines", cat.Procedure)
	}
	if err := ensureDir(options.Path); err != nil {
		return nil, err
	}

	appliedInstructions, err := meter.Int64Counter("state.instructions.applied",
		metric.WithDescription("Number of instructions applied to the state store"),
	)
	if err != nil {
		logger.Warn("Failed to create applied instructions counter", "error", err)
	}

	s := &Store{
		catalog:             cat,
		isOn:                make(map[string]bool, len(cat.Machines)),
		path:                options.Path,
		observers:           options.Observers,
		appliedInstructions: appliedInstructions,
	}
	for _, machine := range cat.Machines {
		s.isOn[machine.Name] = false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.commitLocked("", "Initial state: all machines off.", nil); err != nil {
		return nil, err
	}
	return s, nil
}

// Apply transitions machine states for one instruction. Names must be
// canonical catalog names; unknown names are skipped with a warning. When a
// machine appears in both lists, turning on wins. The snapshot is persisted
// before observers run; a persistence error leaves observers unnotified and
// is fatal to the caller.
func (s *Store) Apply(turnOn, turnOff, unavailable []string, transcription, reasoning string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range turnOff {
		if _, ok := s.isOn[name]; !ok {
			logger.Warn("Ignoring unknown machine in instruction", "machine", name)
			continue
		}
		s.isOn[name] = false
	}
	// Turning on second makes it win over a simultaneous turn-off.
	for _, name := range turnOn {
		if _, ok := s.isOn[name]; !ok {
			logger.Warn("Ignoring unknown machine in instruction", "machine", name)
			continue
		}
		s.isOn[name] = true
	}

	snapshot, err := s.commitLocked(transcription, reasoning, unavailable)
	if err != nil {
		return Snapshot{}, err
	}
	if s.appliedInstructions != nil {
		s.appliedInstructions.Add(context.Background(), 1)
	}
	return snapshot, nil
}

// Reset returns every machine to off, as at session start.
func (s *Store) Reset() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name := range s.isOn {
		s.isOn[name] = false
	}
	return s.commitLocked("", "State reset: all machines off.", nil)
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var snapshot Snapshot
	if err := copier.CopyWithOption(&snapshot, s.current, copier.Option{DeepCopy: true}); err != nil {
		logger.Error("Failed to copy snapshot", "error", err)
		return s.current
	}
	return snapshot
}

// Subscribe registers an observer for future changes. It shares the store
// lock with Apply, so registration is ordered with respect to mutations.
func (s *Store) Subscribe(observer func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// commitLocked builds the snapshot in catalog order, persists it and
// notifies observers. Callers hold s.mu.
func (s *Store) commitLocked(transcription, reasoning string, unavailable []string) (Snapshot, error) {
	on := make([]string, 0, len(s.isOn))
	off := make([]string, 0, len(s.isOn))
	for _, machine := range s.catalog.Machines {
		if s.isOn[machine.Name] {
			on = append(on, machine.Name)
		} else {
			off = append(off, machine.Name)
		}
	}

	snapshot := Snapshot{
		Surgery:       s.catalog.Procedure,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Transcription: transcription,
		Reasoning:     reasoning,
		MachineStates: map[string][]string{
			StateOff: off,
			StateOn:  on,
		},
		UnavailableMachines: slices.Clone(unavailable),
	}
	if snapshot.UnavailableMachines == nil {
		snapshot.UnavailableMachines = []string{}
	}

	if err := persist(s.path, snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("failed to persist state: %w", err)
	}
	s.current = snapshot

	for _, observer := range s.observers {
		observer(snapshot)
	}
	return snapshot, nil
}
