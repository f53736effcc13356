package rl

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"k8s.io/klog/v2"
)

// Snapshot files are JSON objects mapping state keys to value vectors, plus
// two reserved keys: the last completed round and the exploration value at
// save time.
const (
	roundKey   = "round"
	epsilonKey = "epsilon"

	loadSuffix     = "-load.json"
	saveTimeLayout = "2006-01-02][15h04m05s"
)

// Snapshot is the decoded form of a persisted value table.
type Snapshot struct {
	Round   int
	Epsilon float64 // NaN when the file carries no epsilon
	Rows    map[string][]float64
}

// ReadSnapshot decodes the snapshot at path. Any structural problem is an
// error: the file is not a JSON object, a reserved key has the wrong type,
// or a row is not a numeric vector.
func ReadSnapshot(path string) (*Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}

	snap := &Snapshot{
		Round:   -1,
		Epsilon: math.NaN(),
		Rows:    make(map[string][]float64, len(doc)),
	}
	for key, val := range doc {
		switch key {
		case roundKey:
			if err := json.Unmarshal(val, &snap.Round); err != nil {
				return nil, fmt.Errorf("snapshot %s: reserved key %q: %w", path, roundKey, err)
			}
		case epsilonKey:
			if err := json.Unmarshal(val, &snap.Epsilon); err != nil {
				return nil, fmt.Errorf("snapshot %s: reserved key %q: %w", path, epsilonKey, err)
			}
		default:
			var row []float64
			if err := json.Unmarshal(val, &row); err != nil {
				return nil, fmt.Errorf("snapshot %s: state %q: %w", path, key, err)
			}
			snap.Rows[key] = row
		}
	}
	return snap, nil
}

// loadSnapshot restores table and epsilon from "<name>-load.json". A missing
// file is not an error: the learner starts fresh and -1 is returned.
func loadSnapshot(name string, table *QTable, eps *DecayingFloat) (int, error) {
	filename := name + loadSuffix

	snap, err := ReadSnapshot(filename)
	if errors.Is(err, os.ErrNotExist) {
		klog.InfoS("No snapshot found, no experience is used", "file", filename)
		return -1, nil
	}
	if err != nil {
		return -1, err
	}

	for key, row := range snap.Rows {
		if len(row) != table.numActions {
			return -1, fmt.Errorf("snapshot %s: state %q has %d values, want %d",
				filename, key, len(row), table.numActions)
		}
		table.rows[key] = row
	}
	if !math.IsNaN(snap.Epsilon) {
		eps.SetValue(snap.Epsilon)
	}

	klog.InfoS("Loaded snapshot", "file", filename,
		"states", len(snap.Rows), "round", snap.Round, "epsilon", eps.Value())
	return snap.Round, nil
}

// saveSnapshot writes the table to a fresh "<name>-[date][time].json" file.
// The write is atomic (temp file plus rename) so an interruption can never
// leave a partial snapshot, and existing snapshots are never overwritten.
func saveSnapshot(name string, table *QTable, eps *DecayingFloat, round int) error {
	doc := make(map[string]any, len(table.rows)+2)
	for key, row := range table.rows {
		doc[key] = row
	}
	doc[roundKey] = round
	doc[epsilonKey] = eps.Value()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	filename := fmt.Sprintf("%s-[%s].json", name, time.Now().Format(saveTimeLayout))
	for i := 1; ; i++ {
		if _, err := os.Stat(filename); os.IsNotExist(err) {
			break
		}
		// Same-second save; disambiguate instead of overwriting.
		filename = fmt.Sprintf("%s-[%s]-%d.json", name, time.Now().Format(saveTimeLayout), i)
	}

	if err := writeFileAtomic(filename, data); err != nil {
		return fmt.Errorf("write snapshot %s: %w", filename, err)
	}

	klog.InfoS("Saved snapshot", "file", filename, "states", len(table.rows), "round", round)
	return nil
}

func writeFileAtomic(filename string, data []byte) error {
	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, filepath.Base(filename)+".tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filename)
}
