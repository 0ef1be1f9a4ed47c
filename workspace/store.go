// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: workspace/store.go
// Summary: Persists workspace snapshots to disk with a content hash for integrity checks.

package workspace

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// SnapshotStore writes the latest snapshot to a single JSON file. Icon
// pixels are not persisted; paths in the snapshot are enough to re-resolve.
type SnapshotStore struct {
	path string
	mu   sync.Mutex
}

// StoredSnapshot is the serialized representation written to disk.
type StoredSnapshot struct {
	Timestamp time.Time `json:"timestamp"`
	Hash      string    `json:"hash"`
	Workspace Snapshot  `json:"workspace"`
}

func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// Save writes the snapshot to disk, computing a SHA-1 hash over its
// canonical JSON form for integrity.
func (s *SnapshotStore) Save(snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	hash, err := snapshotHash(snap)
	if err != nil {
		return err
	}
	stored := StoredSnapshot{
		Timestamp: time.Now().UTC(),
		Hash:      hash,
		Workspace: snap,
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o644)
}

// Load retrieves the stored snapshot and verifies its content hash.
func (s *SnapshotStore) Load() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stored StoredSnapshot
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Snapshot{}, err
	}
	if err := json.Unmarshal(data, &stored); err != nil {
		return Snapshot{}, err
	}

	hash, err := snapshotHash(stored.Workspace)
	if err != nil {
		return Snapshot{}, err
	}
	if stored.Hash != "" && stored.Hash != hash {
		return Snapshot{}, fmt.Errorf("snapshot hash mismatch: stored %s, computed %s", stored.Hash, hash)
	}
	return stored.Workspace, nil
}

// snapshotHash hashes the snapshot's canonical JSON encoding. Map keys are
// sorted by the encoder, so equal snapshots hash equally.
func snapshotHash(snap Snapshot) (string, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return "", err
	}
	hasher := sha1.New()
	hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
