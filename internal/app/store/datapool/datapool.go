// Package datapool holds the single shared JSON document served wholesale
// at /datapool. The document is loaded from its backing file once at
// startup, kept in memory, and rewritten to disk asynchronously on every
// replace. Writes are last-write-wins with no versioning.
package datapool

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

type Store struct {
	mu      sync.RWMutex
	doc     map[string]any
	gen     uint64
	pending int
	path    string
	log     *zap.Logger

	flushMu sync.Mutex
	flushes sync.WaitGroup
}

// Load reads the datapool file at path. A missing file seeds an empty
// document and creates the file; any other read or parse failure is
// returned so startup can abort, as an unreadable datapool is fatal.
func Load(path string, logger *zap.Logger) (*Store, error) {
	s := &Store{path: path, log: logger}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.doc = map[string]any{}
		if err := s.flush(s.doc); err != nil {
			return nil, fmt.Errorf("seed datapool file: %w", err)
		}
		logger.Info("datapool file missing, seeded empty document", zap.String("path", path))
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read datapool file: %w", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse datapool file %s: %w", path, err)
	}
	s.doc = doc
	return s, nil
}

// Get returns the current document. The result is a copy; callers cannot
// mutate the shared state through it.
func (s *Store) Get() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return deepCopy(s.doc)
}

// Replace swaps in doc wholesale and flushes it to disk in the background.
// Each replace starts a new document generation; a flush that has been
// superseded by a later generation skips its write, so the file always
// converges to the latest document. A flush failure is logged but does not
// roll back the in-memory value and is never surfaced to the caller.
func (s *Store) Replace(doc map[string]any) {
	snapshot := deepCopy(doc)

	s.mu.Lock()
	s.doc = snapshot
	s.gen++
	gen := s.gen
	s.pending++
	s.mu.Unlock()

	s.flushes.Add(1)
	go func() {
		defer s.flushes.Done()
		s.flushGen(gen, snapshot)
	}()
}

// flushGen writes doc to disk unless a newer generation has replaced it.
// Flushes are serialized through flushMu so renames cannot land out of
// order.
func (s *Store) flushGen(gen uint64, doc map[string]any) {
	defer func() {
		s.mu.Lock()
		s.pending--
		s.mu.Unlock()
	}()

	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	s.mu.RLock()
	superseded := gen != s.gen
	s.mu.RUnlock()
	if superseded {
		return
	}

	if err := s.flush(doc); err != nil {
		s.log.Error("datapool flush failed", zap.String("path", s.path), zap.Error(err))
	}
}

// Sync blocks until all in-flight flushes have completed. Called at
// shutdown and by tests that need the file on disk.
func (s *Store) Sync() {
	s.flushes.Wait()
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// flush writes doc to the backing file as pretty-printed JSON. The write
// goes through a temp file and rename so a crash mid-write cannot leave a
// truncated datapool behind.
func (s *Store) flush(doc map[string]any) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".datapool-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// flushState reports the current generation and how many flushes are still
// in flight. The watcher uses it to decide whether a disk read can be
// trusted.
func (s *Store) flushState() (gen uint64, pending int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen, s.pending
}

// installFromDisk swaps in a document read from the backing file, without
// flushing it back. The swap is refused when the read raced a Replace (the
// generation moved past gen, or a flush is still pending) or when doc
// already matches the in-memory state, so a stale file snapshot can never
// revert a newer in-memory write. Reports whether doc was installed.
func (s *Store) installFromDisk(doc map[string]any, gen uint64) bool {
	raw, err := json.Marshal(doc)
	if err != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen || s.pending > 0 {
		return false
	}
	current, err := json.Marshal(s.doc)
	if err == nil && string(raw) == string(current) {
		return false
	}
	s.doc = doc
	s.gen++
	return true
}

// deepCopy clones a JSON-shaped document (maps, slices, scalars).
func deepCopy(doc map[string]any) map[string]any {
	if doc == nil {
		return nil
	}
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCopy(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = copyValue(e)
		}
		return out
	}
	return v
}
