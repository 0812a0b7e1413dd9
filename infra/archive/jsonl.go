// Package archive provides file and database backed implementations of the
// best-solution store.
package archive

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"sync"

	corearchive "github.com/kilianp07/evoroute/core/archive"
)

// JSONLStore stores records in a JSONL file.
type JSONLStore struct {
	path string
	mu   sync.Mutex
}

func NewJSONLStore(path string) (*JSONLStore, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	if cerr := f.Close(); cerr != nil {
		return nil, cerr
	}
	return &JSONLStore{path: path}, nil
}

func (s *JSONLStore) Append(_ context.Context, rec corearchive.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	enc := json.NewEncoder(f)
	return enc.Encode(rec)
}

func (s *JSONLStore) Query(_ context.Context, q corearchive.Query) ([]corearchive.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	var res []corearchive.Record
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var r corearchive.Record
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			continue
		}
		if q.Matches(r) {
			res = append(res, r)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return clip(res, q.Limit), nil
}

func (s *JSONLStore) Close() error { return nil }

// clip keeps only the most recent n records. Records are expected in append
// order.
func clip(res []corearchive.Record, n int) []corearchive.Record {
	if n > 0 && len(res) > n {
		return res[len(res)-n:]
	}
	return res
}
