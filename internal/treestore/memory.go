package treestore

import (
	"context"
	"strings"
	"sync"
)

// Memory is the in-process backend, the default for dev and the test double
// for everything built on Store.
type Memory struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemory creates an empty in-memory tree.
func NewMemory() *Memory {
	return &Memory{records: map[string]Record{}}
}

func (m *Memory) Get(ctx context.Context, path string) (Node, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return assemble(m.records, path), nil
}

func (m *Memory) Query(ctx context.Context, path, field, value string) (map[string]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return matchChildren(m.records, path, field, value), nil
}

func (m *Memory) Push(ctx context.Context, path string, rec Record) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := newKey()
	m.records[path+"/"+key] = copyRecord(rec)
	return key, nil
}

func (m *Memory) Update(ctx context.Context, path string, fields Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.records[path]; ok {
		m.records[path] = mergeRecord(existing, fields)
	} else {
		m.records[path] = copyRecord(fields)
	}
	return nil
}

func (m *Memory) Remove(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, path)
	for p := range m.records {
		if strings.HasPrefix(p, path+"/") {
			delete(m.records, p)
		}
	}
	return nil
}

func (m *Memory) Dump(ctx context.Context) (Node, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := assemble(m.records, "")
	if n == nil {
		n = Node{}
	}
	return n, nil
}

func (m *Memory) Ping(ctx context.Context) error { return nil }

func (m *Memory) Close() error { return nil }
