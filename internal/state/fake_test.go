package state

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/julianstephens/tally/internal/kv"
)

var errDiskFull = errors.New("disk full")

// memKV is an in-memory kv.Store that can be told to fail reads or writes.
type memKV struct {
	mu       sync.Mutex
	data     map[string]string
	writes   []string
	failSet  bool
	failGet  map[string]bool
	getCalls int
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string), failGet: make(map[string]bool)}
}

func (m *memKV) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.failGet[key] {
		return "", errors.New("read failed")
	}
	v, ok := m.data[key]
	if !ok {
		return "", kv.ErrNotFound
	}
	return v, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet {
		return errDiskFull
	}
	m.data[key] = value
	m.writes = append(m.writes, key)
	return nil
}

func (m *memKV) raw(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key]
}

func (m *memKV) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.writes)
}

func (m *memKV) setFailing(fail bool) {
	m.mu.Lock()
	m.failSet = fail
	m.mu.Unlock()
}

func fixedClock(day string) func() time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", day+" 10:00", time.Local)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func strPtr(s string) *string {
	return &s
}
