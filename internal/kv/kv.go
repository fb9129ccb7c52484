// Package kv provides the durable string key-value storage the state store
// persists into. Every backend stores whole values: a Set replaces the
// previous value for the key in full.
package kv

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when the key has never been written.
	ErrNotFound = errors.New("key not found")
	// ErrNotLoaded is returned when Get or Set is called before Init or Load.
	ErrNotLoaded = errors.New("storage not loaded")
)

// Store is the minimal get/set contract used by the state store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Provider is a Store with a lifecycle.
type Provider interface {
	Store

	// Init creates the backing storage (file, schema) if needed.
	Init() error
	// Load opens existing storage. It fails if Init has never run.
	Load() error
	Close() error

	// GetConfigPath returns a non-sensitive description of where data lives.
	GetConfigPath() string
}
