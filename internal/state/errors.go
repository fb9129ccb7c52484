package state

import (
	"errors"
	"fmt"
)

// ErrPersistence matches any PersistenceError via errors.Is.
var ErrPersistence = errors.New("failed to persist state")

// PersistenceError reports a rejected mutation: the write of Key failed and
// in-memory state was left unchanged.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist %s: %v", e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

func (e *PersistenceError) Hint() string {
	return "nothing was changed; check that the storage location is writable and not locked by another tally process"
}
