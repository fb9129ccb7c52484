// Package lock keeps two tally processes from writing the same storage at once.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// ErrLocked is returned when another live tally process holds the lock.
var ErrLocked = errors.New("storage is locked by another tally process")

// Lock is a held lockfile. The file contains "pid|executable".
type Lock struct {
	path    string
	content string
}

// Acquire takes the lock in dir. A lockfile left behind by a process that is
// no longer running, or whose pid now belongs to another program, is replaced.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := filepath.Join(dir, constants.LockfileName)

	if holder, ok := liveHolder(path); ok {
		return nil, fmt.Errorf("%w (pid %d)", ErrLocked, holder)
	}

	pid := getpidFunc()
	content := fmt.Sprintf("%d|%s", pid, executableName(pid))

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if os.IsExist(err) {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("failed to create lockfile: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}

	logger.Debug("Acquired lock", "path", path, "pid", pid)
	return &Lock{path: path, content: content}, nil
}

// Release removes the lockfile if it still belongs to this lock.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read lockfile: %w", err)
	}
	if strings.TrimSpace(string(data)) != l.content {
		logger.Warn("Lockfile taken over by another process, leaving it in place", "path", l.path)
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

// liveHolder reports the pid recorded in path if that process is still
// running the same executable. Stale or malformed lockfiles are removed.
func liveHolder(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}

	parts := strings.SplitN(strings.TrimSpace(string(data)), "|", 2)
	pid, err := strconv.Atoi(parts[0])
	if err != nil || len(parts) != 2 {
		logger.Warn("Removing malformed lockfile", "path", path)
		os.Remove(path)
		return 0, false
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil || process.Executable() != parts[1] {
		logger.Info("Removing stale lockfile", "path", path, "pid", pid)
		os.Remove(path)
		return 0, false
	}
	return pid, true
}

func executableName(pid int) string {
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return constants.AppName
	}
	return process.Executable()
}
