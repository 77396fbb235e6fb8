// Package filelock serializes indexing runs that target the same output directory.
package filelock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// FileName is the lock file created inside the output directory.
const FileName = ".lock"

var (
	// ErrLockTimeout indicates the lock acquisition timed out
	ErrLockTimeout = errors.New("lock acquisition timed out")

	// ErrLockWouldBlock indicates the lock is held by another process
	ErrLockWouldBlock = errors.New("lock is held by another process")
)

const (
	initialPoll = 10 * time.Millisecond
	maxPoll     = 500 * time.Millisecond
)

// RunLock is an exclusive flock(2) lock on <root>/<outputDir>/.lock.
// The kernel drops it when the holding process exits, so a crashed run never
// leaves a stale lock behind. The holder's pid is written into the file.
type RunLock struct {
	path string
	file *os.File
}

// New creates a lock at path. Nothing touches the disk until it is acquired.
func New(path string) *RunLock {
	return &RunLock{path: path}
}

// ForOutputDir returns the lock guarding <root>/<outputDir>.
func ForOutputDir(root, outputDir string) *RunLock {
	return New(filepath.Join(root, outputDir, FileName))
}

// TryAcquire takes the lock without waiting. It returns ErrLockWouldBlock on contention.
func (l *RunLock) TryAcquire() error {
	if err := l.open(); err != nil {
		return err
	}

	held, err := l.flock()
	if err != nil {
		l.abandon()
		return err
	}
	if !held {
		l.abandon()
		return ErrLockWouldBlock
	}
	l.stampHolder()
	return nil
}

// Acquire waits for the lock with exponential backoff until timeout elapses
// (ErrLockTimeout) or ctx is done (ctx.Err()).
func (l *RunLock) Acquire(ctx context.Context, timeout time.Duration) error {
	if err := l.open(); err != nil {
		return err
	}

	deadline := time.Now().Add(timeout)
	poll := initialPoll

	for {
		if err := ctx.Err(); err != nil {
			l.abandon()
			return err
		}
		if time.Now().After(deadline) {
			l.abandon()
			return ErrLockTimeout
		}

		held, err := l.flock()
		if err != nil {
			l.abandon()
			return err
		}
		if held {
			l.stampHolder()
			return nil
		}

		select {
		case <-ctx.Done():
			l.abandon()
			return ctx.Err()
		case <-time.After(min(poll, time.Until(deadline)+time.Millisecond)):
			poll = min(poll*2, maxPoll)
		}
	}
}

// Release drops the lock. Releasing a lock that is not held is a no-op.
func (l *RunLock) Release() error {
	if l.file == nil {
		return nil
	}

	err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN)
	closeErr := l.file.Close()
	l.file = nil

	if err != nil {
		return fmt.Errorf("flock unlock failed: %w", err)
	}
	if closeErr != nil {
		return fmt.Errorf("close failed: %w", closeErr)
	}
	return nil
}

// Held reports whether this instance holds the lock.
func (l *RunLock) Held() bool {
	return l.file != nil
}

// Path returns the lock file path.
func (l *RunLock) Path() string {
	return l.path
}

// HolderPID returns the pid recorded by the last holder, or 0 if unknown.
func HolderPID(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return pid
}

// flock returns false without error when another holder has the lock.
func (l *RunLock) flock() (bool, error) {
	err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, syscall.EWOULDBLOCK) {
		return false, nil
	}
	return false, fmt.Errorf("flock failed: %w", err)
}

func (l *RunLock) stampHolder() {
	if err := l.file.Truncate(0); err != nil {
		return
	}
	_, _ = l.file.WriteAt([]byte(strconv.Itoa(os.Getpid())+"\n"), 0)
}

func (l *RunLock) abandon() {
	_ = l.file.Close()
	l.file = nil
}

// open creates the output directory and the lock file if needed.
func (l *RunLock) open() error {
	if l.file != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}

	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}
	l.file = file
	return nil
}
