package filelock

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func release(t *testing.T, lock *RunLock) {
	t.Helper()
	if err := lock.Release(); err != nil {
		t.Logf("Warning: Release failed: %v", err)
	}
}

func TestRunLock_ForOutputDir(t *testing.T) {
	lock := ForOutputDir("/repo", ".wiki-tree")

	if got, want := lock.Path(), filepath.Join("/repo", ".wiki-tree", ".lock"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
	if lock.Held() {
		t.Error("New lock should not be held")
	}
}

func TestRunLock_TryAcquire(t *testing.T) {
	root := t.TempDir()

	first := ForOutputDir(root, ".wiki-tree")
	if err := first.TryAcquire(); err != nil {
		t.Fatalf("TryAcquire failed: %v", err)
	}
	defer release(t, first)

	if !first.Held() {
		t.Error("Expected Held to return true")
	}
	if pid := HolderPID(first.Path()); pid != os.Getpid() {
		t.Errorf("HolderPID = %d, want %d", pid, os.Getpid())
	}

	second := ForOutputDir(root, ".wiki-tree")
	err := second.TryAcquire()
	if !errors.Is(err, ErrLockWouldBlock) {
		t.Errorf("Expected ErrLockWouldBlock, got: %v", err)
	}
	if second.Held() {
		t.Error("Contended lock should not report Held")
	}
}

func TestRunLock_AcquireTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", FileName)

	holder := New(path)
	if err := holder.TryAcquire(); err != nil {
		t.Fatalf("TryAcquire failed: %v", err)
	}
	defer release(t, holder)

	start := time.Now()
	err := New(path).Acquire(context.Background(), 100*time.Millisecond)
	elapsed := time.Since(start)

	if !errors.Is(err, ErrLockTimeout) {
		t.Errorf("Expected ErrLockTimeout, got: %v", err)
	}
	if elapsed < 100*time.Millisecond {
		t.Errorf("Expected at least 100ms to elapse, got %v", elapsed)
	}
}

func TestRunLock_AcquireAfterRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	holder := New(path)
	if err := holder.TryAcquire(); err != nil {
		t.Fatalf("TryAcquire failed: %v", err)
	}

	waiter := New(path)
	var wg sync.WaitGroup
	var waitErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		waitErr = waiter.Acquire(context.Background(), 2*time.Second)
	}()

	time.Sleep(100 * time.Millisecond)
	if err := holder.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	wg.Wait()

	if waitErr != nil {
		t.Errorf("Expected waiter to acquire after release, got: %v", waitErr)
	}
	if !waiter.Held() {
		t.Error("Expected waiter to hold the lock")
	}
	release(t, waiter)
}

func TestRunLock_AcquireCanceled(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	holder := New(path)
	if err := holder.TryAcquire(); err != nil {
		t.Fatalf("TryAcquire failed: %v", err)
	}
	defer release(t, holder)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	var waitErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		waitErr = New(path).Acquire(ctx, 10*time.Second)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()
	wg.Wait()

	if !errors.Is(waitErr, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", waitErr)
	}
}

func TestRunLock_ReleaseIsIdempotent(t *testing.T) {
	lock := New(filepath.Join(t.TempDir(), FileName))

	if err := lock.Release(); err != nil {
		t.Errorf("Release on an unheld lock should be a no-op, got: %v", err)
	}
	if err := lock.TryAcquire(); err != nil {
		t.Fatalf("TryAcquire failed: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Errorf("First Release failed: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Errorf("Second Release should be a no-op, got: %v", err)
	}
	if lock.Held() {
		t.Error("Expected Held to return false after Release")
	}
}

func TestRunLock_SerializesGoroutines(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	const workers = 8
	var mu sync.Mutex
	inside, maxInside := 0, 0

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lock := New(path)
			if err := lock.Acquire(context.Background(), 5*time.Second); err != nil {
				t.Errorf("Acquire failed: %v", err)
				return
			}

			mu.Lock()
			inside++
			maxInside = max(maxInside, inside)
			mu.Unlock()

			time.Sleep(2 * time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()

			if err := lock.Release(); err != nil {
				t.Errorf("Release failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if maxInside != 1 {
		t.Errorf("Expected at most one holder at a time, saw %d", maxInside)
	}
}

func TestRunLock_CrossProcess(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping cross-process test in short mode")
	}
	if _, err := exec.LookPath("flock"); err != nil {
		t.Skip("Skipping cross-process test: flock command not available")
	}

	lock := ForOutputDir(t.TempDir(), ".wiki-tree")
	if err := lock.TryAcquire(); err != nil {
		t.Fatalf("TryAcquire failed: %v", err)
	}

	probe := func() string {
		cmd := exec.Command("sh", "-c", `
			flock -n "$1" -c "echo acquired" 2>/dev/null || echo "blocked"
		`, "_", lock.Path())
		output, err := cmd.Output()
		if err != nil {
			t.Fatalf("Child process failed: %v", err)
		}
		return string(output)
	}

	if got := probe(); got != "blocked\n" {
		t.Errorf("Expected child to be blocked, got: %q", got)
	}

	release(t, lock)

	if got := probe(); got != "acquired\n" {
		t.Errorf("Expected child to acquire after release, got: %q", got)
	}
}
