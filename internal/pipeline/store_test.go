package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestStoreResetTruncatesPreviousRun(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "valid_accounts.txt")
	if err := os.WriteFile(path, []byte("1111111111111111\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(path, 0)
	if err := store.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	defer store.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Fatalf("expected truncated file, got %q", data)
	}
}

func TestStoreAppendsOneLinePerCandidate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "valid_accounts.txt")
	store := NewStore(path, 1)
	if err := store.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	for _, c := range []Candidate{"1000000000000000", "1000000000000007"} {
		if err := store.Append(c); err != nil {
			t.Fatalf("append %s: %v", c, err)
		}
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "1000000000000000\n1000000000000007\n"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestStoreConcurrentAppendsLoseNothing(t *testing.T) {
	t.Parallel()

	const appends = 200

	path := filepath.Join(t.TempDir(), "valid_accounts.txt")
	store := NewStore(path, 1)
	if err := store.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	var wg sync.WaitGroup
	for range appends {
		wg.Go(func() {
			if err := store.Append("1000000000000000"); err != nil {
				t.Errorf("append: %v", err)
			}
		})
	}
	wg.Wait()
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Count(string(data), "\n")
	if lines != appends {
		t.Fatalf("expected %d lines, got %d", appends, lines)
	}
}

func TestStoreAppendBeforeResetFails(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "out.txt"), 1)
	if err := store.Append("1000000000000000"); err == nil {
		t.Fatal("expected an error appending to a store that was never reset")
	}
}
