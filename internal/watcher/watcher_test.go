package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) record(path string) {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestWatcher_DebouncesWritesToCatalog(t *testing.T) {
	dir := t.TempDir()
	catalog := filepath.Join(dir, "books.csv")
	writeFile(t, catalog, "id,title,author,category,year\n")

	rec := &recorder{}
	w := New([]string{catalog}, rec.record, WithDebounce(100*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	for i := 0; i < 3; i++ {
		writeFile(t, catalog, "id,title,author,category,year\n1,Clean Code,Robert Martin,Software,2008\n")
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(400 * time.Millisecond)

	got := rec.snapshot()
	if len(got) != 1 {
		t.Fatalf("expected one debounced callback, got %d: %v", len(got), got)
	}
	if got[0] != catalog {
		t.Errorf("callback path = %q, want %q", got[0], catalog)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	catalog := filepath.Join(dir, "books.csv")
	writeFile(t, catalog, "")

	rec := &recorder{}
	w := New([]string{catalog}, rec.record, WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	writeFile(t, filepath.Join(dir, "notes.txt"), "unrelated")
	time.Sleep(250 * time.Millisecond)

	if got := rec.snapshot(); len(got) != 0 {
		t.Errorf("unexpected callbacks: %v", got)
	}
}

func TestWatcher_SeesRenameOverCatalog(t *testing.T) {
	dir := t.TempDir()
	catalog := filepath.Join(dir, "books.csv")
	writeFile(t, catalog, "old")

	rec := &recorder{}
	w := New([]string{catalog}, rec.record, WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	tmp := filepath.Join(dir, "books.csv.tmp")
	writeFile(t, tmp, "new")
	if err := os.Rename(tmp, catalog); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)

	if got := rec.snapshot(); len(got) != 1 {
		t.Errorf("expected one callback after rename, got %v", got)
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	w := New([]string{filepath.Join(dir, "books.csv")}, nil)
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	w.Stop()
	w.Stop()
}

func TestWatcher_RestartAfterStop(t *testing.T) {
	dir := t.TempDir()
	catalog := filepath.Join(dir, "books.csv")
	writeFile(t, catalog, "")

	rec := &recorder{}
	w := New([]string{catalog}, rec.record, WithDebounce(50*time.Millisecond))
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	w.Stop()
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start after Stop: %v", err)
	}
	defer w.Stop()

	writeFile(t, catalog, "id,title,author,category,year\n")
	time.Sleep(300 * time.Millisecond)

	if got := rec.snapshot(); len(got) != 1 {
		t.Fatalf("restarted watcher delivered %d callbacks, want 1: %v", len(got), got)
	}
}

func TestWatcher_StartFailsForMissingDirectory(t *testing.T) {
	w := New([]string{filepath.Join(t.TempDir(), "missing", "books.csv")}, nil)
	if err := w.Start(context.Background()); err == nil {
		w.Stop()
		t.Error("expected error watching a missing directory")
	}
}

func TestNew_FilesAreAbsolute(t *testing.T) {
	w := New([]string{"books.csv"}, nil)
	files := w.Files()
	if len(files) != 1 || !filepath.IsAbs(files[0]) {
		t.Errorf("Files() = %v", files)
	}
}
