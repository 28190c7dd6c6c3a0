package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestConvertOp(t *testing.T) {
	tests := []struct {
		in   fsnotify.Op
		want string
	}{
		{fsnotify.Write, "write"},
		{fsnotify.Create | fsnotify.Write, "create|write"},
		{fsnotify.Rename, "rename"},
		{0, "none"},
	}

	for _, tt := range tests {
		if got := convertOp(tt.in).String(); got != tt.want {
			t.Errorf("convertOp(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestWatcherSeesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.vl")
	other := filepath.Join(dir, "other.vl")
	if err := os.WriteFile(path, []byte("print(1);"), 0644); err != nil {
		t.Fatal(err)
	}

	events := make(chan Event, 16)
	w := New(path, 20*time.Millisecond, func(ev Event) { events <- ev })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// the watcher may not be registered yet; keep writing until it reports
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	var got Event
wait:
	for {
		select {
		case got = <-events:
			break wait
		case <-tick.C:
			os.WriteFile(other, []byte("ignored"), 0644)
			os.WriteFile(path, []byte("print(2);"), 0644)
		case <-deadline:
			t.Fatal("no change event within 5s")
		}
	}

	if filepath.Base(got.Path) != "main.vl" {
		t.Errorf("expected an event for main.vl, got %s", got.Path)
	}
	if got.Op&(OpWrite|OpCreate) == 0 {
		t.Errorf("expected a write or create, got %s", got.Op)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "nope", "main.vl"), time.Millisecond, nil)
	if err := w.Run(context.Background()); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}
