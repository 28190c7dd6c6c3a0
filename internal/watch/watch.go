// Package watch re-runs a script whenever its file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op describes a file change.
type Op uint8

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

func (op Op) String() string {
	names := []string{"create", "write", "remove", "rename", "chmod"}
	out := ""
	for i, name := range names {
		if op&(1<<i) != 0 {
			if out != "" {
				out += "|"
			}
			out += name
		}
	}
	if out == "" {
		return "none"
	}
	return out
}

// Event is a change to the watched file.
type Event struct {
	Path string
	Op   Op
}

func convertOp(op fsnotify.Op) Op {
	var out Op
	if op&fsnotify.Create != 0 {
		out |= OpCreate
	}
	if op&fsnotify.Write != 0 {
		out |= OpWrite
	}
	if op&fsnotify.Remove != 0 {
		out |= OpRemove
	}
	if op&fsnotify.Rename != 0 {
		out |= OpRename
	}
	if op&fsnotify.Chmod != 0 {
		out |= OpChmod
	}
	return out
}

// Watcher calls OnChange after the file at Path changes. Bursts of events
// within Debounce collapse into one call.
type Watcher struct {
	Path     string
	Debounce time.Duration
	OnChange func(Event)
	OnError  func(error)
}

// New returns a watcher for path.
func New(path string, debounce time.Duration, onChange func(Event)) *Watcher {
	return &Watcher{Path: path, Debounce: debounce, OnChange: onChange}
}

// Run watches until ctx is cancelled. The parent directory is watched
// rather than the file so that editors which replace the file on save are
// still seen.
func (w *Watcher) Run(ctx context.Context) error {
	abs, err := filepath.Abs(w.Path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", w.Path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending Event
	)
	stop := func() {
		if timer != nil {
			timer.Stop()
		}
	}
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			op := convertOp(ev.Op)
			if op == OpChmod {
				continue
			}
			pending.Path = ev.Name
			pending.Op |= op
			stop()
			timer = time.NewTimer(w.Debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			ev := pending
			pending = Event{}
			if w.OnChange != nil {
				w.OnChange(ev)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			if w.OnError != nil {
				w.OnError(err)
			}
		}
	}
}
