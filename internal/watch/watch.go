// Package watch delivers debounced change notifications for a fixed
// set of declaration files, backed by OS-native notifications.
package watch

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op indicates a change operation on a watched file.
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// String returns a pipe-separated list of the set operation bits.
func (o Op) String() string {
	var parts []string
	if o&OpCreate != 0 {
		parts = append(parts, "CREATE")
	}
	if o&OpWrite != 0 {
		parts = append(parts, "WRITE")
	}
	if o&OpRemove != 0 {
		parts = append(parts, "REMOVE")
	}
	if o&OpRename != 0 {
		parts = append(parts, "RENAME")
	}
	if o&OpChmod != 0 {
		parts = append(parts, "CHMOD")
	}
	if len(parts) == 0 {
		return "NONE"
	}
	return strings.Join(parts, "|")
}

// Event describes a change to a watched file.
type Event struct {
	Path string
	Op   Op
	Time time.Time
}

func opFromFsnotify(op fsnotify.Op) Op {
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

// Watcher watches declaration files through their parent directories
// and coalesces bursts of events per file. Watching the directory
// rather than the file itself keeps the watch alive across the
// replace-by-rename saves editors perform.
type Watcher struct {
	fw       *fsnotify.Watcher
	events   chan Event
	errors   chan error
	files    map[string]bool
	debounce time.Duration
	done     chan struct{}
	closed   sync.Once
}

// New creates a watcher delivering events for the named files. Events
// arriving within debounce of each other collapse into one per file.
func New(files []string, debounce time.Duration) (*Watcher, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watched := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fw.Close()
			return nil, err
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	w := &Watcher{
		fw:       fw,
		events:   make(chan Event, 128),
		errors:   make(chan error, 1),
		files:    watched,
		debounce: debounce,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Events returns the channel of debounced file events.
func (w *Watcher) Events() <-chan Event { return w.events }

// Errors returns the channel of watcher errors.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closed.Do(func() {
		close(w.done)
		err = w.fw.Close()
	})
	return err
}

func (w *Watcher) loop() {
	pending := make(map[string]Op)
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !w.files[abs] {
				continue
			}
			op := opFromFsnotify(ev.Op)
			if op&(OpCreate|OpWrite|OpRemove|OpRename) == 0 {
				continue
			}
			pending[abs] |= op
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			now := time.Now()
			for path, op := range pending {
				select {
				case w.events <- Event{Path: path, Op: op, Time: now}:
				case <-w.done:
					return
				}
			}
			pending = make(map[string]Op)
			timerC = nil

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}

		case <-w.done:
			return
		}
	}
}
