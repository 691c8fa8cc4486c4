// Package watch reports changes to trace files using OS-native notifications.
package watch

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Op indicates a change operation in the filesystem.
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// Event is a single filesystem change.
type Event struct {
	Path string
	Op   Op
}

// Changed reports whether the event may have altered file contents.
func (e Event) Changed() bool { return e.Op&(OpCreate|OpWrite) != 0 }

// Watcher forwards fsnotify events whose file name matches a glob pattern.
// Both channels are closed once the watcher is closed.
type Watcher struct {
	w       *fsnotify.Watcher
	pattern string
	evC     chan Event
	erC     chan error
}

// New creates a Watcher. An empty pattern matches every file.
func New(pattern string) (*Watcher, error) {
	if pattern != "" {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return nil, err
		}
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &Watcher{w: w, pattern: pattern, evC: make(chan Event, 128), erC: make(chan error, 1)}
	go fw.loop()
	return fw, nil
}

func (fw *Watcher) loop() {
	defer close(fw.evC)
	defer close(fw.erC)
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			if !fw.matches(ev.Name) {
				continue
			}
			fw.evC <- Event{Path: ev.Name, Op: translate(ev.Op)}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			select {
			case fw.erC <- err:
			default:
				// a pending error is already queued
			}
		}
	}
}

func (fw *Watcher) matches(name string) bool {
	if fw.pattern == "" {
		return true
	}
	ok, _ := filepath.Match(fw.pattern, filepath.Base(name))
	return ok
}

func translate(in fsnotify.Op) Op {
	var op Op
	if in&fsnotify.Create != 0 {
		op |= OpCreate
	}
	if in&fsnotify.Write != 0 {
		op |= OpWrite
	}
	if in&fsnotify.Remove != 0 {
		op |= OpRemove
	}
	if in&fsnotify.Rename != 0 {
		op |= OpRename
	}
	if in&fsnotify.Chmod != 0 {
		op |= OpChmod
	}
	return op
}

func (fw *Watcher) Events() <-chan Event     { return fw.evC }
func (fw *Watcher) Errors() <-chan error     { return fw.erC }
func (fw *Watcher) Add(name string) error    { return fw.w.Add(name) }
func (fw *Watcher) Remove(name string) error { return fw.w.Remove(name) }
func (fw *Watcher) Close() error             { return fw.w.Close() }
