package allow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Alfex4936/kanacheck/internal/parse"
)

// LoadFile reads an allow-list file (see parse.Decode for formats).
func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	list, err := parse.Decode(data, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return list, nil
}

// File is an allow-list file kept in sync with the disk.
type File struct {
	path     string
	mu       sync.RWMutex
	list     []string
	watcher  *fsnotify.Watcher
	onChange []func([]string)
	debounce time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	errChan  chan error
}

// OpenFile loads path once. Call Watch to follow later edits.
func OpenFile(path string) (*File, error) {
	list, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &File{
		path:     path,
		list:     list,
		debounce: 100 * time.Millisecond,
		ctx:      ctx,
		cancel:   cancel,
		errChan:  make(chan error, 1),
	}, nil
}

// Path returns the watched file path.
func (f *File) Path() string { return f.path }

// List returns the entries of the last good load.
func (f *File) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]string, len(f.list))
	copy(out, f.list)
	return out
}

// OnChange registers cb to run after every successful reload.
// Register callbacks before calling Watch.
func (f *File) OnChange(cb func([]string)) {
	f.onChange = append(f.onChange, cb)
}

// Errors receives reload failures. The previous list stays in use.
func (f *File) Errors() <-chan error { return f.errChan }

// Watch follows the file's directory so editors that replace the file
// by rename are seen too.
func (f *File) Watch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(f.path)); err != nil {
		w.Close()
		return fmt.Errorf("watch directory: %w", err)
	}
	f.watcher = w
	go f.loop()
	return nil
}

func (f *File) loop() {
	var timer *time.Timer
	for {
		select {
		case <-f.ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != filepath.Base(f.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(f.debounce, f.reload)

		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			f.report(err)
		}
	}
}

func (f *File) reload() {
	list, err := LoadFile(f.path)
	if err != nil {
		f.report(fmt.Errorf("reload allow list: %w", err))
		return
	}

	f.mu.Lock()
	f.list = list
	f.mu.Unlock()

	for _, cb := range f.onChange {
		cb(f.List())
	}
}

func (f *File) report(err error) {
	select {
	case f.errChan <- err:
	default:
	}
}

// Close stops watching.
func (f *File) Close() error {
	f.cancel()
	if f.watcher != nil {
		return f.watcher.Close()
	}
	return nil
}
