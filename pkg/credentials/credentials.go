// Package credentials supplies and rotates the API access token. Sessions
// expire daily, so long-running processes typically point a FileSource at
// the token file their login automation rewrites each morning.
package credentials

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/SPRAGE/kiteconnect-async-wasm-sub000/pkg/telemetry/logging"
)

// Source yields the current access token.
type Source interface {
	Token() string
}

// Static is a fixed token, for short-lived tools and tests.
type Static string

// Token implements Source.
func (s Static) Token() string { return string(s) }

// FileSource reads the access token from a file and keeps it current by
// watching the file for rewrites. Safe for concurrent use.
type FileSource struct {
	path    string
	logger  *slog.Logger
	watcher *fsnotify.Watcher

	mu       sync.RWMutex
	token    string
	onChange func(string)

	closeOnce sync.Once
	done      chan struct{}
}

// NewFileSource reads the token file and starts watching it. The file's
// contents are trimmed of surrounding whitespace.
func NewFileSource(path string, logger *slog.Logger) (*FileSource, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f := &FileSource{
		path:   path,
		logger: logger.With("component", "token-watcher"),
		done:   make(chan struct{}),
	}
	if err := f.reload(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("credentials: creating watcher: %w", err)
	}
	// Watch the directory, not the file: editors and atomic writers replace
	// the file, which drops a watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("credentials: watching %s: %w", filepath.Dir(path), err)
	}

	f.watcher = watcher
	go f.watch()
	return f, nil
}

// Token implements Source.
func (f *FileSource) Token() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.token
}

// OnChange registers a callback invoked with the new token after every
// reload, e.g. to install it on a client. Only one callback is kept.
func (f *FileSource) OnChange(fn func(token string)) {
	f.mu.Lock()
	f.onChange = fn
	f.mu.Unlock()
}

// Close stops the watcher.
func (f *FileSource) Close() error {
	var err error
	f.closeOnce.Do(func() {
		close(f.done)
		err = f.watcher.Close()
	})
	return err
}

func (f *FileSource) reload() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("credentials: reading token file: %w", err)
	}
	token := strings.TrimSpace(string(data))

	f.mu.Lock()
	changed := token != f.token
	f.token = token
	fn := f.onChange
	f.mu.Unlock()

	if changed && fn != nil {
		fn(token)
	}
	return nil
}

func (f *FileSource) watch() {
	for {
		select {
		case <-f.done:
			return
		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if event.Name != f.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := f.reload(); err != nil {
				// The file may be mid-rewrite; the next event retries.
				f.logger.Warn("token reload failed", "error", err)
				continue
			}
			f.logger.Info("access token reloaded", "token", logging.MaskToken(f.Token()))
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			f.logger.Error("token watcher error", "error", err)
		}
	}
}
