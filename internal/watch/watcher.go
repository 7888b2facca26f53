package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ErrWatchClosed is returned when the event source goes away
var ErrWatchClosed = errors.New("something went wrong during file watching")

// RunFunc is one orchestrator invocation
type RunFunc func(ctx context.Context) error

type options struct {
	debounce time.Duration
	logger   *zap.Logger
	stdout   io.Writer
	stderr   io.Writer
	onError  func(error)
}

// Option configures Watch
type Option func(*options)

// WithDebounce collapses writes arriving within d of the first one
func WithDebounce(d time.Duration) Option {
	return func(o *options) { o.debounce = d }
}

// WithLogger sets the diagnostic logger
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithOutput redirects the banner and error lines
func WithOutput(stdout, stderr io.Writer) Option {
	return func(o *options) {
		o.stdout = stdout
		o.stderr = stderr
	}
}

// WithErrorPrinter replaces the default "error: ..." line printed when a
// run fails
func WithErrorPrinter(fn func(error)) Option {
	return func(o *options) { o.onError = fn }
}

// Watch runs run once, then again every time path is written to. Errors
// returned by run are printed and watching continues. It returns when the
// watcher fails or ctx is done.
func Watch(ctx context.Context, path string, run RunFunc, opts ...Option) error {
	o := options{logger: zap.NewNop(), stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}
	if o.onError == nil {
		stderr := o.stderr
		o.onError = func(err error) {
			fmt.Fprintf(stderr, "%s: %v\n", color.HiRedString("error"), err)
		}
	}

	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer watcher.Close()

	// Watching the folder keeps the watch alive when an editor replaces the
	// file, but only writes to it trigger a run
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	s := &session{target: target, run: run, watcher: watcher, opts: o}
	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err, ok := <-watcher.Errors:
			if !ok {
				return ErrWatchClosed
			}
			return fmt.Errorf("%w: %v", ErrWatchClosed, err)
		case event, ok := <-watcher.Events:
			if !ok {
				return ErrWatchClosed
			}
			if !s.modified(event) {
				continue
			}
			if err := s.settle(ctx); err != nil {
				return err
			}
			s.runOnce(ctx)
		}
	}
}

type session struct {
	target  string
	run     RunFunc
	watcher *fsnotify.Watcher
	opts    options
}

func (s *session) modified(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != s.target {
		return false
	}
	s.opts.logger.Debug("file event", zap.String("file", event.Name), zap.String("op", event.Op.String()))
	return event.Has(fsnotify.Write)
}

// settle swallows the events that follow a write within the debounce window
func (s *session) settle(ctx context.Context) error {
	if s.opts.debounce <= 0 {
		return nil
	}
	timer := time.NewTimer(s.opts.debounce)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return ErrWatchClosed
			}
			return fmt.Errorf("%w: %v", ErrWatchClosed, err)
		case _, ok := <-s.watcher.Events:
			if !ok {
				return ErrWatchClosed
			}
		}
	}
}

func (s *session) runOnce(ctx context.Context) {
	if err := s.run(ctx); err != nil && ctx.Err() == nil {
		s.opts.onError(err)
	}
	fmt.Fprintf(s.opts.stdout, "\n%s %s...\n\n",
		color.HiCyanString("watching"),
		color.New(color.Underline).Sprint(filepath.Base(s.target)))
}
