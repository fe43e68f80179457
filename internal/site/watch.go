package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceInterval is how long the watcher waits for changes to settle.
const DebounceInterval = 500 * time.Millisecond

// BuildFunc receives the outcome of every build started by Watch.
type BuildFunc func(*Result, error)

// Watch builds once, then rebuilds whenever a file under opts.DataDir changes,
// until ctx is done. Rebuilds never overlap.
func Watch(ctx context.Context, opts Options, onBuild BuildFunc) error {
	if opts.DataDir == "" {
		return errors.New("watch requires a data directory")
	}
	if onBuild == nil {
		onBuild = func(*Result, error) {}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("unable to init watcher: %w", err)
	}
	defer watcher.Close()

	var outDir string
	if opts.OutDir != "" {
		outDir, _ = filepath.Abs(opts.OutDir)
	}
	err = filepath.WalkDir(opts.DataDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if isWithin(p, outDir) {
				return filepath.SkipDir
			}
			return watcher.Add(p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", opts.DataDir, err)
	}

	var buildMu sync.Mutex
	rebuild := func() {
		buildMu.Lock()
		defer buildMu.Unlock()
		if ctx.Err() != nil {
			return
		}
		opts.Logger.Info().Msg("building site")
		onBuild(Build(ctx, opts))
	}

	rebuild()

	var mu sync.Mutex
	var timer *time.Timer
	reset := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(DebounceInterval, rebuild)
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		// Wait for an in-flight build.
		buildMu.Lock()
		buildMu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isWithin(ev.Name, outDir) {
				continue
			}
			if ev.Op.Has(fsnotify.Create) {
				// New directories need their own watch.
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = watcher.Add(ev.Name)
				}
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				opts.Logger.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("change detected")
				reset()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			opts.Logger.Warn().Err(err).Msg("watch error")
		}
	}
}

func isWithin(p, dir string) bool {
	if dir == "" {
		return false
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return false
	}
	return abs == dir || strings.HasPrefix(abs, dir+string(filepath.Separator))
}
