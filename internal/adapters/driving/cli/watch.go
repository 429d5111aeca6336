package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/nimbleworks/dochat/internal/core/domain"
	"github.com/nimbleworks/dochat/internal/logger"
)

// watchDebounce coalesces the burst of write events editors produce
// when saving a file.
const watchDebounce = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Keep the collection in sync with a directory",
	Long: `Watches a directory and ingests supported files as they are created or
modified. Deleted files are removed from the collection. Runs until
interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return errors.New("watch target must be a directory")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (ctrl-c to stop)\n", dir)

	debounce := newDebouncer(watchDebounce)

	scheduleIngest := func(path string) {
		debounce.schedule(path, func() {
			ingestWatched(cmd, app, path)
		})
	}

	for {
		select {
		case <-ctx.Done():
			cmd.Println("Stopped.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if _, supported := domain.FormatFromPath(event.Name); !supported {
				continue
			}
			switch {
			case event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write):
				scheduleIngest(event.Name)
			case event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename):
				sourceID := filepath.Base(event.Name)
				removed, err := app.ingest.Remove(context.Background(), sourceID)
				if err != nil {
					logger.Warn("remove %s: %v", sourceID, err)
					continue
				}
				if removed > 0 {
					cmd.Printf("Removed %s (%d chunks)\n", sourceID, removed)
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)
		}
	}
}

// debouncer coalesces rapid event bursts for the same path into a
// single callback. Timer entries are removed once they fire, so the
// map stays bounded by the number of paths currently settling.
type debouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	timers map[string]*time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:  delay,
		timers: make(map[string]*time.Timer),
	}
}

// schedule runs fn after the delay, resetting the countdown if the
// same path is scheduled again first.
func (d *debouncer) schedule(path string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[path]; ok {
		t.Stop()
	}

	var t *time.Timer
	t = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A newer timer may have replaced this one; only remove our own.
		if d.timers[path] == t {
			delete(d.timers, path)
		}
		d.mu.Unlock()
		fn()
	})
	d.timers[path] = t
}

// pending returns the number of paths with a timer outstanding.
func (d *debouncer) pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.timers)
}

// ingestWatched ingests one changed file, logging failures instead of
// stopping the watch loop.
func ingestWatched(cmd *cobra.Command, app *app, path string) {
	format, ok := domain.FormatFromPath(path)
	if !ok {
		return
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("read %s: %v", path, err)
		return
	}

	sourceID := filepath.Base(path)
	count, err := app.ingest.Ingest(context.Background(), sourceID, raw, format)
	if err != nil {
		logger.Warn("ingest %s: %v", sourceID, err)
		return
	}
	cmd.Printf("Ingested %s (%d chunks)\n", sourceID, count)
}
