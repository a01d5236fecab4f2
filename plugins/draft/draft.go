// Package draft keeps a markdown copy of the message being composed on disk
// so an interrupted session can be recovered.
package draft

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bethropolis/quill/internal/event"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/plugin"
)

// Ensure Draft implements plugin.Plugin
var _ plugin.Plugin = (*Draft)(nil)

const (
	defaultEnabled  = false
	defaultInterval = 30 * time.Second
	defaultFileName = "draft.md"
)

// Draft periodically writes the session's markdown to a file.
//
// Snapshots are taken on the editing goroutine from event handlers; the
// saver goroutine only ever touches the snapshot.
type Draft struct {
	api plugin.ComposerAPI

	// Configuration
	mutex    sync.Mutex // Protects everything below
	enabled  bool
	interval time.Duration
	path     string

	// Runtime state
	snapshot string
	dirty    bool
	stopChan chan struct{}  // Signals the saver goroutine to stop
	wg       sync.WaitGroup // Waits for the goroutine to finish
}

// New creates a new instance of the Draft plugin.
func New() plugin.Plugin {
	return &Draft{
		enabled:  defaultEnabled,
		interval: defaultInterval,
		path:     defaultPath(),
	}
}

func defaultPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "quill", defaultFileName)
}

// Name returns the unique name of the plugin.
func (p *Draft) Name() string {
	return "draft"
}

// Initialize reads [plugins.draft] (enabled, interval, path) and starts the
// saver loop if enabled.
func (p *Draft) Initialize(api plugin.ComposerAPI) error {
	p.api = api
	name := p.Name()

	p.mutex.Lock()
	if v, ok := api.GetPluginConfigValue(name, "enabled"); ok {
		if b, isBool := v.(bool); isBool {
			p.enabled = b
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", name, v, p.enabled)
		}
	}
	if v, ok := api.GetPluginConfigValue(name, "interval"); ok {
		s, isStr := v.(string)
		d, err := time.ParseDuration(s)
		switch {
		case !isStr:
			logger.Warnf("%s: Invalid type for 'interval' config (%T), using default (%v)", name, v, p.interval)
		case err != nil || d <= 0:
			logger.Warnf("%s: Invalid 'interval' config ('%s'), using default (%v)", name, s, p.interval)
		default:
			p.interval = d
		}
	}
	if v, ok := api.GetPluginConfigValue(name, "path"); ok {
		if s, isStr := v.(string); isStr && s != "" {
			p.path = s
		} else {
			logger.Warnf("%s: Invalid 'path' config (%v), using default (%s)", name, v, p.path)
		}
	}
	enabled, interval := p.enabled, p.interval
	p.mutex.Unlock()

	logger.Debugf("%s initialized. Enabled: %v, Interval: %v", name, enabled, interval)
	if !enabled {
		return nil
	}

	api.SubscribeEvent(event.TypeTextChanged, p.onChange)
	api.SubscribeEvent(event.TypeHistoryApplied, p.onChange)

	p.stopChan = make(chan struct{})
	p.wg.Add(1)
	go p.saverLoop(interval)
	return nil
}

// Shutdown stops the saver goroutine and writes any pending snapshot.
func (p *Draft) Shutdown() error {
	if p.stopChan == nil {
		return nil
	}
	close(p.stopChan)
	p.wg.Wait()
	p.stopChan = nil
	return p.saveIfDirty()
}

// Path returns where drafts are written.
func (p *Draft) Path() string {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.path
}

func (p *Draft) onChange(e event.Event) bool {
	md := p.api.Markdown()
	p.mutex.Lock()
	p.snapshot = md
	p.dirty = true
	p.mutex.Unlock()
	return false
}

func (p *Draft) saverLoop(interval time.Duration) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := p.saveIfDirty(); err != nil {
				logger.Errorf("%s: %v", p.Name(), err)
			}
		case <-p.stopChan:
			return
		}
	}
}

// saveIfDirty writes the latest snapshot when it has not been saved yet.
func (p *Draft) saveIfDirty() error {
	p.mutex.Lock()
	if !p.dirty {
		p.mutex.Unlock()
		return nil
	}
	md, path := p.snapshot, p.path
	p.dirty = false
	p.mutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating draft directory: %w", err)
	}
	// Write then rename so a crash never leaves a truncated draft.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(md), 0o600); err != nil {
		return fmt.Errorf("writing draft: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing draft: %w", err)
	}
	logger.Debugf("%s: Saved %d bytes to %s", p.Name(), len(md), path)
	return nil
}
