// Package sortcfg loads and saves the JSON sidecar file that pins a scratch
// file to the engine layout it was built with.
package sortcfg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/blocksort/extsort"
)

// Config is the persisted shape of an engine configuration: the page/buffer
// layout plus the ambient verbosity knob, which isn't part
// of the on-disk format but does affect how a sort is run.
type Config struct {
	PageSize    int  `json:"page_size"`
	RecordSize  int  `json:"record_size"`
	HeaderSize  int  `json:"header_size"`
	BufferPages int  `json:"buffer_pages"`
	Verbose     bool `json:"verbose"`

	path string
	mu   sync.Mutex
}

// Default values used when no sidecar file exists yet.
const (
	DefaultPageSize    = 4096
	DefaultBufferPages = 64
)

// Load reads the sidecar file next to scratchPath, or returns defaults for
// recordSize if none exists yet.
func Load(scratchPath string, recordSize int) (*Config, error) {
	c := &Config{
		PageSize:    DefaultPageSize,
		RecordSize:  recordSize,
		HeaderSize:  extsort.DefaultHeaderSize,
		BufferPages: DefaultBufferPages,
		path:        sidecarPath(scratchPath),
	}

	if _, err := os.Stat(c.path); os.IsNotExist(err) {
		return c, nil
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("sortcfg: read %s: %w", c.path, err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("sortcfg: parse %s: %w", c.path, err)
	}
	return c, nil
}

// Save writes the sidecar file next to the scratch path it was loaded for.
func (c *Config) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("sortcfg: marshal: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("sortcfg: write %s: %w", c.path, err)
	}
	return nil
}

// EngineConfig converts the sidecar shape into the engine's own Config type.
func (c *Config) EngineConfig() extsort.Config {
	return extsort.Config{
		PageSize:    c.PageSize,
		RecordSize:  c.RecordSize,
		HeaderSize:  c.HeaderSize,
		BufferPages: c.BufferPages,
	}
}

func sidecarPath(scratchPath string) string {
	dir := filepath.Dir(scratchPath)
	base := filepath.Base(scratchPath)
	return filepath.Join(dir, base+".sortcfg.json")
}
