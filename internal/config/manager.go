package config

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Manager loads the configuration file.
type Manager struct {
	mu         sync.RWMutex
	config     *CustomDNS
	configPath string
}

// NewManager creates a new configuration manager.
func NewManager(configPath string) *Manager {
	return &Manager{
		configPath: configPath,
	}
}

// Load reads and validates the configuration file. A missing file is an
// error: there is no sensible default for the custom entry.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", m.configPath, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return fmt.Errorf("config %s: %w", m.configPath, err)
	}

	m.config = cfg
	return nil
}

// Get returns the loaded configuration, or nil before a successful Load.
func (m *Manager) Get() *CustomDNS {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Path returns the configuration file path.
func (m *Manager) Path() string {
	return m.configPath
}

// Parse decodes and validates configuration data.
func Parse(data []byte) (*CustomDNS, error) {
	var cfg CustomDNS
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
