package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"kanadex/internal/domain"
	"kanadex/internal/eventbus"
)

// Config is the persisted UI state. The three restore slots (sidebar
// flag, last search, last facet) are independent: clearing one never
// touches the others.
type Config struct {
	Version int `toml:"version"`

	DataDir     string `toml:"data_dir"`
	HistoryPath string `toml:"history_path"`

	SidebarCollapsed bool `toml:"sidebar_collapsed"`

	LastSearch SearchSlot `toml:"last_search"`
	LastFacet  FacetSlot  `toml:"last_facet"`

	UISettings UISettings `toml:"ui"`
}

// SearchSlot holds the last text query and category
type SearchSlot struct {
	Query    string `toml:"query"`
	Category string `toml:"category"`
}

// FacetSlot holds the last sidebar filter facet
type FacetSlot struct {
	FieldID string `toml:"field_id"`
	Value   string `toml:"value"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	CardPageSize  int  `toml:"card_page_size"`
	TablePageSize int  `toml:"table_page_size"`
	ScrollLock    bool `toml:"scroll_lock"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	appDir := filepath.Join(configDir, "kanadex")
	os.MkdirAll(appDir, 0o755)

	return &configService{
		filePath: filepath.Join(appDir, "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from file
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cs.publishLoaded(cfg)
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}

	cs.publishLoaded(cfg)
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (cs *configService) publishLoaded(cfg *Config) {
	if cs.bus == nil {
		return
	}
	cs.bus.Publish(eventbus.ConfigLoadedEvent{
		Query:    cfg.LastSearch.Query,
		Category: domain.Category(cfg.LastSearch.Category),
	})
}

func applyDefaults(cfg *Config) {
	if cfg.UISettings.CardPageSize <= 0 {
		cfg.UISettings.CardPageSize = 24
	}
	if cfg.UISettings.TablePageSize <= 0 {
		cfg.UISettings.TablePageSize = 50
	}
	if cfg.LastSearch.Category == "" {
		cfg.LastSearch.Category = string(domain.CategoryAll)
	}
	// An empty facet field means no facet; drop any orphaned value
	if cfg.LastFacet.FieldID == "" {
		cfg.LastFacet.Value = ""
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cfg := &Config{
		Version: 1,
		DataDir: "data",
	}
	applyDefaults(cfg)
	return cfg
}
