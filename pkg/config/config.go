/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ssargent/sifdb/pkg/codec"
	"github.com/ssargent/sifdb/pkg/store"
)

// Config represents the SifDB configuration
type Config struct {
	DataDir  string     `yaml:"data_dir"`
	Port     int        `yaml:"port"`
	Bind     string     `yaml:"bind"`
	Security Security   `yaml:"security"`
	Logging  Logging    `yaml:"logging"`
	Tables   []TableDef `yaml:"tables"`
}

// Security contains security-related configuration
type Security struct {
	SystemKey    string `yaml:"system_key"`
	ClientAPIKey string `yaml:"client_api_key"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// TableDef declares one table: identity, schema generation, and columns
// in wire order.
type TableDef struct {
	Name          string      `yaml:"name"`
	TableID       int64       `yaml:"table_id"`
	SchemaVersion int         `yaml:"schema_version"`
	Columns       []ColumnDef `yaml:"columns"`
}

// ColumnDef declares one column of a table. Dropped marks a tombstone
// slot left behind by a removed column; a tombstone has no name, type,
// or index.
type ColumnDef struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Key     bool   `yaml:"key,omitempty"`
	Index   int    `yaml:"index"`
	Dropped bool   `yaml:"dropped,omitempty"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data",
		Port:    8080,
		Bind:    "127.0.0.1",
		Security: Security{
			SystemKey:    "auto",
			ClientAPIKey: "auto",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// TableConfig converts a table declaration into the store's runtime
// form, building the codec schema list from the column declarations.
func (td *TableDef) TableConfig() (store.TableConfig, error) {
	columns := make([]codec.ColumnSchema, len(td.Columns))
	for i, cd := range td.Columns {
		if cd.Dropped {
			columns[i] = codec.Dropped
			continue
		}
		kind, err := codec.ParseKind(cd.Type)
		if err != nil {
			return store.TableConfig{}, fmt.Errorf("table %q column %q: %w", td.Name, cd.Name, err)
		}
		col, err := codec.NewColumn(kind, cd.Name, cd.Index, cd.Key)
		if err != nil {
			return store.TableConfig{}, fmt.Errorf("table %q column %q: %w", td.Name, cd.Name, err)
		}
		columns[i] = col
	}
	return store.TableConfig{
		Name:          td.Name,
		TableID:       td.TableID,
		SchemaVersion: td.SchemaVersion,
		Columns:       columns,
	}, nil
}

// RegisterTables registers every declared table with the store.
func (c *Config) RegisterTables(s *store.TableStore) error {
	for i := range c.Tables {
		cfg, err := c.Tables[i].TableConfig()
		if err != nil {
			return err
		}
		if _, err := s.CreateTable(cfg); err != nil {
			return fmt.Errorf("register table %q: %w", cfg.Name, err)
		}
	}
	return nil
}

// LoadConfig loads configuration from the specified path
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	// Validate path to prevent directory traversal
	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write with secure permissions (0600)
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateSecureKey generates a cryptographically secure random key
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// BootstrapConfig creates a new configuration with generated keys if it doesn't exist
func BootstrapConfig(configPath string, dataDir string) (*Config, error) {
	config := DefaultConfig()
	if dataDir != "" {
		config.DataDir = dataDir
	}

	// Generate secure keys
	systemKey, err := GenerateSecureKey(32) // 256 bits
	if err != nil {
		return nil, fmt.Errorf("failed to generate system key: %w", err)
	}
	config.Security.SystemKey = systemKey

	clientAPIKey, err := GenerateSecureKey(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate client API key: %w", err)
	}
	config.Security.ClientAPIKey = clientAPIKey

	// Save the configuration
	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	// Use OS-specific default locations
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./sif.yaml"
	}

	// For Linux/macOS, use ~/.config/sif/config.yaml
	configDir := filepath.Join(homeDir, ".config", "sif")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
