package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/vvka-141/cosmosload/pkg/cosmosload"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type AuthConfig struct {
	TenantID string `yaml:"tenant_id,omitempty"`
	ClientID string `yaml:"client_id,omitempty"`
}

type DatasetConfig struct {
	File         string   `yaml:"file,omitempty"`
	Container    string   `yaml:"container,omitempty"`
	PartitionKey []string `yaml:"partition_key,omitempty"`
}

type ProjectConfig struct {
	Endpoint string                   `yaml:"endpoint"`
	Database string                   `yaml:"database"`
	DataDir  string                   `yaml:"data_dir"`
	Timeout  string                   `yaml:"timeout"`
	Auth     AuthConfig               `yaml:"auth"`
	Datasets map[string]DatasetConfig `yaml:"datasets"`
}

const ConfigFileName = "cosmosload.yaml"

func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDatasets overlays the datasets section onto defaults, keeping the
// order of defaults. Empty fields keep their default value. A dataset name
// missing from defaults is an error.
func (c *ProjectConfig) ApplyDatasets(defaults []cosmosload.DatasetSpec) ([]cosmosload.DatasetSpec, error) {
	out := append([]cosmosload.DatasetSpec(nil), defaults...)
	if c == nil || len(c.Datasets) == 0 {
		return out, nil
	}

	index := make(map[string]int, len(out))
	for i, ds := range out {
		index[ds.Name] = i
	}

	var unknown []string
	for name, override := range c.Datasets {
		i, ok := index[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		if override.File != "" {
			out[i].File = override.File
		}
		if override.Container != "" {
			out[i].Container = override.Container
		}
		if len(override.PartitionKey) > 0 {
			out[i].PartitionKeyPaths = append([]string(nil), override.PartitionKey...)
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown dataset(s) in %s: %v: %w", ConfigFileName, unknown, cosmosload.ErrInvalidConfig)
	}
	return out, nil
}
