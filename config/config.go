package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	AWS struct {
		Region   string `yaml:"region"`
		Endpoint string `yaml:"endpoint"`
	} `yaml:"aws"`

	// MetadataTool configures the external command used to dump parquet
	// metadata (e.g. parquet-tools meta). When Command is empty the
	// embedded footer reader is used instead.
	MetadataTool struct {
		Command string   `yaml:"command"`
		Args    []string `yaml:"args"`
	} `yaml:"metadata_tool"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
