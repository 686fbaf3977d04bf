// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pdfmeta/internal/paths"

	"gopkg.in/yaml.v3"
)

// Config represents the tool settings file
type Config struct {
	// Default settings
	Defaults struct {
		MetadataFile string `yaml:"metadata_file"`
		OutputSuffix string `yaml:"output_suffix"`
		Verbose      bool   `yaml:"verbose"`
		Quiet        bool   `yaml:"quiet"`
		Debug        bool   `yaml:"debug"`
		NoColor      bool   `yaml:"no_color"`
		Strict       bool   `yaml:"strict"`
		StampDates   bool   `yaml:"stamp_dates"`
	} `yaml:"defaults"`

	// Output file handling
	Output struct {
		PreservePermissions bool `yaml:"preserve_permissions"`
	} `yaml:"output"`
}

// LoadConfig loads settings from configPath; an empty path yields the defaults
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	// Set default values
	config.Defaults.MetadataFile = "metadata.json"
	config.Defaults.OutputSuffix = "_updated"
	config.Defaults.StampDates = true
	config.Output.PreservePermissions = true

	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// yaml leaves unset fields alone, but an explicit empty string would clear them
	if strings.TrimSpace(config.Defaults.MetadataFile) == "" {
		config.Defaults.MetadataFile = "metadata.json"
	}

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// ValidateConfig checks settings that would produce unusable output paths
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}
	if strings.ContainsAny(config.Defaults.OutputSuffix, `/\`) {
		return fmt.Errorf("output_suffix must not contain path separators: %q", config.Defaults.OutputSuffix)
	}
	return nil
}

// FindConfigFile looks for a settings file in the working directory, then in the user config directory
func FindConfigFile() string {
	for _, name := range []string{".pdfmeta.yaml", ".pdfmeta.yml"} {
		if fileExists(name) {
			return name
		}
	}

	if standardConfig := paths.GetConfigFile(); standardConfig != "" && fileExists(standardConfig) {
		return standardConfig
	}
	return ""
}

// LoadConfigOrDefault loads configFile, or the discovered settings file when it is empty.
// Problems are returned as a warning alongside the defaults.
func LoadConfigOrDefault(configFile string) (*Config, error) {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		cfg, _ = LoadConfig("")
		return cfg, err
	}
	return cfg, nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
