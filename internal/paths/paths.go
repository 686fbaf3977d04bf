// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package paths

import (
	"os"
	"path/filepath"
)

// AppName names the per-user configuration directory
const AppName = "pdfmeta"

// GetConfigDir returns the pdfmeta configuration directory.
// PDFMETA_CONFIG_DIR overrides the platform default.
func GetConfigDir() string {
	if dir := os.Getenv("PDFMETA_CONFIG_DIR"); dir != "" {
		return dir
	}

	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, AppName)
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "."+AppName)
	}
	return ""
}

// GetConfigFile returns the path to the settings file, or "" when no config directory is known
func GetConfigFile() string {
	dir := GetConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}
