//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package config loads user settings for gote from a JSON file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

const (
	configName = "config.json"
	// EnvConfig names a config file to use instead of the default one.
	EnvConfig = "GOTE_CONFIG"
)

// Config holds the user's settings.
type Config struct {
	Driver         string `json:"driver,omitempty"`
	LogFile        string `json:"log_file,omitempty"`
	MessageTimeout int    `json:"message_timeout,omitempty"` // seconds
	Hint           string `json:"hint,omitempty"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		Driver:         "termbox",
		LogFile:        defaultLogFile(),
		MessageTimeout: 5,
	}
}

func defaultLogFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gotelog"
	}
	return filepath.Join(home, ".gotelog")
}

// Path returns the location of the config file.
func Path() (string, error) {
	if path := os.Getenv(EnvConfig); path != "" {
		return path, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "gote", configName), nil
}

// Load reads the config file. A missing file gives the defaults.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return Read(path)
}

// Read reads settings from path on top of the defaults.
func Read(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.MessageTimeout <= 0 {
		cfg.MessageTimeout = Default().MessageTimeout
	}
	if cfg.LogFile == "" {
		cfg.LogFile = defaultLogFile()
	}
	return cfg, nil
}

// MessageDuration returns MessageTimeout as a duration.
func (c Config) MessageDuration() time.Duration {
	return time.Duration(c.MessageTimeout) * time.Second
}
