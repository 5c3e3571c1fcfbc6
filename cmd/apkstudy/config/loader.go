// Copyright (C) 2025 JK8789 (jk8789@users.noreply.github.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory
// when no explicit path is given. The APKSTUDY_CONFIG environment
// variable overrides it.
const DefaultPath = "apkstudy.yaml"

var (
	global     StudyConfig
	globalOnce sync.Once
	globalErr  error
)

// Global loads the configuration exactly once and returns it. The
// first caller decides the path; later callers get the same result.
func Global(path string) (StudyConfig, error) {
	globalOnce.Do(func() {
		global, globalErr = Load(path)
	})
	return global, globalErr
}

// Load reads and validates the configuration at path. An empty path
// falls back to APKSTUDY_CONFIG, then DefaultPath. If the default
// file does not exist it is created with DefaultConfig so a first
// run leaves an editable template behind.
func Load(path string) (StudyConfig, error) {
	explicit := path != ""
	if path == "" {
		path = os.Getenv("APKSTUDY_CONFIG")
	}
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		cfg := DefaultConfig()
		if werr := writeDefault(path, cfg); werr != nil {
			return StudyConfig{}, fmt.Errorf("creating default config %s: %w", path, werr)
		}
		return cfg, nil
	}
	if err != nil {
		return StudyConfig{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return StudyConfig{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := validate(cfg); err != nil {
		return StudyConfig{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func validate(cfg StudyConfig) error {
	v := validator.New()
	return v.Struct(cfg)
}

func writeDefault(path string, cfg StudyConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
