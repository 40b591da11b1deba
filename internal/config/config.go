// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads the optional .blamelint.yaml file that supplies
// defaults for the check flags. Flags given on the command line win.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/blamelint/blamelint/internal/validate"
)

// DefaultFileName is the config file looked up next to the validated file.
const DefaultFileName = ".blamelint.yaml"

type Config struct {
	BotAuthor         string `yaml:"bot_author"`
	CallGit           bool   `yaml:"call_git"`
	StrictComments    bool   `yaml:"strict_comments"`
	StrictCommentsGit bool   `yaml:"strict_comments_git"`
	PreCommitCI       bool   `yaml:"pre_commit_ci"`
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty config file, all defaults.
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Discover returns the config file sitting next to the validated file, if
// one exists. A missing config is not an error.
func Discover(validatedFile string) (string, bool) {
	path := filepath.Join(filepath.Dir(validatedFile), DefaultFileName)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path, true
	}
	return "", false
}

// Validate rejects configs that could never produce a runnable check.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BotAuthor) != c.BotAuthor {
		return fmt.Errorf("bot_author has leading or trailing whitespace: %q", c.BotAuthor)
	}
	return nil
}

// Options converts the config into check options. Unset fields keep the
// zero defaults; the bot author falls back at run time.
func (c *Config) Options() validate.Options {
	return validate.Options{
		CallGit:           c.CallGit,
		StrictComments:    c.StrictComments,
		StrictCommentsGit: c.StrictCommentsGit,
		PreCommitCI:       c.PreCommitCI,
		BotAuthor:         c.BotAuthor,
	}
}
