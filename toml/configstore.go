// Package toml persists per-profile configuration as TOML files on disk,
// one directory per profile.
package toml

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/docbase/docbase"
	"github.com/pelletier/go-toml/v2"
)

const configFile = "config.toml"

// Ensure ConfigStore implements docbase.ConfigStore at compile time.
var _ docbase.ConfigStore = (*ConfigStore)(nil)

// ConfigStore stores profile configuration under dir/<profile>/config.toml.
type ConfigStore struct {
	dir string
}

// NewConfigStore creates a ConfigStore rooted at dir.
func NewConfigStore(dir string) *ConfigStore {
	return &ConfigStore{dir: dir}
}

// DefaultDir returns the default profile directory under the user's home.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".docbase", "profiles"), nil
}

func validName(profile string) error {
	if profile == "" || strings.ContainsAny(profile, `/\`) || profile == "." || profile == ".." {
		return docbase.Errorf(docbase.EINVALID, "invalid profile name %q", profile)
	}
	return nil
}

func (s *ConfigStore) path(profile string) string {
	return filepath.Join(s.dir, profile, configFile)
}

// Load returns the profile's configuration. File contents are applied over
// the defaults, so a sparse config file stays valid.
func (s *ConfigStore) Load(ctx context.Context, profile string) (*docbase.Config, error) {
	if err := validName(profile); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.path(profile))
	if os.IsNotExist(err) {
		return nil, docbase.Errorf(docbase.ENOTFOUND, "profile %q not found", profile)
	}
	if err != nil {
		return nil, err
	}

	cfg := docbase.DefaultConfig()
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return nil, docbase.Errorf(docbase.EINVALID, "profile %q has invalid config: %v", profile, err)
	}
	return &cfg, nil
}

// Save writes the profile's configuration, creating the profile if needed.
func (s *ConfigStore) Save(ctx context.Context, profile string, cfg *docbase.Config) error {
	if err := validName(profile); err != nil {
		return err
	}
	raw, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path(profile)), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path(profile), raw, 0o644)
}

// List returns all profile names in lexical order.
func (s *ConfigStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var profiles []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(s.path(e.Name())); err == nil {
			profiles = append(profiles, e.Name())
		}
	}
	return profiles, nil
}

// Delete removes a profile and its configuration.
func (s *ConfigStore) Delete(ctx context.Context, profile string) error {
	if err := validName(profile); err != nil {
		return err
	}
	dir := filepath.Join(s.dir, profile)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return docbase.Errorf(docbase.ENOTFOUND, "profile %q not found", profile)
	}
	return os.RemoveAll(dir)
}
