package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config is the mount-time configuration for an archivefs process: which
// archive file to load and where to expose it.
type Config struct {
	ArchivePath string `yaml:"archive_path"`
	MountPoint  string `yaml:"mount_point"`
	ReadOnly    bool   `yaml:"read_only"`
	LogFile     string `yaml:"log_file"`
}

// Load reads and strictly decodes a YAML config file at path. Unknown keys
// are rejected, matching mutagen's encoding/yaml.go convention of catching
// typos in hand-edited config files rather than silently ignoring them.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read configuration file")
	}
	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "unable to decode configuration file")
	}
	return &cfg, nil
}

// Validate checks that the config is complete enough to mount.
func (c *Config) Validate() error {
	if c.ArchivePath == "" {
		return errors.New("archive_path must be set")
	}
	if c.MountPoint == "" {
		return errors.New("mount_point must be set")
	}
	return nil
}
