package hashrange

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// Config defines the file based configuration of a table.
type Config struct {
	Path            string `yaml:"path"`
	Backend         string `yaml:"backend"`
	CreateIfMissing *bool  `yaml:"createIfMissing"`
	Compression     string `yaml:"compression"`

	BlockCacheCapacity int  `yaml:"blockCacheCapacity"`
	WriteBufferSize    int  `yaml:"writeBufferSize"`
	NoSync             bool `yaml:"noSync"`

	LogLevel string `yaml:"logLevel"`
}

// NewDefaultConfig returns a new default configuration.
func NewDefaultConfig() *Config {
	create := true
	return &Config{
		Path:            "/var/lib/hashrange",
		Backend:         string(GoLevelDB),
		CreateIfMissing: &create,
		Compression:     "snappy",
		LogLevel:        "info",
	}
}

// LoadFromFile loads the config from a YAML file. It assumes that config
// already has the defaults; only values set in the file are overridden.
// In the case of an error, it leaves the config untouched.
func (c *Config) LoadFromFile(path string) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "hashrange: read config %s", path)
	}

	var fc Config
	if err := yaml.UnmarshalStrict(data, &fc); err != nil {
		return errors.Wrapf(err, "hashrange: parse config %s", path)
	}

	if fc.Path != "" {
		c.Path = fc.Path
	}
	if fc.Backend != "" {
		c.Backend = fc.Backend
	}
	if fc.CreateIfMissing != nil {
		c.CreateIfMissing = fc.CreateIfMissing
	}
	if fc.Compression != "" {
		c.Compression = fc.Compression
	}
	if fc.BlockCacheCapacity != 0 {
		c.BlockCacheCapacity = fc.BlockCacheCapacity
	}
	if fc.WriteBufferSize != 0 {
		c.WriteBufferSize = fc.WriteBufferSize
	}
	if fc.NoSync {
		c.NoSync = true
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	return nil
}

// Validate validates a config and returns an error if it's invalid.
func (c *Config) Validate() error {
	if !Backend(c.Backend).isValid() {
		return errors.Wrapf(ErrUnknownBackend, "%q", c.Backend)
	}
	if c.Path == "" && Backend(c.Backend) != Memory {
		return errors.New("hashrange: invalid path provided in config")
	}
	if _, ok := compressionNames[c.Compression]; !ok {
		return errors.Errorf("hashrange: invalid compression %q provided in config", c.Compression)
	}
	if c.BlockCacheCapacity < 0 || c.WriteBufferSize < 0 {
		return errors.New("hashrange: negative sizes provided in config")
	}
	if c.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
			return errors.Wrap(err, "hashrange: invalid log level provided in config")
		}
	}
	return nil
}

// Options converts the config to store options. The config must be valid.
func (c *Config) Options() *Options {
	return &Options{
		Backend:            Backend(c.Backend),
		ErrorIfMissing:     c.CreateIfMissing != nil && !*c.CreateIfMissing,
		Compression:        compressionNames[c.Compression],
		BlockCacheCapacity: c.BlockCacheCapacity,
		WriteBufferSize:    c.WriteBufferSize,
		NoSync:             c.NoSync,
	}
}

var compressionNames = map[string]Compression{
	"":       SnappyCompression,
	"snappy": SnappyCompression,
	"none":   NoCompression,
}
