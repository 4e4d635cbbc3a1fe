package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// Read reads a config from the given file. Fields the file leaves out keep their Default values.
func Read(filePath string) (*Config, error) {
	//nolint:gosec
	f, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open config")
	}
	defer func() {
		//nolint:errcheck
		f.Close()
	}()

	return FromReader(filePath, f)
}

// FromReader reads a config from the given reader and specifies
// where, if applicable, the file the reader originated from.
// The input is JSON5, so comments and trailing commas are allowed.
func FromReader(originalPath string, r io.Reader) (*Config, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read config")
	}

	cfg := Default()
	if err := json5.Unmarshal(buf, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode Config from json5")
	}
	cfg.ConfigFilePath = originalPath

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %q", originalPath)
	}
	return cfg, nil
}
