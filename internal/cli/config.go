package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/bookfold/bookfold/pkg/errors"
	"github.com/bookfold/bookfold/pkg/paper"
	"github.com/bookfold/bookfold/pkg/pipeline"
)

// Config holds the optional user configuration, loaded from
// $XDG_CONFIG_HOME/bookfold/config.toml. Command-line flags always take
// precedence over config values.
type Config struct {
	// Paper is the default paper size name. Empty means the paper
	// database's own default.
	Paper string `toml:"paper"`

	// PaperDB selects the paper database: "system" (the libpaper utility,
	// the default) or "builtin" (the fixed table of common sizes).
	PaperDB string `toml:"paper_db"`

	// KeepTemp retains intermediate files after every run.
	KeepTemp bool `toml:"keep_temp"`

	// Tools overrides the external tool paths.
	Tools ToolsConfig `toml:"tools"`
}

// ToolsConfig names the external tools. Empty fields use the conventional
// names found on PATH.
type ToolsConfig struct {
	Paper  string `toml:"paper"`
	PDF2PS string `toml:"pdf2ps"`
	PSTops string `toml:"pstops"`
	PSBook string `toml:"psbook"`
	PSNup  string `toml:"psnup"`
	PS2PDF string `toml:"ps2pdf"`
}

// configPath returns the expected config file location.
func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "bookfold", "config.toml"), nil
}

// loadConfig loads the user configuration. A missing file is not an
// error; it simply yields the zero config.
func loadConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, nil
	}
	return loadConfigFrom(path)
}

// loadConfigFrom loads configuration from an explicit path.
func loadConfigFrom(path string) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "config file %s", path)
	}
	return cfg, nil
}

// database returns the configured paper database.
func (c Config) database() paper.Database {
	if c.PaperDB == "builtin" {
		return paper.BuiltinDatabase{}
	}
	return &paper.SystemDatabase{Command: c.Tools.Paper}
}

// toolchain returns the configured external toolchain for the pipeline.
func (c Config) toolchain() pipeline.Toolchain {
	return pipeline.Toolchain{
		PDF2PS: c.Tools.PDF2PS,
		PSTops: c.Tools.PSTops,
		PSBook: c.Tools.PSBook,
		PSNup:  c.Tools.PSNup,
		PS2PDF: c.Tools.PS2PDF,
	}
}
