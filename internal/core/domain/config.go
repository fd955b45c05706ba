package domain

import (
	"fmt"
	"slices"
)

// Well-known file names and permissions.
const (
	// ConfigFileName is the optional configuration file, discovered by
	// walking up from the working directory.
	ConfigFileName = "envsync.yaml"

	// DefaultManifestName is the requirements manifest pip reads.
	DefaultManifestName = "requirements.txt"

	// DefaultPython is the interpreter used to invoke pip.
	DefaultPython = "python3"

	// StateDirName is the directory holding envsync state under the root.
	StateDirName = ".envsync"

	// StateFileName is the run info file inside StateDirName.
	StateFileName = "state.json"

	// DirPerm is the permission for directories created by envsync.
	DirPerm = 0o750

	// FilePerm is the permission for files created by envsync.
	FilePerm = 0o600
)

// DefaultToolchain returns the packages the upgrade step brings current:
// the packaging tool itself, its resolution helper and its build frontend.
func DefaultToolchain() []string {
	return []string{"pip", "setuptools", "wheel"}
}

// Config is the resolved bootstrap configuration. A missing config file
// yields the zero-configuration defaults; the file only overrides them.
type Config struct {
	// Root is the directory the bootstrap runs from. It anchors the state
	// store and is the working directory of the delegated tools.
	Root string
	// Python is the interpreter used to invoke pip.
	Python string
	// Manifest is the requirements manifest path handed to pip verbatim.
	// It is never read or validated by envsync itself.
	Manifest string
	// Toolchain lists the packages the upgrade step passes to pip.
	// Entries may carry pip version constraints (e.g. "pip==24.0").
	Toolchain []string
	// Environment holds extra variables for the delegated tools.
	Environment map[string]string
}

// Env renders the extra environment as sorted "KEY=VALUE" strings.
func (c *Config) Env() []string {
	if len(c.Environment) == 0 {
		return nil
	}

	env := make([]string, 0, len(c.Environment))
	for k, v := range c.Environment {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	slices.Sort(env)

	return env
}
