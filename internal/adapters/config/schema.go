package config

// File represents the structure of the envsync.yaml configuration file.
// Every field is optional; absent fields keep their defaults so a missing
// file and an empty file behave identically.
type File struct {
	Version     string            `yaml:"version"`
	Python      string            `yaml:"python"`
	Manifest    string            `yaml:"manifest"`
	Toolchain   []string          `yaml:"toolchain"`
	Environment map[string]string `yaml:"environment"`
}
