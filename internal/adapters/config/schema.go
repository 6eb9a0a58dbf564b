package config

// File represents the structure of the dashci.yaml configuration file.
// Every field is optional; absent fields fall back to workspace defaults.
type File struct {
	Version      string   `yaml:"version"`
	Root         string   `yaml:"root"`
	EnvDir       string   `yaml:"envDir"`
	Manifest     string   `yaml:"manifest"`
	TestEntry    string   `yaml:"testEntry"`
	Interpreters []string `yaml:"interpreters"`
	PytestArgs   []string `yaml:"pytestArgs"`
	ExtraPath    []string `yaml:"extraPath"`
}
