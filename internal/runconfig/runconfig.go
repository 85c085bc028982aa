// Package runconfig parses the YAML file that drives a batch jstrack run,
// using the usual gopkg.in/yaml.v3 tags-and-defaults pattern.
package runconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level jstrack.yaml configuration: which scripts to run,
// where a checker (if any) is reached, where entries are stored, and how
// many scripts run at once. It has no host-context setting.
type Config struct {
	// Scripts lists the scriptUrl entries to run, in order.
	Scripts []string `yaml:"scripts"`

	// Checker configures the optional remote checker dispatched on every
	// call site. Omit entirely to run with no checker installed.
	Checker *CheckerConfig `yaml:"checker,omitempty"`

	// Store points at the SQLite database collected entries are recorded
	// to. Defaults to "jstrack.db" if omitted.
	Store string `yaml:"store,omitempty"`

	// Concurrency caps how many scripts run at once in batch mode. Defaults
	// to 1 (sequential) if omitted or zero.
	Concurrency int `yaml:"concurrency,omitempty"`
}

// CheckerConfig names the proto file and gRPC target a remote checker uses
// (see internal/checkerrpc.Config, which this maps onto directly).
type CheckerConfig struct {
	Target       string   `yaml:"target"`
	ProtoPath    string   `yaml:"proto_path"`
	ImportPaths  []string `yaml:"import_paths,omitempty"`
	MethodPath   string   `yaml:"method_path"`
	CallerField  string   `yaml:"caller_field,omitempty"`
	CalleeField  string   `yaml:"callee_field,omitempty"`
	ContextField string   `yaml:"context_field,omitempty"`
	MatchedField string   `yaml:"matched_field,omitempty"`
	TypeField    string   `yaml:"type_field,omitempty"`
	TargetField  string   `yaml:"target_field,omitempty"`
}

// Load reads and parses a jstrack.yaml file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("runconfig: reading %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses jstrack.yaml content from bytes. path is used only in error
// messages.
func Parse(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("runconfig: parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

func (c *Config) validate(path string) error {
	if len(c.Scripts) == 0 {
		return fmt.Errorf("runconfig: %s: at least one script is required", path)
	}
	if c.Checker != nil {
		if c.Checker.Target == "" {
			return fmt.Errorf("runconfig: %s: checker.target is required when checker is set", path)
		}
		if c.Checker.ProtoPath == "" {
			return fmt.Errorf("runconfig: %s: checker.proto_path is required when checker is set", path)
		}
		if c.Checker.MethodPath == "" {
			return fmt.Errorf("runconfig: %s: checker.method_path is required when checker is set", path)
		}
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Store == "" {
		c.Store = "jstrack.db"
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 1
	}
}
