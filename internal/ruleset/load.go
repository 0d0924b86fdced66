package ruleset

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed rules/default.yaml
var defaultRules []byte

// Default returns the embedded ruleset. The embedded rules ship with the
// binary and must always validate; a failure here is a build defect.
func Default() *Ruleset {
	rs, err := parse(defaultRules)
	if err != nil {
		panic(fmt.Sprintf("embedded default ruleset is invalid: %v", err))
	}
	return rs
}

// Load reads a ruleset from a YAML file and validates it. Validation
// failures are fatal setup errors: a ruleset with bad weights or missing
// buckets indicates corruption, not something to paper over with
// defaults.
func Load(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ruleset file: %w", err)
	}
	rs, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("ruleset %s: %w", path, err)
	}
	return rs, nil
}

func parse(data []byte) (*Ruleset, error) {
	var rs Ruleset
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parsing ruleset: %w", err)
	}
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return &rs, nil
}
