package bench

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Case is one benchmark case: a pattern, a path to match against it and
// optionally the expected result.
type Case struct {
	Pattern string `yaml:"pattern"`
	Path    string `yaml:"path"`
	Want    *bool  `yaml:"want,omitempty"`
}

type caseFile struct {
	Cases []Case `yaml:"cases"`
}

// ParseCases parses a YAML document of the form
//
//	cases:
//	  - pattern: "*.txt"
//	    path: README.txt
//	    want: true
func ParseCases(data []byte) ([]Case, error) {
	var f caseFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Cases) == 0 {
		return nil, fmt.Errorf("no cases")
	}
	return f.Cases, nil
}

// LoadCases reads and parses a case file.
func LoadCases(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cases, err := ParseCases(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cases, nil
}
