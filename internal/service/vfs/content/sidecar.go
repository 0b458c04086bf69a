package content

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Sidecar is the optional metadata.yaml stored next to a saved page.
//
// Example:
//
//	title: Weeknight Pasta
//	tags: [recipes, dinner]
//	source_url: https://example.com/pasta
type Sidecar struct {
	Title     string   `yaml:"title,omitempty"`
	Tags      []string `yaml:"tags,omitempty"`
	SourceURL string   `yaml:"source_url,omitempty"`
}

// readSidecar loads a sidecar file. A missing file yields nil without error.
func readSidecar(path string) (*Sidecar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read sidecar: %w", err)
	}

	var sc Sidecar
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse sidecar %s: %w", path, err)
	}
	return &sc, nil
}
