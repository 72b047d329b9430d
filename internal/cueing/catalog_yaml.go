package cueing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Templates []Template `yaml:"templates"`
}

// ParseCatalog reads an authored YAML catalog. Validation happens here,
// at load time, so a bad template can never take down a live session.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse cue catalog: %w", err)
	}
	if len(f.Templates) == 0 {
		return nil, fmt.Errorf("cue catalog has no templates")
	}
	cat, err := NewCatalog(f.Templates...)
	if err != nil {
		return nil, fmt.Errorf("validate cue catalog: %w", err)
	}
	return cat, nil
}

// LoadCatalogFile loads templates from path, falling back to the
// built-in defaults when path is empty.
func LoadCatalogFile(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cue catalog: %w", err)
	}
	return ParseCatalog(data)
}
