package build

import (
	"fmt"
	"io"

	"github.com/rupor-github/gencfg"
	yaml "gopkg.in/yaml.v3"

	"stc/common"
)

// TemplateSpec is a single template definition from a manifest. Kind defaults
// to style when omitted.
type TemplateSpec struct {
	Name string              `yaml:"name" validate:"required"`
	Kind common.TemplateKind `yaml:"kind"`
	CSS  string              `yaml:"css" validate:"required"`
}

// Manifest lists templates to compile in author order.
type Manifest struct {
	Templates []TemplateSpec `yaml:"templates" validate:"required,min=1,dive"`
}

// LoadManifest reads and validates a template manifest.
func LoadManifest(r io.Reader) (*Manifest, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	if err := gencfg.Validate(&m); err != nil {
		return nil, fmt.Errorf("failed to validate manifest: %w", err)
	}

	seen := make(map[string]struct{}, len(m.Templates))
	for _, t := range m.Templates {
		if _, exists := seen[t.Name]; exists {
			return nil, fmt.Errorf("duplicate template name in manifest: %s", t.Name)
		}
		seen[t.Name] = struct{}{}
	}
	return &m, nil
}
