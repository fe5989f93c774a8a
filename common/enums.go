// Enumerations shared between manifests, configuration and the command
// line live in their own package so all of them agree on accepted names.
package common

import (
	yaml "gopkg.in/yaml.v3"
)

//go:generate go tool go-enum --marshal --names

// Kind of a styling template.
// ENUM(style, keyframes)
type TemplateKind int

func (k TemplateKind) Keyframes() bool {
	return k == TemplateKindKeyframes
}

// UnmarshalYAML decodes a kind from its name. yaml.v3 never calls the
// generated encoding.TextUnmarshaler on its own.
func (k *TemplateKind) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseTemplateKind(name)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Format of compiled template dumps.
// ENUM(text, json, tree, css)
type DumpFmt int

func (d DumpFmt) Ext() string {
	switch d {
	case DumpFmtText:
		return ".txt"
	case DumpFmtJson:
		return ".json"
	case DumpFmtTree:
		return ".tree"
	case DumpFmtCss:
		return ".css"
	default:
		// this should never happen
		panic("unsupported dump format requested")
	}
}
