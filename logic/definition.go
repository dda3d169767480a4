// ABOUTME: Dynamic node definition records and their structured-text codec.
// ABOUTME: Port specs round-trip bare names and {name, type} objects; files may be a list or a name-keyed map.
package logic

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// PortSpec declares one port of a dynamic node. In persisted form it is
// either a bare port name or an object {name, type}; the bare shape is
// remembered so save reproduces what load read.
type PortSpec struct {
	Name string
	Type string

	bare bool
}

// portSpecObject is the object shape of a persisted port spec.
type portSpecObject struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// UnmarshalYAML accepts a bare scalar name or a {name, type} mapping.
func (p *PortSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		p.Name = value.Value
		p.bare = true
		return nil
	}
	var obj portSpecObject
	if err := value.Decode(&obj); err != nil {
		return fmt.Errorf("port spec: %w", err)
	}
	if obj.Name == "" {
		return fmt.Errorf("port spec missing name")
	}
	p.Name = obj.Name
	p.Type = obj.Type
	return nil
}

// MarshalYAML reproduces the loaded shape: bare specs save as scalars.
func (p PortSpec) MarshalYAML() (any, error) {
	if p.bare && p.Type == "" {
		return p.Name, nil
	}
	return portSpecObject{Name: p.Name, Type: p.Type}, nil
}

// UnmarshalJSON accepts a bare string name or a {name, type} object.
func (p *PortSpec) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		p.Name = name
		p.bare = true
		return nil
	}
	var obj portSpecObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("port spec: %w", err)
	}
	if obj.Name == "" {
		return fmt.Errorf("port spec missing name")
	}
	p.Name = obj.Name
	p.Type = obj.Type
	return nil
}

// MarshalJSON reproduces the loaded shape: bare specs save as strings.
func (p PortSpec) MarshalJSON() ([]byte, error) {
	if p.bare && p.Type == "" {
		return json.Marshal(p.Name)
	}
	return json.Marshal(portSpecObject{Name: p.Name, Type: p.Type})
}

// Definition is the blueprint a dynamic logic node is built from. Name is
// the registered catalog type, Inputs and Outputs declare the port layout
// in order, and Logic is the computation body: either assignment formulas
// (expression form) or an execute block (function form).
type Definition struct {
	Name    string     `json:"name" yaml:"name"`
	Inputs  []PortSpec `json:"inputs" yaml:"inputs"`
	Outputs []PortSpec `json:"outputs" yaml:"outputs"`
	Logic   string     `json:"logic" yaml:"logic"`
}

// Validate reports whether the definition is well formed enough to build a
// node from. An empty logic body is a construction error, not a fallback.
func (d Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("dynamic node definition missing name")
	}
	if d.Logic == "" {
		return fmt.Errorf("dynamic node %q has no logic", d.Name)
	}
	return nil
}

// ParseDefinitions decodes a definitions document. The document may be a
// list of records or a map keyed by node name; both normalize to a list,
// with map keys filling in missing record names. YAML is a superset of
// JSON, so one decoder handles both formats.
func ParseDefinitions(data []byte) ([]Definition, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse definitions: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]

	switch root.Kind {
	case yaml.SequenceNode:
		var defs []Definition
		if err := root.Decode(&defs); err != nil {
			return nil, fmt.Errorf("parse definitions list: %w", err)
		}
		return defs, nil

	case yaml.MappingNode:
		var defs []Definition
		for i := 0; i+1 < len(root.Content); i += 2 {
			key := root.Content[i].Value
			var def Definition
			if err := root.Content[i+1].Decode(&def); err != nil {
				return nil, fmt.Errorf("parse definition %q: %w", key, err)
			}
			if def.Name == "" {
				def.Name = key
			}
			defs = append(defs, def)
		}
		return defs, nil
	}
	return nil, fmt.Errorf("definitions document must be a list or a map")
}

// EncodeDefinitions serializes definitions as a list, in YAML or JSON.
func EncodeDefinitions(defs []Definition, asJSON bool) ([]byte, error) {
	if asJSON {
		return json.MarshalIndent(defs, "", "  ")
	}
	return yaml.Marshal(defs)
}
