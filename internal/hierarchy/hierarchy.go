// Package hierarchy loads declarative class-hierarchy descriptions and
// defines them through the runtime object model, so hierarchies can be
// inspected and construction-argument resolution simulated without writing
// Go code.
package hierarchy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/objectkit/objectkit/runtime/object"
)

// File is the YAML document shape: an ordered list of class definitions.
// Bases must appear before the classes that use them.
type File struct {
	Classes []ClassDef `yaml:"classes"`
}

// ClassDef declares one class.
type ClassDef struct {
	Name     string     `yaml:"name"`
	Bases    []string   `yaml:"bases,omitempty"`
	Abstract bool       `yaml:"abstract,omitempty"`
	Params   []ParamDef `yaml:"params,omitempty"`
}

// ParamDef declares one constructor parameter. Kind is one of "required",
// "defaulted", "var-positional", or "var-keyword"; when omitted it is
// inferred: "defaulted" if a default is given, "required" otherwise.
type ParamDef struct {
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind,omitempty"`
	Default any    `yaml:"default,omitempty"`
}

// Record is the map-free instance type backing declarative hierarchies.
// All interesting state lives in the recorded construction metadata.
type Record struct {
	object.Base
}

// Set holds the defined classes of one loaded hierarchy, in file order.
type Set struct {
	classes map[string]*object.Class
	order   []string
}

// Load reads and builds a hierarchy description from a YAML file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read hierarchy file: %w", err)
	}
	return Parse(data)
}

// Parse builds a hierarchy from YAML bytes. Every non-abstract class is
// given a Record allocator and the argument-recording post-construction
// hook, so resolved constructions produce full metadata.
func Parse(data []byte) (*Set, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse hierarchy file: %w", err)
	}
	if len(file.Classes) == 0 {
		return nil, fmt.Errorf("hierarchy file declares no classes")
	}

	set := &Set{classes: make(map[string]*object.Class, len(file.Classes))}
	for _, def := range file.Classes {
		if def.Name == "" {
			return nil, fmt.Errorf("class with empty name")
		}
		if _, dup := set.classes[def.Name]; dup {
			return nil, fmt.Errorf("class %s declared twice", def.Name)
		}

		bases := make([]*object.Class, 0, len(def.Bases))
		for _, baseName := range def.Bases {
			base, ok := set.classes[baseName]
			if !ok {
				return nil, fmt.Errorf("class %s: base %s is not declared earlier in the file", def.Name, baseName)
			}
			bases = append(bases, base)
		}

		sig, err := buildSignature(def)
		if err != nil {
			return nil, err
		}

		spec := object.ClassSpec{
			Name:   def.Name,
			Bases:  bases,
			Params: sig,
		}
		if !def.Abstract {
			spec.New = func() object.Instance { return &Record{} }
			spec.PostInit = object.RecordArgs
		}

		cls, err := object.Define(spec)
		if err != nil {
			return nil, err
		}
		set.classes[def.Name] = cls
		set.order = append(set.order, def.Name)
	}
	return set, nil
}

func buildSignature(def ClassDef) (object.Signature, error) {
	if len(def.Params) == 0 {
		return nil, nil
	}
	sig := make(object.Signature, 0, len(def.Params))
	for _, p := range def.Params {
		kind := p.Kind
		if kind == "" {
			if p.Default != nil {
				kind = "defaulted"
			} else {
				kind = "required"
			}
		}
		switch kind {
		case "required":
			sig = append(sig, object.Required(p.Name))
		case "defaulted":
			sig = append(sig, object.Defaulted(p.Name, p.Default))
		case "var-positional":
			sig = append(sig, object.VarPositional(p.Name))
		case "var-keyword":
			sig = append(sig, object.VarKeyword(p.Name))
		default:
			return nil, fmt.Errorf("class %s: parameter %s has unknown kind %q", def.Name, p.Name, kind)
		}
	}
	if err := sig.Validate(); err != nil {
		return nil, fmt.Errorf("class %s: %w", def.Name, err)
	}
	return sig, nil
}

// Class returns a defined class by name.
func (s *Set) Class(name string) (*object.Class, error) {
	cls, ok := s.classes[name]
	if !ok {
		return nil, fmt.Errorf("class not found: %s", name)
	}
	return cls, nil
}

// Names returns the class names in declaration order.
func (s *Set) Names() []string {
	return append([]string(nil), s.order...)
}

// Resolve simulates a construction of the named class and returns the
// recorded metadata for the given arguments.
func (s *Set) Resolve(name string, args []any, kwargs object.Kwargs) (*object.Metadata, error) {
	cls, err := s.Class(name)
	if err != nil {
		return nil, err
	}
	inst, err := object.NewWith(cls, args, kwargs)
	if err != nil {
		return nil, err
	}
	return object.MetadataOf(inst)
}
