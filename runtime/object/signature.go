package object

import (
	"fmt"
)

// ParamKind identifies how a constructor parameter binds its value.
type ParamKind int

const (
	// ParamRequired is a named parameter with no default; it consumes one
	// positional argument (or a keyword argument) at construction time.
	ParamRequired ParamKind = iota
	// ParamDefaulted is a named parameter that falls back to its declared
	// default when no argument reaches it.
	ParamDefaulted
	// ParamVarPositional absorbs any number of extra positional arguments,
	// typically to forward them to a base class initializer.
	ParamVarPositional
	// ParamVarKeyword absorbs any number of extra keyword arguments.
	ParamVarKeyword
)

// String returns the string representation of the parameter kind
func (k ParamKind) String() string {
	switch k {
	case ParamRequired:
		return "required"
	case ParamDefaulted:
		return "defaulted"
	case ParamVarPositional:
		return "variadic-positional"
	case ParamVarKeyword:
		return "variadic-keyword"
	default:
		return "unknown"
	}
}

// Param describes one declared constructor parameter.
// Default is only meaningful for ParamDefaulted parameters.
type Param struct {
	Name    string
	Kind    ParamKind
	Default any
}

// Variadic reports whether the parameter absorbs forwarded arguments
// rather than binding a single named value.
func (p Param) Variadic() bool {
	return p.Kind == ParamVarPositional || p.Kind == ParamVarKeyword
}

// Required creates a required named parameter.
func Required(name string) Param {
	return Param{Name: name, Kind: ParamRequired}
}

// Defaulted creates a named parameter with a default value.
func Defaulted(name string, def any) Param {
	return Param{Name: name, Kind: ParamDefaulted, Default: def}
}

// VarPositional creates a variadic positional collector parameter.
func VarPositional(name string) Param {
	return Param{Name: name, Kind: ParamVarPositional}
}

// VarKeyword creates a variadic keyword collector parameter.
func VarKeyword(name string) Param {
	return Param{Name: name, Kind: ParamVarKeyword}
}

// Signature is the ordered constructor descriptor for one class, in
// declaration order. It is derived once at class definition time and
// never mutated afterwards.
type Signature []Param

// Validate checks the structural rules for a constructor descriptor:
// parameter names are unique and non-empty, named parameters precede
// variadic collectors, and at most one collector of each kind is declared
// with the positional collector before the keyword collector.
func (s Signature) Validate() error {
	seen := make(map[string]bool, len(s))
	sawDefaulted := false
	sawVarPositional := false
	sawVarKeyword := false

	for i, p := range s {
		if p.Name == "" {
			return fmt.Errorf("parameter %d has an empty name", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate parameter name %q", p.Name)
		}
		seen[p.Name] = true

		switch p.Kind {
		case ParamRequired, ParamDefaulted:
			if sawVarPositional || sawVarKeyword {
				return fmt.Errorf("named parameter %q declared after a variadic collector", p.Name)
			}
			if p.Kind == ParamRequired && sawDefaulted {
				return fmt.Errorf("required parameter %q declared after a defaulted parameter", p.Name)
			}
			if p.Kind == ParamDefaulted {
				sawDefaulted = true
			}
		case ParamVarPositional:
			if sawVarPositional {
				return fmt.Errorf("duplicate variadic positional parameter %q", p.Name)
			}
			if sawVarKeyword {
				return fmt.Errorf("variadic positional parameter %q declared after the keyword collector", p.Name)
			}
			sawVarPositional = true
		case ParamVarKeyword:
			if sawVarKeyword {
				return fmt.Errorf("duplicate variadic keyword parameter %q", p.Name)
			}
			sawVarKeyword = true
		default:
			return fmt.Errorf("parameter %q has unknown kind %d", p.Name, p.Kind)
		}
	}
	return nil
}

// HasVarPositional reports whether the signature declares a positional collector.
func (s Signature) HasVarPositional() bool {
	for _, p := range s {
		if p.Kind == ParamVarPositional {
			return true
		}
	}
	return false
}

// HasVarKeyword reports whether the signature declares a keyword collector.
func (s Signature) HasVarKeyword() bool {
	for _, p := range s {
		if p.Kind == ParamVarKeyword {
			return true
		}
	}
	return false
}

// Variadic reports whether the signature declares any collector parameter.
// A class whose signature has no collectors cannot forward surplus
// arguments to its bases.
func (s Signature) Variadic() bool {
	for _, p := range s {
		if p.Variadic() {
			return true
		}
	}
	return false
}

// NonVariadic returns the named (required and defaulted) parameters in
// declaration order.
func (s Signature) NonVariadic() []Param {
	result := make([]Param, 0, len(s))
	for _, p := range s {
		if !p.Variadic() {
			result = append(result, p)
		}
	}
	return result
}
