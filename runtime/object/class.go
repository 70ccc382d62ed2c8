package object

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// AllocFunc allocates a zero-valued instance of a concrete class. The
// returned value must embed Base (directly or through another struct).
type AllocFunc func() Instance

// InitFunc is a class initializer. It receives the instance under
// construction and the original call; initializers forward to base class
// initializers explicitly, the same way the construction arguments were
// forwarded in the declaring signature.
type InitFunc func(self Instance, call *Call) error

// HookFunc is the post-construction hook contract. It receives the same
// arguments the constructor originally received and runs exactly once per
// constructed object, after the full initializer chain completes.
type HookFunc func(self Instance, call *Call) error

// ClassSpec declares a class for Define.
//
// Params describes the declared constructor parameters of Init, in
// declaration order. A class that supplies neither Params nor Init inherits
// both from its ancestor chain. PostInit is required somewhere in the
// ancestor chain of every instantiable class; a nil PostInit with no
// inherited hook makes the class impossible to construct.
type ClassSpec struct {
	Name     string
	Bases    []*Class
	Params   Signature
	New      AllocFunc
	Init     InitFunc
	PostInit HookFunc
}

// Class is a runtime class value: the unit of the hierarchy that owns a
// constructor descriptor, an instance registry, and a place in the
// linearized ancestor chain. Classes are defined once and immutable apart
// from their subclass links and lazily created instance registry.
type Class struct {
	name        string
	bases       []*Class
	sig         Signature
	sigDeclared bool
	alloc       AllocFunc
	init        InitFunc
	postInit    HookFunc
	mro         []*Class

	mu        sync.Mutex
	subs      []*Class
	instances *instanceSet
}

// Define registers a new class from its spec. The ancestor chain is
// linearized once here; Define fails if the declared bases admit no
// consistent linearization or if the parameter declaration is malformed.
func Define(spec ClassSpec) (*Class, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("class name is required")
	}
	if err := spec.Params.Validate(); err != nil {
		return nil, fmt.Errorf("class %s: invalid signature: %w", spec.Name, err)
	}
	for i, base := range spec.Bases {
		if base == nil {
			return nil, fmt.Errorf("class %s: base %d is nil", spec.Name, i)
		}
	}

	c := &Class{
		name:        spec.Name,
		bases:       append([]*Class(nil), spec.Bases...),
		sig:         append(Signature(nil), spec.Params...),
		sigDeclared: spec.Params != nil || spec.Init != nil,
		alloc:       spec.New,
		init:        spec.Init,
		postInit:    spec.PostInit,
	}

	mro, err := linearize(c)
	if err != nil {
		return nil, fmt.Errorf("class %s: %w", spec.Name, err)
	}
	c.mro = mro

	for _, base := range c.bases {
		base.addSubclass(c)
	}

	logger().Debug("class defined",
		zap.String("class", c.name),
		zap.Int("bases", len(c.bases)),
		zap.Int("mro_depth", len(c.mro)))
	return c, nil
}

// MustDefine is like Define but panics on error. Intended for package-level
// class declarations where a malformed hierarchy is a programming error.
func MustDefine(spec ClassSpec) *Class {
	c, err := Define(spec)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the class name.
func (c *Class) Name() string {
	return c.name
}

// Bases returns the direct base classes in declaration order.
func (c *Class) Bases() []*Class {
	return append([]*Class(nil), c.bases...)
}

// MRO returns the linearized ancestor chain, most-derived first, visiting
// shared ancestors exactly once.
func (c *Class) MRO() []*Class {
	return append([]*Class(nil), c.mro...)
}

// Signature returns this class's effective constructor descriptor. A class
// that declared neither parameters nor an initializer reports the
// descriptor it inherits from its ancestor chain.
func (c *Class) Signature() Signature {
	return append(Signature(nil), c.signature()...)
}

// Subclasses returns the direct subclasses defined so far.
func (c *Class) Subclasses() []*Class {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Class(nil), c.subs...)
}

// IsSubclassOf reports whether other appears in this class's ancestor
// chain. A class is considered a subclass of itself.
func (c *Class) IsSubclassOf(other *Class) bool {
	for _, anc := range c.mro {
		if anc == other {
			return true
		}
	}
	return false
}

func (c *Class) addSubclass(sub *Class) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, sub)
}

// signature resolves the constructor descriptor the recorder should use
// for this class: its own declaration, or the nearest declared one in the
// ancestor chain when the class inherits its initializer.
func (c *Class) signature() Signature {
	if c.sigDeclared {
		return c.sig
	}
	for _, anc := range c.mro[1:] {
		if anc.sigDeclared {
			return anc.sig
		}
	}
	return nil
}

func (c *Class) effectiveAlloc() AllocFunc {
	for _, anc := range c.mro {
		if anc.alloc != nil {
			return anc.alloc
		}
	}
	return nil
}

func (c *Class) effectiveInit() InitFunc {
	for _, anc := range c.mro {
		if anc.init != nil {
			return anc.init
		}
	}
	return nil
}

func (c *Class) effectiveHook() HookFunc {
	for _, anc := range c.mro {
		if anc.postInit != nil {
			return anc.postInit
		}
	}
	return nil
}

// linearize computes the C3 linearization of a class: the class itself
// followed by the merge of its bases' linearizations and the base list.
// This is the deterministic most-derived-to-base order used for argument
// resolution and member lookup, and it visits diamond ancestors once.
func linearize(c *Class) ([]*Class, error) {
	if len(c.bases) == 0 {
		return []*Class{c}, nil
	}

	sequences := make([][]*Class, 0, len(c.bases)+1)
	for _, base := range c.bases {
		sequences = append(sequences, append([]*Class(nil), base.mro...))
	}
	sequences = append(sequences, append([]*Class(nil), c.bases...))

	result := []*Class{c}
	for {
		// Drop exhausted sequences.
		remaining := sequences[:0]
		for _, seq := range sequences {
			if len(seq) > 0 {
				remaining = append(remaining, seq)
			}
		}
		sequences = remaining
		if len(sequences) == 0 {
			return result, nil
		}

		// Pick the first head that appears in no other sequence's tail.
		var candidate *Class
		for _, seq := range sequences {
			head := seq[0]
			if inAnyTail(head, sequences) {
				continue
			}
			candidate = head
			break
		}
		if candidate == nil {
			return nil, ErrInconsistentHierarchy
		}

		result = append(result, candidate)
		for i, seq := range sequences {
			if seq[0] == candidate {
				sequences[i] = seq[1:]
			}
		}
	}
}

func inAnyTail(c *Class, sequences [][]*Class) bool {
	for _, seq := range sequences {
		for _, anc := range seq[1:] {
			if anc == c {
				return true
			}
		}
	}
	return false
}
