package object

import (
	"fmt"

	"github.com/google/uuid"
)

// Instance is implemented by every constructed object. Participating
// instance types satisfy it by embedding Base; the interface cannot be
// implemented any other way.
type Instance interface {
	objectState() *state
}

// state is the per-instance bookkeeping carried by the embedded Base.
// self retains the outer instance value so registry queries can return the
// concrete type; the reference is internal to the allocation, so it does
// not extend the instance's lifetime.
type state struct {
	class *Class
	id    uuid.UUID
	self  Instance
	meta  *Metadata
}

// Base is the embeddable instance header. Every type constructed through
// New must embed it:
//
//	type Sensor struct {
//		object.Base
//		Name string
//	}
//
// Base carries the runtime class, a unique instance ID, and the recorded
// construction metadata. The zero Base belongs to no class; it is populated
// by the construction factory.
type Base struct {
	st state
}

func (b *Base) objectState() *state {
	return &b.st
}

// Class returns the runtime class this instance was constructed as.
// Returns nil for values not created through the construction factory.
func (b *Base) Class() *Class {
	return b.st.class
}

// ID returns the unique identifier assigned at construction.
func (b *Base) ID() uuid.UUID {
	return b.st.id
}

// ClassOf returns the runtime class of an instance.
func ClassOf(inst Instance) *Class {
	return inst.objectState().class
}

// MetadataOf returns the construction metadata recorded for an instance.
// It fails with ErrNoMetadata when the instance's class chain never
// recorded construction arguments.
func MetadataOf(inst Instance) (*Metadata, error) {
	st := inst.objectState()
	if st.meta == nil {
		name := "<unclassed>"
		if st.class != nil {
			name = st.class.name
		}
		return nil, fmt.Errorf("class %s: %w", name, ErrNoMetadata)
	}
	return st.meta, nil
}
