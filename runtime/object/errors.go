package object

import "errors"

// Sentinel errors for contract violations. All of them indicate caller or
// class-author mistakes, not transient conditions; none are retried or
// downgraded. Wrap checks should use errors.Is.
var (
	// ErrNoInstances is returned when querying the instance registry of a
	// class that has never been constructed.
	ErrNoInstances = errors.New("no instances have been constructed")

	// ErrMissingPostInit is returned when constructing a class whose
	// ancestor chain supplies no post-construction hook.
	ErrMissingPostInit = errors.New("class does not implement a post-construction hook")

	// ErrAbstractClass is returned when constructing a class whose
	// ancestor chain supplies no allocator.
	ErrAbstractClass = errors.New("abstract class cannot be instantiated")

	// ErrImmutableMetadata is returned by any attempt to mutate instance
	// metadata after construction.
	ErrImmutableMetadata = errors.New("instance metadata is immutable")

	// ErrNoMetadata is returned when reading metadata from an instance
	// whose class never recorded construction arguments.
	ErrNoMetadata = errors.New("instance has no recorded metadata")

	// ErrInconsistentHierarchy is returned by Define when no consistent
	// ancestor linearization exists for the declared bases.
	ErrInconsistentHierarchy = errors.New("inconsistent class hierarchy")
)
