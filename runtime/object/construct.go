package object

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Kwargs carries the keyword arguments of a construction call.
type Kwargs map[string]any

// Call is the original argument set of one construction call. It is passed
// unchanged through the initializer chain and to the post-construction
// hook. Callers and hooks must treat it as read-only.
type Call struct {
	Args   []any
	Kwargs Kwargs
}

func newCall(args []any, kwargs Kwargs) *Call {
	call := &Call{Args: append([]any(nil), args...)}
	if len(kwargs) > 0 {
		call.Kwargs = make(Kwargs, len(kwargs))
		for k, v := range kwargs {
			call.Kwargs[k] = v
		}
	}
	return call
}

// New constructs an instance of cls from positional arguments. It is the
// sole construction entry point together with NewWith: it allocates the
// instance, records it in the class registry, runs the initializer chain,
// and fires the post-construction hook exactly once with the original
// arguments.
func New(cls *Class, args ...any) (Instance, error) {
	return NewWith(cls, args, nil)
}

// NewWith constructs an instance of cls from positional and keyword
// arguments.
//
// The hook requirement is checked before anything is allocated: a class
// whose ancestor chain supplies no post-construction hook fails with
// ErrMissingPostInit, and one with no allocator fails with
// ErrAbstractClass. Construction either completes fully or fails; a failed
// construction never leaves partially recorded metadata behind, and its
// registry entry vanishes with the abandoned instance.
func NewWith(cls *Class, args []any, kwargs Kwargs) (Instance, error) {
	hook := cls.effectiveHook()
	if hook == nil {
		return nil, fmt.Errorf("class %s: %w", cls.name, ErrMissingPostInit)
	}
	alloc := cls.effectiveAlloc()
	if alloc == nil {
		return nil, fmt.Errorf("class %s: %w", cls.name, ErrAbstractClass)
	}

	inst := alloc()
	if inst == nil {
		return nil, fmt.Errorf("class %s: allocator returned nil", cls.name)
	}
	st := inst.objectState()
	st.class = cls
	st.id = uuid.New()
	st.self = inst
	cls.register(st)

	call := newCall(args, kwargs)
	if init := cls.effectiveInit(); init != nil {
		if err := init(inst, call); err != nil {
			return nil, fmt.Errorf("class %s: initializer failed: %w", cls.name, err)
		}
	}

	// The factory is the single hook call site: the hook fires once per
	// constructed object, at the most-derived class, after the full
	// initializer chain has run.
	if err := hook(inst, call); err != nil {
		return nil, fmt.Errorf("class %s: post-construction hook failed: %w", cls.name, err)
	}

	logger().Debug("instance constructed",
		zap.String("class", cls.name),
		zap.String("id", st.id.String()),
		zap.Int("args", len(call.Args)),
		zap.Int("kwargs", len(call.Kwargs)))
	return inst, nil
}
