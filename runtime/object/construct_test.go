package object

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_MissingPostInitHook(t *testing.T) {
	cls, err := Define(ClassSpec{
		Name: "NoHook",
		New:  allocThing,
	})
	require.NoError(t, err)

	_, err = New(cls)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingPostInit)
}

func TestNew_AbstractClassWithoutAllocator(t *testing.T) {
	cls, err := Define(ClassSpec{
		Name:     "Abstract",
		PostInit: noopHook,
	})
	require.NoError(t, err)

	_, err = New(cls)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAbstractClass)
}

func TestNew_HookInheritedThroughChain(t *testing.T) {
	fired := 0
	root, err := Define(ClassSpec{
		Name: "Root",
		New:  allocThing,
		PostInit: func(self Instance, call *Call) error {
			fired++
			return nil
		},
	})
	require.NoError(t, err)
	leaf, err := Define(ClassSpec{Name: "Leaf", Bases: []*Class{root}})
	require.NoError(t, err)

	_, err = New(leaf)
	require.NoError(t, err)
	assert.Equal(t, 1, fired)
}

func TestNew_HookFiresExactlyOncePerObject(t *testing.T) {
	var calls []*Call
	base, err := Define(ClassSpec{
		Name:   "Base",
		Params: Signature{Required("x"), VarPositional("rest")},
		New:    allocThing,
		PostInit: func(self Instance, call *Call) error {
			calls = append(calls, call)
			return nil
		},
	})
	require.NoError(t, err)
	mid, err := Define(ClassSpec{
		Name:   "Mid",
		Bases:  []*Class{base},
		Params: Signature{Required("y"), VarPositional("rest")},
	})
	require.NoError(t, err)
	leaf, err := Define(ClassSpec{
		Name:   "Leaf",
		Bases:  []*Class{mid},
		Params: Signature{Required("z"), VarPositional("rest")},
	})
	require.NoError(t, err)

	_, err = NewWith(leaf, []any{1, 2, 3}, Kwargs{"k": "v"})
	require.NoError(t, err)

	// One firing for the whole three-level chain, with the original
	// arguments passed through unchanged.
	require.Len(t, calls, 1)
	assert.Equal(t, []any{1, 2, 3}, calls[0].Args)
	assert.Equal(t, Kwargs{"k": "v"}, calls[0].Kwargs)

	_, err = New(mid, 7)
	require.NoError(t, err)
	require.Len(t, calls, 2)
	assert.Equal(t, []any{7}, calls[1].Args)
}

func TestNew_InitializerRunsBeforeHook(t *testing.T) {
	var order []string
	cls, err := Define(ClassSpec{
		Name:   "Ordered",
		Params: Signature{Required("label")},
		New:    allocThing,
		Init: func(self Instance, call *Call) error {
			order = append(order, "init")
			self.(*testThing).label, _ = call.Args[0].(string)
			return nil
		},
		PostInit: func(self Instance, call *Call) error {
			order = append(order, "hook")
			return nil
		},
	})
	require.NoError(t, err)

	inst, err := New(cls, "hello")
	require.NoError(t, err)
	assert.Equal(t, []string{"init", "hook"}, order)
	assert.Equal(t, "hello", inst.(*testThing).label)
}

func TestNew_InitializerFailureAbortsConstruction(t *testing.T) {
	boom := errors.New("boom")
	hookFired := false
	cls, err := Define(ClassSpec{
		Name: "Failing",
		New:  allocThing,
		Init: func(self Instance, call *Call) error {
			return boom
		},
		PostInit: func(self Instance, call *Call) error {
			hookFired = true
			return nil
		},
	})
	require.NoError(t, err)

	_, err = New(cls)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.False(t, hookFired)
}

func TestNew_PopulatesInstanceIdentity(t *testing.T) {
	cls := defineRoot(t, "Identified", nil)

	a, err := New(cls)
	require.NoError(t, err)
	b, err := New(cls)
	require.NoError(t, err)

	assert.Same(t, cls, ClassOf(a))
	assert.NotEqual(t, a.(*testThing).ID(), b.(*testThing).ID())
}

func TestNew_ArgumentsCopiedFromCaller(t *testing.T) {
	var seen *Call
	cls, err := Define(ClassSpec{
		Name:   "Copied",
		Params: Signature{Required("a"), Required("b")},
		New:    allocThing,
		PostInit: func(self Instance, call *Call) error {
			seen = call
			return nil
		},
	})
	require.NoError(t, err)

	args := []any{1, 2}
	kwargs := Kwargs{"k": "v"}
	_, err = NewWith(cls, args, kwargs)
	require.NoError(t, err)

	args[0] = 99
	kwargs["k"] = "mutated"
	assert.Equal(t, 1, seen.Args[0])
	assert.Equal(t, "v", seen.Kwargs["k"])
}

func TestNew_ConcurrentConstruction(t *testing.T) {
	cls := defineRoot(t, "Concurrent", nil)

	const n = 64
	var wg sync.WaitGroup
	var mu sync.Mutex
	instances := make([]Instance, 0, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inst, err := New(cls)
			if err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			instances = append(instances, inst)
			mu.Unlock()
		}()
	}
	wg.Wait()

	live, err := cls.Instances(nil)
	require.NoError(t, err)
	assert.Len(t, live, n)
	assert.Len(t, instances, n)
}
