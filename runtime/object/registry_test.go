package object

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstances_BeforeFirstConstruction(t *testing.T) {
	cls := defineRoot(t, "Untouched", nil)

	_, err := cls.Instances(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoInstances)
}

func TestInstances_SelectorFiltering(t *testing.T) {
	cls, err := Define(ClassSpec{
		Name:   "Labeled",
		Params: Signature{Required("label")},
		New:    allocThing,
		Init: func(self Instance, call *Call) error {
			self.(*testThing).label, _ = call.Args[0].(string)
			return nil
		},
		PostInit: noopHook,
	})
	require.NoError(t, err)

	red, err := New(cls, "red")
	require.NoError(t, err)
	blue, err := New(cls, "blue")
	require.NoError(t, err)

	all, err := cls.Instances(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	reds, err := cls.Instances(func(i Instance) bool {
		return i.(*testThing).label == "red"
	})
	require.NoError(t, err)
	require.Len(t, reds, 1)
	assert.Same(t, red, reds[0])

	none, err := cls.Instances(func(i Instance) bool { return false })
	require.NoError(t, err)
	assert.Empty(t, none)

	runtime.KeepAlive(red)
	runtime.KeepAlive(blue)
}

func TestInstances_SubclassInstancesNotInParentRegistry(t *testing.T) {
	parent := defineRoot(t, "Parent", nil)
	child, err := Define(ClassSpec{Name: "Child", Bases: []*Class{parent}})
	require.NoError(t, err)

	inst, err := New(child)
	require.NoError(t, err)

	// The child instance lives in the child's registry only; the parent
	// was never constructed, so its own registry does not exist.
	_, err = parent.Instances(nil)
	assert.ErrorIs(t, err, ErrNoInstances)

	childInstances, err := child.Instances(nil)
	require.NoError(t, err)
	assert.Len(t, childInstances, 1)

	runtime.KeepAlive(inst)
}

func TestInstancesWithDescendants_UnionAndExclusion(t *testing.T) {
	parent := defineRoot(t, "Animal", nil)
	dog, err := Define(ClassSpec{Name: "Dog", Bases: []*Class{parent}})
	require.NoError(t, err)
	puppy, err := Define(ClassSpec{Name: "Puppy", Bases: []*Class{dog}})
	require.NoError(t, err)
	cat, err := Define(ClassSpec{Name: "Cat", Bases: []*Class{parent}})
	require.NoError(t, err)

	a, err := New(parent)
	require.NoError(t, err)
	d, err := New(dog)
	require.NoError(t, err)
	p, err := New(puppy)
	require.NoError(t, err)
	c, err := New(cat)
	require.NoError(t, err)

	all := parent.InstancesWithDescendants()
	assert.Len(t, all, 4)

	// Excluding a class excludes its whole subtree.
	withoutDogs := parent.InstancesWithDescendants(dog)
	assert.Len(t, withoutDogs, 2)
	assert.Contains(t, withoutDogs, a)
	assert.Contains(t, withoutDogs, c)
	assert.NotContains(t, withoutDogs, d)
	assert.NotContains(t, withoutDogs, p)

	// A never-constructed subclass contributes nothing.
	bird, err := Define(ClassSpec{Name: "Bird", Bases: []*Class{parent}})
	require.NoError(t, err)
	_ = bird
	assert.Len(t, parent.InstancesWithDescendants(), 4)

	runtime.KeepAlive(a)
	runtime.KeepAlive(d)
	runtime.KeepAlive(p)
	runtime.KeepAlive(c)
}

func TestRegistry_DoesNotKeepInstancesAlive(t *testing.T) {
	cls := defineRoot(t, "Ephemeral", nil)

	survivor, err := New(cls)
	require.NoError(t, err)

	constructEphemeral(t, cls, 8)

	runtime.GC()
	runtime.GC()

	live, err := cls.Instances(nil)
	require.NoError(t, err)
	assert.Len(t, live, 1, "only the strongly referenced instance should survive")
	assert.Same(t, survivor, live[0])

	runtime.KeepAlive(survivor)
}

// constructEphemeral builds instances whose only strong references die with
// this function's frame.
//
//go:noinline
func constructEphemeral(t *testing.T, cls *Class, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := New(cls)
		require.NoError(t, err)
	}
}

func TestInstanceCount(t *testing.T) {
	cls := defineRoot(t, "Counted", nil)
	assert.Equal(t, 0, cls.InstanceCount())

	a, err := New(cls)
	require.NoError(t, err)
	b, err := New(cls)
	require.NoError(t, err)

	assert.Equal(t, 2, cls.InstanceCount())
	runtime.KeepAlive(a)
	runtime.KeepAlive(b)
}
