// Package object implements a runtime object model whose instances
// self-describe: every class keeps a weakly held registry of its live
// instances, every constructed object runs a post-construction hook exactly
// once after its full initializer chain, and hierarchies that opt in record
// the complete set of named construction arguments as immutable per-instance
// metadata.
//
// # Classes and instances
//
// Classes are runtime values built with Define from a ClassSpec: a name,
// base classes, a constructor descriptor (the declared parameter shape of
// the initializer), an allocator, an initializer, and a post-construction
// hook. The ancestor chain is linearized once at definition time; diamond
// ancestors are visited exactly once. Instance types embed Base:
//
//	type Sensor struct {
//		object.Base
//		Name string
//		Rate int
//	}
//
//	var SensorClass = object.MustDefine(object.ClassSpec{
//		Name: "Sensor",
//		Params: object.Signature{
//			object.Required("name"),
//			object.Defaulted("rate", 10),
//		},
//		New: func() object.Instance { return &Sensor{} },
//		Init: func(self object.Instance, call *object.Call) error {
//			// populate fields from call
//			return nil
//		},
//		PostInit: object.RecordArgs,
//	})
//
// # Construction
//
// New and NewWith are the only construction entry points. The factory
// allocates the instance, records it in the exact class's registry, runs
// the effective initializer, then fires the post-construction hook once
// with the original arguments, no matter how deep the hierarchy is. A class
// whose ancestor chain supplies no hook cannot be instantiated.
//
// # Instance registries
//
// Each class tracks its own live instances through weak references; the
// registry never extends an instance's lifetime. Instances queries a single
// class by selector, InstancesWithDescendants unions a class with its
// subclass tree, with recursive exclusion.
//
// # Argument recording
//
// RecordArgs reconstructs parameter-name to value bindings across the whole
// ancestor chain from the original call: defaults are seeded, positional
// arguments are matched to each level's declared shape, surplus arguments
// follow the variadic forwarding path downward, and explicit keyword
// arguments always win. The result is stored as the instance's immutable
// Metadata and read back with MetadataOf. MROParameters reports the union
// of declared parameters over a class's full chain without any instance.
package object
