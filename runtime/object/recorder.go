package object

import (
	"fmt"
)

// RecordArgs is the post-construction hook that reconstructs the complete
// parameter-name to value mapping for the constructed instance and stores
// it as the instance's immutable metadata.
//
// Class hierarchies opt into argument recording by supplying RecordArgs as
// the PostInit of their root class; subclasses inherit it through the
// ancestor chain. A class that needs its own post-construction behavior on
// top of recording wraps it:
//
//	PostInit: func(self object.Instance, call *object.Call) error {
//		if err := object.RecordArgs(self, call); err != nil {
//			return err
//		}
//		// class-specific work
//		return nil
//	}
func RecordArgs(self Instance, call *Call) error {
	st := self.objectState()
	if st.class == nil {
		return fmt.Errorf("instance was not created through the construction factory")
	}
	st.meta = newMetadata(resolveBindings(st.class, call))
	return nil
}

// resolveBindings walks the instance's ancestor chain, most-derived first,
// and rebuilds the effective named bindings from the original positional
// argument stream and each level's declared parameter shape.
//
// At each level: defaults are seeded without overwriting bindings made by a
// more-derived level, required parameters consume the argument stream in
// declaration order, and surplus arguments spill into the subsequent
// declared slots by index until a variadic collector is reached. The walk
// stops early at the first ancestor that declares no collector at all,
// since nothing below it could have received forwarded arguments; surplus
// arguments still unconsumed at that point are dropped. Explicit keyword
// arguments are overlaid last and always win.
func resolveBindings(cls *Class, call *Call) map[string]any {
	data := make(map[string]any)
	remaining := append([]any(nil), call.Args...)

	for _, anc := range cls.mro {
		sig := anc.signature()

		requiredCount := 0
		for _, p := range sig {
			if p.Kind == ParamRequired {
				requiredCount++
			}
		}

		// Seed declared defaults. Bindings already made by a more-derived
		// level take priority.
		for _, p := range sig {
			if p.Kind != ParamDefaulted {
				continue
			}
			if _, bound := data[p.Name]; !bound {
				data[p.Name] = p.Default
			}
		}

		// Required parameters consume the stream in declaration order.
		// An exhausted stream binds a recorded fallback, if any.
		for _, p := range sig {
			if p.Kind != ParamRequired {
				continue
			}
			if len(remaining) > 0 {
				data[p.Name] = remaining[0]
				remaining = remaining[1:]
			} else if p.Default != nil {
				data[p.Name] = p.Default
			}
		}

		// Surplus arguments fill the remaining declared slots by index.
		// A variadic collector slot never receives a named binding and
		// ends the spill.
		for idx := requiredCount; len(remaining) > 0 && idx < len(sig); idx++ {
			p := sig[idx]
			if p.Variadic() {
				break
			}
			data[p.Name] = remaining[0]
			remaining = remaining[1:]
		}

		// No collector at this level means no arguments were forwarded
		// below it; the rest of the chain cannot have bound anything.
		if !sig.Variadic() {
			break
		}
	}

	// Explicit keyword arguments always win over positionally resolved
	// values and defaults.
	for k, v := range call.Kwargs {
		data[k] = v
	}

	// Collector parameter names never carry user data.
	for _, anc := range cls.mro {
		for _, p := range anc.signature() {
			if p.Variadic() {
				delete(data, p.Name)
			}
		}
	}

	return data
}

// MROParameters returns the union of all named (non-variadic) parameters
// declared across the class's full ancestor chain, independent of any
// instance. A parameter name redeclared at multiple levels is reported
// once, with the most-derived declaration. Order follows the ancestor
// chain, declaration order within each level.
func MROParameters(cls *Class) []Param {
	seen := make(map[string]bool)
	var result []Param
	for _, anc := range cls.mro {
		for _, p := range anc.signature() {
			if p.Variadic() || seen[p.Name] {
				continue
			}
			seen[p.Name] = true
			result = append(result, p)
		}
	}
	return result
}
