package object

import (
	"fmt"
	"sync"
	"weak"

	"go.uber.org/zap"
)

// instanceSet is the per-class collection of weakly held live instances.
// Entries do not keep instances alive; dead entries are pruned whenever the
// set is touched, so reclamation needs no explicit deregistration step.
type instanceSet struct {
	mu   sync.Mutex
	refs []weak.Pointer[state]
}

func (s *instanceSet) add(st *state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refs = append(s.refs, weak.Make(st))
}

// live prunes reclaimed entries and returns the surviving instances.
func (s *instanceSet) live() []Instance {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.refs[:0]
	var out []Instance
	for _, ref := range s.refs {
		if st := ref.Value(); st != nil {
			kept = append(kept, ref)
			out = append(out, st.self)
		}
	}
	s.refs = kept
	return out
}

// register adds a freshly allocated instance to this exact class's
// registry, creating the registry on first use. Instances are recorded
// under their concrete class only; a base class registry never contains
// subclass instances.
func (c *Class) register(st *state) {
	c.mu.Lock()
	if c.instances == nil {
		c.instances = &instanceSet{}
	}
	set := c.instances
	c.mu.Unlock()

	set.add(st)
	logger().Debug("instance registered",
		zap.String("class", c.name),
		zap.String("id", st.id.String()))
}

// Instances returns all live instances of this exact class for which the
// selector returns true. A nil selector matches everything. Fails with
// ErrNoInstances if no instance of this exact class was ever constructed.
//
// The selector runs without any registry lock held.
func (c *Class) Instances(selector func(Instance) bool) ([]Instance, error) {
	c.mu.Lock()
	set := c.instances
	c.mu.Unlock()
	if set == nil {
		return nil, fmt.Errorf("class %s: %w", c.name, ErrNoInstances)
	}

	live := set.live()
	if selector == nil {
		return live, nil
	}
	result := make([]Instance, 0, len(live))
	for _, inst := range live {
		if selector(inst) {
			result = append(result, inst)
		}
	}
	return result, nil
}

// InstancesWithDescendants returns the union of this class's live instances
// and, recursively, those of every defined subclass not in exclude.
// Exclusion recurses: descendants of an excluded class are excluded too.
// Classes that were never constructed contribute nothing.
func (c *Class) InstancesWithDescendants(exclude ...*Class) []Instance {
	excluded := make(map[*Class]bool, len(exclude))
	for _, e := range exclude {
		excluded[e] = true
	}
	return c.collectInstances(excluded)
}

func (c *Class) collectInstances(excluded map[*Class]bool) []Instance {
	c.mu.Lock()
	set := c.instances
	subs := append([]*Class(nil), c.subs...)
	c.mu.Unlock()

	var result []Instance
	if set != nil {
		result = set.live()
	}
	for _, sub := range subs {
		if excluded[sub] {
			continue
		}
		result = append(result, sub.collectInstances(excluded)...)
	}
	return result
}

// InstanceCount returns the number of currently live instances of this
// exact class. Returns 0 for classes never constructed.
func (c *Class) InstanceCount() int {
	c.mu.Lock()
	set := c.instances
	c.mu.Unlock()
	if set == nil {
		return 0
	}
	return len(set.live())
}
