// Package joint converts between joint angles in radians and SSC-32U servo
// pulse widths in microseconds.
package joint

import "sort"

// Joint holds the calibration for a single servo channel. Immutable once the
// registry is built.
type Joint struct {
	Name         string
	Channel      int
	MinAngle     float64 // radians, inclusive
	MaxAngle     float64 // radians, inclusive
	OffsetAngle  float64 // mechanical zero offset, radians
	DefaultAngle float64 // startup target, consumed by the initializer
	Invert       bool    // pulse width polarity reversed for this mounting
	Initialize   bool    // command DefaultAngle at startup
}

// InRange reports whether angle is within the joint's configured limits.
func (j Joint) InRange(angle float64) bool {
	return angle >= j.MinAngle && angle <= j.MaxAngle
}

// Registry maps joint names to calibration records. It is built once from
// configuration and read-only afterwards, so concurrent lookups need no
// locking.
type Registry struct {
	byName map[string]Joint
	names  []string
}

// NewRegistry builds a registry from a list of joints. A name appearing more
// than once keeps the last record. An empty registry is valid.
func NewRegistry(joints []Joint) *Registry {
	r := &Registry{byName: make(map[string]Joint, len(joints))}
	for _, j := range joints {
		if _, seen := r.byName[j.Name]; !seen {
			r.names = append(r.names, j.Name)
		}
		r.byName[j.Name] = j
	}
	sort.Strings(r.names)
	return r
}

// Lookup returns the joint registered under name.
func (r *Registry) Lookup(name string) (Joint, bool) {
	j, ok := r.byName[name]
	return j, ok
}

// Joints returns all registered joints, ordered by name.
func (r *Registry) Joints() []Joint {
	joints := make([]Joint, 0, len(r.names))
	for _, name := range r.names {
		joints = append(joints, r.byName[name])
	}
	return joints
}

// Channels returns the servo channels of all registered joints, in the same
// order as Joints.
func (r *Registry) Channels() []int {
	channels := make([]int, 0, len(r.names))
	for _, name := range r.names {
		channels = append(channels, r.byName[name].Channel)
	}
	return channels
}

// Len returns the number of registered joints.
func (r *Registry) Len() int {
	return len(r.byName)
}
