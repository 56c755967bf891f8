package joint

import "fmt"

// UnknownJointError reports a commanded joint name with no registry entry.
type UnknownJointError struct {
	Name string
}

func (e *UnknownJointError) Error() string {
	return fmt.Sprintf("joint %q does not exist", e.Name)
}

// AngleOutOfRangeError reports a commanded angle outside a joint's limits.
type AngleOutOfRangeError struct {
	Joint string
	Angle float64
}

func (e *AngleOutOfRangeError) Error() string {
	return fmt.Sprintf("position %g for joint %q is out of range", e.Angle, e.Joint)
}
