package joint

import "fmt"

// Trajectory is an ordered set of joint targets. Each point carries one
// position (and optionally one velocity) per entry in JointNames, in the
// same order.
type Trajectory struct {
	JointNames []string
	Points     []Point
}

// Point is a single target for every joint named by the trajectory.
// Velocities may be empty or shorter than Positions; missing entries mean
// "move at full speed".
type Point struct {
	Positions  []float64
	Velocities []float64
}

// ServoCommand positions one servo channel. Speed is in µs/s; zero means no
// speed limit was requested.
type ServoCommand struct {
	Channel    int
	PulseWidth int
	Speed      float64
}

// CommandBatch holds the servo commands for one trajectory point.
type CommandBatch []ServoCommand

// Translator resolves named joint targets against a registry and produces
// servo commands. It is stateless apart from the registry and safe for
// concurrent use.
type Translator struct {
	reg *Registry
}

// NewTranslator creates a translator over the given registry.
func NewTranslator(reg *Registry) *Translator {
	return &Translator{reg: reg}
}

// Translate converts every point of a trajectory into one CommandBatch each.
// Translation stops at the first invalid target: the returned batches cover
// the points completed before the failure, and the failing point contributes
// no partial batch. The error is *UnknownJointError or
// *AngleOutOfRangeError for validation failures.
func (t *Translator) Translate(traj Trajectory) ([]CommandBatch, error) {
	batches := make([]CommandBatch, 0, len(traj.Points))
	for _, p := range traj.Points {
		batch, err := t.TranslatePoint(traj.JointNames, p)
		if err != nil {
			return batches, err
		}
		batches = append(batches, batch)
	}
	return batches, nil
}

// TranslatePoint converts a single trajectory point. Validation runs before
// any pulse width is computed, so an out-of-range angle never yields a
// command.
func (t *Translator) TranslatePoint(names []string, p Point) (CommandBatch, error) {
	if len(p.Positions) < len(names) {
		return nil, fmt.Errorf("point has %d positions for %d joints", len(p.Positions), len(names))
	}

	batch := make(CommandBatch, 0, len(names))
	for i, name := range names {
		j, ok := t.reg.Lookup(name)
		if !ok {
			return nil, &UnknownJointError{Name: name}
		}

		angle := p.Positions[i]
		if !j.InRange(angle) {
			return nil, &AngleOutOfRangeError{Joint: name, Angle: angle}
		}

		cmd := ServoCommand{
			Channel:    j.Channel,
			PulseWidth: j.PulseWidth(angle),
		}
		if i < len(p.Velocities) && p.Velocities[i] > 0 {
			cmd.Speed = VelocityToSpeed(p.Velocities[i])
		}
		batch = append(batch, cmd)
	}
	return batch, nil
}
