package joint

// DiscreteOutput drives one controller output line high or low. Driving a
// servo channel low de-energizes the servo.
type DiscreteOutput struct {
	Channel int
	On      bool
}

// RelaxCommands produces one low discrete output per registered joint,
// de-energizing every servo. No ordering is guaranteed between channels.
func RelaxCommands(reg *Registry) []DiscreteOutput {
	outs := make([]DiscreteOutput, 0, reg.Len())
	for _, j := range reg.Joints() {
		outs = append(outs, DiscreteOutput{Channel: j.Channel, On: false})
	}
	return outs
}
