// Package sscbus defines the boundary between the translation core and
// whatever carries commands to an SSC-32U controller. The wire format and
// delivery mechanics belong to implementations, not to this module.
package sscbus

import (
	"context"

	"github.com/mattrb/ssc32u/pkg/joint"
)

// State is a published joint state: parallel name and angle lists.
type State struct {
	Names  []string
	Angles []float64 // radians
}

// CommandSink receives translated servo command batches.
type CommandSink interface {
	PublishCommands(ctx context.Context, batch joint.CommandBatch) error
}

// DiscreteSink receives discrete output commands.
type DiscreteSink interface {
	PublishDiscrete(ctx context.Context, out joint.DiscreteOutput) error
}

// StateSink receives reconstructed joint states.
type StateSink interface {
	PublishState(ctx context.Context, state State) error
}

// PulseWidthQuerier answers pulse width queries for a list of channels. The
// response is parallel to the request, channel for channel; a value of zero
// means the controller had no reading for that channel.
type PulseWidthQuerier interface {
	QueryPulseWidths(ctx context.Context, channels []int) ([]int, error)
}
