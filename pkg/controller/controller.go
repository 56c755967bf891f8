// Package controller wires the translation core to a servo bus: it handles
// incoming trajectories, serves the relax operation, and runs the periodic
// joint state publication loop.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mattrb/ssc32u/pkg/joint"
	"github.com/mattrb/ssc32u/pkg/sscbus"
)

// Bus groups the transport endpoints the controller talks to.
type Bus struct {
	Commands sscbus.CommandSink
	Discrete sscbus.DiscreteSink
	States   sscbus.StateSink
	Query    sscbus.PulseWidthQuerier
}

// Config holds controller options.
type Config struct {
	Registry           *joint.Registry
	Bus                Bus
	PublishJointStates bool
	PublishRate        float64 // Hz; <= 0 disables periodic publication
	Logger             zerolog.Logger
}

// Controller is the adapter between incoming joint trajectories and the
// servo bus. All methods are safe for concurrent use; the registry is
// read-only after construction.
type Controller struct {
	reg        *joint.Registry
	translator *joint.Translator
	bus        Bus
	publish    bool
	rate       float64
	log        zerolog.Logger

	mu      sync.Mutex
	running bool
	stateCh chan sscbus.State
}

// New creates a controller. An empty registry is accepted; every trajectory
// will then fail lookup and every state publication will be empty.
func New(cfg Config) (*Controller, error) {
	if cfg.Registry == nil {
		return nil, errors.New("registry is required")
	}

	c := &Controller{
		reg:        cfg.Registry,
		translator: joint.NewTranslator(cfg.Registry),
		bus:        cfg.Bus,
		publish:    cfg.PublishJointStates,
		rate:       cfg.PublishRate,
		log:        cfg.Logger,
		stateCh:    make(chan sscbus.State, 1),
	}

	if cfg.Registry.Len() == 0 {
		c.log.Warn().Msg("no joints were provided")
	}
	return c, nil
}

// Rate returns the joint state publication rate in Hz.
func (c *Controller) Rate() float64 {
	return c.rate
}

// Registry returns the joint registry the controller was built with.
func (c *Controller) Registry() *joint.Registry {
	return c.reg
}

// HandleTrajectory translates an incoming trajectory and publishes one
// command batch per point. When any point fails validation the error is
// logged and returned, and nothing is published.
func (c *Controller) HandleTrajectory(ctx context.Context, traj joint.Trajectory) error {
	batches, err := c.translator.Translate(traj)
	if err != nil {
		c.logRejection(err)
		return err
	}
	for _, batch := range batches {
		if err := c.bus.Commands.PublishCommands(ctx, batch); err != nil {
			return fmt.Errorf("publish commands: %w", err)
		}
	}
	return nil
}

func (c *Controller) logRejection(err error) {
	var unknown *joint.UnknownJointError
	var oor *joint.AngleOutOfRangeError
	switch {
	case errors.As(err, &unknown):
		c.log.Error().Str("joint", unknown.Name).Msg("joint does not exist")
	case errors.As(err, &oor):
		c.log.Error().Str("joint", oor.Joint).Float64("position", oor.Angle).Msg("position out of range")
	default:
		c.log.Error().Err(err).Msg("trajectory rejected")
	}
}

// RelaxJoints drives every registered joint's output low, de-energizing the
// servos.
func (c *Controller) RelaxJoints(ctx context.Context) error {
	for _, out := range joint.RelaxCommands(c.reg) {
		if err := c.bus.Discrete.PublishDiscrete(ctx, out); err != nil {
			return fmt.Errorf("publish discrete output: %w", err)
		}
	}
	return nil
}

// PublishJointStates queries the bus for current pulse widths and publishes
// the reconstructed joint state. Joints without a reading are omitted.
func (c *Controller) PublishJointStates(ctx context.Context) error {
	joints := c.reg.Joints()
	channels := make([]int, len(joints))
	for i, j := range joints {
		channels[i] = j.Channel
	}

	widths, err := c.bus.Query.QueryPulseWidths(ctx, channels)
	if err != nil {
		return fmt.Errorf("query pulse widths: %w", err)
	}

	samples := joint.TranslateState(joints, widths)
	state := sscbus.State{
		Names:  make([]string, 0, len(samples)),
		Angles: make([]float64, 0, len(samples)),
	}
	for _, s := range samples {
		state.Names = append(state.Names, s.Name)
		state.Angles = append(state.Angles, s.Angle)
	}

	if err := c.bus.States.PublishState(ctx, state); err != nil {
		return fmt.Errorf("publish state: %w", err)
	}
	c.sendState(state)
	return nil
}

// Initialize commands every joint flagged for initialization to its default
// angle. Joints without the flag are left alone.
func (c *Controller) Initialize(ctx context.Context) error {
	var names []string
	var positions []float64
	for _, j := range c.reg.Joints() {
		if !j.Initialize {
			continue
		}
		names = append(names, j.Name)
		positions = append(positions, j.DefaultAngle)
	}
	if len(names) == 0 {
		return nil
	}

	c.log.Info().Int("joints", len(names)).Msg("initializing joints to default angles")
	return c.HandleTrajectory(ctx, joint.Trajectory{
		JointNames: names,
		Points:     []joint.Point{{Positions: positions}},
	})
}

// Run initializes flagged joints, then drives the periodic joint state
// publication loop until ctx is done. When publication is disabled it only
// waits on ctx.
func (c *Controller) Run(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return errors.New("already running")
	}
	c.running = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
	}()

	if err := c.Initialize(ctx); err != nil {
		c.log.Warn().Err(err).Msg("joint initialization failed")
	}

	if !c.publish || c.rate <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	c.log.Info().Float64("hz", c.rate).Msg("publishing joint states")
	ticker := time.NewTicker(time.Duration(float64(time.Second) / c.rate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := c.PublishJointStates(ctx); err != nil {
				c.log.Error().Err(err).Msg("joint state publication failed")
			}
		}
	}
}

// States returns a channel receiving each published joint state. A slow
// consumer sees the most recent state; intermediate states are dropped.
func (c *Controller) States() <-chan sscbus.State {
	return c.stateCh
}

func (c *Controller) sendState(s sscbus.State) {
	select {
	case c.stateCh <- s:
	default:
		// Drop the stale state, keep the new one
		select {
		case <-c.stateCh:
		default:
		}
		select {
		case c.stateCh <- s:
		default:
		}
	}
}
