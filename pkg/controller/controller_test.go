package controller

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattrb/ssc32u/pkg/joint"
	"github.com/mattrb/ssc32u/pkg/sscbus"
)

func newTestController(t *testing.T, joints []joint.Joint, cfg Config) (*Controller, *sscbus.Loopback) {
	t.Helper()
	bus := sscbus.NewLoopback()
	cfg.Registry = joint.NewRegistry(joints)
	cfg.Bus = Bus{Commands: bus, Discrete: bus, States: bus, Query: bus}
	cfg.Logger = zerolog.Nop()
	c, err := New(cfg)
	require.NoError(t, err)
	return c, bus
}

func TestHandleTrajectoryPublishes(t *testing.T) {
	ctx := context.Background()
	c, bus := newTestController(t, []joint.Joint{
		{Name: "shoulder", Channel: 3, MinAngle: -1, MaxAngle: 1},
	}, Config{})

	err := c.HandleTrajectory(ctx, joint.Trajectory{
		JointNames: []string{"shoulder"},
		Points:     []joint.Point{{Positions: []float64{0}}},
	})
	require.NoError(t, err)

	pw, ok := bus.PulseWidth(3)
	require.True(t, ok)
	assert.Equal(t, 1500, pw)
}

func TestHandleTrajectoryRejectsWithoutPublishing(t *testing.T) {
	ctx := context.Background()
	c, bus := newTestController(t, []joint.Joint{
		{Name: "shoulder", Channel: 3, MinAngle: -1, MaxAngle: 1},
	}, Config{})

	err := c.HandleTrajectory(ctx, joint.Trajectory{
		JointNames: []string{"shoulder"},
		Points:     []joint.Point{{Positions: []float64{2.0}}},
	})
	require.Error(t, err)

	_, ok := bus.PulseWidth(3)
	assert.False(t, ok, "rejected trajectory must not publish commands")
}

func TestRelaxJoints(t *testing.T) {
	ctx := context.Background()
	c, bus := newTestController(t, []joint.Joint{
		{Name: "shoulder", Channel: 3},
		{Name: "elbow", Channel: 4},
	}, Config{})

	require.NoError(t, c.RelaxJoints(ctx))

	for _, ch := range []int{3, 4} {
		on, known := bus.DiscreteLevel(ch)
		require.True(t, known, "channel %d has no discrete output", ch)
		assert.False(t, on)
	}
}

func TestPublishJointStates(t *testing.T) {
	ctx := context.Background()
	c, bus := newTestController(t, []joint.Joint{
		{Name: "elbow", Channel: 4, MinAngle: -1, MaxAngle: 1},
		{Name: "shoulder", Channel: 3, MinAngle: -1, MaxAngle: 1},
	}, Config{})

	// Only the shoulder has been commanded; the elbow has no reading yet.
	require.NoError(t, c.HandleTrajectory(ctx, joint.Trajectory{
		JointNames: []string{"shoulder"},
		Points:     []joint.Point{{Positions: []float64{0.5}}},
	}))

	require.NoError(t, c.PublishJointStates(ctx))

	state, ok := bus.LastState()
	require.True(t, ok)
	require.Equal(t, []string{"shoulder"}, state.Names)
	require.Len(t, state.Angles, 1)
	assert.InDelta(t, 0.5, state.Angles[0], 1e-3)

	// The same state is mirrored on the state channel for UIs.
	select {
	case got := <-c.States():
		assert.Equal(t, state, got)
	default:
		t.Fatal("no state on channel")
	}
}

func TestInitialize(t *testing.T) {
	ctx := context.Background()
	c, bus := newTestController(t, []joint.Joint{
		{Name: "shoulder", Channel: 3, MinAngle: -1, MaxAngle: 1, DefaultAngle: 0.5, Initialize: true},
		{Name: "elbow", Channel: 4, MinAngle: -1, MaxAngle: 1, DefaultAngle: 0.5},
	}, Config{})

	require.NoError(t, c.Initialize(ctx))

	pw, ok := bus.PulseWidth(3)
	require.True(t, ok)
	assert.Equal(t, joint.AngleToPulseWidth(0.5, 0), pw)

	_, ok = bus.PulseWidth(4)
	assert.False(t, ok, "joint without initialize flag must not be commanded")
}

func TestRunPublishesPeriodically(t *testing.T) {
	c, bus := newTestController(t, []joint.Joint{
		{Name: "shoulder", Channel: 3, MinAngle: -1, MaxAngle: 1, Initialize: true},
	}, Config{PublishJointStates: true, PublishRate: 100})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := c.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	state, ok := bus.LastState()
	require.True(t, ok, "expected at least one published state")
	assert.Equal(t, []string{"shoulder"}, state.Names)
}

func TestRunDisabledPublication(t *testing.T) {
	c, bus := newTestController(t, []joint.Joint{
		{Name: "shoulder", Channel: 3, MinAngle: -1, MaxAngle: 1},
	}, Config{PublishJointStates: false, PublishRate: 10})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	_, ok := bus.LastState()
	assert.False(t, ok)
}

func TestNewRequiresRegistry(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestEmptyRegistryIsNonFatal(t *testing.T) {
	ctx := context.Background()
	c, bus := newTestController(t, nil, Config{})

	err := c.HandleTrajectory(ctx, joint.Trajectory{
		JointNames: []string{"anything"},
		Points:     []joint.Point{{Positions: []float64{0}}},
	})
	require.Error(t, err)

	require.NoError(t, c.RelaxJoints(ctx))
	require.NoError(t, c.PublishJointStates(ctx))

	state, ok := bus.LastState()
	require.True(t, ok)
	assert.Empty(t, state.Names)
}
