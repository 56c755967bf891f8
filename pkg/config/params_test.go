package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromParams(t *testing.T) {
	cfg, err := FromParams([]Param{
		{"publish_joint_states", "true"},
		{"publish_rate", "5"},
		{"joints.shoulder.channel", "0"},
		{"joints.shoulder.min_angle", "-1.57"},
		{"joints.shoulder.max_angle", "1.57"},
		{"joints.shoulder.invert", "true"},
		{"joints.elbow.channel", "1"},
		{"joints.elbow.min_angle", "-1"},
		{"joints.elbow.max_angle", "1"},
		{"joints.elbow.default_angle", "0.5"},
		{"joints.elbow.initialize", "true"},
	})
	require.NoError(t, err)

	assert.True(t, cfg.PublishJointStates)
	assert.Equal(t, 5.0, cfg.PublishRate)
	require.Len(t, cfg.Joints, 2)

	shoulder := cfg.Joints["shoulder"]
	assert.Equal(t, -1.57, shoulder.MinAngle)
	assert.True(t, shoulder.Invert)

	elbow := cfg.Joints["elbow"]
	assert.Equal(t, 0.5, elbow.DefaultAngle)
	assert.True(t, elbow.Initialize)
}

func TestFromParamsDuplicateKeyLastWins(t *testing.T) {
	cfg, err := FromParams([]Param{
		{"joints.shoulder.channel", "0"},
		{"joints.shoulder.channel", "7"},
	})
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Joints["shoulder"].Channel)
}

func TestFromParamsIgnoresUnrelatedKeys(t *testing.T) {
	cfg, err := FromParams([]Param{
		{"use_sim_time", "false"},
		{"joints.shoulder.channel", "2"},
		{"joints.shoulder.mystery_attr", "42"},
		{"joints.too.many.segments.here", "1"},
	})
	require.NoError(t, err)
	require.Len(t, cfg.Joints, 1)
	assert.Equal(t, 2, cfg.Joints["shoulder"].Channel)
}

func TestFromParamsBadValue(t *testing.T) {
	_, err := FromParams([]Param{{"joints.shoulder.channel", "not-a-number"}})
	require.Error(t, err)

	_, err = FromParams([]Param{{"publish_rate", "fast"}})
	require.Error(t, err)
}

func TestFromParamsEmpty(t *testing.T) {
	cfg, err := FromParams(nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Joints)
}
