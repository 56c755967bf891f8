// Package config loads the joint calibration and controller options that
// feed the translation core.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/mattrb/ssc32u/pkg/joint"
)

// DefaultConfigFile is the config file looked up in the working directory.
const DefaultConfigFile = "sscjoints.toml"

// JointConfig describes one joint in the config file. Angles are radians.
type JointConfig struct {
	Channel      int     `toml:"channel"`
	MinAngle     float64 `toml:"min_angle"`
	MaxAngle     float64 `toml:"max_angle"`
	OffsetAngle  float64 `toml:"offset_angle"`
	DefaultAngle float64 `toml:"default_angle"`
	Invert       bool    `toml:"invert"`
	Initialize   bool    `toml:"initialize"`
}

// Config is the full configuration surface of the controller.
type Config struct {
	PublishJointStates bool                   `toml:"publish_joint_states"`
	PublishRate        float64                `toml:"publish_rate"` // Hz; <= 0 disables
	Joints             map[string]JointConfig `toml:"joints"`
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom loads and validates configuration from a specific file.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks angle ranges and channel assignments. Zero joints is not
// an error; the controller warns and runs with an empty registry.
func (c *Config) Validate() error {
	channels := make(map[int]string, len(c.Joints))
	for name, jc := range c.Joints {
		if jc.Channel < 0 {
			return fmt.Errorf("joint %q: negative channel %d", name, jc.Channel)
		}
		if jc.MinAngle > jc.MaxAngle {
			return fmt.Errorf("joint %q: min_angle %g exceeds max_angle %g", name, jc.MinAngle, jc.MaxAngle)
		}
		if jc.Initialize && (jc.DefaultAngle < jc.MinAngle || jc.DefaultAngle > jc.MaxAngle) {
			return fmt.Errorf("joint %q: default_angle %g outside [%g, %g]", name, jc.DefaultAngle, jc.MinAngle, jc.MaxAngle)
		}
		if other, dup := channels[jc.Channel]; dup {
			return fmt.Errorf("joint %q: channel %d already assigned to %q", name, jc.Channel, other)
		}
		channels[jc.Channel] = name
	}
	return nil
}

// Registry builds the immutable joint registry the translators work from.
func (c *Config) Registry() *joint.Registry {
	joints := make([]joint.Joint, 0, len(c.Joints))
	for name, jc := range c.Joints {
		joints = append(joints, joint.Joint{
			Name:         name,
			Channel:      jc.Channel,
			MinAngle:     jc.MinAngle,
			MaxAngle:     jc.MaxAngle,
			OffsetAngle:  jc.OffsetAngle,
			DefaultAngle: jc.DefaultAngle,
			Invert:       jc.Invert,
			Initialize:   jc.Initialize,
		})
	}
	return joint.NewRegistry(joints)
}

// Save writes the configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigFile)
}

// SaveTo writes the configuration to a specific file.
func (c *Config) SaveTo(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
