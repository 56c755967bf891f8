// Package ssc32u translates named joint motion commands into SSC-32U servo
// controller commands and back.
//
// The SSC-32U addresses servos by channel number and positions them with a
// pulse width in microseconds. Motion planners think in joint names and
// radians. This module holds the per-joint calibration that bridges the two
// and performs the conversion in both directions.
//
// # Usage
//
// Describe your joints in a TOML file:
//
//	publish_joint_states = true
//	publish_rate = 10.0
//
//	[joints.shoulder]
//	channel = 0
//	min_angle = -1.57
//	max_angle = 1.57
//
// Then validate it and try a conversion:
//
//	sscjoints check
//	sscjoints translate shoulder=0.5
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/sscjoints: CLI with check, translate, relax and monitor commands
//   - pkg/joint: calibration registry and angle/pulse-width translation
//   - pkg/config: TOML and flat-parameter configuration loading
//   - pkg/sscbus: transport interfaces and an in-process loopback bus
//   - pkg/controller: adapter wiring the translation core to a bus
package ssc32u
