package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Param is one flat configuration entry, as delivered by parameter-server
// style sources that flatten everything to dotted keys.
type Param struct {
	Key   string
	Value string
}

// FromParams builds a Config from flat parameters. Joint attributes use keys
// of the form joints.<name>.<attr>; entries sharing a name segment are
// grouped into one joint, and a key listed twice keeps its last value. The
// two scalar keys publish_joint_states and publish_rate are recognized at
// the top level. Keys outside this layout are ignored, matching sources
// that carry unrelated parameters alongside the joint block.
func FromParams(params []Param) (*Config, error) {
	cfg := &Config{Joints: make(map[string]JointConfig)}

	for _, p := range params {
		switch p.Key {
		case "publish_joint_states":
			v, err := strconv.ParseBool(p.Value)
			if err != nil {
				return nil, fmt.Errorf("param %q: %w", p.Key, err)
			}
			cfg.PublishJointStates = v
			continue
		case "publish_rate":
			v, err := strconv.ParseFloat(p.Value, 64)
			if err != nil {
				return nil, fmt.Errorf("param %q: %w", p.Key, err)
			}
			cfg.PublishRate = v
			continue
		}

		parts := strings.Split(p.Key, ".")
		if len(parts) != 3 || parts[0] != "joints" {
			continue
		}
		name, attr := parts[1], parts[2]

		jc := cfg.Joints[name]
		if err := setJointAttr(&jc, attr, p.Value); err != nil {
			return nil, fmt.Errorf("param %q: %w", p.Key, err)
		}
		cfg.Joints[name] = jc
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setJointAttr(jc *JointConfig, attr, value string) error {
	switch attr {
	case "channel":
		v, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		jc.Channel = v
	case "min_angle":
		return setFloat(&jc.MinAngle, value)
	case "max_angle":
		return setFloat(&jc.MaxAngle, value)
	case "offset_angle":
		return setFloat(&jc.OffsetAngle, value)
	case "default_angle":
		return setFloat(&jc.DefaultAngle, value)
	case "invert":
		return setBool(&jc.Invert, value)
	case "initialize":
		return setBool(&jc.Initialize, value)
	}
	// Unknown attributes are ignored like any other undeclared key.
	return nil
}

func setFloat(dst *float64, value string) error {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func setBool(dst *bool, value string) error {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
