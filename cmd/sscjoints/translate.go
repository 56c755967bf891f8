package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattrb/ssc32u/pkg/config"
	"github.com/mattrb/ssc32u/pkg/joint"
)

type TranslateCommand struct {
	Config   string  `long:"config" short:"c" default:"sscjoints.toml" description:"Path to the joint configuration file"`
	Velocity float64 `long:"velocity" description:"Angular velocity in rad/s applied to every joint (0 = full speed)"`
}

func (c *TranslateCommand) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: sscjoints translate <joint>=<angle> [<joint>=<angle> ...]")
	}

	cfg, err := config.LoadFrom(c.Config)
	if err != nil {
		return err
	}

	var names []string
	var positions, velocities []float64
	for _, arg := range args {
		name, angleStr, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("argument %q is not of the form <joint>=<angle>", arg)
		}
		angle, err := strconv.ParseFloat(angleStr, 64)
		if err != nil {
			return fmt.Errorf("argument %q: %w", arg, err)
		}
		names = append(names, name)
		positions = append(positions, angle)
		velocities = append(velocities, c.Velocity)
	}

	tr := joint.NewTranslator(cfg.Registry())
	batch, err := tr.TranslatePoint(names, joint.Point{Positions: positions, Velocities: velocities})
	if err != nil {
		return err
	}

	for i, cmd := range batch {
		line := fmt.Sprintf("#%d P%d", cmd.Channel, cmd.PulseWidth)
		if cmd.Speed > 0 {
			line += fmt.Sprintf(" S%d", int(cmd.Speed))
		}
		fmt.Printf("%-12s  %s\n", names[i], line)
	}
	return nil
}
