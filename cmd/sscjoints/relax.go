package main

import (
	"fmt"

	"github.com/mattrb/ssc32u/pkg/config"
	"github.com/mattrb/ssc32u/pkg/joint"
)

type RelaxCommand struct {
	Config string `long:"config" short:"c" default:"sscjoints.toml" description:"Path to the joint configuration file"`
}

func (c *RelaxCommand) Execute(args []string) error {
	cfg, err := config.LoadFrom(c.Config)
	if err != nil {
		return err
	}

	reg := cfg.Registry()
	for _, out := range joint.RelaxCommands(reg) {
		level := "L"
		if out.On {
			level = "H"
		}
		fmt.Printf("#%d%s\n", out.Channel, level)
	}

	if reg.Len() == 0 {
		fmt.Println("no joints configured")
	}
	return nil
}
