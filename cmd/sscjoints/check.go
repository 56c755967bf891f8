package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mattrb/ssc32u/pkg/config"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type CheckCommand struct {
	Config string `long:"config" short:"c" default:"sscjoints.toml" description:"Path to the joint configuration file"`
}

func (c *CheckCommand) Execute(args []string) error {
	cfg, err := config.LoadFrom(c.Config)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render("Joint configuration"))
	fmt.Println(dimStyle.Render(c.Config))
	fmt.Println()

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("JOINT", "CH", "MIN", "MAX", "OFFSET", "DEFAULT", "INVERT", "INIT")

	for _, j := range cfg.Registry().Joints() {
		tbl.Row(
			j.Name,
			strconv.Itoa(j.Channel),
			fmt.Sprintf("%.3f", j.MinAngle),
			fmt.Sprintf("%.3f", j.MaxAngle),
			fmt.Sprintf("%.3f", j.OffsetAngle),
			fmt.Sprintf("%.3f", j.DefaultAngle),
			yesNo(j.Invert),
			yesNo(j.Initialize),
		)
	}
	fmt.Println(tbl.Render())

	if cfg.PublishJointStates && cfg.PublishRate > 0 {
		fmt.Printf("Joint states published at %g Hz\n", cfg.PublishRate)
	} else {
		fmt.Println("Joint state publication disabled")
	}

	if len(cfg.Joints) == 0 {
		fmt.Println(dimStyle.Render("Warning: no joints were provided"))
	}
	fmt.Println(successStyle.Render("Configuration OK"))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
