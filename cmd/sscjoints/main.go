package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Check     CheckCommand     `command:"check" description:"Validate a joint configuration file"`
	Translate TranslateCommand `command:"translate" description:"Translate joint angles into servo commands"`
	Relax     RelaxCommand     `command:"relax" description:"Show the relax (de-energize) command set"`
	Monitor   MonitorCommand   `command:"monitor" description:"Drive joints interactively against a loopback bus"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "sscjoints - joint angle to servo command translation for SSC-32U controllers"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
