package main

import (
	"os"

	"github.com/byterings/hubswitch/cmd"
	"github.com/byterings/hubswitch/internal/ui"
)

func main() {
	if err := cmd.Execute(); err != nil {
		ui.Error(err.Error())
		os.Exit(1)
	}
}
