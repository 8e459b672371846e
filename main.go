package main

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/abs0luty/gloss/errors"
)

const version = "0.3.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		pterm.Error.Println(err)
		if hints := errors.FlattenHints(err); hints != "" {
			pterm.Info.Println(hints)
		}
		os.Exit(1)
	}
}
