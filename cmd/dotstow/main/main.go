package main

import (
	"os"

	"github.com/arthur-debert/dotstow/cmd/dotstow"
	"github.com/arthur-debert/dotstow/pkg/ui"
	"github.com/arthur-debert/dotstow/pkg/ui/output"
)

func main() {
	rootCmd := dotstow.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		printer := output.NewPrinter(os.Stderr, ui.ColorEnabled(os.Stderr))
		printer.Error(err)
		os.Exit(1)
	}
}
